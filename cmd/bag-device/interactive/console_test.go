package interactive

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weightaware/bag-go/pkg/ble"
	"github.com/weightaware/bag-go/pkg/persistence"
	"github.com/weightaware/bag-go/pkg/service"
	"github.com/weightaware/bag-go/pkg/transport"
)

// syncBuffer is a bytes.Buffer safe for the event goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

func newTestConsole(t *testing.T) (*Console, *syncBuffer, *service.DeviceService) {
	t.Helper()

	config := service.DefaultDeviceConfig()
	config.ListenAddress = "127.0.0.1:0"
	config.Supervision = transport.SupervisionConfig{}
	svc, err := service.NewDeviceService(persistence.NewMemoryPartition(), config)
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(func() { _ = svc.Stop() })

	out := &syncBuffer{}
	c := &Console{out: out, centrals: make(map[ble.ConnHandle]*transport.ClientConn)}
	c.attach(svc)
	t.Cleanup(c.Close)
	return c, out, svc
}

func (c *Console) run(t *testing.T, line string) {
	t.Helper()
	require.True(t, c.execute(context.Background(), line), "command %q quit the console", line)
}

func TestConsoleConnectPairsOwner(t *testing.T) {
	c, out, _ := newTestConsole(t)

	c.run(t, "owner")
	assert.Contains(t, out.String(), "No owner (unpaired)")

	c.run(t, "connect 11:22:33:44:55:66")
	assert.Contains(t, out.String(), "Central 11:22:33:44:55:66/PUBLIC_ID connected as handle")

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "[EVENT] Paired with 11:22:33:44:55:66/PUBLIC_ID") &&
			strings.Contains(out.String(), "connection parameters: ")
	}, 2*time.Second, 10*time.Millisecond)

	out.Reset()
	c.run(t, "owner")
	assert.Contains(t, out.String(), "Owner: 11:22:33:44:55:66/PUBLIC_ID")

	out.Reset()
	c.run(t, "conns")
	assert.Contains(t, out.String(), "Live Links (1):")
	assert.Contains(t, out.String(), "Peer: 11:22:33:44:55:66/PUBLIC_ID")
}

func TestConsoleImpostorIsTerminated(t *testing.T) {
	c, out, _ := newTestConsole(t)

	c.run(t, "connect 11:22:33:44:55:66")
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "[EVENT] Paired with")
	}, 2*time.Second, 10*time.Millisecond)

	c.run(t, "connect aa:bb:cc:dd:ee:ff random_id")
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "terminated by device: REMOTE_USER_TERMINATED")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "AA:BB:CC:DD:EE:FF/RANDOM_ID: REJECTED")
}

func TestConsoleDrop(t *testing.T) {
	c, out, svc := newTestConsole(t)

	c.run(t, "connect 11:22:33:44:55:66")
	require.Eventually(t, func() bool { return len(svc.Links()) == 1 }, 2*time.Second, 10*time.Millisecond)
	handle := svc.Links()[0].Handle

	out.Reset()
	c.run(t, "drop "+handle.String())
	assert.Contains(t, out.String(), "terminated")
	assert.Eventually(t, func() bool { return len(svc.Links()) == 0 }, 2*time.Second, 10*time.Millisecond)

	out.Reset()
	c.run(t, "drop 3000")
	assert.Contains(t, out.String(), "Drop failed")

	out.Reset()
	c.run(t, "drop x")
	assert.Contains(t, out.String(), "Invalid handle: x")
}

func TestConsoleSetupAndStatus(t *testing.T) {
	c, out, _ := newTestConsole(t)

	c.run(t, "setup")
	assert.Contains(t, out.String(), "Setup finished: false")

	out.Reset()
	c.run(t, "setup true")
	assert.Contains(t, out.String(), "Setup finished set to true")

	out.Reset()
	c.run(t, "setup maybe")
	assert.Contains(t, out.String(), "Usage: setup [true|false]")

	out.Reset()
	c.run(t, "status")
	output := out.String()
	assert.Contains(t, output, "Service State:  RUNNING")
	assert.Contains(t, output, "Pairing:        UNPAIRED")
	assert.Contains(t, output, "Setup Finished: true")
	assert.Contains(t, output, "Advertising:    UNREGISTERED")
}

func TestConsoleInputErrors(t *testing.T) {
	c, out, _ := newTestConsole(t)

	tests := []struct {
		line string
		want string
	}{
		{"connect", "Usage: connect <addr> [kind]"},
		{"connect 11:22:33", "Invalid address"},
		{"connect 11:22:33:44:55:66 bogus", "Invalid kind"},
		{"drop", "Usage: drop <handle>"},
		{"frobnicate", "Unknown command: frobnicate"},
		{"conns", "No live links"},
	}
	for _, tt := range tests {
		out.Reset()
		c.run(t, tt.line)
		assert.Contains(t, out.String(), tt.want, "line %q", tt.line)
	}

	assert.True(t, c.execute(context.Background(), "   "))
	assert.False(t, c.execute(context.Background(), "quit"))
}
