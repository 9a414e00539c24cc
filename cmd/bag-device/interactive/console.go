// Package interactive provides the interactive command-line interface
// for the bag device.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"

	"github.com/weightaware/bag-go/pkg/ble"
	"github.com/weightaware/bag-go/pkg/discovery"
	"github.com/weightaware/bag-go/pkg/identity"
	"github.com/weightaware/bag-go/pkg/pairing"
	"github.com/weightaware/bag-go/pkg/service"
	"github.com/weightaware/bag-go/pkg/transport"
	"github.com/weightaware/bag-go/pkg/truststore"
)

// Device is the part of the device service the console drives.
type Device interface {
	State() service.ServiceState
	Addr() string
	ConnParams() ble.ConnParams
	Owner() (identity.DeviceIdentity, bool, error)
	Record() (truststore.Record, error)
	SetSetupFinished(finished bool) error
	Stats() pairing.Stats
	AdvertState() discovery.AdvertState
	Links() []transport.LinkInfo
	Drop(handle ble.ConnHandle) error
	OnEvent(handler service.EventHandler)
}

// Compile-time check: *service.DeviceService implements Device.
var _ Device = (*service.DeviceService)(nil)

// dialTimeout bounds the handshake of a simulated central.
const dialTimeout = 5 * time.Second

// Console handles interactive mode for bag-device.
type Console struct {
	rl  *readline.Instance
	out io.Writer
	dev Device

	// Simulated centrals opened with "connect", by handle
	mu       sync.Mutex
	centrals map[ble.ConnHandle]*transport.ClientConn

	closeOnce sync.Once
}

// New creates the console. Output written through Stdout does not disturb
// the prompt, so the logger should write there.
func New() (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "bag> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{
		rl:       rl,
		out:      rl.Stdout(),
		centrals: make(map[ble.ConnHandle]*transport.ClientConn),
	}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Run starts the interactive command loop. It returns when ctx is done or
// the user quits, in which case cancel is called.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc, dev Device) {
	defer c.Close()

	c.attach(dev)
	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if !c.execute(ctx, line) {
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Close closes the simulated centrals and restores the terminal.
func (c *Console) Close() {
	c.closeOnce.Do(func() {
		c.closeCentrals()
		if c.rl != nil {
			_ = c.rl.Close()
		}
	})
}

func (c *Console) attach(dev Device) {
	c.dev = dev
	dev.OnEvent(c.handleEvent)
}

// execute runs one command line. It returns false when the user quits.
func (c *Console) execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()
	case "status", "s":
		c.cmdStatus()
	case "owner":
		c.cmdOwner()
	case "setup":
		c.cmdSetup(args)
	case "connect", "c":
		c.cmdConnect(ctx, args)
	case "drop":
		c.cmdDrop(args)
	case "conns", "links":
		c.cmdConns()
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Bag Device Commands:
  Pairing:
    status                  - Show device status
    owner                   - Show the paired owner
    setup [true|false]      - Show or write the setup flag

  Links:
    connect <addr> [kind]   - Connect a simulated central (kind defaults to public_id)
    drop <handle>           - Terminate a link from the device side
    conns                   - List live links

  General:
    help                    - Show this help
    quit                    - Exit device`)
}

func (c *Console) cmdStatus() {
	fmt.Fprintln(c.out, "\nDevice Status")
	fmt.Fprintln(c.out, "-------------------------------------------")
	fmt.Fprintf(c.out, "  Service State:  %s\n", c.dev.State())
	fmt.Fprintf(c.out, "  Link Address:   %s\n", c.dev.Addr())
	fmt.Fprintf(c.out, "  Advertising:    %s\n", c.dev.AdvertState())
	fmt.Fprintf(c.out, "  Conn Params:    %s\n", c.dev.ConnParams())

	rec, err := c.dev.Record()
	if err != nil {
		fmt.Fprintf(c.out, "  Trust Record:   error: %v\n", err)
	} else {
		pairingState := pairing.StateUnpaired
		if rec.Paired() {
			pairingState = pairing.StatePaired
		}
		fmt.Fprintf(c.out, "  Pairing:        %s\n", pairingState)
		fmt.Fprintf(c.out, "  Setup Finished: %t\n", rec.SetupFinished)
	}

	stats := c.dev.Stats()
	fmt.Fprintf(c.out, "  Live Links:     %d\n", len(c.dev.Links()))
	fmt.Fprintf(c.out, "  Decisions:      paired=%d owner=%d rejected=%d uncommitted=%d faults=%d\n",
		stats.Paired, stats.Owner, stats.Rejected, stats.PairedUncommitted, stats.StorageFaults)
	fmt.Fprintf(c.out, "  Disconnects:    %d\n", stats.Disconnects)
}

func (c *Console) cmdOwner() {
	owner, ok, err := c.dev.Owner()
	switch {
	case err != nil:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	case !ok:
		fmt.Fprintln(c.out, "No owner (unpaired)")
	default:
		fmt.Fprintf(c.out, "Owner: %s\n", owner.Describe())
	}
}

func (c *Console) cmdSetup(args []string) {
	if len(args) == 0 {
		rec, err := c.dev.Record()
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(c.out, "Setup finished: %t\n", rec.SetupFinished)
		return
	}

	finished, err := strconv.ParseBool(args[0])
	if err != nil {
		fmt.Fprintln(c.out, "Usage: setup [true|false]")
		return
	}
	if err := c.dev.SetSetupFinished(finished); err != nil {
		fmt.Fprintf(c.out, "Failed to write setup flag: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Setup finished set to %t\n", finished)
}

func (c *Console) cmdConnect(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: connect <addr> [kind]")
		fmt.Fprintln(c.out, "  Example: connect 11:22:33:44:55:66 public_id")
		return
	}

	kind := identity.KindPublicID
	if len(args) > 1 {
		k, err := identity.ParseKind(args[1])
		if err != nil {
			fmt.Fprintf(c.out, "Invalid kind: %v\n", err)
			return
		}
		kind = k
	}
	peer, err := identity.Parse(args[0], kind)
	if err != nil {
		fmt.Fprintf(c.out, "Invalid address: %v\n", err)
		return
	}

	addr := c.dev.Addr()
	if addr == "" {
		fmt.Fprintln(c.out, "Device is not running")
		return
	}

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	conn, err := transport.Dial(dialCtx, addr, peer, transport.DialConfig{})
	if err != nil {
		fmt.Fprintf(c.out, "Connect failed: %v\n", err)
		return
	}

	c.mu.Lock()
	c.centrals[conn.Handle()] = conn
	c.mu.Unlock()

	fmt.Fprintf(c.out, "Central %s connected as handle %d\n", peer.Describe(), conn.Handle())
	go c.watchCentral(conn)
}

// watchCentral reports what the device does to a simulated central.
func (c *Console) watchCentral(conn *transport.ClientConn) {
	for {
		select {
		case p := <-conn.ConnParamsUpdates():
			fmt.Fprintf(c.out, "[central h=%d] connection parameters: %s\n", conn.Handle(), p)
		case <-conn.Done():
			if reason, ok := conn.TerminateReason(); ok {
				fmt.Fprintf(c.out, "[central h=%d] terminated by device: %s\n", conn.Handle(), reason)
			} else {
				fmt.Fprintf(c.out, "[central h=%d] link closed\n", conn.Handle())
			}
			c.mu.Lock()
			delete(c.centrals, conn.Handle())
			c.mu.Unlock()
			return
		}
	}
}

func (c *Console) cmdDrop(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: drop <handle>")
		fmt.Fprintln(c.out, "  Use 'conns' to list handles")
		return
	}
	h, err := strconv.ParseUint(args[0], 0, 16)
	if err != nil {
		fmt.Fprintf(c.out, "Invalid handle: %s\n", args[0])
		return
	}
	if err := c.dev.Drop(ble.ConnHandle(h)); err != nil {
		fmt.Fprintf(c.out, "Drop failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Link %d terminated\n", h)
}

func (c *Console) cmdConns() {
	links := c.dev.Links()
	if len(links) == 0 {
		fmt.Fprintln(c.out, "No live links")
		return
	}

	fmt.Fprintf(c.out, "\nLive Links (%d):\n", len(links))
	fmt.Fprintln(c.out, "-------------------------------------------")
	for _, l := range links {
		fmt.Fprintf(c.out, "  Handle: %d\n", l.Handle)
		fmt.Fprintf(c.out, "      Peer: %s\n", l.Peer.Describe())
		fmt.Fprintf(c.out, "      Remote: %s\n", l.RemoteAddr)
		fmt.Fprintf(c.out, "      Since: %s\n", l.Since.Format("15:04:05"))
		if l.Params != nil {
			fmt.Fprintf(c.out, "      Params: %s\n", l.Params)
		}
	}
}

func (c *Console) handleEvent(e service.Event) {
	switch e.Type {
	case service.EventConnected:
		fmt.Fprintf(c.out, "[EVENT] Link %d from %s: %s\n", e.Handle, e.Peer.Describe(), e.Decision)
	case service.EventDisconnected:
		fmt.Fprintf(c.out, "[EVENT] Link %d closed: %s\n", e.Handle, e.Reason)
	case service.EventPaired:
		fmt.Fprintf(c.out, "[EVENT] Paired with %s\n", e.Peer.Describe())
	}
}

func (c *Console) closeCentrals() {
	c.mu.Lock()
	conns := make([]*transport.ClientConn, 0, len(c.centrals))
	for _, conn := range c.centrals {
		conns = append(conns, conn)
	}
	c.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}
