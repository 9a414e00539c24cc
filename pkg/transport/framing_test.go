package transport

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/weightaware/bag-go/pkg/log"
)

// capturingLogger captures log events for testing.
type capturingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (l *capturingLogger) Log(event log.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *capturingLogger) Events() []log.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]log.Event(nil), l.events...)
}

func TestFramerRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{"single byte", []byte{0x42}},
		{"small", []byte("hello")},
		{"binary", []byte{0x00, 0xFF, 0x7F, 0x80}},
		{"max size", bytes.Repeat([]byte("y"), DefaultMaxMessageSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			f := NewFramer(buf)

			if err := f.WriteFrame(tt.payload); err != nil {
				t.Fatalf("WriteFrame failed: %v", err)
			}
			if buf.Len() != FrameSize(len(tt.payload)) {
				t.Errorf("frame size = %d, want %d", buf.Len(), FrameSize(len(tt.payload)))
			}

			got, err := f.ReadFrame()
			if err != nil {
				t.Fatalf("ReadFrame failed: %v", err)
			}
			if !bytes.Equal(got, tt.payload) {
				t.Error("payload mismatch")
			}
		})
	}
}

func TestFramerErrors(t *testing.T) {
	t.Run("write empty", func(t *testing.T) {
		f := NewFramer(new(bytes.Buffer))
		if err := f.WriteFrame(nil); !errors.Is(err, ErrMessageEmpty) {
			t.Errorf("err = %v, want ErrMessageEmpty", err)
		}
	})

	t.Run("write too large", func(t *testing.T) {
		f := NewFramerWithMaxSize(new(bytes.Buffer), 8)
		if err := f.WriteFrame(make([]byte, 9)); !errors.Is(err, ErrMessageTooLarge) {
			t.Errorf("err = %v, want ErrMessageTooLarge", err)
		}
	})

	t.Run("read too large", func(t *testing.T) {
		buf := new(bytes.Buffer)
		binary.Write(buf, binary.BigEndian, uint32(DefaultMaxMessageSize+1))
		if _, err := NewFramer(buf).ReadFrame(); !errors.Is(err, ErrMessageTooLarge) {
			t.Errorf("err = %v, want ErrMessageTooLarge", err)
		}
	})

	t.Run("read zero length", func(t *testing.T) {
		buf := bytes.NewBuffer([]byte{0, 0, 0, 0})
		if _, err := NewFramer(buf).ReadFrame(); !errors.Is(err, ErrMessageEmpty) {
			t.Errorf("err = %v, want ErrMessageEmpty", err)
		}
	})

	t.Run("truncated prefix", func(t *testing.T) {
		buf := bytes.NewBuffer([]byte{0, 0})
		if _, err := NewFramer(buf).ReadFrame(); !errors.Is(err, ErrFrameTruncated) {
			t.Errorf("err = %v, want ErrFrameTruncated", err)
		}
	})

	t.Run("truncated payload", func(t *testing.T) {
		buf := bytes.NewBuffer([]byte{0, 0, 0, 5, 'a', 'b'})
		if _, err := NewFramer(buf).ReadFrame(); !errors.Is(err, ErrFrameTruncated) {
			t.Errorf("err = %v, want ErrFrameTruncated", err)
		}
	})

	t.Run("clean eof", func(t *testing.T) {
		if _, err := NewFramer(new(bytes.Buffer)).ReadFrame(); err != io.EOF {
			t.Errorf("err = %v, want io.EOF", err)
		}
	})
}

func TestFramerLogsFrames(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := &capturingLogger{}

	f := NewFramer(buf)
	f.SetLogger(logger, "conn-1")
	f.SetLink(7, "11:22:33:44:55:66")

	if err := f.WriteFrame([]byte("ping")); err != nil {
		t.Fatal(err)
	}
	if _, err := f.ReadFrame(); err != nil {
		t.Fatal(err)
	}

	events := logger.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Direction != log.DirectionOut || events[1].Direction != log.DirectionIn {
		t.Errorf("directions = %v, %v", events[0].Direction, events[1].Direction)
	}
	for _, e := range events {
		if e.ConnectionID != "conn-1" || e.Handle != 7 || e.Peer != "11:22:33:44:55:66" {
			t.Errorf("event ids = %q/%d/%q", e.ConnectionID, e.Handle, e.Peer)
		}
		if e.Layer != log.LayerLink || e.Category != log.CategoryFrame {
			t.Errorf("layer/category = %v/%v", e.Layer, e.Category)
		}
		if e.Frame == nil || e.Frame.Size != FrameSize(4) {
			t.Errorf("Frame = %+v", e.Frame)
		}
	}
}

func TestFramerLogsTruncatedData(t *testing.T) {
	logger := &capturingLogger{}
	f := NewFramer(new(bytes.Buffer))
	f.SetLogger(logger, "conn-trunc")

	payload := bytes.Repeat([]byte("x"), MaxLogFrameDataSize+10)
	if err := f.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	e := logger.Events()[0]
	if len(e.Frame.Data) != MaxLogFrameDataSize || !e.Frame.Truncated {
		t.Errorf("Data len = %d, Truncated = %v", len(e.Frame.Data), e.Frame.Truncated)
	}
	if e.Frame.Size != FrameSize(len(payload)) {
		t.Errorf("Size = %d, want %d", e.Frame.Size, FrameSize(len(payload)))
	}
}

func TestFramerConcurrentWrites(t *testing.T) {
	buf := new(bytes.Buffer)
	var bufMu sync.Mutex
	f := NewFramer(&lockedBuffer{buf: buf, mu: &bufMu})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = f.WriteFrame(bytes.Repeat([]byte{byte(i + 1)}, 100))
		}(i)
	}
	wg.Wait()

	r := NewFramer(buf)
	for i := 0; i < 10; i++ {
		p, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		for _, b := range p {
			if b != p[0] {
				t.Fatalf("frame %d interleaved", i)
			}
		}
	}
}

type lockedBuffer struct {
	buf *bytes.Buffer
	mu  *sync.Mutex
}

func (b *lockedBuffer) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Read(p)
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}
