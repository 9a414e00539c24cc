package ble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Dispatcher defaults.
const (
	// DefaultQueueSize is the number of events that may wait for delivery.
	DefaultQueueSize = 16

	// DefaultWorkers delivers events one at a time.
	DefaultWorkers = 1
)

// Dispatcher errors.
var (
	// ErrDispatcherStopped indicates an event posted while not running.
	ErrDispatcherStopped = errors.New("dispatcher not running")

	// ErrQueueFull indicates the event queue has no room.
	ErrQueueFull = errors.New("event queue full")
)

// ConnectHandler handles a ConnectEvent.
type ConnectHandler func(ConnectEvent)

// DisconnectHandler handles a DisconnectEvent.
type DisconnectHandler func(DisconnectEvent)

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	// QueueSize bounds the number of pending events (default: 16).
	QueueSize int

	// Workers is the number of goroutines delivering events (default: 1).
	// With more than one worker, events for different links may be handled
	// concurrently and handlers must be safe for that.
	Workers int

	// Logger for debug output (optional).
	Logger *slog.Logger
}

// Dispatcher delivers link events to the registered handlers on its own
// goroutines. Handlers are registered once, before Start.
type Dispatcher struct {
	config DispatcherConfig
	queue  chan Event

	mu           sync.RWMutex
	onConnect    []ConnectHandler
	onDisconnect []DisconnectHandler

	running   atomic.Bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	delivered atomic.Uint64
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(config DispatcherConfig) *Dispatcher {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	return &Dispatcher{
		config: config,
		queue:  make(chan Event, config.QueueSize),
	}
}

// OnConnect registers a handler for connect events.
func (d *Dispatcher) OnConnect(h ConnectHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onConnect = append(d.onConnect, h)
}

// OnDisconnect registers a handler for disconnect events.
func (d *Dispatcher) OnDisconnect(h DisconnectHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onDisconnect = append(d.onDisconnect, h)
}

// Start launches the delivery goroutines. They run until ctx is cancelled
// or Stop is called.
func (d *Dispatcher) Start(ctx context.Context) {
	if d.running.Swap(true) {
		return
	}

	ctx, d.cancel = context.WithCancel(ctx)
	for i := 0; i < d.config.Workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx)
	}
	d.debugLog("dispatcher started", "workers", d.config.Workers, "queue", d.config.QueueSize)
}

// Stop stops delivery and waits for handlers in progress to return.
// Events still queued are discarded.
func (d *Dispatcher) Stop() {
	if !d.running.Swap(false) {
		return
	}
	d.cancel()
	d.wg.Wait()
	d.debugLog("dispatcher stopped", "delivered", d.delivered.Load())
}

// Post queues an event for delivery without blocking.
func (d *Dispatcher) Post(ev Event) error {
	if !d.running.Load() {
		return ErrDispatcherStopped
	}
	select {
	case d.queue <- ev:
		return nil
	default:
		return fmt.Errorf("%w: handle %d", ErrQueueFull, ev.ConnHandle())
	}
}

// Delivered returns the number of events handed to handlers so far.
func (d *Dispatcher) Delivered() uint64 {
	return d.delivered.Load()
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.queue:
			d.deliver(ev)
		}
	}
}

func (d *Dispatcher) deliver(ev Event) {
	d.mu.RLock()
	onConnect := d.onConnect
	onDisconnect := d.onDisconnect
	d.mu.RUnlock()

	switch e := ev.(type) {
	case ConnectEvent:
		for _, h := range onConnect {
			h(e)
		}
	case DisconnectEvent:
		for _, h := range onDisconnect {
			h(e)
		}
	default:
		d.debugLog("dropping unknown event", "type", fmt.Sprintf("%T", ev))
		return
	}
	d.delivered.Add(1)
}

func (d *Dispatcher) debugLog(msg string, args ...any) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, args...)
	}
}
