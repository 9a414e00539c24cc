package transport

import (
	"context"
	"sync"
	"time"
)

// Supervision defaults.
const (
	// DefaultPingInterval is the interval between supervision pings.
	DefaultPingInterval = 5 * time.Second

	// DefaultPongTimeout is how long a ping may stay unanswered.
	DefaultPongTimeout = 2 * time.Second

	// DefaultMaxMissed is the number of unanswered pings that drops the link.
	DefaultMaxMissed = 3
)

// SupervisionConfig configures link supervision.
// A zero PingInterval disables supervision.
type SupervisionConfig struct {
	PingInterval time.Duration `yaml:"ping_interval"`
	PongTimeout  time.Duration `yaml:"pong_timeout"`
	MaxMissed    int           `yaml:"max_missed"`
}

// DefaultSupervisionConfig returns the default supervision settings.
func DefaultSupervisionConfig() SupervisionConfig {
	return SupervisionConfig{
		PingInterval: DefaultPingInterval,
		PongTimeout:  DefaultPongTimeout,
		MaxMissed:    DefaultMaxMissed,
	}
}

// Enabled reports whether supervision is switched on.
func (c SupervisionConfig) Enabled() bool {
	return c.PingInterval > 0
}

// DetectionDelay is the longest time a dead link can go unnoticed.
func (c SupervisionConfig) DetectionDelay() time.Duration {
	return c.PingInterval*time.Duration(c.MaxMissed) + c.PongTimeout
}

// supervisor pings one link and reports when it went silent.
type supervisor struct {
	config    SupervisionConfig
	sendPing  func(seq uint32) error
	onTimeout func()

	mu      sync.Mutex
	seq     uint32
	pending bool
	missed  int

	pongCh chan uint32
	stopCh chan struct{}
	once   sync.Once
	done   chan struct{}
}

func newSupervisor(config SupervisionConfig, sendPing func(seq uint32) error, onTimeout func()) *supervisor {
	if config.PongTimeout <= 0 {
		config.PongTimeout = DefaultPongTimeout
	}
	if config.MaxMissed <= 0 {
		config.MaxMissed = DefaultMaxMissed
	}
	return &supervisor{
		config:    config,
		sendPing:  sendPing,
		onTimeout: onTimeout,
		pongCh:    make(chan uint32, 1),
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (s *supervisor) start(ctx context.Context) {
	go s.loop(ctx)
}

// stop ends supervision and waits for the loop to exit.
func (s *supervisor) stop() {
	s.once.Do(func() { close(s.stopCh) })
	<-s.done
}

// pongReceived feeds an incoming pong to the loop.
func (s *supervisor) pongReceived(seq uint32) {
	select {
	case s.pongCh <- seq:
	default:
	}
}

func (s *supervisor) missedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.missed
}

func (s *supervisor) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	s.ping()
	pongTimer := time.NewTimer(s.config.PongTimeout)
	defer pongTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case seq := <-s.pongCh:
			s.pong(seq)
		case <-pongTimer.C:
			if s.miss() {
				s.timeout()
				return
			}
		case <-ticker.C:
			// An earlier ping still unanswered counts before the next one.
			if s.miss() {
				s.timeout()
				return
			}
			s.ping()
			pongTimer.Reset(s.config.PongTimeout)
		}
	}
}

func (s *supervisor) timeout() {
	if s.onTimeout != nil {
		s.onTimeout()
	}
}

func (s *supervisor) ping() {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.pending = true
	s.mu.Unlock()

	// A failed send shows up as a missed pong.
	_ = s.sendPing(seq)
}

func (s *supervisor) pong(seq uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending && seq == s.seq {
		s.pending = false
		s.missed = 0
	}
}

// miss counts an outstanding ping as missed and reports whether the miss
// budget is spent.
func (s *supervisor) miss() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending {
		s.pending = false
		s.missed++
	}
	return s.missed >= s.config.MaxMissed
}
