package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Watchdog folds players who sit on their betting turn too long. The service
// reports the acting player after every intent; when the same player is still
// on the clock once the timeout elapses, they are folded out and play moves
// on. Both betting turns and combo submission turns are timed; in either case
// the stale player is folded out of the hand. A zero timeout disables the
// watchdog.
type Watchdog struct {
	svc     *GameService
	clock   quartz.Clock
	timeout time.Duration
	logger  *log.Logger

	mu    sync.Mutex
	actor string
	timer *quartz.Timer
}

// NewWatchdog creates a turn watchdog. The clock is injected so tests can
// drive timeouts with a mock.
func NewWatchdog(svc *GameService, clock quartz.Clock, timeout time.Duration, logger *log.Logger) *Watchdog {
	return &Watchdog{
		svc:     svc,
		clock:   clock,
		timeout: timeout,
		logger:  logger.WithPrefix("watchdog"),
	}
}

// Observe records who is currently due to act. When the actor changes the
// previous timer is cancelled and a fresh one armed.
func (w *Watchdog) Observe(actor string) {
	if w.timeout <= 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if actor == w.actor {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.actor = actor
	if actor == "" {
		return
	}

	target := actor
	w.timer = w.clock.AfterFunc(w.timeout, func() {
		w.expire(target)
	})
}

// Stop cancels any pending timer.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.actor = ""
}

func (w *Watchdog) expire(actor string) {
	w.mu.Lock()
	if w.actor != actor {
		w.mu.Unlock()
		return
	}
	w.actor = ""
	w.timer = nil
	w.mu.Unlock()

	w.logger.Warn("Turn timer expired", "player", actor, "timeout", w.timeout)
	w.svc.ForceFold(actor)
}
