package reminder

import (
	"fmt"
	"sync"
	"time"

	"github.com/souravdey/hospiagent-notify/pkg/logging"
)

// TimerRegistry is the in-process JobRegistry implementation. Jobs are held
// as time.AfterFunc timers: they fire at most once, vanish on restart, and
// expose no cancellation.
type TimerRegistry struct {
	logger *logging.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewTimerRegistry creates an empty registry.
func NewTimerRegistry(logger *logging.Logger) *TimerRegistry {
	if logger == nil {
		logger = logging.Default()
	}
	return &TimerRegistry{
		logger:  logger,
		pending: make(map[string]*time.Timer),
	}
}

var _ JobRegistry = (*TimerRegistry)(nil)

// ScheduleOnce registers fn to run at the given instant. Instants in the
// past fire immediately on the timer goroutine. Duplicate keys are rejected;
// callers avoid them by embedding a fresh timestamp per key.
func (r *TimerRegistry) ScheduleOnce(key string, at time.Time, fn func()) error {
	if fn == nil {
		return fmt.Errorf("reminder: job %q has no callback", key)
	}

	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pending[key]; exists {
		return fmt.Errorf("reminder: job %q already scheduled", key)
	}

	r.pending[key] = time.AfterFunc(delay, func() {
		r.mu.Lock()
		delete(r.pending, key)
		r.mu.Unlock()
		fn()
	})
	r.logger.Debug("job registered", "key", key, "delay", delay.String())
	return nil
}

// PendingCount reports how many jobs have been registered but not yet fired.
func (r *TimerRegistry) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
