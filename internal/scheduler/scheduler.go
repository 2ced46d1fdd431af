package scheduler

import "github.com/PXR05/TongSampahBinLaden/internal/clock"

// TaskFunc is the body of a periodic task.
//
// Bodies run synchronously inside Tick on the control goroutine. They must
// never block; any network I/O inside a body must use a bounded-timeout,
// return-on-timeout call so control returns to the scheduler.
type TaskFunc func(nowMs uint32)

// task is one schedule entry. Entries are created at registration and live
// for the life of the process.
type task struct {
	name       string
	intervalMs uint32
	lastRunMs  uint32
	fired      bool
	fn         TaskFunc
}

// Logger is the logging interface the scheduler needs.
type Logger interface {
	Debug(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}

// Scheduler fires registered periodic tasks cooperatively.
//
// Tick is called once per control-loop iteration, as fast as the host
// permits. A task is due when at least its interval has elapsed since its
// last run; a due task runs exactly once per Tick and its last-run stamp is
// set to the current tick time rather than advanced by the interval, so a
// task delayed by a slow iteration does not fire in a burst to catch up.
//
// Not safe for concurrent use: the scheduler belongs to the single control
// goroutine, like all state it drives.
type Scheduler struct {
	tasks  []*task
	logger Logger
}

// New creates an empty scheduler.
//
// Parameters:
//   - logger: Logger for per-fire debug output (may be nil)
func New(logger Logger) *Scheduler {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Scheduler{logger: logger}
}

// Register adds a periodic task.
//
// An interval of 0 makes the task run on every Tick. Tasks fire in
// registration order within a tick, which is how the control loop
// establishes its sensing-before-policy-before-actuation ordering.
func (s *Scheduler) Register(name string, intervalMs uint32, fn TaskFunc) {
	s.tasks = append(s.tasks, &task{
		name:       name,
		intervalMs: intervalMs,
		fn:         fn,
	})
}

// Tick runs every due task once.
//
// Elapsed time is computed in wrapping unsigned arithmetic, so a 32-bit
// millisecond counter rolling over yields correct intervals. A task that has
// never fired is due immediately.
func (s *Scheduler) Tick(nowMs uint32) {
	for _, t := range s.tasks {
		if t.fired {
			elapsed := clock.Elapsed(nowMs, t.lastRunMs)
			if elapsed < t.intervalMs {
				continue
			}
			if t.intervalMs > 0 && elapsed >= 2*t.intervalMs {
				s.logger.Debug("task overdue", "task", t.name, "elapsed_ms", elapsed, "interval_ms", t.intervalMs)
			}
		}
		t.lastRunMs = nowMs
		t.fired = true
		t.fn(nowMs)
	}
}

// TaskCount returns the number of registered tasks.
func (s *Scheduler) TaskCount() int {
	return len(s.tasks)
}
