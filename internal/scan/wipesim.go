package scan

import (
	"context"
	"time"

	"residue/internal/model"
)

// defaultWipeSteps are the steps the simulation walks through. No
// deletion ever happens; only the progress contract matters.
var defaultWipeSteps = []string{
	"Enumerating free space regions",
	"Pass 1/3: overwriting with zeros",
	"Pass 2/3: overwriting with random data",
	"Pass 3/3: overwriting with ones",
	"Verifying overwrite coverage",
	"Flushing filesystem caches",
}

// WipeSimulation produces the ordered progress events of the secure
// wipe simulation. Consumers receive events on the returned channel
// and unsubscribe by cancelling the context; the channel is closed
// when the simulation ends either way.
type WipeSimulation struct {
	steps    []string
	interval time.Duration
	sleep    func(time.Duration)
}

// WipeOption adjusts a WipeSimulation, primarily for tests.
type WipeOption func(*WipeSimulation)

// WithWipeInterval overrides the per-step delay.
func WithWipeInterval(d time.Duration) WipeOption {
	return func(w *WipeSimulation) { w.interval = d }
}

// WithWipeSleep overrides the sleep function.
func WithWipeSleep(fn func(time.Duration)) WipeOption {
	return func(w *WipeSimulation) { w.sleep = fn }
}

// NewWipeSimulation creates a simulation with the default step list.
func NewWipeSimulation(opts ...WipeOption) *WipeSimulation {
	w := &WipeSimulation{
		steps:    defaultWipeSteps,
		interval: 500 * time.Millisecond,
		sleep:    time.Sleep,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Run starts the simulation and returns its event stream. Events are
// emitted in step order; the final event carries Completed=true and
// ProgressPercent=100. Cancelling ctx stops the stream early.
func (w *WipeSimulation) Run(ctx context.Context) <-chan model.WipeProgress {
	ch := make(chan model.WipeProgress)

	go func() {
		defer close(ch)
		total := len(w.steps)
		for i, msg := range w.steps {
			if ctx.Err() != nil {
				return
			}
			w.sleep(w.interval)

			event := model.WipeProgress{
				Step:            i + 1,
				TotalSteps:      total,
				ProgressPercent: (i + 1) * 100 / total,
				Message:         msg,
				Completed:       i+1 == total,
			}
			select {
			case ch <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}
