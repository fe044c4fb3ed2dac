package tts

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// gracePeriod is how long after construction the controller refuses to
// evaluate the trigger, so the input surface can establish focus before
// the very first frames can dismiss the window.
const gracePeriod = 500 * time.Millisecond

// Frame is one per-refresh snapshot of the input surface: the current
// text, whether the input holds focus, and whether Enter transitioned to
// pressed during exactly this frame.
type Frame struct {
	Text         string
	Focused      bool
	EnterPressed bool
}

// Directive tells the input surface what to do after a frame was observed.
type Directive struct {
	// RefocusInput asks the surface to put focus back on the input field.
	RefocusInput bool
	// CloseWindow asks the surface to close. Issued exactly once.
	CloseWindow bool
}

// PipelineFunc runs the synthesize-and-play operation for a text snapshot
// and blocks until it finishes.
type PipelineFunc func(text string) Outcome

// Controller is the lifecycle state machine driven by per-frame UI
// signals. It decides when to launch the pipeline, when to request window
// close, and releases the completion signal that gates process exit.
//
// The pipeline runs on a single background goroutine launched at most once
// per process lifetime. Once started it is never cancelled; interrupting
// mid-playback would leave the device stream in an undefined state.
type Controller struct {
	mu      sync.Mutex
	machine *StateMachine

	run        PipelineFunc
	graceUntil time.Time
	launched   bool

	done       chan struct{}
	signalOnce sync.Once

	// now is swappable in tests.
	now func() time.Time
}

// NewController creates a controller in StateAwaitingInput with the grace
// period starting immediately.
func NewController(run PipelineFunc) *Controller {
	c := &Controller{
		machine: NewStateMachine(),
		run:     run,
		done:    make(chan struct{}),
		now:     time.Now,
	}
	c.graceUntil = c.now().Add(gracePeriod)
	return c
}

// Observe evaluates one frame. While the input holds focus or the grace
// period has not elapsed, it only asks for focus to be (re)established.
// Otherwise it makes the one-shot trigger decision: Enter launches the
// pipeline with a snapshot of the frame's text, anything else abandons;
// both branches request window close in the same step.
func (c *Controller) Observe(f Frame) Directive {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.machine.Current() != StateAwaitingInput {
		// Decision already made; the close request was already issued.
		return Directive{}
	}

	if f.Focused || c.now().Before(c.graceUntil) {
		return Directive{RefocusInput: true}
	}

	if f.EnterPressed && !c.launched {
		c.launched = true
		c.machine.Transition(StateTriggered)
		text := f.Text
		go func() {
			// The completion signal must be released on every exit path,
			// panics included, or the final wait would block forever.
			defer c.release()
			outcome := c.run(text)
			if outcome.Played() {
				log.Info("playback complete", "duration", outcome.Duration)
			} else {
				log.Error("pipeline failed", "err", outcome.Err)
			}
		}()
	} else {
		c.machine.Transition(StateAbandoned)
		c.release()
	}

	c.machine.Transition(StateClosing)
	return Directive{CloseWindow: true}
}

// release writes the completion signal. Safe to call from any path; the
// signal fires exactly once per process lifetime.
func (c *Controller) release() {
	c.signalOnce.Do(func() { close(c.done) })
}

// Done exposes the completion signal for select-based waiting.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// AwaitCompletion blocks until the background work (or its skip) has
// released the completion signal, then marks the controller terminated.
// The window may already be gone; process exit is gated here regardless.
func (c *Controller) AwaitCompletion() {
	<-c.done
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.Transition(StateTerminated)
}

// State returns the current lifecycle state.
func (c *Controller) State() StateType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Current()
}
