package autosave

import (
	"context"
	"freeform-backend/internal/errs"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period after the last edit before saving
const DefaultDebounce = 3000 * time.Millisecond

type Options struct {
	Debounce time.Duration
	Render   RenderOptions
	// OnStatusChange is called on every status change, in order, while the
	// controller lock is held. It must not call back into the controller.
	OnStatusChange func(Status)
	// OnSaved receives the outcome of every pipeline run, under the same lock.
	OnSaved func(Outcome)
}

// Controller debounces edits and runs at most one save pipeline at a time
type Controller struct {
	doc      Document
	uploader ImageUploader
	writer   BoardWriter
	opts     Options
	ctx      context.Context

	mu       sync.Mutex
	status   Status
	timer    *time.Timer
	timerGen uint64
	inFlight bool
	rerun    bool
	closed   bool
	last     Outcome
	wg       sync.WaitGroup
}

// NewController starts in StatusSaved, assuming the loaded document matches
// the server. uploader may be nil to save without images.
func NewController(ctx context.Context, doc Document, uploader ImageUploader, writer BoardWriter, opts Options) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Render == (RenderOptions{}) {
		opts.Render = DefaultRenderOptions
	}
	return &Controller{
		doc:      doc,
		uploader: uploader,
		writer:   writer,
		opts:     opts,
		ctx:      ctx,
		status:   StatusSaved,
	}
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// LastOutcome returns the result of the most recent finished pipeline run
func (c *Controller) LastOutcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// NotifyEdit marks the board unsaved and restarts the debounce window
func (c *Controller) NotifyEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.setStatus(Transition(c.status, EventEdit))
	c.scheduleLocked()
}

// SaveNow cancels the pending debounce and saves immediately.
// It returns errs.ErrSaveInProgress without doing anything while a save runs.
func (c *Controller) SaveNow() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errs.ErrControllerClosed
	}
	if c.inFlight {
		return errs.ErrSaveInProgress
	}
	c.cancelTimerLocked()
	c.startLocked(EventManualSave)
	return nil
}

// Close drops the pending debounce and waits for a running save to finish.
// Running saves are never cancelled.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.rerun = false
	c.cancelTimerLocked()
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Controller) setStatus(s Status) {
	if s == c.status {
		return
	}
	c.status = s
	if c.opts.OnStatusChange != nil {
		c.opts.OnStatusChange(s)
	}
}

// scheduleLocked restarts the debounce window. A rerun deferred by an earlier
// timer is dropped, the new timer sets it again if it fires mid save.
func (c *Controller) scheduleLocked() {
	c.cancelTimerLocked()
	c.rerun = false
	gen := c.timerGen
	c.timer = time.AfterFunc(c.opts.Debounce, func() {
		c.onTimer(gen)
	})
}

// cancelTimerLocked also invalidates a callback that already fired but has
// not taken the lock yet
func (c *Controller) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
}

func (c *Controller) onTimer(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.timerGen {
		return
	}
	c.timer = nil
	if c.inFlight {
		c.rerun = true
		return
	}
	if c.status != StatusUnsaved {
		return
	}
	c.startLocked(EventTimerFired)
}

func (c *Controller) startLocked(e Event) {
	c.setStatus(Transition(c.status, e))
	c.inFlight = true
	c.wg.Add(1)
	go c.run()
}

func (c *Controller) run() {
	defer c.wg.Done()

	outcome := Save(c.ctx, c.doc, c.uploader, c.writer, c.opts.Render)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	c.last = outcome

	event := EventSaveSucceeded
	if outcome.Kind == SaveFailed {
		event = EventSaveFailed
	}
	c.setStatus(Transition(c.status, event))
	if c.opts.OnSaved != nil {
		c.opts.OnSaved(outcome)
	}

	if c.rerun && !c.closed {
		c.rerun = false
		if c.status == StatusUnsaved {
			c.startLocked(EventTimerFired)
		}
	}
}
