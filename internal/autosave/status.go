// Package autosave keeps a remote board in sync with local edits.
//
// Edits are debounced, and each save runs a pipeline: serialize the
// document, render an image when possible, upload it, then write the board.
// The visible save status is a four state machine driven only by the events
// declared here.
package autosave

// Status is the save state shown to the user
type Status int

const (
	StatusSaved Status = iota
	StatusUnsaved
	StatusSaving
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusUnsaved:
		return "unsaved"
	case StatusSaving:
		return "saving"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

type Event int

const (
	EventEdit Event = iota
	EventTimerFired
	EventManualSave
	EventSaveSucceeded
	EventSaveFailed
)

func (e Event) String() string {
	switch e {
	case EventEdit:
		return "edit"
	case EventTimerFired:
		return "timer_fired"
	case EventManualSave:
		return "manual_save"
	case EventSaveSucceeded:
		return "save_succeeded"
	case EventSaveFailed:
		return "save_failed"
	default:
		return "unknown"
	}
}

// Transition returns the status after e.
//
// A save result only moves the status out of Saving. If an edit arrived while
// the pipeline ran, the status is already Unsaved and stays there, since that
// edit is not part of the write that just finished.
func Transition(s Status, e Event) Status {
	switch e {
	case EventEdit:
		return StatusUnsaved
	case EventTimerFired:
		if s == StatusUnsaved {
			return StatusSaving
		}
	case EventManualSave:
		return StatusSaving
	case EventSaveSucceeded:
		if s == StatusSaving {
			return StatusSaved
		}
	case EventSaveFailed:
		if s == StatusSaving {
			return StatusError
		}
	}
	return s
}
