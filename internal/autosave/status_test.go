package autosave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	all := []Status{StatusSaved, StatusUnsaved, StatusSaving, StatusError}

	for _, s := range all {
		assert.Equal(t, StatusUnsaved, Transition(s, EventEdit), "edit from %s", s)
		assert.Equal(t, StatusSaving, Transition(s, EventManualSave), "manual save from %s", s)
	}

	tests := []struct {
		from  Status
		event Event
		want  Status
	}{
		{StatusUnsaved, EventTimerFired, StatusSaving},
		{StatusSaved, EventTimerFired, StatusSaved},
		{StatusSaving, EventTimerFired, StatusSaving},
		{StatusError, EventTimerFired, StatusError},
		{StatusSaving, EventSaveSucceeded, StatusSaved},
		{StatusSaving, EventSaveFailed, StatusError},
		// an edit landed while the pipeline ran
		{StatusUnsaved, EventSaveSucceeded, StatusUnsaved},
		{StatusUnsaved, EventSaveFailed, StatusUnsaved},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Transition(tc.from, tc.event), "%s on %s", tc.from, tc.event)
	}
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "saved", StatusSaved.String())
	assert.Equal(t, "unsaved", StatusUnsaved.String())
	assert.Equal(t, "saving", StatusSaving.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "unknown", Status(42).String())
}
