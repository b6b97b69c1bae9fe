package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminacoach/lumina/internal/db"
	"github.com/luminacoach/lumina/internal/models"
)

func TestSyncDispatchWritesEntry(t *testing.T) {
	gdb := db.NewTestDB(t)
	d := NewDispatcher(New(gdb), 0)

	id := "note-1"
	d.Dispatch(Event{
		ProviderID: "p1",
		Action:     "note_created",
		Entity:     "session_note",
		EntityID:   &id,
		Metadata:   map[string]any{"isTemplate": true},
	})

	var logs []models.AuditLog
	require.NoError(t, gdb.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "note_created", logs[0].Action)
	assert.Equal(t, "note-1", *logs[0].EntityID)
	assert.JSONEq(t, `{"isTemplate":true}`, logs[0].Metadata)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "x"}) })
}
