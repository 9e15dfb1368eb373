package session_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scrawl/pkg/adapters/memory"
	"github.com/aretw0/scrawl/pkg/core"
	"github.com/aretw0/scrawl/pkg/session"
	"github.com/aretw0/scrawl/pkg/view"
)

func setup(t *testing.T, opts ...session.Option) (*session.Session, *core.Store, *memory.Slot) {
	t.Helper()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	slot := memory.NewSlot()
	store := core.NewStore(slot, core.WithClock(clock))
	require.NoError(t, store.Load(context.Background()))
	return session.New(store, opts...), store, slot
}

func TestSession_Defaults(t *testing.T) {
	s, _, _ := setup(t)
	assert.Equal(t, view.SortDateCreated, s.Sort())
	assert.Empty(t, s.Query())
	assert.False(t, s.DialogVisible())
	assert.Empty(t, s.View())

	s, _, _ = setup(t, session.WithSort(view.SortTitle))
	assert.Equal(t, view.SortTitle, s.Sort())
}

func TestSession_ViewFollowsQueryAndSort(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "Banana bread", "flour")
	require.NoError(t, err)
	_, err = s.Add(ctx, "apple", "pie crust")
	require.NoError(t, err)
	_, err = s.Add(ctx, "Carrots", "")
	require.NoError(t, err)

	titles := func() []string {
		var out []string
		for _, n := range s.View() {
			out = append(out, n.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Carrots", "apple", "Banana bread"}, titles())

	s.SetSort(view.SortTitle)
	assert.Equal(t, []string{"apple", "Banana bread", "Carrots"}, titles())

	s.SetQuery("PIE")
	assert.Equal(t, "PIE", s.Query())
	assert.Equal(t, []string{"apple"}, titles())
}

func TestSession_EditLifecycle(t *testing.T) {
	s, store, _ := setup(t)
	ctx := context.Background()

	n, err := s.Add(ctx, "Old", "keep me")
	require.NoError(t, err)

	got, ok := s.BeginEdit(n.ID)
	require.True(t, ok)
	assert.Equal(t, n, got)
	assert.True(t, s.DialogVisible())
	editing, ok := s.Editing()
	require.True(t, ok)
	assert.Equal(t, n.ID, editing.ID)

	updated, ok, err := s.CommitEdit(ctx, core.EditTitle("New"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "keep me", updated.Body)
	assert.Equal(t, n.ID, updated.ID)
	assert.True(t, updated.UpdatedAt.After(n.UpdatedAt))
	assert.False(t, s.DialogVisible())

	stored, ok := store.Get(n.ID)
	require.True(t, ok)
	assert.Equal(t, updated, stored)
}

func TestSession_BeginEditUnknownID(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()

	n, err := s.Add(ctx, "A", "")
	require.NoError(t, err)
	_, ok := s.BeginEdit(n.ID)
	require.True(t, ok)

	got, ok := s.BeginEdit("missing")
	assert.False(t, ok)
	assert.Equal(t, core.Note{}, got)

	// The edit already open is untouched.
	editing, ok := s.Editing()
	require.True(t, ok)
	assert.Equal(t, n.ID, editing.ID)
}

func TestSession_CancelEditLeavesStoreAlone(t *testing.T) {
	s, _, slot := setup(t)
	ctx := context.Background()

	n, err := s.Add(ctx, "A", "b")
	require.NoError(t, err)
	before := slot.Bytes()
	saves := slot.Saves()

	_, ok := s.BeginEdit(n.ID)
	require.True(t, ok)
	s.CancelEdit()

	assert.False(t, s.DialogVisible())
	_, ok = s.Editing()
	assert.False(t, ok)
	assert.Equal(t, saves, slot.Saves())
	assert.True(t, bytes.Equal(before, slot.Bytes()))
}

func TestSession_CommitWithoutEditIsNoop(t *testing.T) {
	s, _, slot := setup(t)

	n, ok, err := s.CommitEdit(context.Background(), core.EditAll("x", "y"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, core.Note{}, n)
	assert.Zero(t, slot.Saves())
}

func TestSession_CommitOnVanishedNote(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, store, _ := setup(t, session.WithLogger(logger))
	ctx := context.Background()

	n, err := s.Add(ctx, "A", "")
	require.NoError(t, err)
	_, ok := s.BeginEdit(n.ID)
	require.True(t, ok)

	// Another front end removes the note while the dialog is open.
	require.NoError(t, store.Delete(ctx, n.ID))

	_, ok, err = s.CommitEdit(ctx, core.EditTitle("B"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.DialogVisible())
	assert.Zero(t, store.Len())
	assert.Contains(t, logs.String(), "vanished")
}

func TestSession_CommitFailureKeepsDialogOpen(t *testing.T) {
	s, store, slot := setup(t)
	ctx := context.Background()

	n, err := s.Add(ctx, "A", "")
	require.NoError(t, err)
	_, ok := s.BeginEdit(n.ID)
	require.True(t, ok)

	slot.SetReadOnly(true)
	_, ok, err = s.CommitEdit(ctx, core.EditTitle("B"))
	require.ErrorIs(t, err, core.ErrReadOnly)
	assert.False(t, ok)
	assert.True(t, s.DialogVisible())

	stored, _ := store.Get(n.ID)
	assert.Equal(t, "A", stored.Title)
}

func TestSession_DeleteClosesMatchingEdit(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()

	a, err := s.Add(ctx, "A", "")
	require.NoError(t, err)
	b, err := s.Add(ctx, "B", "")
	require.NoError(t, err)

	_, ok := s.BeginEdit(a.ID)
	require.True(t, ok)

	require.NoError(t, s.Delete(ctx, b.ID))
	assert.True(t, s.DialogVisible(), "deleting another note keeps the dialog")

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.False(t, s.DialogVisible())
	assert.Empty(t, s.View())

	require.NoError(t, s.Delete(ctx, "missing"))
}
