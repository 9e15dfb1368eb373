// Package session holds the transient state of one front end: the search
// query, the selected sort option and the note being edited.
//
// Nothing here is persisted. A Session is meant to be driven by a single
// goroutine (a bubbletea model or a CLI command) and is not safe for
// concurrent use.
package session

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/aretw0/scrawl/pkg/core"
	"github.com/aretw0/scrawl/pkg/view"
)

// Notebook is the part of *core.Store a session drives.
type Notebook interface {
	Notes() []core.Note
	Get(id string) (core.Note, bool)
	Add(ctx context.Context, title, body string) (core.Note, error)
	Delete(ctx context.Context, id string) error
	CommitEdit(ctx context.Context, id string, e core.Edit) (core.Note, error)
}

var _ Notebook = (*core.Store)(nil)

// Session couples a Notebook with query, sort and edit state.
type Session struct {
	notes      Notebook
	logger     *slog.Logger
	projection view.Projection

	query   string
	sort    view.SortOption
	editing *core.Note
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSort sets the initial sort option.
func WithSort(opt view.SortOption) Option {
	return func(s *Session) {
		s.sort = opt
	}
}

// WithLocale selects the collation used for title sorting.
func WithLocale(tag language.Tag) Option {
	return func(s *Session) {
		s.projection.Locale = tag
	}
}

// New creates a session over notes, sorted by creation date until told otherwise.
func New(notes Notebook, opts ...Option) *Session {
	s := &Session{
		notes:      notes,
		logger:     slog.New(slog.DiscardHandler),
		projection: view.Projection{Locale: language.English},
		sort:       view.SortDateCreated,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) SetQuery(q string) { s.query = q }

func (s *Session) Query() string { return s.query }

func (s *Session) SetSort(opt view.SortOption) { s.sort = opt }

func (s *Session) Sort() view.SortOption { return s.sort }

// View projects the current store content through the query and sort option.
func (s *Session) View() []core.Note {
	return s.projection.Apply(s.notes.Notes(), s.query, s.sort)
}

// Add creates a note.
func (s *Session) Add(ctx context.Context, title, body string) (core.Note, error) {
	return s.notes.Add(ctx, title, body)
}

// Delete removes a note. An open edit of the same note is discarded.
func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.notes.Delete(ctx, id); err != nil {
		return err
	}
	if s.editing != nil && s.editing.ID == id {
		s.logger.Debug("edit discarded, note deleted", "id", id)
		s.editing = nil
	}
	return nil
}

// BeginEdit opens the edit dialog on the note with the given id.
// An unknown id leaves the session unchanged and reports false.
func (s *Session) BeginEdit(id string) (core.Note, bool) {
	n, ok := s.notes.Get(id)
	if !ok {
		s.logger.Debug("edit of unknown note ignored", "id", id)
		return core.Note{}, false
	}
	s.editing = &n
	return n, true
}

// Editing returns the note captured by BeginEdit, if a dialog is open.
func (s *Session) Editing() (core.Note, bool) {
	if s.editing == nil {
		return core.Note{}, false
	}
	return *s.editing, true
}

// DialogVisible reports whether an edit is in progress.
func (s *Session) DialogVisible() bool {
	return s.editing != nil
}

// CommitEdit saves e against the note under edit and closes the dialog.
// Without an open edit, or when the note vanished meanwhile, nothing is
// saved and the result is false with a nil error. Other store failures are
// returned and the dialog stays open so the user can retry.
func (s *Session) CommitEdit(ctx context.Context, e core.Edit) (core.Note, bool, error) {
	if s.editing == nil {
		s.logger.Debug("commit without an open edit ignored")
		return core.Note{}, false, nil
	}
	id := s.editing.ID

	n, err := s.notes.CommitEdit(ctx, id, e)
	if errors.Is(err, core.ErrNotFound) {
		s.logger.Debug("commit of vanished note ignored", "id", id)
		s.editing = nil
		return core.Note{}, false, nil
	}
	if err != nil {
		return core.Note{}, false, err
	}
	s.editing = nil
	return n, true, nil
}

// CancelEdit closes the dialog without touching the store.
func (s *Session) CancelEdit() {
	s.editing = nil
}
