package core

import "time"

// Note is the central entity of the domain.
// It is a user-authored title/body pair identified by an ID.
// It is agnostic to storage format (JSON, YAML, SQL).
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Body      string    `json:"body" yaml:"body"`
	CreatedAt time.Time `json:"createdAt,omitzero" yaml:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Edit carries the fields replaced by a commit.
// A nil field keeps the value already stored.
type Edit struct {
	Title *string
	Body  *string
}

// EditTitle returns an Edit that only replaces the title.
func EditTitle(title string) Edit {
	return Edit{Title: &title}
}

// EditBody returns an Edit that only replaces the body.
func EditBody(body string) Edit {
	return Edit{Body: &body}
}

// EditAll returns an Edit that replaces both title and body,
// which is what a dialog with both fields submits.
func EditAll(title, body string) Edit {
	return Edit{Title: &title, Body: &body}
}

// IsZero reports whether the edit changes no field.
func (e Edit) IsZero() bool {
	return e.Title == nil && e.Body == nil
}

// apply returns a copy of n with the edit applied and UpdatedAt set to now.
func (e Edit) apply(n Note, now time.Time) Note {
	if e.Title != nil {
		n.Title = *e.Title
	}
	if e.Body != nil {
		n.Body = *e.Body
	}
	n.UpdatedAt = now
	return n
}
