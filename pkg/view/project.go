// Package view turns the note collection into the list a front end displays.
package view

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aretw0/scrawl/pkg/core"
)

// Projection filters and sorts notes. The zero value collates titles with
// the root (language independent) order.
type Projection struct {
	// Locale drives title collation.
	Locale language.Tag
}

// Project applies the default English projection.
func Project(notes []core.Note, query string, sort SortOption) []core.Note {
	return Projection{Locale: language.English}.Apply(notes, query, sort)
}

// Apply keeps the notes whose title or body contains query (case-insensitive;
// an empty query keeps everything) and returns them in a new slice ordered by sort:
//
//   - SortTitle: ascending, collated for p.Locale.
//   - SortDateCreated: newest first by CreatedAt. Notes without a creation
//     time, and ties, fall back to descending ID order.
//   - anything else: most recently updated first.
//
// The input slice is never modified and equal inputs give equal outputs.
func (p Projection) Apply(notes []core.Note, query string, sort SortOption) []core.Note {
	out := filter(notes, query)

	switch sort {
	case SortTitle:
		col := collate.New(p.Locale)
		slices.SortStableFunc(out, func(a, b core.Note) int {
			return col.CompareString(a.Title, b.Title)
		})
	case SortDateCreated:
		slices.SortStableFunc(out, compareCreatedDesc)
	default:
		slices.SortStableFunc(out, func(a, b core.Note) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	}
	return out
}

func filter(notes []core.Note, query string) []core.Note {
	out := make([]core.Note, 0, len(notes))
	fold := cases.Fold()
	q := fold.String(query)
	if q == "" {
		return append(out, notes...)
	}

	for _, n := range notes {
		if strings.Contains(fold.String(n.Title), q) || strings.Contains(fold.String(n.Body), q) {
			out = append(out, n)
		}
	}
	return out
}

func compareCreatedDesc(a, b core.Note) int {
	if !a.CreatedAt.IsZero() && !b.CreatedAt.IsZero() {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
	}
	return strings.Compare(b.ID, a.ID)
}
