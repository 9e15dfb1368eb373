package view_test

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aretw0/scrawl/pkg/core"
	"github.com/aretw0/scrawl/pkg/view"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func titles(notes []core.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func randomNotes(seed uint64, count int) []core.Note {
	r := rand.New(rand.NewPCG(seed, seed))
	words := []string{"alpha", "Beta", "gamma", "Delta", "épée", "zulu", "Milk", "shop", ""}
	notes := make([]core.Note, count)
	for i := range notes {
		created := t0.Add(time.Duration(r.IntN(1000)) * time.Minute)
		notes[i] = core.Note{
			ID:        fmt.Sprintf("id-%03d", i),
			Title:     words[r.IntN(len(words))],
			Body:      words[r.IntN(len(words))] + " " + words[r.IntN(len(words))],
			CreatedAt: created,
			UpdatedAt: created.Add(time.Duration(r.IntN(1000)) * time.Minute),
		}
	}
	return notes
}

func TestProject_Scenario(t *testing.T) {
	store := []core.Note{
		{ID: "1", Title: "A", Body: "x", UpdatedAt: t0},
		{ID: "2", Title: "B", Body: "y", UpdatedAt: t0.Add(time.Hour)},
	}

	assert.Equal(t, []string{"B", "A"}, titles(view.Project(store, "", view.SortDateUpdated)))
	assert.Equal(t, []string{"A"}, titles(view.Project(store, "a", view.SortTitle)))
}

func TestProject_FilterIsCaseInsensitive(t *testing.T) {
	notes := []core.Note{
		{ID: "1", Title: "Hello", Body: ""},
		{ID: "2", Title: "Other", Body: "say HELLO loudly"},
		{ID: "3", Title: "École", Body: ""},
		{ID: "4", Title: "Nothing", Body: "here"},
	}

	assert.ElementsMatch(t, []string{"Hello", "Other"}, titles(view.Project(notes, "hello", view.SortTitle)))
	assert.Equal(t, []string{"École"}, titles(view.Project(notes, "éCOLE", view.SortTitle)))
	assert.Empty(t, view.Project(notes, "absent", view.SortTitle))
}

func TestProject_EmptyQueryKeepsEveryNote(t *testing.T) {
	notes := randomNotes(1, 40)
	for _, opt := range append(view.SortOptions, "bogus") {
		got := view.Project(notes, "", opt)
		assert.ElementsMatch(t, notes, got, "sort %s", opt)
	}
}

func TestProject_TitleOrderIsCollated(t *testing.T) {
	notes := []core.Note{
		{ID: "1", Title: "banana"},
		{ID: "2", Title: "Apple"},
		{ID: "3", Title: "éclair"},
		{ID: "4", Title: "apple pie"},
		{ID: "5", Title: "Fig"},
	}

	got := titles(view.Project(notes, "", view.SortTitle))
	// Byte order would put "Apple" and "Fig" before every lower-case title
	// and "éclair" last.
	assert.Equal(t, []string{"Apple", "apple pie", "banana", "éclair", "Fig"}, got)
}

func TestProject_TitleOrderIsNonDecreasing(t *testing.T) {
	col := collate.New(language.English)
	got := view.Project(randomNotes(2, 60), "", view.SortTitle)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, col.CompareString(got[i-1].Title, got[i].Title), 0, "at %d", i)
	}
}

func TestProject_DateUpdatedIsNonIncreasing(t *testing.T) {
	for _, opt := range []view.SortOption{view.SortDateUpdated, "anything-else"} {
		got := view.Project(randomNotes(3, 60), "", opt)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].UpdatedAt.After(got[i-1].UpdatedAt), "%s at %d", opt, i)
		}
	}
}

func TestProject_DateCreated(t *testing.T) {
	t.Run("uses creation time", func(t *testing.T) {
		notes := []core.Note{
			{ID: "z-oldest", Title: "old", CreatedAt: t0},
			{ID: "a-newest", Title: "new", CreatedAt: t0.Add(2 * time.Hour)},
			{ID: "m-middle", Title: "mid", CreatedAt: t0.Add(time.Hour)},
		}
		assert.Equal(t, []string{"new", "mid", "old"}, titles(view.Project(notes, "", view.SortDateCreated)))
	})

	// Notes saved before creation times were recorded only carry an id; the
	// order then falls back to descending id, which is only a creation order
	// when ids are time ordered (as UUIDv7 ids are).
	t.Run("falls back to id order", func(t *testing.T) {
		notes := []core.Note{
			{ID: "018f0000-0000-7000-8000-000000000001", Title: "first"},
			{ID: "018f0000-0000-7000-8000-000000000003", Title: "third"},
			{ID: "018f0000-0000-7000-8000-000000000002", Title: "second"},
		}
		assert.Equal(t, []string{"third", "second", "first"}, titles(view.Project(notes, "", view.SortDateCreated)))
	})

	t.Run("agrees with id order for generated ids", func(t *testing.T) {
		var notes []core.Note
		for i := range 20 {
			id, err := core.NewID()
			require.NoError(t, err)
			notes = append(notes, core.Note{ID: id, CreatedAt: t0.Add(time.Duration(i) * time.Second)})
		}
		byCreated := view.Project(notes, "", view.SortDateCreated)

		legacy := make([]core.Note, len(notes))
		for i, n := range notes {
			legacy[i] = core.Note{ID: n.ID}
		}
		byID := view.Project(legacy, "", view.SortDateCreated)

		for i := range byCreated {
			assert.Equal(t, byCreated[i].ID, byID[i].ID)
		}
	})
}

func TestProject_IsPureAndIdempotent(t *testing.T) {
	notes := randomNotes(4, 50)
	snapshot := append([]core.Note(nil), notes...)

	for _, opt := range view.SortOptions {
		first := view.Project(notes, "a", opt)
		second := view.Project(notes, "a", opt)
		assert.Equal(t, first, second)
	}
	assert.Equal(t, snapshot, notes, "input was modified")
}

func TestProjection_Locale(t *testing.T) {
	notes := []core.Note{{ID: "1", Title: "ö"}, {ID: "2", Title: "z"}}

	// Swedish sorts ö after z, English sorts it with o.
	assert.Equal(t, []string{"ö", "z"}, titles(view.Projection{Locale: language.English}.Apply(notes, "", view.SortTitle)))
	assert.Equal(t, []string{"z", "ö"}, titles(view.Projection{Locale: language.Swedish}.Apply(notes, "", view.SortTitle)))
}
