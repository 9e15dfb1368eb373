// Package tui is the interactive front end: a search box, a sort selector,
// the note list with edit and delete, an add form and a modal edit dialog.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/scrawl/pkg/core"
	"github.com/aretw0/scrawl/pkg/session"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeAdd
	modeEdit
)

// storeEventMsg carries a store change into the update loop.
type storeEventMsg core.Event

// watchClosedMsg reports that the store subscription ended.
type watchClosedMsg struct{}

// Model is the bubbletea model of the note list.
type Model struct {
	ctx    context.Context
	sess   *session.Session
	events <-chan core.Event

	keys   keyMap
	help   help.Model
	search textinput.Model
	title  textinput.Model
	body   textarea.Model

	mode        mode
	bodyFocused bool
	notes       []core.Note
	cursor      int
	status      string
	err         error
	width       int
	height      int
}

// New creates the model. events may be nil, in which case the list only
// refreshes after changes made through this model.
func New(ctx context.Context, sess *session.Session, events <-chan core.Event) Model {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "title or body"

	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Title"
	title.CharLimit = 200

	body := textarea.New()
	body.Placeholder = "Body"
	body.ShowLineNumbers = false
	body.SetHeight(5)

	m := Model{
		ctx:    ctx,
		sess:   sess,
		events: events,
		keys:   newKeyMap(),
		help:   help.New(),
		search: search,
		title:  title,
		body:   body,
	}
	m.search.SetValue(sess.Query())
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.events))
}

// waitForEvent blocks on the next store event. It is re-issued after every
// event, so exactly one read is pending at a time.
func waitForEvent(events <-chan core.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		return storeEventMsg(e)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, _ := appStyle.GetFrameSize()
		m.help.Width = msg.Width - h
		m.search.Width = max(msg.Width-h-len(m.search.Prompt), 10)
		m.title.Width = max(msg.Width-h-8, 10)
		m.body.SetWidth(max(msg.Width-h-8, 10))
		return m, nil

	case storeEventMsg:
		m.onStoreEvent(core.Event(msg))
		return m, waitForEvent(m.events)

	case watchClosedMsg:
		m.events = nil
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeAdd, modeEdit:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m.updateInputs(msg)
}

func (m *Model) onStoreEvent(e core.Event) {
	if e.Type == core.EventDelete && m.mode == modeEdit {
		if n, ok := m.sess.Editing(); ok && n.ID == e.ID {
			m.sess.CancelEdit()
			m.closeForm()
			m.status = "The note being edited was deleted."
		}
	}
	if e.Type == core.EventReload {
		m.status = "Notes changed on disk, list reloaded."
	}
	m.refresh()
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.notes)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Sort):
		m.sess.SetSort(m.sess.Sort().Next())
		m.status = "Sorted by " + m.sess.Sort().Label()
		m.refresh()

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.title.Reset()
		m.body.Reset()
		return m, m.focusTitle()

	case key.Matches(msg, m.keys.Edit):
		sel, ok := m.selected()
		if !ok {
			return m, nil
		}
		n, ok := m.sess.BeginEdit(sel.ID)
		if !ok {
			m.refresh()
			return m, nil
		}
		m.mode = modeEdit
		m.title.SetValue(n.Title)
		m.body.SetValue(n.Body)
		return m, m.focusTitle()

	case key.Matches(msg, m.keys.Delete):
		sel, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.sess.Delete(m.ctx, sel.ID); err != nil {
			m.err = err
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted %q", sel.Title)
		m.refresh()
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Done) {
		m.search.Blur()
		m.mode = modeList
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.sess.Query() {
		m.sess.SetQuery(q)
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.mode == modeEdit {
			m.sess.CancelEdit()
		}
		m.closeForm()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		if m.bodyFocused {
			return m, m.focusTitle()
		}
		m.bodyFocused = true
		m.title.Blur()
		return m, m.body.Focus()

	case key.Matches(msg, m.keys.Save):
		return m.save()
	}

	return m.updateInputs(msg)
}

func (m Model) save() (tea.Model, tea.Cmd) {
	m.err = nil
	title, body := m.title.Value(), m.body.Value()

	if m.mode == modeAdd {
		n, err := m.sess.Add(m.ctx, title, body)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.status = fmt.Sprintf("Added %q", n.Title)
	} else {
		n, ok, err := m.sess.CommitEdit(m.ctx, core.EditAll(title, body))
		if err != nil {
			m.err = err
			return m, nil
		}
		if ok {
			m.status = fmt.Sprintf("Saved %q", n.Title)
		} else {
			m.status = "The note no longer exists."
		}
	}

	m.closeForm()
	m.refresh()
	return m, nil
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
	case modeAdd, modeEdit:
		if m.bodyFocused {
			m.body, cmd = m.body.Update(msg)
		} else {
			m.title, cmd = m.title.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) focusTitle() tea.Cmd {
	m.bodyFocused = false
	m.body.Blur()
	return m.title.Focus()
}

func (m *Model) closeForm() {
	m.title.Blur()
	m.body.Blur()
	m.bodyFocused = false
	m.mode = modeList
}

func (m *Model) refresh() {
	m.notes = m.sess.View()
	if m.cursor >= len(m.notes) {
		m.cursor = len(m.notes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (core.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.notes) {
		return core.Note{}, false
	}
	return m.notes[m.cursor], true
}

func (m Model) View() string {
	if m.mode == modeEdit {
		dialog := m.formView("Edit note")
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
		}
		return dialog
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("scrawl"))
	b.WriteString("  ")
	b.WriteString(sortStyle.Render(fmt.Sprintf("sort: %s · %d notes", m.sess.Sort().Label(), len(m.notes))))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	if m.mode == modeAdd {
		b.WriteString(m.formView("Add note"))
		b.WriteString("\n\n")
	}

	b.WriteString(m.listView())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(helpKeys{keys: m.keys, mode: m.mode}))

	return appStyle.Render(b.String())
}

func (m Model) listView() string {
	if len(m.notes) == 0 {
		if m.sess.Query() != "" {
			return emptyStyle.Render("No notes match the search.")
		}
		return emptyStyle.Render("No notes yet. Press a to add one.")
	}

	width := m.width - 8
	if width < 20 {
		width = 60
	}

	var b strings.Builder
	for i, n := range m.notes {
		title := n.Title
		if title == "" {
			title = "(untitled)"
		}
		marker, style := "  ", itemTitleStyle
		if i == m.cursor {
			marker, style = "> ", selectedTitleStyle
		}

		b.WriteString(marker)
		b.WriteString(style.Render(truncate(title, width)))
		b.WriteString("\n  ")
		meta := n.UpdatedAt.Local().Format("2006-01-02 15:04")
		if preview := firstLine(n.Body); preview != "" {
			meta += " · " + preview
		}
		b.WriteString(itemMetaStyle.Render(truncate(meta, width)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) formView(heading string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(heading),
		"",
		labelStyle.Render("Title"),
		m.title.View(),
		"",
		labelStyle.Render("Body"),
		m.body.View(),
		"",
		labelStyle.Render("ctrl+s save · esc cancel · tab switch field"),
	)
	if m.mode == modeEdit && m.err != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", errorStyle.Render("Error: "+m.err.Error()))
	}
	return dialogStyle.Render(content)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
