package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/scrawl/pkg/core"
	"github.com/aretw0/scrawl/pkg/session"
)

// Run opens the interactive UI on store until the user quits or ctx is done.
func Run(ctx context.Context, store *core.Store, opts ...session.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := store.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch notes: %w", err)
	}

	m := New(ctx, session.New(store, opts...), events)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
