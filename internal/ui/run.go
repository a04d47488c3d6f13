package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phildougherty/watsonassist/internal/assistant"
)

// Run shows the screen until the user quits or ctx is cancelled
func Run(ctx context.Context, controller *assistant.Controller, opts Options) error {
	model := New(ctx, controller, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
