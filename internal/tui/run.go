package tui

import (
	"context"

	"aoctui/internal/errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run drives m on the alternate screen until the user quits or ctx ends.
// bubbletea restores the terminal before Run returns.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return errors.WrapKind(err, errors.TerminalFailed, "error running TUI")
	}
	return nil
}
