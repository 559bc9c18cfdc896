package main

import (
	"fmt"

	"aoctui/internal/client"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// newEventsCmd fetches the listing once and prints it.
func newEventsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print the events listing and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.NewFromConfig(a.cfg)
			if err != nil {
				return err
			}

			events, err := c.FetchEvents(cmd.Context(), a.cfg.Session.Token)
			if err != nil {
				return fmt.Errorf("error fetching events: %w", err)
			}

			border := lipgloss.NewStyle().Foreground(lipgloss.Color(a.cfg.Theme.Border))
			header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(a.cfg.Theme.Primary))

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(border).
				Headers("Event", "Stars", "Of").
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return header.Padding(0, 1)
					}
					return lipgloss.NewStyle().Padding(0, 1)
				})
			for _, ev := range events {
				t.Row(ev.Row()...)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
