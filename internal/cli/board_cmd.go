package cli

import (
	"fmt"

	"github.com/brunocamargo/trafficboard/internal/board"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive demand board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := board.NewController(app.Demands, accountID)
			model := newBoardModel(app, ctrl)
			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("running board: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Only demands of this ad account")
	return cmd
}
