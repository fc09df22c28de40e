package cli

import (
	"github.com/brunocamargo/trafficboard/internal/intake"
	"github.com/brunocamargo/trafficboard/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services and intake adapter used by CLI commands.
type App struct {
	Demands  service.DemandService
	Accounts service.AccountService
	Intake   *intake.Adapter
}

// NewRootCmd creates the top-level "trafficboard" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "trafficboard",
		Short: "Demand board for agency ad accounts",
	}

	root.AddCommand(
		newAccountCmd(app),
		newDemandCmd(app),
		newBoardCmd(app),
	)

	return root
}
