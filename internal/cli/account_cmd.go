package cli

import (
	"context"
	"fmt"

	"github.com/brunocamargo/trafficboard/internal/domain"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage ad accounts",
	}

	cmd.AddCommand(
		newAccountAddCmd(app),
		newAccountListCmd(app),
	)

	return cmd
}

func newAccountAddCmd(app *App) *cobra.Command {
	var name, managerID string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an ad account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			a := &domain.Account{Name: name, ManagerID: managerID}
			if err := app.Accounts.Create(context.Background(), a); err != nil {
				return err
			}
			fmt.Printf("Account %q created (%s)\n", a.Name, a.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Account display name")
	cmd.Flags().StringVar(&managerID, "manager", "", "Default manager for new demands")
	return cmd
}

func newAccountListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ad accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := app.Accounts.List(context.Background())
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Println("No accounts registered.")
				return nil
			}
			for _, a := range accounts {
				line := fmt.Sprintf("%-36s  %s", a.ID, a.Name)
				if a.ManagerID != "" {
					line += styleDim.Render("  gestor:" + a.ManagerID)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
