package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brunocamargo/trafficboard/internal/domain"
	"github.com/brunocamargo/trafficboard/internal/intake"
	"github.com/spf13/cobra"
)

func newDemandCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demand",
		Short: "Manage demands",
	}

	cmd.AddCommand(
		newDemandAddCmd(app),
		newDemandListCmd(app),
		newDemandShowCmd(app),
		newDemandMoveCmd(app),
		newDemandEditCmd(app),
	)

	return cmd
}

func newDemandAddCmd(app *App) *cobra.Command {
	var sub intake.Submission
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a demand",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if interactive || sub.Title == "" {
				filled, err := runDemandForm(ctx, app, sub)
				if err != nil {
					return err
				}
				sub = filled
			}

			d, err := app.Intake.ParseCreate(ctx, sub)
			if err != nil {
				return printFieldErrors(err)
			}
			if err := app.Demands.Create(ctx, d); err != nil {
				return err
			}
			fmt.Printf("Demand %q created (%s)\n", d.Title, d.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&sub.Title, "title", "", "Demand title")
	cmd.Flags().StringVar(&sub.AccountID, "account", "", "Ad account ID")
	cmd.Flags().StringVar(&sub.ManagerID, "manager", "", "Assigned manager (defaults from the account)")
	cmd.Flags().StringVar(&sub.Description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&sub.Budget, "budget", "", "Budget, e.g. 150.50")
	cmd.Flags().StringVar(&sub.CreativeLink, "creative", "", "Creative URL")
	cmd.Flags().StringVar(&sub.DueDate, "due-date", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sub.DueTime, "due-time", "", "Due time (HH:MM)")
	cmd.Flags().StringVar(&sub.Priority, "priority", "", "Priority: low, medium, high")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in fields via form")
	return cmd
}

func newDemandListCmd(app *App) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List demands, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			demands, err := app.Demands.List(context.Background(), accountID)
			if err != nil {
				return err
			}
			if len(demands) == 0 {
				fmt.Println("No demands.")
				return nil
			}
			now := time.Now().UTC()
			for _, d := range demands {
				line := fmt.Sprintf("%s %s %-30s %s",
					priorityIndicator(d.Priority),
					statusStyle(d.Status).Render(fmt.Sprintf("%-12s", d.Status)),
					d.Title,
					styleDim.Render(shortID(d.ID)),
				)
				if timer := demandTimer(d, now); timer != "" {
					line += " " + timer
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Only demands of this ad account")
	return cmd
}

func newDemandShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one demand with its status history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := app.Demands.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(styleHeader.Render(d.Title))
			fmt.Printf("  status:    %s\n", statusStyle(d.Status).Render(string(d.Status)))
			fmt.Printf("  priority:  %s\n", d.Priority)
			fmt.Printf("  account:   %s\n", d.AccountID)
			if d.ManagerID != "" {
				fmt.Printf("  manager:   %s\n", d.ManagerID)
			}
			if d.Description != "" {
				fmt.Printf("  notes:     %s\n", d.Description)
			}
			if d.BudgetCents != nil {
				fmt.Printf("  budget:    R$ %s\n", domain.FormatMoney(*d.BudgetCents))
			}
			if d.CreativeLink != "" {
				fmt.Printf("  creative:  %s\n", d.CreativeLink)
			}
			if d.DueDate != nil {
				due := d.DueDate.Format("2006-01-02")
				if d.DueTime != "" {
					due += " " + d.DueTime
				}
				fmt.Printf("  due:       %s\n", due)
			}
			if elapsed, ok := d.Elapsed(time.Now().UTC()); ok {
				fmt.Printf("  in status: %s\n", formatElapsed(elapsed))
			}

			events, err := app.Demands.History(ctx, d.ID)
			if err != nil {
				return err
			}
			if len(events) > 0 {
				fmt.Println("  history:")
				for _, e := range events {
					when := e.At.Format("2006-01-02 15:04")
					switch e.Kind {
					case domain.EventStatusChanged:
						fmt.Printf("    %s  %s → %s\n", when, e.FromStatus, e.ToStatus)
					case domain.EventCreated:
						fmt.Printf("    %s  created as %s\n", when, e.ToStatus)
					default:
						fmt.Printf("    %s  fields updated\n", when)
					}
				}
			}
			return nil
		},
	}
}

func newDemandMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <pending|in_progress|done>",
		Short: "Move a demand to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Demands.TransitionStatus(context.Background(), args[0], domain.DemandStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("Demand %q is now %s\n", d.Title, d.Status)
			return nil
		},
	}
}

func newDemandEditCmd(app *App) *cobra.Command {
	var sub intake.Submission

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a demand's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			existing, err := app.Demands.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			// Unset flags keep the current values; empty-string flags clear.
			if !cmd.Flags().Changed("title") {
				sub.Title = existing.Title
			}
			if !cmd.Flags().Changed("account") {
				sub.AccountID = existing.AccountID
			}
			if !cmd.Flags().Changed("manager") {
				sub.ManagerID = existing.ManagerID
			}
			if !cmd.Flags().Changed("description") {
				sub.Description = existing.Description
			}
			if !cmd.Flags().Changed("budget") && existing.BudgetCents != nil {
				sub.Budget = domain.FormatMoney(*existing.BudgetCents)
			}
			if !cmd.Flags().Changed("creative") {
				sub.CreativeLink = existing.CreativeLink
			}
			if !cmd.Flags().Changed("due-date") && existing.DueDate != nil {
				sub.DueDate = existing.DueDate.Format("2006-01-02")
			}
			if !cmd.Flags().Changed("due-time") {
				sub.DueTime = existing.DueTime
			}
			if !cmd.Flags().Changed("priority") {
				sub.Priority = string(existing.Priority)
			}

			d, err := app.Intake.ParseUpdate(ctx, existing, sub)
			if err != nil {
				return printFieldErrors(err)
			}
			if err := app.Demands.Update(ctx, d); err != nil {
				return err
			}
			fmt.Printf("Demand %q updated\n", d.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&sub.Title, "title", "", "Demand title")
	cmd.Flags().StringVar(&sub.AccountID, "account", "", "Ad account ID")
	cmd.Flags().StringVar(&sub.ManagerID, "manager", "", "Assigned manager")
	cmd.Flags().StringVar(&sub.Description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&sub.Budget, "budget", "", "Budget, e.g. 150.50")
	cmd.Flags().StringVar(&sub.CreativeLink, "creative", "", "Creative URL")
	cmd.Flags().StringVar(&sub.DueDate, "due-date", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sub.DueTime, "due-time", "", "Due time (HH:MM)")
	cmd.Flags().StringVar(&sub.Priority, "priority", "", "Priority: low, medium, high")
	cmd.Flags().StringVar(&sub.Status, "status", "", "Move to status: pending, in_progress, done")
	return cmd
}

// printFieldErrors renders intake validation as per-field lines; other
// errors pass through.
func printFieldErrors(err error) error {
	var errs intake.FieldErrors
	if !errors.As(err, &errs) {
		return err
	}
	for _, fe := range errs {
		fmt.Println(styleRed.Render("✗ " + fe.Error()))
	}
	return fmt.Errorf("submission rejected")
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
