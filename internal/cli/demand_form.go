package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/brunocamargo/trafficboard/internal/domain"
	"github.com/brunocamargo/trafficboard/internal/intake"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func boardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(colorFg).Background(colorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorDim)

	return t
}

func validateRequired(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalTime(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("use HH:MM")
	}
	return nil
}

func validateOptionalMoney(s string) error {
	if s == "" {
		return nil
	}
	cents, err := domain.ParseMoney(s)
	if err != nil {
		return fmt.Errorf("use a decimal amount like 150.50")
	}
	if cents < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// runDemandForm collects a creation submission interactively. Values
// already present on seed (e.g. from flags) prefill the form.
func runDemandForm(ctx context.Context, app *App, seed intake.Submission) (intake.Submission, error) {
	accounts, err := app.Accounts.List(ctx)
	if err != nil {
		return seed, err
	}
	if len(accounts) == 0 {
		return seed, fmt.Errorf("no accounts registered; run 'trafficboard account add' first")
	}

	accountOpts := make([]huh.Option[string], len(accounts))
	for i, a := range accounts {
		accountOpts[i] = huh.NewOption(a.Name, a.ID)
	}

	sub := seed
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Subir campanha X").
				Value(&sub.Title).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Account").
				Options(accountOpts...).
				Value(&sub.AccountID),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("low", "low"),
					huh.NewOption("medium", "medium"),
					huh.NewOption("high", "high"),
				).
				Value(&sub.Priority),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Budget (blank for none)").
				Placeholder("150.50").
				Value(&sub.Budget).
				Validate(validateOptionalMoney),
			huh.NewInput().
				Title("Due date (YYYY-MM-DD, blank for none)").
				Placeholder("2026-06-30").
				Value(&sub.DueDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Due time (HH:MM, blank for none)").
				Placeholder("14:30").
				Value(&sub.DueTime).
				Validate(validateOptionalTime),
			huh.NewInput().
				Title("Creative link (blank for none)").
				Value(&sub.CreativeLink),
			huh.NewText().
				Title("Description").
				Value(&sub.Description),
		),
	).WithTheme(boardHuhTheme()).WithShowHelp(false)

	if sub.Priority == "" {
		sub.Priority = "medium"
	}
	if err := form.Run(); err != nil {
		return sub, err
	}
	return sub, nil
}
