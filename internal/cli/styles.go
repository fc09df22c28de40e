package cli

import (
	"fmt"
	"time"

	"github.com/brunocamargo/trafficboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorBlue   = lipgloss.Color("#83a598")
	colorDim    = lipgloss.Color("#928374")
	colorFg     = lipgloss.Color("#ebdbb2")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	styleRed    = lipgloss.NewStyle().Foreground(colorRed)
	styleBlue   = lipgloss.NewStyle().Foreground(colorBlue)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleFg     = lipgloss.NewStyle().Foreground(colorFg)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
)

// statusStyle maps a board column to its accent style.
func statusStyle(s domain.DemandStatus) lipgloss.Style {
	switch s {
	case domain.DemandPending:
		return styleBlue
	case domain.DemandInProgress:
		return styleYellow
	case domain.DemandDone:
		return styleGreen
	default:
		return styleDim
	}
}

// statusLabel is the human column title.
func statusLabel(s domain.DemandStatus) string {
	switch s {
	case domain.DemandPending:
		return "Pendente"
	case domain.DemandInProgress:
		return "Em andamento"
	case domain.DemandDone:
		return "Concluída"
	default:
		return string(s)
	}
}

// priorityIndicator renders a colored priority marker.
func priorityIndicator(p domain.DemandPriority) string {
	switch p {
	case domain.PriorityHigh:
		return styleRed.Render("▲")
	case domain.PriorityLow:
		return styleDim.Render("▽")
	default:
		return styleYellow.Render("•")
	}
}

// formatElapsed renders a duration as a compact timer: "3d2h", "2h05m", "12m".
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd%dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh%02dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// demandTimer renders the time-in-status tag for a card, empty for done.
func demandTimer(d *domain.Demand, now time.Time) string {
	elapsed, ok := d.Elapsed(now)
	if !ok {
		return ""
	}
	return styleDim.Render(formatElapsed(elapsed))
}
