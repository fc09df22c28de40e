package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/brunocamargo/trafficboard/internal/board"
	"github.com/brunocamargo/trafficboard/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// boardColumns fixes the column order, left to right.
var boardColumns = []domain.DemandStatus{
	domain.DemandPending,
	domain.DemandInProgress,
	domain.DemandDone,
}

type boardRefreshedMsg struct{ err error }
type dropDoneMsg struct{ err error }
type boardTickMsg time.Time

// boardModel is the bubbletea model for the three-column demand board.
// Picking a card and dropping it on another column drives the board
// controller's drag/drop contract; the card stays disabled while the
// drop is persisted.
type boardModel struct {
	app  *App
	ctrl *board.Controller

	col     int    // focused column index
	cursor  [3]int // per-column cursor
	grabbed string // id of the picked-up card, empty when none
	busy    bool   // a drop is being persisted
	err     error

	width  int
	height int
	now    time.Time
}

func newBoardModel(app *App, ctrl *board.Controller) *boardModel {
	return &boardModel{app: app, ctrl: ctrl, now: time.Now().UTC()}
}

func (m *boardModel) keyHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "column")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "card")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick up / drop")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (m *boardModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), boardTick())
}

func boardTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return boardTickMsg(t)
	})
}

func (m *boardModel) refresh() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return boardRefreshedMsg{err: ctrl.Refresh(context.Background())}
	}
}

func (m *boardModel) drop(column domain.DemandStatus) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return dropDoneMsg{err: ctrl.Drop(context.Background(), column)}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardTickMsg:
		m.now = time.Time(msg).UTC()
		return m, boardTick()

	case boardRefreshedMsg:
		m.err = msg.err
		m.clampCursors()
		return m, nil

	case dropDoneMsg:
		m.busy = false
		m.err = msg.err
		m.clampCursors()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "left", "h":
			if m.col > 0 {
				m.col--
			}
		case "right", "l":
			if m.col < len(boardColumns)-1 {
				m.col++
			}
		case "up", "k":
			if m.cursor[m.col] > 0 {
				m.cursor[m.col]--
			}
		case "down", "j":
			cards := m.columnCards(m.col)
			if m.cursor[m.col] < len(cards)-1 {
				m.cursor[m.col]++
			}

		case "enter", " ":
			if m.busy {
				return m, nil
			}
			if m.grabbed == "" {
				cards := m.columnCards(m.col)
				if len(cards) == 0 {
					return m, nil
				}
				d := cards[m.cursor[m.col]]
				if err := m.ctrl.BeginDrag(d.ID); err != nil {
					m.err = err
					return m, nil
				}
				m.grabbed = d.ID
				return m, nil
			}
			m.grabbed = ""
			m.busy = true
			return m, m.drop(boardColumns[m.col])

		case "esc":
			if m.grabbed != "" {
				m.ctrl.CancelDrag()
				m.grabbed = ""
			}

		case "r":
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *boardModel) columnCards(col int) []*domain.Demand {
	return m.ctrl.Snapshot().Column(boardColumns[col])
}

// clampCursors keeps cursors valid after the snapshot changes size.
func (m *boardModel) clampCursors() {
	for i := range boardColumns {
		n := len(m.columnCards(i))
		if m.cursor[i] >= n {
			m.cursor[i] = n - 1
		}
		if m.cursor[i] < 0 {
			m.cursor[i] = 0
		}
	}
}

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	focusedColumnStyle = columnStyle.
				BorderForeground(colorHeader)
	selectedCardStyle = lipgloss.NewStyle().Foreground(colorFg).Bold(true)
	grabbedCardStyle  = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
)

func (m *boardModel) View() string {
	colWidth := 30
	if m.width > 0 {
		if w := m.width/len(boardColumns) - 4; w > 20 {
			colWidth = w
		}
	}

	rendered := make([]string, 0, len(boardColumns))
	for i, status := range boardColumns {
		rendered = append(rendered, m.renderColumn(i, status, colWidth))
	}
	view := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	var footer strings.Builder
	if m.busy {
		footer.WriteString(styleYellow.Render("saving…") + "  ")
	} else if m.grabbed != "" {
		if d, ok := m.ctrl.Snapshot().Find(m.grabbed); ok {
			footer.WriteString(styleHeader.Render("carrying: "+d.Title) + "  ")
		}
	}
	if m.err != nil {
		footer.WriteString(styleRed.Render("✗ " + m.err.Error()))
	}
	if footer.Len() == 0 {
		hints := make([]string, 0, 6)
		for _, b := range m.keyHelp() {
			hints = append(hints, b.Help().Key+" "+b.Help().Desc)
		}
		footer.WriteString(styleDim.Render(strings.Join(hints, "  ")))
	}

	return view + "\n" + footer.String()
}

func (m *boardModel) renderColumn(col int, status domain.DemandStatus, width int) string {
	cards := m.columnCards(col)
	focused := col == m.col

	var b strings.Builder
	header := statusStyle(status).Bold(true).Render(statusLabel(status))
	b.WriteString(header + styleDim.Render(" ("+strconv.Itoa(len(cards))+")") + "\n")

	for i, d := range cards {
		line := priorityIndicator(d.Priority) + " " + truncate(d.Title, width-8)
		if timer := demandTimer(d, m.now); timer != "" {
			line += " " + timer
		}
		switch {
		case d.ID == m.grabbed:
			line = grabbedCardStyle.Render("✋ " + truncate(d.Title, width-8))
		case focused && i == m.cursor[col]:
			line = selectedCardStyle.Render("▸ ") + line
		default:
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	if len(cards) == 0 {
		b.WriteString(styleDim.Render("  (vazio)") + "\n")
	}

	style := columnStyle
	if focused {
		style = focusedColumnStyle
	}
	return style.Width(width).Render(b.String())
}

func truncate(s string, max int) string {
	if max < 3 {
		max = 3
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
