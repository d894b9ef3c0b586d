package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yeremiapane/restaurant-client/client"
	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/utils"
)

type ordersMsg []models.Order

type connMsg bool

type noteMsg string

const actionTimeout = 10 * time.Second

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	statusStyles = map[models.OrderStatus]lipgloss.Style{
		models.StatusReceived:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		models.StatusProcessing: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		models.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.StatusCancelled:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

type model struct {
	api       *client.Client
	orders    []models.Order
	cursor    int
	connected bool
	note      string
}

func newModel(api *client.Client) model {
	return model{api: api}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersMsg:
		m.orders = msg
		if m.cursor >= len(m.orders) {
			m.cursor = len(m.orders) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case connMsg:
		m.connected = bool(msg)
		return m, nil

	case noteMsg:
		m.note = string(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.orders)-1 {
				m.cursor++
			}
		case "p":
			return m, m.transition(models.StatusProcessing)
		case "c":
			return m, m.transition(models.StatusCompleted)
		case "x":
			return m, m.cancel()
		}
	}
	return m, nil
}

// transition requests a status change for the selected order. The
// gateway decides legality; a rejection shows up in the footer and the
// board itself only moves when the update event comes back over the
// channel.
func (m model) transition(status models.OrderStatus) tea.Cmd {
	order, ok := m.selected()
	if !ok {
		return nil
	}
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		if _, err := api.UpdateOrderStatus(ctx, order.ID, status); err != nil {
			return noteMsg(err.Error())
		}
		return noteMsg("")
	}
}

func (m model) cancel() tea.Cmd {
	order, ok := m.selected()
	if !ok {
		return nil
	}
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		if _, err := api.CancelOrder(ctx, order.ID); err != nil {
			return noteMsg(err.Error())
		}
		return noteMsg("")
	}
}

func (m model) selected() (models.Order, bool) {
	if m.cursor < 0 || m.cursor >= len(m.orders) {
		return models.Order{}, false
	}
	return m.orders[m.cursor], true
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Order Board"))
	if m.connected {
		b.WriteString(faintStyle.Render("  live"))
	} else {
		b.WriteString(noteStyle.Render("  connecting..."))
	}
	b.WriteString("\n\n")

	if len(m.orders) == 0 {
		b.WriteString(faintStyle.Render("  no orders yet"))
		b.WriteString("\n")
	} else {
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %-10s %-6s %12s  %-12s %s",
			"ORDER", "ITEMS", "TOTAL", "STATUS", "TIME")))
		b.WriteString("\n")
		for i, order := range m.orders {
			marker := "  "
			// Pad before styling; ANSI escapes would defeat %-12s.
			statusCell := statusStyles[order.Status].Render(fmt.Sprintf("%-12s", order.Status))
			row := fmt.Sprintf("%-10s %-6d %12s  %s %s",
				shortID(order.ID),
				len(order.Items),
				utils.FormatPrice(order.Total),
				statusCell,
				order.Timestamp.Local().Format("15:04:05"),
			)
			if i == m.cursor {
				marker = "> "
				row = cursorStyle.Render(row)
			}
			b.WriteString(marker + row + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render("  p process  c complete  x cancel  q quit"))
	if m.note != "" {
		b.WriteString("\n")
		b.WriteString(noteStyle.Render("  " + m.note))
	}
	b.WriteString("\n")
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
