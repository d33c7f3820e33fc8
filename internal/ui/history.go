package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"healthdash/internal/api"
	"healthdash/internal/risk"
)

const historyFetchLimit = 100

type historySuccessMsg struct {
	items []api.MeasurementOut
}

type historyErrorMsg struct {
	err error
}

// HistoryModel is the prediction history table, newest first.
type HistoryModel struct {
	items   []api.MeasurementOut
	cursor  int
	loading bool
	loaded  bool
	err     error
	client  *api.Client
}

func NewHistoryModel(client *api.Client) *HistoryModel {
	return &HistoryModel{
		client: client,
	}
}

func (m *HistoryModel) Init() tea.Cmd {
	return nil
}

func (m *HistoryModel) Invalidate() {
	m.loaded = false
}

func fetchHistoryCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		items, err := c.ListPredictions(historyFetchLimit)
		if err != nil {
			return historyErrorMsg{err: err}
		}
		return historySuccessMsg{items: items}
	}
}

func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historySuccessMsg:
		m.loading = false
		m.items = msg.items
		m.err = nil
		m.loaded = true
		m.cursor = 0
		return m, nil

	case historyErrorMsg:
		m.loading = false
		m.err = msg.err
		m.loaded = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, fetchHistoryCmd(m.client)
			}
		}
	}

	if !m.loaded && !m.loading && m.client != nil {
		m.loading = true
		return m, fetchHistoryCmd(m.client)
	}

	return m, nil
}

func (m *HistoryModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("PREDICTION HISTORY")

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(title))
	b.WriteString("\n\n")

	if m.loading {
		loading := InfoStyle.Render("Loading history...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(loading))
		b.WriteString("\n")
	} else if m.err != nil {
		errMsg := ErrorStyle.Render(m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(errMsg))
		b.WriteString("\n")
	} else if len(m.items) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(Muted).
			Render("No predictions yet.")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(empty))
		b.WriteString("\n")
	} else {
		headerStyle := lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Padding(0, 1)

		tableHeader := lipgloss.JoinHorizontal(lipgloss.Left,
			headerStyle.Width(8).Render("ID"),
			headerStyle.Width(20).Render("Recorded"),
			headerStyle.Width(6).Render("Age"),
			headerStyle.Width(9).Render("BMI"),
			headerStyle.Width(10).Render("Risk"),
			headerStyle.Width(12).Render("Band"),
		)
		b.WriteString(lipgloss.NewStyle().MarginLeft(4).Render(tableHeader))
		b.WriteString("\n")

		separator := lipgloss.NewStyle().
			Foreground(Muted).
			Render(strings.Repeat("─", 62))
		b.WriteString(lipgloss.NewStyle().MarginLeft(4).Render(separator))
		b.WriteString("\n")

		for i, item := range m.items {
			rowStyle := lipgloss.NewStyle().Padding(0, 1)
			if i == m.cursor {
				rowStyle = rowStyle.Foreground(Accent).Bold(true)
			} else {
				rowStyle = rowStyle.Foreground(Text)
			}

			bmi := "-"
			if item.BMI != nil {
				bmi = fmt.Sprintf("%.2f", *item.BMI)
			}

			band := risk.BandFor(item.RiskScore)
			bandCell := lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(BandColor(band.String())).
				Width(12).
				Render(band.String())

			row := lipgloss.JoinHorizontal(lipgloss.Left,
				rowStyle.Width(8).Render(fmt.Sprintf("%d", item.ID)),
				rowStyle.Width(20).Render(formatDateShort(item.CreatedAt)),
				rowStyle.Width(6).Render(fmt.Sprintf("%d", item.Age)),
				rowStyle.Width(9).Render(bmi),
				rowStyle.Width(10).Render(fmt.Sprintf("%.4f", item.RiskScore)),
				bandCell,
			)
			b.WriteString(lipgloss.NewStyle().MarginLeft(4).Render(row))
			b.WriteString("\n")
		}

		stats := risk.Compute(m.items)
		statsLine := InfoStyle.Render(fmt.Sprintf(
			"total %d  •  low %d  •  moderate %d  •  high %d  •  average %.4f",
			stats.Total, stats.Low, stats.Moderate, stats.High, stats.Average))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(statsLine))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("↑/↓ navigate  •  r refresh  •  q back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}
