package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"healthdash/internal/api"
	"healthdash/internal/risk"
)

type dashboardSuccessMsg struct {
	history []api.MeasurementOut
}

type dashboardErrorMsg struct {
	err error
}

// DashboardModel shows the latest measurement, the risk distribution over
// the fetched history, and summary statistics.
type DashboardModel struct {
	history []api.MeasurementOut
	stats   risk.Stats
	loading bool
	loaded  bool
	err     error
	client  *api.Client
}

func NewDashboardModel(client *api.Client) *DashboardModel {
	return &DashboardModel{
		client: client,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

// Invalidate forces a refetch the next time the dashboard updates, used
// when a new measurement was just created.
func (m *DashboardModel) Invalidate() {
	m.loaded = false
}

func fetchDashboardCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		history, err := c.ListPredictions(0)
		if err != nil {
			return dashboardErrorMsg{err: err}
		}
		return dashboardSuccessMsg{history: history}
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardSuccessMsg:
		m.loading = false
		m.history = msg.history
		m.stats = risk.Compute(msg.history)
		m.err = nil
		m.loaded = true
		return m, nil

	case dashboardErrorMsg:
		m.loading = false
		m.err = msg.err
		m.loaded = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, fetchDashboardCmd(m.client)
			}
		}
	}

	if !m.loaded && !m.loading && m.client != nil {
		m.loading = true
		return m, fetchDashboardCmd(m.client)
	}

	return m, nil
}

// riskBar renders one row of the distribution chart, scaled so the fullest
// bar spans barWidth cells.
func riskBar(label string, count, max, barWidth int, color lipgloss.Color) string {
	filled := 0
	if max > 0 {
		filled = count * barWidth / max
	}
	if count > 0 && filled == 0 {
		filled = 1
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	name := lipgloss.NewStyle().Foreground(color).Width(10).Render(label)
	num := lipgloss.NewStyle().Foreground(Text).Bold(true).Render(fmt.Sprintf(" %d", count))
	return name + bar + num
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("RISK DASHBOARD")

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(title))
	b.WriteString("\n\n")

	if m.loading {
		loading := InfoStyle.Render("Loading measurements...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(loading))
		b.WriteString("\n")
	} else if m.err != nil {
		errMsg := ErrorStyle.Render(m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(errMsg))
		b.WriteString("\n")
	} else if len(m.history) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(Muted).
			Render("No measurements yet. Run an assessment to see your risk profile.")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(empty))
		b.WriteString("\n")
	} else {
		// Latest measurement card
		latest := m.history[0]
		band := risk.BandFor(latest.RiskScore)

		scoreLine := LabelStyle.Width(12).Render("Latest risk") +
			lipgloss.NewStyle().Foreground(BandColor(band.String())).Bold(true).
				Render(fmt.Sprintf("%.4f (%s)", latest.RiskScore, band))
		recordedLine := LabelStyle.Width(12).Render("Recorded") +
			ValueStyle.Render(formatDateShort(latest.CreatedAt))

		latestCard := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BandColor(band.String())).
			Padding(1, 3).
			Width(60).
			Render(lipgloss.JoinVertical(lipgloss.Left, scoreLine, recordedLine))
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(latestCard))
		b.WriteString("\n\n")

		// Risk distribution chart
		max := m.stats.Low
		if m.stats.Moderate > max {
			max = m.stats.Moderate
		}
		if m.stats.High > max {
			max = m.stats.High
		}

		chart := lipgloss.JoinVertical(lipgloss.Left,
			riskBar("Low", m.stats.Low, max, 40, Success),
			riskBar("Moderate", m.stats.Moderate, max, 40, Warning),
			riskBar("High", m.stats.High, max, 40, Danger),
		)
		chartCard := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(1, 3).
			Width(60).
			Render(TitleStyle.Render("Risk Distribution") + "\n\n" + chart)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(chartCard))
		b.WriteString("\n\n")

		statsLine := InfoStyle.Render(fmt.Sprintf(
			"%d measurements  •  average risk %.4f",
			m.stats.Total, m.stats.Average))
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(statsLine))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("r refresh  •  q back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}
