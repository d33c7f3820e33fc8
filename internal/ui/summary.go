package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"healthdash/internal/api"
	"healthdash/internal/onboarding"
)

type submitSuccessMsg struct {
	record *api.MeasurementOut
}

type submitErrorMsg struct {
	err error
}

// SummaryModel is the wizard's final step: review everything, then submit
// one assembled payload.
type SummaryModel struct {
	draft   *onboarding.Draft
	client  *api.Client
	loading bool
	err     error
}

func NewSummaryModel(draft *onboarding.Draft, client *api.Client) *SummaryModel {
	return &SummaryModel{
		draft:  draft,
		client: client,
	}
}

func (m *SummaryModel) Init() tea.Cmd {
	return nil
}

func submitDraftCmd(draft *onboarding.Draft, client *api.Client) tea.Cmd {
	payload, err := draft.Payload()
	if err != nil {
		return func() tea.Msg { return submitErrorMsg{err: err} }
	}
	return func() tea.Msg {
		record, err := client.CreatePrediction(payload)
		if err != nil {
			return submitErrorMsg{err: err}
		}
		return submitSuccessMsg{record: record}
	}
}

func (m *SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			m.loading = true
			m.err = nil
			return m, submitDraftCmd(m.draft, m.client)
		case "esc":
			return m, func() tea.Msg { return stepBackMsg{step: 4} }
		}
	}
	return m, nil
}

func (m *SummaryModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("Review Your Information")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Step 4 of 4")

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginBottom(2).
		Render(subtitle))
	b.WriteString("\n\n")

	smoker := "No"
	if m.draft.Smoker == "true" {
		smoker = "Yes"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Age", m.draft.Age},
		{"Gender", m.draft.Gender},
		{"Height", m.draft.Height + " cm"},
		{"Weight", m.draft.Weight + " kg"},
		{"Activity", m.draft.Activity},
		{"Sleep", m.draft.Sleep + " hrs"},
		{"Smoker", smoker},
		{"Alcohol/week", m.draft.Alcohol + " units"},
	}

	var lines []string
	for _, row := range rows {
		label := LabelStyle.Width(16).Render(row.label)
		value := ValueStyle.Render(row.value)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Left, label, value))
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(card))
	b.WriteString("\n\n")

	if m.loading {
		loading := InfoStyle.Render("Submitting...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render(m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("enter finish  •  esc back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}
