package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"healthdash/internal/api"
	"healthdash/internal/risk"
)

type predictSuccessMsg struct {
	record *api.MeasurementOut
}

type predictErrorMsg struct {
	err error
}

// PredictModel is the one-shot measurement form on the dashboard side:
// every input on a single page, submitted directly without the wizard.
type PredictModel struct {
	fields  []stepField
	values  []string
	focus   int
	loading bool
	result  *api.MeasurementOut
	err     error
	client  *api.Client
}

func NewPredictModel(client *api.Client) *PredictModel {
	m := &PredictModel{
		fields: []stepField{
			{key: "age", label: "Age", kind: fieldText, numeric: true},
			{key: "weight_kg", label: "Weight (kg)", kind: fieldText, numeric: true},
			{key: "height_cm", label: "Height (cm)", kind: fieldText, numeric: true},
			{key: "smoker", label: "Smoker", kind: fieldSelect, options: []string{"false", "true"}},
			{key: "alcohol_units_per_week", label: "Alcohol units/week", kind: fieldText, numeric: true},
			{key: "exercise_hours_per_week", label: "Exercise hrs/week", kind: fieldText, numeric: true},
		},
		client: client,
	}
	m.values = defaultMeasurement()
	return m
}

func defaultMeasurement() []string {
	return []string{"45", "75", "170", "false", "0", "2"}
}

func (m *PredictModel) Init() tea.Cmd {
	return nil
}

func (m *PredictModel) payload() (api.MeasurementIn, error) {
	var in api.MeasurementIn

	age, err := strconv.Atoi(m.values[0])
	if err != nil {
		return in, fmt.Errorf("invalid age %q", m.values[0])
	}
	weight, err := strconv.ParseFloat(m.values[1], 64)
	if err != nil {
		return in, fmt.Errorf("invalid weight %q", m.values[1])
	}
	height, err := strconv.ParseFloat(m.values[2], 64)
	if err != nil {
		return in, fmt.Errorf("invalid height %q", m.values[2])
	}
	alcohol, err := strconv.ParseFloat(m.values[4], 64)
	if err != nil {
		return in, fmt.Errorf("invalid alcohol units %q", m.values[4])
	}
	exercise, err := strconv.ParseFloat(m.values[5], 64)
	if err != nil {
		return in, fmt.Errorf("invalid exercise hours %q", m.values[5])
	}

	in = api.MeasurementIn{
		Age:                  age,
		WeightKg:             weight,
		HeightCm:             height,
		Smoker:               m.values[3] == "true",
		AlcoholUnitsPerWeek:  alcohol,
		ExerciseHoursPerWeek: exercise,
	}
	return in, nil
}

func predictCmd(client *api.Client, in api.MeasurementIn) tea.Cmd {
	return func() tea.Msg {
		record, err := client.CreatePrediction(in)
		if err != nil {
			return predictErrorMsg{err: err}
		}
		return predictSuccessMsg{record: record}
	}
}

func (m *PredictModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case predictSuccessMsg:
		m.loading = false
		m.result = msg.record
		m.err = nil
		return m, nil

	case predictErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % len(m.fields)
		case "shift+tab", "up":
			m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
		case "left", "right", " ":
			f := m.fields[m.focus]
			if f.kind == fieldSelect {
				m.values[m.focus] = nextOption(f.options, m.values[m.focus], msg.String() != "left")
			}
		case "enter":
			in, err := m.payload()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.loading = true
			m.err = nil
			m.result = nil
			return m, predictCmd(m.client, in)
		case "ctrl+l":
			m.values = defaultMeasurement()
			m.result = nil
			m.err = nil
		case "backspace":
			if m.fields[m.focus].kind == fieldText && len(m.values[m.focus]) > 0 {
				m.values[m.focus] = m.values[m.focus][:len(m.values[m.focus])-1]
			}
		default:
			f := m.fields[m.focus]
			if f.kind != fieldText || len(msg.String()) != 1 {
				break
			}
			ch := msg.String()
			if f.numeric && !isNumericRune(ch, m.values[m.focus]) {
				break
			}
			m.values[m.focus] += ch
		}
	}
	return m, nil
}

func (m *PredictModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("NEW MEASUREMENT")

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(title))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		label := LabelStyle.Width(22).Render(f.label + ":")

		style := InputStyle
		if i == m.focus {
			style = FocusedInputStyle
		}

		display := m.values[i]
		if f.kind == fieldSelect {
			display = "< " + optionLabel("smoker", m.values[i]) + " >"
		}

		value := style.Width(30).Render(display)
		field := lipgloss.JoinHorizontal(lipgloss.Left, label, value)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(field))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.loading {
		loading := InfoStyle.Render("Predicting...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render(m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	if m.result != nil {
		band := risk.BandFor(m.result.RiskScore)

		score := fmt.Sprintf("Risk score: %.4f", m.result.RiskScore)
		bmi := "BMI: -"
		if m.result.BMI != nil {
			bmi = fmt.Sprintf("BMI: %.2f", *m.result.BMI)
		}

		verdict := lipgloss.NewStyle().
			Foreground(BandColor(band.String())).
			Bold(true).
			Render(band.Verdict())

		card := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BandColor(band.String())).
			Padding(1, 3).
			Render(lipgloss.JoinVertical(lipgloss.Left,
				ValueStyle.Render(score),
				ValueStyle.Render(bmi),
				verdict,
			))
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(card))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("tab next field  •  enter predict  •  ctrl+l reset  •  q back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}
