package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"healthdash/internal/onboarding"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldSelect
)

type stepField struct {
	key     string
	label   string
	kind    fieldKind
	options []string // select fields only
	numeric bool     // text fields: digits and one decimal point
}

// stepCompleteMsg carries one step's answers up to the root model, which
// merges them into the shared draft.
type stepCompleteMsg struct {
	step   int
	fields map[string]string
}

type stepBackMsg struct {
	step int
}

// StepModel is one page of the onboarding wizard. Inputs are pre-populated
// from the draft on entry, so going back never loses answers.
type StepModel struct {
	step   int
	title  string
	fields []stepField
	values []string
	focus  int
	err    error
}

func NewStepModel(step int, title string, fields []stepField) *StepModel {
	return &StepModel{
		step:   step,
		title:  title,
		fields: fields,
		values: make([]string, len(fields)),
	}
}

// Prefill re-reads the draft into the step's inputs. Called by the root
// model every time this step becomes current.
func (m *StepModel) Prefill(draft *onboarding.Draft) {
	for i, f := range m.fields {
		m.values[i] = draft.Get(f.key)
	}
	m.focus = 0
	m.err = nil
}

func (m *StepModel) Init() tea.Cmd {
	return nil
}

func (m *StepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % len(m.fields)
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
	case "left", "right", " ":
		f := m.fields[m.focus]
		if f.kind == fieldSelect {
			m.values[m.focus] = nextOption(f.options, m.values[m.focus], keyMsg.String() != "left")
		}
	case "enter":
		for i, f := range m.fields {
			if strings.TrimSpace(m.values[i]) == "" {
				m.err = fmt.Errorf("%s is required", strings.ToLower(f.label))
				m.focus = i
				return m, nil
			}
		}
		fields := make(map[string]string, len(m.fields))
		for i, f := range m.fields {
			fields[f.key] = strings.TrimSpace(m.values[i])
		}
		step := m.step
		return m, func() tea.Msg { return stepCompleteMsg{step: step, fields: fields} }
	case "esc":
		step := m.step
		return m, func() tea.Msg { return stepBackMsg{step: step} }
	case "backspace":
		if m.fields[m.focus].kind == fieldText && len(m.values[m.focus]) > 0 {
			m.values[m.focus] = m.values[m.focus][:len(m.values[m.focus])-1]
		}
	default:
		f := m.fields[m.focus]
		if f.kind != fieldText || len(keyMsg.String()) != 1 {
			break
		}
		ch := keyMsg.String()
		if f.numeric && !isNumericRune(ch, m.values[m.focus]) {
			break
		}
		m.values[m.focus] += ch
	}
	return m, nil
}

func nextOption(options []string, current string, forward bool) string {
	idx := -1
	for i, opt := range options {
		if opt == current {
			idx = i
			break
		}
	}
	if forward {
		return options[(idx+1)%len(options)]
	}
	if idx <= 0 {
		return options[len(options)-1]
	}
	return options[idx-1]
}

func isNumericRune(ch, current string) bool {
	if ch >= "0" && ch <= "9" {
		return true
	}
	return ch == "." && !strings.Contains(current, ".")
}

// optionLabel renders a stored option value for display.
func optionLabel(key, value string) string {
	if key == onboarding.FieldSmoker {
		if value == "true" {
			return "Yes"
		}
		return "No"
	}
	if value == "" {
		return "select..."
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

func (m *StepModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render(m.title)

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render(fmt.Sprintf("Step %d of 4", m.step))

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

	for i, f := range m.fields {
		label := LabelStyle.Width(22).Render(f.label + ":")

		style := InputStyle
		if i == m.focus {
			style = FocusedInputStyle
		}

		display := m.values[i]
		if f.kind == fieldSelect {
			display = "< " + optionLabel(f.key, m.values[i]) + " >"
		}

		value := style.Width(40).Render(display)
		field := lipgloss.JoinHorizontal(lipgloss.Left, label, value)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(field))
		b.WriteString("\n\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render(m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("tab next field  •  ←/→ choose  •  enter continue  •  esc back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}

func newStep1() *StepModel {
	return NewStepModel(1, "Tell us about yourself", []stepField{
		{key: onboarding.FieldAge, label: "Age", kind: fieldText, numeric: true},
		{key: onboarding.FieldGender, label: "Gender", kind: fieldSelect, options: []string{"female", "male", "other"}},
	})
}

func newStep2() *StepModel {
	return NewStepModel(2, "Body Metrics", []stepField{
		{key: onboarding.FieldHeight, label: "Height (cm)", kind: fieldText, numeric: true},
		{key: onboarding.FieldWeight, label: "Weight (kg)", kind: fieldText, numeric: true},
	})
}

func newStep3() *StepModel {
	return NewStepModel(3, "Lifestyle & Health", []stepField{
		{key: onboarding.FieldActivity, label: "Activity level", kind: fieldSelect, options: []string{"low", "moderate", "active"}},
		{key: onboarding.FieldSleep, label: "Sleep (hrs/night)", kind: fieldText, numeric: true},
		{key: onboarding.FieldSmoker, label: "Do you smoke?", kind: fieldSelect, options: []string{"false", "true"}},
		{key: onboarding.FieldAlcohol, label: "Alcohol units/week", kind: fieldText, numeric: true},
	})
}
