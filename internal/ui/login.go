package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"healthdash/internal/session"
)

type loginSuccessMsg struct {
	sess session.Session
}

type loginErrorMsg struct {
	err error
}

type LoginModel struct {
	usernameInput string
	passwordInput string
	focusedInput  int
	loading       bool
	notice        string
	err           error
	store         *session.Store
}

func NewLoginModel(store *session.Store) *LoginModel {
	return &LoginModel{
		focusedInput: 0,
		store:        store,
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return nil
}

// SetNotice shows a one-shot banner above the form, used for the forced
// logout on session expiry.
func (m *LoginModel) SetNotice(notice string) {
	m.notice = notice
	m.loading = false
	m.err = nil
}

func loginCmd(store *session.Store, username, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := store.Login(username, password)
		if err != nil {
			return loginErrorMsg{err: err}
		}
		return loginSuccessMsg{sess: sess}
	}
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginSuccessMsg:
		m.loading = false
		m.err = nil
		m.notice = ""
		m.passwordInput = ""
		return m, nil

	case loginErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab":
			m.focusedInput = (m.focusedInput + 1) % 2
		case "enter":
			if m.usernameInput == "" {
				m.err = fmt.Errorf("username cannot be empty")
				return m, nil
			}
			if m.passwordInput == "" {
				m.err = fmt.Errorf("password cannot be empty")
				return m, nil
			}

			m.loading = true
			m.err = nil
			return m, loginCmd(m.store, m.usernameInput, m.passwordInput)
		case "backspace":
			if m.focusedInput == 0 && len(m.usernameInput) > 0 {
				m.usernameInput = m.usernameInput[:len(m.usernameInput)-1]
			} else if m.focusedInput == 1 && len(m.passwordInput) > 0 {
				m.passwordInput = m.passwordInput[:len(m.passwordInput)-1]
			}
		case "ctrl+l":
			m.usernameInput = ""
			m.passwordInput = ""
			m.err = nil
		default:
			if len(msg.String()) == 1 {
				if m.focusedInput == 0 {
					m.usernameInput += msg.String()
				} else {
					m.passwordInput += msg.String()
				}
			}
		}
	}
	return m, nil
}

func (m *LoginModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("SMART HEALTH")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Sign in to view your risk dashboard.")

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginBottom(3).
		Render(subtitle))
	b.WriteString("\n\n")

	if m.notice != "" {
		notice := lipgloss.NewStyle().Foreground(Warning).Bold(true).Render(m.notice)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(notice))
		b.WriteString("\n\n")
	}

	usernameLabel := LabelStyle.Width(15).Render("Username:")
	usernameStyle := InputStyle
	if m.focusedInput == 0 {
		usernameStyle = FocusedInputStyle
	}
	usernameValue := usernameStyle.Width(50).Render(m.usernameInput)
	usernameField := lipgloss.JoinHorizontal(lipgloss.Left, usernameLabel, usernameValue)
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(usernameField))
	b.WriteString("\n\n")

	passwordLabel := LabelStyle.Width(15).Render("Password:")
	passwordStyle := InputStyle
	if m.focusedInput == 1 {
		passwordStyle = FocusedInputStyle
	}
	maskedPassword := strings.Repeat("•", len(m.passwordInput))
	passwordValue := passwordStyle.Width(50).Render(maskedPassword)
	passwordField := lipgloss.JoinHorizontal(lipgloss.Left, passwordLabel, passwordValue)
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(passwordField))
	b.WriteString("\n\n")

	if m.loading {
		loading := InfoStyle.Render("Signing in...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render(m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("tab switch  •  enter sign in  •  ctrl+l clear  •  ctrl+c quit")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}
