package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"healthdash/internal/api"
	"healthdash/internal/onboarding"
	"healthdash/internal/session"
)

type View int

const (
	RestoringView View = iota
	LoginView
	MenuView
	PredictView
	Step1View
	Step2View
	Step3View
	SummaryView
	DashboardView
	HistoryView
)

// SessionExpiredMsg is injected from outside the event loop when the expiry
// watcher fires.
type SessionExpiredMsg struct{}

type sessionRestoredMsg struct {
	sess session.Session
	ok   bool
}

type tickMsg time.Time

const expiredNotice = "Your session has expired. Please log in again."

// Model is the root: it gates every protected view on session state and
// routes messages to the current sub-model.
type Model struct {
	currentView View
	login       *LoginModel
	menu        *MenuModel
	predict     *PredictModel
	step1       *StepModel
	step2       *StepModel
	step3       *StepModel
	summary     *SummaryModel
	dashboard   *DashboardModel
	history     *HistoryModel

	client  *api.Client
	store   *session.Store
	watcher *session.Watcher
	draft   *onboarding.Draft

	remaining time.Duration
	width     int
	height    int
}

func NewModel(client *api.Client, store *session.Store, watcher *session.Watcher) Model {
	draft := onboarding.NewDraft()

	return Model{
		currentView: RestoringView,
		login:       NewLoginModel(store),
		menu:        NewMenuModel(),
		predict:     NewPredictModel(client),
		step1:       newStep1(),
		step2:       newStep2(),
		step3:       newStep3(),
		summary:     NewSummaryModel(draft, client),
		dashboard:   NewDashboardModel(client),
		history:     NewHistoryModel(client),
		client:      client,
		store:       store,
		watcher:     watcher,
		draft:       draft,
	}
}

func restoreCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		sess, ok := store.Restore()
		return sessionRestoredMsg{sess: sess, ok: ok}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return restoreCmd(m.store)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionRestoredMsg:
		if !msg.ok {
			m.currentView = LoginView
			return m, nil
		}
		m.watcher.Reset(msg.sess.ExpiresAt)
		m.remaining = msg.sess.Remaining(time.Now())
		m.currentView = MenuView
		return m, tickCmd()

	case loginSuccessMsg:
		updatedLogin, _ := m.login.Update(msg)
		m.login = updatedLogin.(*LoginModel)

		m.watcher.Reset(msg.sess.ExpiresAt)
		m.remaining = msg.sess.Remaining(time.Now())
		m.currentView = MenuView
		return m, tickCmd()

	case SessionExpiredMsg:
		// The watcher already logged the store out.
		m.watcher.Stop()
		m.remaining = 0
		m.login.SetNotice(expiredNotice)
		m.currentView = LoginView
		return m, nil

	case tickMsg:
		sess, ok := m.store.Current()
		if !ok {
			m.remaining = 0
			return m, nil
		}
		m.remaining = sess.Remaining(time.Now())
		return m, tickCmd()

	case stepCompleteMsg:
		m.draft.Merge(msg.fields)
		switch msg.step {
		case 1:
			m.step2.Prefill(m.draft)
			m.currentView = Step2View
		case 2:
			m.step3.Prefill(m.draft)
			m.currentView = Step3View
		case 3:
			m.currentView = SummaryView
		}
		return m, nil

	case stepBackMsg:
		switch msg.step {
		case 1:
			m.currentView = MenuView
		case 2:
			m.step1.Prefill(m.draft)
			m.currentView = Step1View
		case 3:
			m.step2.Prefill(m.draft)
			m.currentView = Step2View
		case 4:
			m.step3.Prefill(m.draft)
			m.currentView = Step3View
		}
		return m, nil

	case submitSuccessMsg:
		m.summary.loading = false
		m.draft.Reset()
		m.dashboard.Invalidate()
		m.history.Invalidate()
		m.currentView = DashboardView
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			switch m.currentView {
			case MenuView:
				return m, tea.Quit
			case DashboardView, HistoryView, PredictView:
				m.currentView = MenuView
				return m, nil
			}

		case "esc":
			if m.currentView == PredictView {
				m.currentView = MenuView
				return m, nil
			}
		}
	}

	// Route to the current view once the session gate has resolved.
	switch m.currentView {
	case LoginView:
		updatedLogin, cmd := m.login.Update(msg)
		m.login = updatedLogin.(*LoginModel)
		return m, cmd

	case MenuView:
		updatedMenu, cmd := m.menu.Update(msg)
		m.menu = updatedMenu.(*MenuModel)
		if m.menu.selected != -1 {
			selected := m.menu.selected
			m.menu.selected = -1
			switch selected {
			case 0:
				m.currentView = PredictView
			case 1:
				m.step1.Prefill(m.draft)
				m.currentView = Step1View
			case 2:
				m.dashboard.Invalidate()
				m.currentView = DashboardView
			case 3:
				m.history.Invalidate()
				m.currentView = HistoryView
			case 4:
				m.store.Logout()
				m.watcher.Stop()
				m.remaining = 0
				m.currentView = LoginView
			}
		}
		return m, cmd

	case PredictView:
		updatedPredict, cmd := m.predict.Update(msg)
		m.predict = updatedPredict.(*PredictModel)
		return m, cmd

	case Step1View:
		updatedStep, cmd := m.step1.Update(msg)
		m.step1 = updatedStep.(*StepModel)
		return m, cmd

	case Step2View:
		updatedStep, cmd := m.step2.Update(msg)
		m.step2 = updatedStep.(*StepModel)
		return m, cmd

	case Step3View:
		updatedStep, cmd := m.step3.Update(msg)
		m.step3 = updatedStep.(*StepModel)
		return m, cmd

	case SummaryView:
		updatedSummary, cmd := m.summary.Update(msg)
		m.summary = updatedSummary.(*SummaryModel)
		return m, cmd

	case DashboardView:
		updatedDashboard, cmd := m.dashboard.Update(msg)
		m.dashboard = updatedDashboard.(*DashboardModel)
		return m, cmd

	case HistoryView:
		updatedHistory, cmd := m.history.Update(msg)
		m.history = updatedHistory.(*HistoryModel)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var statusBar string
	if m.store.Authenticated() && m.currentView != LoginView && m.currentView != RestoringView {
		countdownStyle := lipgloss.NewStyle().Foreground(Success)
		if m.remaining <= 5*time.Minute {
			countdownStyle = lipgloss.NewStyle().Foreground(Warning)
		}

		countdown := countdownStyle.Render("Session: " + session.FormatRemaining(m.remaining))
		app := lipgloss.NewStyle().Foreground(Muted).Render("healthdash  •  ")
		statusBar = StatusBarStyle.Render(app + countdown)
	}

	var mainContent string
	switch m.currentView {
	case RestoringView:
		mainContent = lipgloss.NewStyle().
			Width(80).
			Height(20).
			Align(lipgloss.Center, lipgloss.Center).
			Render(InfoStyle.Render("Restoring session..."))
	case LoginView:
		mainContent = m.login.View()
	case MenuView:
		mainContent = m.menu.View()
	case PredictView:
		mainContent = m.predict.View()
	case Step1View:
		mainContent = m.step1.View()
	case Step2View:
		mainContent = m.step2.View()
	case Step3View:
		mainContent = m.step3.View()
	case SummaryView:
		mainContent = m.summary.View()
	case DashboardView:
		mainContent = m.dashboard.View()
	case HistoryView:
		mainContent = m.history.View()
	}

	if statusBar != "" {
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, "\n", mainContent)
	}
	return mainContent
}
