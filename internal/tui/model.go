package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avezina/skilltrack/internal/auth"
	"github.com/avezina/skilltrack/internal/models"
	"github.com/avezina/skilltrack/internal/scheduler"
	"github.com/avezina/skilltrack/internal/storage"
	"github.com/avezina/skilltrack/internal/tracker"
	"github.com/avezina/skilltrack/internal/util"
)

// SessionState defines the high-level mode of the application.
type SessionState int

const (
	StateLogin SessionState = iota
	StateDashboard
)

// MainModel is the root bubbletea model that switches between sub-models.
type MainModel struct {
	ctx       context.Context
	store     *storage.Store
	svc       *auth.Service
	exportDir string

	state     SessionState
	login     LoginModel
	dashboard DashboardModel
	err       error
	width     int
	height    int
}

func NewMainModel(ctx context.Context, store *storage.Store, svc *auth.Service, exportDir string) MainModel {
	m := MainModel{
		ctx:       ctx,
		store:     store,
		svc:       svc,
		exportDir: exportDir,
		state:     StateLogin,
		login:     NewLoginModel(ctx, svc),
	}

	// Resume the previous session if someone is still signed in.
	if user, err := svc.CurrentUser(ctx); err == nil && user != nil {
		if err := m.enterDashboard(*user); err != nil {
			m.err = err
		}
	}
	return m
}

// enterDashboard builds the per-user tracker and switches state.
func (m *MainModel) enterDashboard(user models.User) error {
	mgr := tracker.NewManager(m.store, user.ID)
	if err := mgr.Load(m.ctx); err != nil {
		return fmt.Errorf("loading user data: %w", err)
	}
	if err := mgr.Recover(m.ctx); err != nil {
		return fmt.Errorf("recovering timer state: %w", err)
	}
	ApplyDarkMode(mgr.Settings().DarkMode)
	m.dashboard = NewDashboardModel(m.ctx, mgr, user, m.exportDir)
	m.dashboard.width = m.width
	m.dashboard.height = m.height
	m.state = StateDashboard
	return nil
}

func (m MainModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.login.Init()}
	if m.state == StateDashboard {
		cmds = append(cmds, m.dashboard.Init())
	}
	return tea.Batch(cmds...)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateDashboard {
			newDash, cmd := m.dashboard.Update(msg)
			m.dashboard = newDash.(DashboardModel)
			return m, cmd
		}
		return m, nil
	case loginSuccessMsg:
		if err := m.enterDashboard(*msg.user); err != nil {
			m.err = err
			return m, nil
		}
		return m, m.dashboard.Init()
	case logoutMsg:
		if err := m.svc.Logout(m.ctx); err != nil {
			util.LogError("logout", err)
		}
		m.state = StateLogin
		m.login = NewLoginModel(m.ctx, m.svc)
		return m, m.login.Init()
	}

	switch m.state {
	case StateLogin:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	case StateDashboard:
		newDash, cmd := m.dashboard.Update(msg)
		m.dashboard = newDash.(DashboardModel)
		return m, cmd
	}
	return m, nil
}

func (m MainModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\nPress Ctrl+C to quit.", m.err)
	}
	switch m.state {
	case StateLogin:
		return m.login.View()
	case StateDashboard:
		return m.dashboard.View()
	}
	return ""
}

// Run starts the TUI with the background scheduler attached. It blocks
// until the user quits.
func Run(ctx context.Context, store *storage.Store, svc *auth.Service, exportDir string, dailyReminder bool) error {
	p := tea.NewProgram(NewMainModel(ctx, store, svc, exportDir), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sched := scheduler.New(func(e scheduler.Event) {
		p.Send(SchedulerMsg{Event: e})
	}, scheduler.WithDailyReminder(dailyReminder))
	go sched.Run(ctx)

	_, err := p.Run()
	return err
}
