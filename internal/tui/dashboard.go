package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avezina/skilltrack/internal/models"
	"github.com/avezina/skilltrack/internal/scheduler"
	"github.com/avezina/skilltrack/internal/tracker"
)

// Tabs of the dashboard.
type Tab int

const (
	TabTimer Tab = iota
	TabProgress
	TabHistory
	TabSettings
)

var tabNames = []string{"Timer", "Progress", "History", "Settings"}

// --- Messages ---

type TickMsg time.Time

// SchedulerMsg carries a background scheduler event into the update loop.
type SchedulerMsg struct {
	Event scheduler.Event
}

type logoutMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// --- Model ---

type DashboardModel struct {
	ctx  context.Context
	mgr  *tracker.Manager
	user models.User

	tab         Tab
	focusedCat  int
	historyPage int
	progressBar progress.Model
	modal       ModalState
	status      string
	errMsg      string
	exportDir   string
	width       int
	height      int
}

func NewDashboardModel(ctx context.Context, mgr *tracker.Manager, user models.User, exportDir string) DashboardModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 36
	return DashboardModel{
		ctx:         ctx,
		mgr:         mgr,
		user:        user,
		progressBar: bar,
		exportDir:   exportDir,
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return tickCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		// The 1s tick only redraws; persistence runs on the heartbeat.
		return m, tickCmd()

	case SchedulerMsg:
		return m.handleScheduler(msg.Event)

	case tea.KeyMsg:
		if m.modal != nil {
			return m.updateModal(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m DashboardModel) handleScheduler(e scheduler.Event) (tea.Model, tea.Cmd) {
	switch e {
	case scheduler.Heartbeat:
		if err := m.mgr.Touch(m.ctx); err != nil {
			m.errMsg = err.Error()
		}
	case scheduler.DailyReminder:
		if scheduler.ReminderNeeded(m.mgr.TodaySessionCount()) {
			m.status = "Reminder: no practice logged today yet"
		}
	}
	return m, nil
}

// selectedCategory returns the focused category, if any exist.
func (m DashboardModel) selectedCategory() (models.Category, bool) {
	cats := m.mgr.Categories()
	if len(cats) == 0 {
		return models.Category{}, false
	}
	if m.focusedCat >= len(cats) {
		return cats[len(cats)-1], true
	}
	return cats[m.focusedCat], true
}
