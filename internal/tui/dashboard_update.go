package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avezina/skilltrack/internal/config"
	"github.com/avezina/skilltrack/internal/export"
	"github.com/avezina/skilltrack/internal/tracker"
	"github.com/avezina/skilltrack/internal/util"
)

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.errMsg = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "L":
		return m, func() tea.Msg { return logoutMsg{} }
	case "tab", "right":
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		return m, nil
	case "shift+tab", "left":
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		return m, nil
	case "1", "2", "3", "4":
		n, _ := strconv.Atoi(msg.String())
		m.tab = Tab(n - 1)
		return m, nil
	}

	switch m.tab {
	case TabTimer:
		return m.handleTimerKey(msg)
	case TabHistory:
		return m.handleHistoryKey(msg)
	case TabSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m DashboardModel) handleTimerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cats := m.mgr.Categories()

	switch msg.String() {
	case "up", "k":
		if len(cats) > 0 {
			m.focusedCat = util.Clamp(m.focusedCat-1, 0, len(cats)-1)
		}
	case "down", "j":
		if len(cats) > 0 {
			m.focusedCat = util.Clamp(m.focusedCat+1, 0, len(cats)-1)
		}
	case "enter", "s":
		cat, ok := m.selectedCategory()
		if !ok {
			m.errMsg = "create a category first"
			return m, nil
		}
		if err := m.mgr.Start(m.ctx, cat.ID, ""); err != nil {
			if errors.Is(err, tracker.ErrAlreadyRunning) {
				m.errMsg = "a session is already running"
			} else {
				m.errMsg = err.Error()
			}
			return m, nil
		}
		m.status = "Started " + cat.Name
	case "p", " ":
		active := m.mgr.Active()
		if active == nil {
			return m, nil
		}
		var err error
		if active.IsPaused {
			err = m.mgr.Resume(m.ctx)
		} else {
			err = m.mgr.Pause(m.ctx)
		}
		if err != nil {
			m.errMsg = err.Error()
		}
	case "e":
		return m.endSession(false)
	case "n":
		m.modal = newInputModal(ModalNewCategory, "Category name", "")
	case "r":
		cat, ok := m.selectedCategory()
		if !ok {
			return m, nil
		}
		modal := newInputModal(ModalRenameCategory, "New name", cat.Name)
		modal.CategoryID = cat.ID
		m.modal = modal
	case "d":
		cat, ok := m.selectedCategory()
		if !ok {
			return m, nil
		}
		count := 0
		for _, s := range m.mgr.Sessions() {
			if s.CategoryID == cat.ID {
				count++
			}
		}
		m.modal = &ConfirmDeleteState{CategoryID: cat.ID, CategoryName: cat.Name, SessionCount: count}
	case "t":
		cat, ok := m.selectedCategory()
		if !ok {
			return m, nil
		}
		initial := ""
		if cat.TargetHours != nil {
			initial = strconv.FormatFloat(*cat.TargetHours, 'f', -1, 64)
		}
		modal := newInputModal(ModalTargetHours, "Target hours (blank clears)", initial)
		modal.CategoryID = cat.ID
		m.modal = modal
	case "m":
		m.modal = newManualEntryModal(time.Now().Format(config.DateFormat))
	}
	return m, nil
}

func (m DashboardModel) endSession(force bool) (tea.Model, tea.Cmd) {
	sess, err := m.mgr.End(m.ctx, false, force)
	if err != nil {
		if errors.Is(err, tracker.ErrShortSession) {
			m.modal = &ConfirmShortState{}
			return m, nil
		}
		m.errMsg = err.Error()
		return m, nil
	}
	if sess != nil {
		m.status = fmt.Sprintf("Logged %s of %s", util.FormatDuration(sess.Duration), m.mgr.CategoryName(sess.CategoryID))
	}
	return m, nil
}

func (m DashboardModel) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.historyPage > 0 {
			m.historyPage--
		}
	case "down", "j":
		if (m.historyPage+1)*historyPageSize < len(m.mgr.Sessions()) {
			m.historyPage++
		}
	}
	return m, nil
}

func (m DashboardModel) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "g":
		s := m.mgr.Settings()
		m.modal = newInputModal(ModalDailyGoal, "Daily goal (minutes)", strconv.Itoa(s.DailyGoalMinutes))
	case "o":
		s := m.mgr.Settings()
		m.modal = newInputModal(ModalDefaultTarget, "Default target hours", s.CurrentMode)
	case "d":
		if err := m.mgr.ToggleDarkMode(m.ctx); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		ApplyDarkMode(m.mgr.Settings().DarkMode)
	case "x":
		m.runExport("JSON", func() (string, error) {
			return export.JSONToFile(m.exportDir, m.snapshot(), time.Now())
		})
		return m, nil
	case "c":
		m.runExport("CSV", func() (string, error) {
			return export.CSVToFile(m.exportDir, m.snapshot(), time.Now())
		})
		return m, nil
	case "p":
		m.runExport("PDF", func() (string, error) {
			return export.PDFToFile(m.exportDir, m.snapshot(), time.Now())
		})
		return m, nil
	}
	return m, nil
}

func (m *DashboardModel) runExport(kind string, fn func() (string, error)) {
	path, err := fn()
	if err != nil {
		m.errMsg = fmt.Sprintf("%s export failed: %v", kind, err)
		return
	}
	m.status = fmt.Sprintf("%s export written to %s", kind, path)
}

func (m DashboardModel) snapshot() export.Snapshot {
	return export.Snapshot{
		Categories: m.mgr.Categories(),
		Sessions:   m.mgr.Sessions(),
		Settings:   m.mgr.Settings(),
	}
}

// --- Modal handling ---

func (m DashboardModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.modal = nil
		return m, nil
	}

	switch modal := m.modal.(type) {
	case *ConfirmShortState:
		switch msg.String() {
		case "y", "Y":
			m.modal = nil
			return m.endSession(true)
		case "n", "N":
			m.modal = nil
			m.status = "Session kept running"
		}
		return m, nil

	case *ConfirmDeleteState:
		switch msg.String() {
		case "y", "Y":
			m.modal = nil
			if err := m.mgr.DeleteCategory(m.ctx, modal.CategoryID); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			if m.focusedCat >= len(m.mgr.Categories()) && m.focusedCat > 0 {
				m.focusedCat--
			}
			m.status = "Deleted " + modal.CategoryName
		case "n", "N":
			m.modal = nil
		}
		return m, nil

	case *InputState:
		if msg.Type == tea.KeyEnter {
			return m.submitInputModal(modal)
		}
		var cmd tea.Cmd
		modal.Input, cmd = modal.Input.Update(msg)
		return m, cmd

	case *ManualEntryState:
		return m.updateManualModal(modal, msg)
	}
	return m, nil
}

func (m DashboardModel) submitInputModal(modal *InputState) (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(modal.Input.Value())

	switch modal.Kind {
	case ModalNewCategory:
		cat, err := m.mgr.CreateCategory(m.ctx, value)
		if err != nil {
			modal.ErrMsg = err.Error()
			return m, nil
		}
		m.status = "Created " + cat.Name

	case ModalRenameCategory:
		if err := m.mgr.RenameCategory(m.ctx, modal.CategoryID, value); err != nil {
			modal.ErrMsg = err.Error()
			return m, nil
		}
		m.status = "Renamed to " + value

	case ModalTargetHours:
		if value == "" {
			if err := m.mgr.SetTarget(m.ctx, modal.CategoryID, nil); err != nil {
				modal.ErrMsg = err.Error()
				return m, nil
			}
			m.status = "Target cleared"
			break
		}
		hours, err := strconv.ParseFloat(value, 64)
		if err != nil {
			modal.ErrMsg = "enter a number of hours"
			return m, nil
		}
		if err := m.mgr.SetTarget(m.ctx, modal.CategoryID, util.Ptr(hours)); err != nil {
			modal.ErrMsg = err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Target set to %s hours", value)

	case ModalDailyGoal:
		minutes, err := strconv.Atoi(value)
		if err != nil {
			modal.ErrMsg = "enter a number of minutes"
			return m, nil
		}
		if err := m.mgr.SetDailyGoal(m.ctx, minutes); err != nil {
			modal.ErrMsg = err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Daily goal set to %dm", minutes)

	case ModalDefaultTarget:
		if err := m.mgr.SetCurrentMode(m.ctx, value); err != nil {
			modal.ErrMsg = err.Error()
			return m, nil
		}
		m.status = "Default target set to " + value + " hours"
	}

	m.modal = nil
	return m, nil
}

func (m DashboardModel) updateManualModal(modal *ManualEntryState, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		modal.Focus = (modal.Focus + 1) % len(modal.Inputs)
		focusManualField(modal)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		modal.Focus = (modal.Focus + len(modal.Inputs) - 1) % len(modal.Inputs)
		focusManualField(modal)
		return m, nil
	case tea.KeyEnter:
		return m.submitManualModal(modal)
	}

	var cmd tea.Cmd
	modal.Inputs[modal.Focus], cmd = modal.Inputs[modal.Focus].Update(msg)
	return m, cmd
}

func focusManualField(modal *ManualEntryState) {
	for i := range modal.Inputs {
		if i == modal.Focus {
			modal.Inputs[i].Focus()
		} else {
			modal.Inputs[i].Blur()
		}
	}
}

func (m DashboardModel) submitManualModal(modal *ManualEntryState) (tea.Model, tea.Cmd) {
	cat, ok := m.selectedCategory()
	if !ok {
		modal.ErrMsg = "create a category first"
		return m, nil
	}
	hours := atoiOrZero(modal.Inputs[0].Value())
	minutes := atoiOrZero(modal.Inputs[1].Value())
	day, err := time.ParseInLocation(config.DateFormat, strings.TrimSpace(modal.Inputs[2].Value()), time.Local)
	if err != nil {
		modal.ErrMsg = "date must be YYYY-MM-DD"
		return m, nil
	}
	sess, err := m.mgr.AddManualSession(m.ctx, cat.ID, hours, minutes, day, modal.Inputs[3].Value())
	if err != nil {
		modal.ErrMsg = err.Error()
		return m, nil
	}
	m.modal = nil
	m.status = fmt.Sprintf("Added %s to %s", util.FormatDuration(sess.Duration), cat.Name)
	return m, nil
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
