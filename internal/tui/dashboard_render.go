package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/avezina/skilltrack/internal/util"
)

const historyPageSize = 10

func (m DashboardModel) View() string {
	t := CurrentTheme

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.tab {
	case TabTimer:
		b.WriteString(m.renderTimer())
	case TabProgress:
		b.WriteString(m.renderProgress())
	case TabHistory:
		b.WriteString(m.renderHistory())
	case TabSettings:
		b.WriteString(m.renderSettings())
	}

	if m.modal != nil {
		b.WriteString("\n" + m.renderModal())
	}

	if m.errMsg != "" {
		b.WriteString("\n" + t.Error.Render(m.errMsg))
	} else if m.status != "" {
		b.WriteString("\n" + t.Success.Render(m.status))
	}
	b.WriteString("\n" + m.renderFooter())

	return t.Base.Render(b.String())
}

func (m DashboardModel) renderHeader() string {
	t := CurrentTheme
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs = append(tabs, t.ActiveTab.Render(name))
		} else {
			tabs = append(tabs, t.Tab.Render(name))
		}
	}
	title := t.Header.Render("Skilltrack") + "  " + t.Dim.Render(m.user.Name)
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m DashboardModel) renderTimer() string {
	t := CurrentTheme
	var b strings.Builder

	active := m.mgr.Active()
	if active != nil {
		name := m.mgr.CategoryName(active.CategoryID)
		clock := FormatElapsed(m.mgr.ElapsedNow())
		if active.IsPaused {
			b.WriteString(fmt.Sprintf("  %s  %s  %s\n\n",
				t.Paused.Render("PAUSED"), t.Timer.Render(clock), t.Value.Render(name)))
		} else {
			b.WriteString(fmt.Sprintf("  %s  %s\n\n", t.Timer.Render(clock), t.Value.Render(name)))
		}
	} else {
		b.WriteString("  " + t.Dim.Render("No session running") + "\n\n")
	}

	cats := m.mgr.Categories()
	if len(cats) == 0 {
		b.WriteString("  " + t.Dim.Render("No categories yet. Press n to create one.") + "\n")
		return b.String()
	}
	for i, c := range cats {
		cursor := "  "
		style := t.Value
		if i == m.focusedCat {
			cursor = "> "
			style = t.Focused
		}
		today := m.mgr.TodayTotal(c.ID)
		line := fmt.Sprintf("%s%-20s %s today", cursor, c.Name, util.FormatDuration(today))
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

func (m DashboardModel) renderProgress() string {
	t := CurrentTheme
	var b strings.Builder

	s := m.mgr.Settings()
	streak := m.mgr.CalculateStreak()
	b.WriteString("  " + t.Value.Render(FormatStreak(streak.Current, streak.Best)) + "\n")
	b.WriteString("  " + t.Value.Render(FormatGoal(m.mgr.TodayTotal(""), s.DailyGoalMinutes)) + "\n")
	b.WriteString("  " + t.Value.Render("This week: "+util.FormatDuration(m.mgr.WeeklyTotal())) + "\n\n")

	for _, c := range m.mgr.Categories() {
		hours := m.mgr.CategoryTotalHours(c.ID, true)
		target := m.mgr.TargetHours(c)
		pct := 0.0
		if target > 0 {
			pct = hours / target
			if pct > 1 {
				pct = 1
			}
		}
		b.WriteString("  " + t.Label.Render(c.Name) + "\n")
		b.WriteString("  " + m.progressBar.ViewAs(pct) + "  " +
			t.Dim.Render(FormatTargetProgress(hours, target)) + "\n")
	}
	return b.String()
}

func (m DashboardModel) renderHistory() string {
	t := CurrentTheme
	sessions := m.mgr.Sessions()
	if len(sessions) == 0 {
		return "  " + t.Dim.Render("No sessions recorded yet.") + "\n"
	}

	var b strings.Builder
	// Newest first.
	start := m.historyPage * historyPageSize
	shown := 0
	for i := len(sessions) - 1; i >= 0; i-- {
		idx := len(sessions) - 1 - i
		if idx < start {
			continue
		}
		if shown == historyPageSize {
			break
		}
		s := sessions[i]
		kind := " "
		if s.IsTask {
			kind = "+"
		}
		line := fmt.Sprintf("  %s %s  %-20s %8s  %s",
			kind, s.Date, m.mgr.CategoryName(s.CategoryID), util.FormatDuration(s.Duration), s.Notes)
		b.WriteString(t.Value.Render(truncate(line, m.contentWidth())) + "\n")
		shown++
	}
	pages := (len(sessions) + historyPageSize - 1) / historyPageSize
	b.WriteString("\n  " + t.Dim.Render(fmt.Sprintf("page %d/%d", m.historyPage+1, pages)) + "\n")
	return b.String()
}

func (m DashboardModel) renderSettings() string {
	t := CurrentTheme
	s := m.mgr.Settings()

	theme := "light"
	if s.DarkMode {
		theme = "dark"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s %s\n", t.Label.Render("Daily goal:"), t.Value.Render(fmt.Sprintf("%d minutes", s.DailyGoalMinutes))))
	b.WriteString(fmt.Sprintf("  %s %s\n", t.Label.Render("Default target:"), t.Value.Render(s.CurrentMode+" hours")))
	b.WriteString(fmt.Sprintf("  %s %s\n", t.Label.Render("Theme:"), t.Value.Render(theme)))
	b.WriteString(fmt.Sprintf("  %s %s\n", t.Label.Render("Signed in as:"), t.Value.Render(m.user.Email)))
	b.WriteString(fmt.Sprintf("  %s %s\n", t.Label.Render("Exports:"), t.Value.Render(m.exportDir)))
	return b.String()
}

func (m DashboardModel) renderModal() string {
	t := CurrentTheme

	switch modal := m.modal.(type) {
	case *ConfirmShortState:
		return t.Input.Render("Session is under a second. Save it anyway? (y/n)")
	case *ConfirmDeleteState:
		return t.Input.Render(fmt.Sprintf(
			"Delete %s and its %d sessions? This cannot be undone. (y/n)",
			modal.CategoryName, modal.SessionCount))
	case *InputState:
		body := modalTitle(modal.Kind) + "\n" + modal.Input.View()
		if modal.ErrMsg != "" {
			body += "\n" + t.Error.Render(modal.ErrMsg)
		}
		return t.Input.Render(body)
	case *ManualEntryState:
		labels := []string{"Hours", "Minutes", "Date", "Notes"}
		var rows []string
		for i, in := range modal.Inputs {
			rows = append(rows, fmt.Sprintf("%-8s %s", labels[i], in.View()))
		}
		body := "Add practice time\n" + strings.Join(rows, "\n")
		if modal.ErrMsg != "" {
			body += "\n" + t.Error.Render(modal.ErrMsg)
		}
		return t.Input.Render(body)
	}
	return ""
}

func modalTitle(kind ModalType) string {
	switch kind {
	case ModalNewCategory:
		return "New category"
	case ModalRenameCategory:
		return "Rename category"
	case ModalTargetHours:
		return "Target hours"
	case ModalDailyGoal:
		return "Daily goal (minutes)"
	case ModalDefaultTarget:
		return "Default target hours"
	}
	return ""
}

func (m DashboardModel) renderFooter() string {
	t := CurrentTheme
	var keys string
	switch m.tab {
	case TabTimer:
		keys = "s start  p pause/resume  e end  n new  r rename  d delete  t target  m manual  tab switch  q quit"
	case TabProgress:
		keys = "tab switch  q quit"
	case TabHistory:
		keys = "j/k scroll  tab switch  q quit"
	case TabSettings:
		keys = "g goal  o target  d theme  x json  c csv  p pdf  L logout  q quit"
	}
	return t.Dim.Render(truncate(keys, m.contentWidth()))
}

func (m DashboardModel) contentWidth() int {
	if m.width == 0 {
		return 100
	}
	return m.width - 4
}

// truncate cuts a line to the given display width, ANSI-aware.
func truncate(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width-1, "…")
}
