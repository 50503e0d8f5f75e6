package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avezina/skilltrack/internal/auth"
	"github.com/avezina/skilltrack/internal/models"
)

// loginSuccessMsg is emitted when authentication completes.
type loginSuccessMsg struct {
	user *models.User
}

const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

// LoginModel is the sign-in / sign-up screen.
type LoginModel struct {
	svc         *auth.Service
	ctx         context.Context
	inputs      []textinput.Model
	focus       int
	registering bool
	errMsg      string
}

func NewLoginModel(ctx context.Context, svc *auth.Service) LoginModel {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 64
	name.Width = 30

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 128
	email.Width = 30
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	password.Width = 30

	return LoginModel{
		svc:    svc,
		ctx:    ctx,
		inputs: []textinput.Model{name, email, password},
		focus:  fieldEmail,
	}
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// fields returns the indexes visible in the current mode.
func (m LoginModel) fields() []int {
	if m.registering {
		return []int{fieldName, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			return m.cycleFocus(1), nil
		case tea.KeyShiftTab, tea.KeyUp:
			return m.cycleFocus(-1), nil
		case tea.KeyEnter:
			if m.focus == fieldPassword {
				return m.submit()
			}
			return m.cycleFocus(1), nil
		case tea.KeyCtrlR:
			m.registering = !m.registering
			m.errMsg = ""
			if !m.registering && m.focus == fieldName {
				return m.setFocus(fieldEmail), nil
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m LoginModel) cycleFocus(dir int) LoginModel {
	fields := m.fields()
	cur := 0
	for i, f := range fields {
		if f == m.focus {
			cur = i
			break
		}
	}
	next := fields[(cur+dir+len(fields))%len(fields)]
	return m.setFocus(next)
}

func (m LoginModel) setFocus(field int) LoginModel {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[field].Focus()
	m.focus = field
	return m
}

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	var user *models.User
	var err error
	if m.registering {
		user, err = m.svc.Register(m.ctx, m.inputs[fieldName].Value(), email, password)
	} else {
		user, err = m.svc.Login(m.ctx, email, password)
	}
	if err != nil {
		m.errMsg = err.Error()
		m.inputs[fieldPassword].SetValue("")
		return m, nil
	}
	return m, func() tea.Msg { return loginSuccessMsg{user: user} }
}

func (m LoginModel) View() string {
	var b strings.Builder
	t := CurrentTheme

	title := "Sign in"
	hint := "enter: submit  tab: next field  ctrl+r: create an account  ctrl+c: quit"
	if m.registering {
		title = "Create account"
		hint = "enter: submit  tab: next field  ctrl+r: back to sign in  ctrl+c: quit"
	}
	b.WriteString("\n  " + t.Header.Render("Skilltrack") + "  " + t.Dim.Render(title) + "\n\n")
	for _, f := range m.fields() {
		b.WriteString("  " + m.inputs[f].View() + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n  " + t.Error.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n  " + t.Dim.Render(hint) + "\n")
	b.WriteString("  " + t.Dim.Render(fmt.Sprintf("demo account: %s / demo123", auth.DemoEmail)) + "\n")
	return b.String()
}
