package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

type ModalType int

const (
	ModalNone ModalType = iota
	ModalConfirmShort
	ModalConfirmDelete
	ModalNewCategory
	ModalRenameCategory
	ModalTargetHours
	ModalManualEntry
	ModalDailyGoal
	ModalDefaultTarget
)

// ModalState is the state carried by an open modal.
type ModalState interface {
	Type() ModalType
}

// ConfirmShortState asks whether a sub-second session should be kept.
type ConfirmShortState struct{}

func (*ConfirmShortState) Type() ModalType { return ModalConfirmShort }

// ConfirmDeleteState asks before cascading a category delete.
type ConfirmDeleteState struct {
	CategoryID   string
	CategoryName string
	SessionCount int
}

func (*ConfirmDeleteState) Type() ModalType { return ModalConfirmDelete }

// InputState is a single-field text modal shared by category create,
// rename, target hours, daily goal and default target.
type InputState struct {
	Kind       ModalType
	CategoryID string
	Input      textinput.Model
	ErrMsg     string
}

func (s *InputState) Type() ModalType { return s.Kind }

func newInputModal(kind ModalType, placeholder, initial string) *InputState {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 30
	ti.SetValue(initial)
	ti.Focus()
	return &InputState{Kind: kind, Input: ti}
}

// ManualEntryState is the add-hours-by-hand form.
type ManualEntryState struct {
	Inputs []textinput.Model // hours, minutes, date, notes
	Focus  int
	ErrMsg string
}

func (*ManualEntryState) Type() ModalType { return ModalManualEntry }

func newManualEntryModal(today string) *ManualEntryState {
	hours := textinput.New()
	hours.Placeholder = "Hours"
	hours.CharLimit = 2
	hours.Width = 6
	hours.Focus()

	minutes := textinput.New()
	minutes.Placeholder = "Minutes"
	minutes.CharLimit = 2
	minutes.Width = 6

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	date.Width = 12
	date.SetValue(today)

	notes := textinput.New()
	notes.Placeholder = "Notes (optional)"
	notes.CharLimit = 200
	notes.Width = 40

	return &ManualEntryState{Inputs: []textinput.Model{hours, minutes, date, notes}}
}
