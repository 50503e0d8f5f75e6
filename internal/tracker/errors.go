package tracker

import "errors"

var (
	ErrAlreadyRunning  = errors.New("a session is already running")
	ErrInvalidCategory = errors.New("unknown category")
	ErrDuplicateName   = errors.New("a category with this name already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrShortSession    = errors.New("session is shorter than one second")
)
