package command

import "errors"

var (
	// ErrSyntax indicates an argument count or shape mismatch at the
	// command boundary.
	ErrSyntax = errors.New("command: syntax error")
	// ErrExit is returned by Execute when the session should end.
	ErrExit = errors.New("command: exit")
)
