// Package command is the registry of the console commands.
//
// Commands are declared explicitly with a name, a description and a
// handler, collected by a Builder at startup and never changed afterwards.
package command

import (
	"context"
	"errors"
)

var (
	ErrDuplicateCommand = errors.New("duplicate command")

	// ErrExit is returned by the exit command to stop the process
	ErrExit = errors.New("exit")
)

// Session is the console seen by a command handler
type Session interface {
	// ReadLine waits for the next input line. The line is trimmed.
	ReadLine(ctx context.Context) (string, error)

	Println(a ...interface{})
	Printf(format string, a ...interface{})
}

// Handler runs a command. It may read its own lines from the session.
type Handler func(ctx context.Context, s Session) error

// A Command of the console
type Command struct {
	Name        string
	Description string
	Handler     Handler
}
