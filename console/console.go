// Package console is the interactive command dispatcher.
//
// The dispatcher reads one line at a time, resolves it to a command of the
// registry and waits for the command to finish before reading the next
// line. Commands may read their own lines from the same input, so only one
// interactive loop is active at a time.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	pkgerr "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dialogs/console-exporter/command"
	"github.com/dialogs/console-exporter/metric"
)

const (
	Prompt         = "~> "
	MsgUnknown     = "Unknown command"
	MsgInputClosed = "Console input closed"
	MsgStopped     = "Console task stopped"
)

// Option of the console
type Option func(*Console)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBanner sets the first line of the welcome banner
func WithBanner(banner string) Option {
	return func(c *Console) {
		c.banner = banner
	}
}

// WithIssuedCounter sets the counter incremented for every entered command,
// known or not
func WithIssuedCounter(name string) Option {
	return func(c *Console) {
		c.issued = name
	}
}

// A Console dispatches input lines to commands
type Console struct {
	state

	in       LineReader
	out      io.Writer
	commands *command.Registry
	metrics  metric.IMutator
	logger   *zap.Logger

	banner string
	issued string
}

// New creates a console
func New(in LineReader, out io.Writer, commands *command.Registry, metrics metric.IMutator, opts ...Option) *Console {

	c := &Console{
		in:       in,
		out:      out,
		commands: commands,
		metrics:  metrics,
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With(zap.String("session", uuid.NewString()))

	return c
}

// Run reads and dispatches lines until the context is done or the exit
// command is entered. A cancelled context is a normal stop: Run returns nil.
// The exit command makes Run return command.ErrExit.
func (c *Console) Run(ctx context.Context) error {

	c.setState(StateIdle)
	c.logger.Info("console started")

	if c.banner != "" {
		c.Println(c.banner)
	}
	c.Println("Commands:", strings.Join(c.commands.Names(), " "))

	for {
		c.setState(StateAwaitingLine)
		c.Printf(Prompt)

		line, err := c.ReadLine(ctx)
		if err != nil {
			return c.stop(ctx, err)
		}

		c.setState(StateDispatching)
		if err := c.dispatch(ctx, line); err != nil {
			return c.stop(ctx, err)
		}
	}
}

// ReadLine returns the next trimmed input line (command.Session implementation)
func (c *Console) ReadLine(ctx context.Context) (string, error) {

	line, err := c.in.ReadLine(ctx)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// Println writes to the console output (command.Session implementation)
func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes to the console output (command.Session implementation)
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) dispatch(ctx context.Context, line string) error {

	c.Println("Execution command:", line)

	if c.issued != "" {
		if err := c.metrics.Inc(c.issued); err != nil {
			c.logger.Error("failed to count command", zap.Error(err))
		}
	}

	cmd, ok := c.commands.Lookup(line)
	if !ok {
		c.Println(MsgUnknown)
		return nil
	}

	c.logger.Debug("run command", zap.String("command", cmd.Name))

	err := cmd.Handler(ctx, c)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil, errors.Is(err, command.ErrExit), errors.Is(err, io.EOF):
		return err
	}

	c.logger.Error("command failed", zap.String("command", cmd.Name), zap.Error(err))
	c.Println("Error:", err)

	return nil
}

func (c *Console) stop(ctx context.Context, err error) error {

	switch {
	case ctx.Err() != nil:
		c.finalize()
		return nil

	case errors.Is(err, command.ErrExit):
		c.setState(StateTerminated)
		c.logger.Info("console exit")
		return err

	case errors.Is(err, io.EOF):
		c.setState(StateInputClosed)
		c.Println()
		c.Println(MsgInputClosed)
		c.logger.Info("console input closed")

		<-ctx.Done()
		c.finalize()
		return nil
	}

	c.setState(StateTerminated)
	c.logger.Error("console failed", zap.Error(err))

	return pkgerr.Wrap(err, "console input")
}

func (c *Console) finalize() {
	c.setState(StateCancelled)
	c.Println()
	c.Println(MsgStopped)
	c.logger.Info("console stopped")
}
