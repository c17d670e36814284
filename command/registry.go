package command

import (
	"context"
	"iter"
	"sort"

	pkgerr "github.com/pkg/errors"
)

const (
	NameHelp = "help"
	NameExit = "exit"
)

// A Builder collects commands before the registry is created
type Builder struct {
	commands map[string]Command
	err      error
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{
		commands: make(map[string]Command),
	}
}

// Add declares a command. The first duplicate name is reported by Build.
func (b *Builder) Add(name, description string, h Handler) *Builder {

	if b.err != nil {
		return b
	}

	if _, ok := b.commands[name]; ok {
		b.err = pkgerr.Wrapf(ErrDuplicateCommand, "command %q", name)
		return b
	}

	b.commands[name] = Command{
		Name:        name,
		Description: description,
		Handler:     h,
	}

	return b
}

// Build adds the help and exit commands and creates the registry
func (b *Builder) Build() (*Registry, error) {

	r := &Registry{}

	b.Add(NameHelp, "This help.", r.help)
	b.Add(NameExit, "Exit command.", exit)

	if b.err != nil {
		return nil, b.err
	}

	r.commands = make(map[string]Command, len(b.commands))
	r.names = make([]string, 0, len(b.commands))
	for name, cmd := range b.commands {
		r.commands[name] = cmd
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)

	return r, nil
}

// A Registry of the commands. Read only.
type Registry struct {
	commands map[string]Command
	names    []string
}

// Lookup returns the command by name
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the sorted command names
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// All iterates over names and descriptions sorted by name
func (r *Registry) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range r.names {
			if !yield(name, r.commands[name].Description) {
				return
			}
		}
	}
}

func (r *Registry) help(_ context.Context, s Session) error {

	s.Println("Available commands:")
	for name, desc := range r.All() {
		s.Printf(" %s - %s\n", name, desc)
	}

	return nil
}

func exit(context.Context, Session) error {
	return ErrExit
}
