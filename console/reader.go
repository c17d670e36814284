package console

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/muesli/cancelreader"
	pkgerr "github.com/pkg/errors"
	"go.uber.org/zap"
)

// LineReader is the input of the console
type LineReader interface {
	// ReadLine waits for the next line. It returns ctx.Err() when the
	// context is done first and io.EOF when the input is over.
	ReadLine(ctx context.Context) (string, error)
}

// A Reader splits the source into lines in a background goroutine.
//
// Lines are handed over through an unbuffered channel, so a line is only
// taken from the source when somebody waits for it and nothing is
// consumed after the caller's context is done.
type Reader struct {
	src   io.Reader
	lines chan string
	done  chan struct{}
	err   error

	start sync.Once
	stop  sync.Once
}

// NewReader creates a line reader for the source
func NewReader(src io.Reader) *Reader {
	return &Reader{
		src:   src,
		lines: make(chan string),
		done:  make(chan struct{}),
	}
}

// NewStdinReader creates a line reader for the standard input.
// Close interrupts a pending read of a terminal or a pipe. Regular files
// and /dev/null can't be polled, they are read directly: such reads end
// with EOF instead of blocking.
func NewStdinReader(l *zap.Logger) *Reader {

	src, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		if l != nil {
			l.Warn("stdin is not cancellable, read it directly", zap.Error(err))
		}

		return NewReader(os.Stdin)
	}

	return NewReader(src)
}

// ReadLine returns the next line without the line break
func (r *Reader) ReadLine(ctx context.Context) (string, error) {

	r.start.Do(func() { go r.scan() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()

	case <-r.done:
		return "", io.EOF

	case line, ok := <-r.lines:
		if !ok {
			return "", r.err
		}
		return line, nil
	}
}

// Close stops the reader
func (r *Reader) Close() error {

	r.stop.Do(func() {
		close(r.done)

		if c, ok := r.src.(cancelreader.CancelReader); ok {
			c.Cancel()
		}
	})

	return nil
}

func (r *Reader) scan() {

	defer close(r.lines)

	scanner := bufio.NewScanner(r.src)
	for scanner.Scan() {
		select {
		case r.lines <- scanner.Text():
		case <-r.done:
			r.err = io.EOF
			return
		}
	}

	r.err = scanner.Err()
	if r.err == nil || pkgerr.Cause(r.err) == cancelreader.ErrCanceled {
		r.err = io.EOF
	}
}
