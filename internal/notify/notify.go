// Package notify delivers transient user-visible messages. The HTTP pipeline
// reports request failures through a Notifier so the transport layer never
// writes to the terminal directly.
package notify

import (
	"fmt"
	"io"
	"os"
)

// Notifier shows a transient message to the user.
type Notifier interface {
	Error(message string)
}

// Terminal prints notifications to a writer, one per line.
type Terminal struct {
	Out io.Writer
}

// NewTerminal creates a Terminal notifier writing to stderr.
func NewTerminal() *Terminal {
	return &Terminal{Out: os.Stderr}
}

func (t *Terminal) Error(message string) {
	fmt.Fprintf(t.Out, "✗ %s\n", message)
}

// Recorder captures notifications for tests.
type Recorder struct {
	Messages []string
}

func (r *Recorder) Error(message string) {
	r.Messages = append(r.Messages, message)
}
