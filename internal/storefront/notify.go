package storefront

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Notifier shows transient, non-blocking messages to the shopper.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// WriterNotifier prints notifications as single lines.
type WriterNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriterNotifier(out io.Writer) *WriterNotifier {
	return &WriterNotifier{out: out}
}

func (n *WriterNotifier) Success(msg string) { n.write("✔", msg) }

func (n *WriterNotifier) Error(msg string) { n.write("✖", msg) }

func (n *WriterNotifier) write(mark, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.out, "%s %s\n", mark, msg)
}

// LogNotifier records notifications in the structured log.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(msg string) { n.log.Info("notification", zap.String("message", msg)) }

func (n *LogNotifier) Error(msg string) { n.log.Warn("notification", zap.String("message", msg)) }

// Notifiers fans each notification out to every member.
type Notifiers []Notifier

func (ns Notifiers) Success(msg string) {
	for _, n := range ns {
		n.Success(msg)
	}
}

func (ns Notifiers) Error(msg string) {
	for _, n := range ns {
		n.Error(msg)
	}
}
