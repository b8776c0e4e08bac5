package convert

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Notifier receives the transient notices a Form produces.
type Notifier interface {
	Info(msg string)
	Error(msg string)
	Success(msg string)
}

// ZapNotifier forwards notices to a structured logger.
type ZapNotifier struct {
	log *zap.Logger
}

func NewZapNotifier(l *zap.Logger) *ZapNotifier {
	return &ZapNotifier{log: l}
}

func (n *ZapNotifier) Info(msg string) {
	n.log.Info("notice", zap.String("text", msg))
}

func (n *ZapNotifier) Error(msg string) {
	n.log.Warn("notice", zap.String("text", msg), zap.Bool("error", true))
}

func (n *ZapNotifier) Success(msg string) {
	n.log.Info("notice", zap.String("text", msg), zap.Bool("success", true))
}

// WriterNotifier prints notices one per line, for terminals.
type WriterNotifier struct {
	w io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Info(msg string) {
	fmt.Fprintf(n.w, "note: %s\n", msg)
}

func (n *WriterNotifier) Error(msg string) {
	fmt.Fprintf(n.w, "error: %s\n", msg)
}

func (n *WriterNotifier) Success(msg string) {
	fmt.Fprintf(n.w, "ok: %s\n", msg)
}

// Notifiers fans every notice out to each of its members in order.
type Notifiers []Notifier

func (ns Notifiers) Info(msg string) {
	for _, n := range ns {
		n.Info(msg)
	}
}

func (ns Notifiers) Error(msg string) {
	for _, n := range ns {
		n.Error(msg)
	}
}

func (ns Notifiers) Success(msg string) {
	for _, n := range ns {
		n.Success(msg)
	}
}
