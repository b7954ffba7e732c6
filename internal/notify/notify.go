// Package notify delivers phase-completion notifications to the user.
package notify

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/alexanderramin/tomato/internal/domain"
)

// ErrUnavailable is returned when a notification channel cannot be used
// on this system.
var ErrUnavailable = errors.New("notifications unavailable")

const Title = "Pomodoro Timer"

// Message returns the notification body for a finished phase.
func Message(finished domain.Phase) string {
	if finished == domain.PhaseWork {
		return "Work session completed! Time for a break."
	}
	return "Break time is over! Ready to work?"
}

// Sender is one delivery channel.
type Sender interface {
	Send(title, body string) error
}

// Notifier fans a completion out to every configured Sender. Failures are
// logged and never returned; a missing channel must not stop the timer.
type Notifier struct {
	senders []Sender
	logger  *slog.Logger
}

func New(logger *slog.Logger, senders ...Sender) *Notifier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Notifier{senders: senders, logger: logger}
}

func (n *Notifier) Notify(finished domain.Phase) {
	body := Message(finished)
	for _, s := range n.senders {
		if err := s.Send(Title, body); err != nil {
			n.logger.Warn("notification failed", "phase", finished, "sender", fmt.Sprintf("%T", s), "error", err)
		}
	}
}

// Bell writes the terminal bell character.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Send(string, string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.w, "\a"); err != nil {
		return fmt.Errorf("ringing bell: %w", err)
	}
	return nil
}

// Line prints "title: body" to w. The headless runner uses it so
// completions show up in its transcript.
type Line struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLine(w io.Writer) *Line {
	return &Line{w: w}
}

func (l *Line) Send(title, body string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintf(l.w, "%s: %s\n", title, body)
	return err
}
