package timer

import "github.com/alexanderramin/tomato/internal/domain"

// Presenter receives display state from the controller. Implementations
// render; they must not call back into the controller synchronously.
type Presenter interface {
	// Render is called on every tick and after every phase switch or reset.
	Render(phase domain.Phase, remainingSeconds int)
	// RunningChanged is called whenever the countdown starts or stops.
	RunningChanged(running bool)
	// Completed is called when a phase ends, naturally or by skip.
	Completed(phase domain.Phase)
}

// Notifier alerts the user that a phase ran to completion.
type Notifier interface {
	Notify(phase domain.Phase)
}

// StatsRecorder counts finished sessions.
type StatsRecorder interface {
	RecordCompletion(phase domain.Phase)
}

// NoopPresenter discards all display updates.
type NoopPresenter struct{}

func (NoopPresenter) Render(domain.Phase, int) {}
func (NoopPresenter) RunningChanged(bool)      {}
func (NoopPresenter) Completed(domain.Phase)   {}

// NoopNotifier discards notifications.
type NoopNotifier struct{}

func (NoopNotifier) Notify(domain.Phase) {}
