package reminder

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	identifierPrefix = "staircircuit.reminder"
	maxScheduled     = 500
)

// Notification is a single one-shot local alert handed to a dispatcher.
type Notification struct {
	ID       string
	Title    string
	Body     string
	DeepLink string
	FireAt   time.Time
}

// Dispatcher registers and cancels one-shot notifications. The platform
// notification service sits behind this interface.
type Dispatcher interface {
	Register(n Notification) error
	Cancel(ids []string)
}

// LogDispatcher is the default dispatcher for headless runs: it only records
// what would have been scheduled.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Register(n Notification) error {
	d.logger.Info("reminder registered",
		slog.String("id", n.ID),
		slog.Time("fire_at", n.FireAt),
	)
	return nil
}

func (d *LogDispatcher) Cancel(ids []string) {
	d.logger.Debug("reminders cancelled", slog.Int("count", len(ids)))
}

func reminderIdentifier(index int) string {
	return fmt.Sprintf("%s.%d", identifierPrefix, index)
}

// sweepIdentifiers lists every identifier a previous batch may have used.
// Cancellation always sweeps the whole range instead of tracking batch sizes.
func sweepIdentifiers() []string {
	ids := make([]string, 0, maxScheduled)
	for i := range maxScheduled {
		ids = append(ids, reminderIdentifier(i))
	}
	return ids
}
