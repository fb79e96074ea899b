package scheduler

import (
	"context"

	"github.com/acework2u/ai-smart-plants/internal/domain"
	"github.com/acework2u/ai-smart-plants/internal/logger"
)

// LogNotifier writes planned batches to the log. It stands in for a real
// delivery transport, which is wired in from outside the core.
type LogNotifier struct{}

// Notify logs every reminder in the batch.
func (LogNotifier) Notify(ctx context.Context, batch domain.ReminderBatch) error {
	for _, reminder := range batch.Reminders {
		logger.Info("Reminder due",
			"plant_id", reminder.PlantID,
			"kind", reminder.Kind,
			"message", reminder.Message,
		)
	}
	return nil
}
