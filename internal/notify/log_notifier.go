package notify

import (
	"context"

	"github.com/tillerhq/farmops/internal/logger"
)

// LogNotifier writes reminders to the log. It stands in for a real delivery
// backend in development and keeps the sweep observable without one.
type LogNotifier struct{}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the message once per recipient. It never fails.
func (n *LogNotifier) Notify(ctx context.Context, recipients []string, msg Message) []Result {
	log := logger.FromContext(ctx)

	results := make([]Result, 0, len(recipients))
	for _, r := range recipients {
		log.Info("reminder", "recipient", r, "subject", msg.Subject, "body", msg.Body)
		results = append(results, Result{Recipient: r})
	}
	return results
}
