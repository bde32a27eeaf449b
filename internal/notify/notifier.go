// Package notify is the port to the external notification-delivery
// capability. Delivery mechanics (email, push) live outside this core; the
// contract here is per-recipient results with no batch abort.
package notify

import (
	"context"
)

// Message is one reminder payload
type Message struct {
	Subject string
	Body    string
}

// Result is the delivery outcome for a single recipient
type Result struct {
	Recipient string
	Err       error
}

// Notifier delivers a message to a set of recipients. Implementations must
// attempt every recipient: a failure for one is recorded in its Result and
// must not abort delivery to the others.
type Notifier interface {
	Notify(ctx context.Context, recipients []string, msg Message) []Result
}

// FailedCount counts the failures in a result set
func FailedCount(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
