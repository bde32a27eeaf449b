package metrics

import (
	"context"

	"github.com/tillerhq/farmops/internal/event"
)

// RegisterEventHandlers wires pipeline events to the counters that are not
// incremented at the point of action. Stage-task and reminder counters live
// with their services; generation and derivation count through the bus.
func RegisterEventHandlers(bus event.Bus) {
	bus.Subscribe(event.OrderGenerated, func(ctx context.Context, e event.Event) error {
		if p, ok := e.Payload.(event.OrderGeneratedPayloadV1); ok {
			OrdersGenerated.WithLabelValues(string(p.OrderType)).Inc()
		}
		return nil
	})

	bus.Subscribe(event.PlanCreated, func(ctx context.Context, e event.Event) error {
		if p, ok := e.Payload.(event.PlanPayloadV1); ok {
			PlansDerived.WithLabelValues(p.RecipeName).Inc()
		}
		return nil
	})

	bus.Subscribe(event.PlanUpdated, func(ctx context.Context, e event.Event) error {
		if p, ok := e.Payload.(event.PlanPayloadV1); ok {
			PlansDerived.WithLabelValues(p.RecipeName).Inc()
		}
		return nil
	})

}
