package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tillerhq/farmops/internal/domain"
)

// EventSchemaVersion is stamped on every event for downstream decoding.
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Pipeline event types
const (
	OrderGenerated   Type = "order.generated"
	PlanCreated      Type = "plan.created"
	PlanUpdated      Type = "plan.updated"
	CropStageChanged Type = "crop.stage_changed"
	ReminderSent     Type = "reminder.sent"
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"`
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// OrderGeneratedPayloadV1 is the typed payload for order generation events
type OrderGeneratedPayloadV1 struct {
	OrderID       uuid.UUID          `json:"order_id"`
	TemplateID    uuid.UUID          `json:"template_id"`
	OrderType     domain.OrderType   `json:"order_type"`
	DeliveryDate  time.Time          `json:"delivery_date"`
	Status        domain.OrderStatus `json:"status"`
	BillingPeriod string             `json:"billing_period"`
}

// PlanPayloadV1 is the typed payload for plan creation/update events
type PlanPayloadV1 struct {
	PlanID      uuid.UUID `json:"plan_id"`
	RecipeName  string    `json:"recipe_name"`
	HarvestDate time.Time `json:"harvest_date"`
	TraysNeeded int       `json:"trays_needed"`
}

// CropStageChangedPayloadV1 is the typed payload for stage transitions
type CropStageChangedPayloadV1 struct {
	CropID   uuid.UUID        `json:"crop_id"`
	From     domain.CropStage `json:"from"`
	To       domain.CropStage `json:"to"`
	Rollback bool             `json:"rollback"`
}

// ReminderSentPayloadV1 is the typed payload for monitor reminders
type ReminderSentPayloadV1 struct {
	Category  string `json:"category"`
	Resource  string `json:"resource"`
	Reference string `json:"reference"`
}

// NewOrderGeneratedEvent creates an order.generated event
func NewOrderGeneratedEvent(o *domain.Order) Event {
	var templateID uuid.UUID
	if o.ParentID != nil {
		templateID = *o.ParentID
	}
	var delivery time.Time
	if o.DeliveryDate != nil {
		delivery = *o.DeliveryDate
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    OrderGenerated,
		Payload: OrderGeneratedPayloadV1{
			OrderID:       o.ID,
			TemplateID:    templateID,
			OrderType:     o.Type,
			DeliveryDate:  delivery,
			Status:        o.Status,
			BillingPeriod: o.BillingPeriod,
		},
	}
}

// NewPlanEvent creates a plan.created or plan.updated event
func NewPlanEvent(t Type, p *domain.CropPlan) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: PlanPayloadV1{
			PlanID:      p.ID,
			RecipeName:  p.RecipeName,
			HarvestDate: p.HarvestDate,
			TraysNeeded: p.TraysNeeded,
		},
	}
}

// NewCropStageChangedEvent creates a crop.stage_changed event
func NewCropStageChangedEvent(cropID uuid.UUID, from, to domain.CropStage, rollback bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CropStageChanged,
		Payload: CropStageChangedPayloadV1{
			CropID:   cropID,
			From:     from,
			To:       to,
			Rollback: rollback,
		},
	}
}

// NewReminderSentEvent creates a reminder.sent event
func NewReminderSentEvent(category, resource, reference string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ReminderSent,
		Payload: ReminderSentPayloadV1{
			Category:  category,
			Resource:  resource,
			Reference: reference,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// one handler's error does not stop the others.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
