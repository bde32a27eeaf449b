package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tillerhq/farmops/internal/domain"
)

// Order defines persistence operations for templates and generated orders
type Order interface {
	// GetTemplate fetches a recurring template with its line items.
	GetTemplate(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// GetActiveTemplates returns the recurring templates eligible for
	// generation (active, not exhausted).
	GetActiveTemplates(ctx context.Context) ([]domain.Order, error)

	// ListTemplates returns all recurring templates, active or not.
	ListTemplates(ctx context.Context) ([]domain.Order, error)

	// GetGeneratedDeliveryDates returns the delivery dates already
	// materialized for a template within [from, to]. The generator uses
	// this for its idempotency check.
	GetGeneratedDeliveryDates(ctx context.Context, templateID uuid.UUID, from, to time.Time) ([]time.Time, error)

	// CreateGeneratedOrders persists a batch of generated orders together
	// with the template's generation bookkeeping (last-generated-at,
	// next-generation-date) in a single transaction. nextGeneration nil
	// marks the template exhausted.
	CreateGeneratedOrders(ctx context.Context, templateID uuid.UUID, orders []domain.Order, lastGeneratedAt time.Time, nextGeneration *time.Time) error

	// GetOrder fetches one order with its line items.
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// GetOrdersWithoutPlans returns generated orders up to the horizon that
	// no crop plan references yet.
	GetOrdersWithoutPlans(ctx context.Context, horizon time.Time) ([]domain.Order, error)

	// GetOrdersByHarvestDate returns generated orders harvesting on a date.
	GetOrdersByHarvestDate(ctx context.Context, date time.Time) ([]domain.Order, error)

	// UpdateOrderStatus sets the delivery-lifecycle status of an order.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error

	// DeactivateTemplate stops future generation for a template.
	DeactivateTemplate(ctx context.Context, id uuid.UUID) error
}
