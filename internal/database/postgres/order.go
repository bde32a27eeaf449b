package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tillerhq/farmops/internal/domain"
)

// OrderRepository implements the order repository for PostgreSQL
type OrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `
	order_id, parent_id, is_recurring, order_type, status, customer,
	frequency, week_interval, start_date, end_date,
	last_generated_at, next_generation_date, active,
	harvest_date, delivery_date,
	billing_period, billing_period_start, billing_period_end,
	packaging, created_at, updated_at
`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var frequency, customer, billingPeriod *string
	var interval *int
	var packaging []byte

	err := row.Scan(
		&o.ID, &o.ParentID, &o.IsRecurring, &o.Type, &o.Status, &customer,
		&frequency, &interval, &o.StartDate, &o.EndDate,
		&o.LastGeneratedAt, &o.NextGenerationDate, &o.Active,
		&o.HarvestDate, &o.DeliveryDate,
		&billingPeriod, &o.BillingPeriodStart, &o.BillingPeriodEnd,
		&packaging, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if customer != nil {
		o.Customer = *customer
	}
	if frequency != nil {
		o.Frequency = domain.Frequency(*frequency)
	}
	if interval != nil {
		o.Interval = *interval
	}
	if billingPeriod != nil {
		o.BillingPeriod = *billingPeriod
	}
	if len(packaging) > 0 {
		if err := json.Unmarshal(packaging, &o.Packaging); err != nil {
			return nil, fmt.Errorf("failed to decode packaging: %w", err)
		}
	}

	return &o, nil
}

// GetTemplate retrieves a recurring template with its line items
func (r *OrderRepository) GetTemplate(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1 AND is_recurring = TRUE`

	template, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	if err := r.loadItems(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// GetActiveTemplates retrieves templates eligible for generation
func (r *OrderRepository) GetActiveTemplates(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE is_recurring = TRUE AND active = TRUE AND next_generation_date IS NOT NULL
		ORDER BY created_at`

	return r.queryOrders(ctx, query)
}

// ListTemplates retrieves all recurring templates
func (r *OrderRepository) ListTemplates(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE is_recurring = TRUE ORDER BY created_at`
	return r.queryOrders(ctx, query)
}

// GetGeneratedDeliveryDates returns materialized delivery dates for a template in [from, to]
func (r *OrderRepository) GetGeneratedDeliveryDates(ctx context.Context, templateID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT delivery_date FROM orders
		WHERE parent_id = $1 AND delivery_date BETWEEN $2 AND $3
		ORDER BY delivery_date`

	rows, err := r.db.Query(ctx, query, templateID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan delivery date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return dates, nil
}

// CreateGeneratedOrders persists a generation batch and the template
// bookkeeping atomically. A mid-batch failure rolls the whole unit back.
func (r *OrderRepository) CreateGeneratedOrders(ctx context.Context, templateID uuid.UUID, orders []domain.Order, lastGeneratedAt time.Time, nextGeneration *time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for i := range orders {
		if err := insertOrderTx(ctx, tx, &orders[i]); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE orders
		SET last_generated_at = $2,
		    next_generation_date = $3,
		    active = ($3 IS NOT NULL),
		    updated_at = NOW()
		WHERE order_id = $1`,
		templateID, lastGeneratedAt, nextGeneration)
	if err != nil {
		return fmt.Errorf("failed to update template bookkeeping: %w", err)
	}

	return tx.Commit(ctx)
}

func insertOrderTx(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
	packaging, err := json.Marshal(o.Packaging)
	if err != nil {
		return fmt.Errorf("failed to encode packaging: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			order_id, parent_id, is_recurring, order_type, status, customer,
			harvest_date, delivery_date,
			billing_period, billing_period_start, billing_period_end,
			packaging
		) VALUES ($1, $2, FALSE, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.ParentID, o.Type, o.Status, o.Customer,
		o.HarvestDate, o.DeliveryDate,
		o.BillingPeriod, o.BillingPeriodStart, o.BillingPeriodEnd,
		packaging)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_item_id, order_id, product, variation, grams, price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, o.ID, item.Product, item.Variation, item.Grams, item.Price)
		if err != nil {
			return fmt.Errorf("failed to insert line item: %w", err)
		}
	}

	return nil
}

// GetOrder retrieves one order with its line items
func (r *OrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrdersWithoutPlans returns generated orders up to the horizon that no plan references
func (r *OrderRepository) GetOrdersWithoutPlans(ctx context.Context, horizon time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders o
		WHERE o.parent_id IS NOT NULL
		  AND o.status = 'pending'
		  AND o.harvest_date <= $1
		  AND NOT EXISTS (
			SELECT 1 FROM crop_plans p WHERE o.order_id = ANY(p.order_ids)
		  )
		ORDER BY o.harvest_date`

	return r.queryOrders(ctx, query, horizon)
}

// GetOrdersByHarvestDate returns generated orders harvesting on a date
func (r *OrderRepository) GetOrdersByHarvestDate(ctx context.Context, date time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE parent_id IS NOT NULL AND harvest_date = $1
		ORDER BY created_at`

	return r.queryOrders(ctx, query, date)
}

// UpdateOrderStatus sets the delivery-lifecycle status of an order
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $2, updated_at = NOW() WHERE order_id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	return nil
}

// DeactivateTemplate stops future generation for a template
func (r *OrderRepository) DeactivateTemplate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET active = FALSE, next_generation_date = NULL, updated_at = NOW()
		WHERE order_id = $1 AND is_recurring = TRUE`,
		id)
	if err != nil {
		return fmt.Errorf("failed to deactivate template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, id)
	}
	return nil
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, o *domain.Order) error {
	rows, err := r.db.Query(ctx, `
		SELECT order_item_id, order_id, product, variation, grams, price
		FROM order_items WHERE order_id = $1`, o.ID)
	if err != nil {
		return fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.LineItem
		var variation *string
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Product, &variation, &item.Grams, &item.Price); err != nil {
			return fmt.Errorf("failed to scan line item: %w", err)
		}
		if variation != nil {
			item.Variation = *variation
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}
