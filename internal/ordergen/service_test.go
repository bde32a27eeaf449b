package ordergen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tillerhq/farmops/internal/billing"
	"github.com/tillerhq/farmops/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(repo *MockOrderRepository, now time.Time) *service {
	return &service{
		repo:    repo,
		periods: billing.NewRegistry(),
		cfg:     DefaultConfig(),
		now:     func() time.Time { return now },
	}
}

func weeklyTemplate(start time.Time) *domain.Order {
	startDate := start
	return &domain.Order{
		ID:          uuid.New(),
		IsRecurring: true,
		Active:      true,
		Type:        domain.OrderTypeFarmersMarket,
		Frequency:   domain.FrequencyWeekly,
		StartDate:   &startDate,
		Items: []domain.LineItem{
			{ID: uuid.New(), Product: "sunflower", Grams: 500, Price: 12},
		},
	}
}

func TestBackfillWeekly(t *testing.T) {
	repo := new(MockOrderRepository)
	now := date(2024, 1, 22)
	svc := newTestService(repo, now)

	template := weeklyTemplate(date(2024, 1, 1))
	repo.On("GetTemplate", mock.Anything, template.ID).Return(template, nil)
	repo.On("GetGeneratedDeliveryDates", mock.Anything, template.ID, mock.Anything, mock.Anything).
		Return([]time.Time{}, nil)

	var persisted []domain.Order
	repo.On("CreateGeneratedOrders", mock.Anything, template.ID, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(2).([]domain.Order)
		}).Return(nil)

	report, err := svc.Backfill(context.Background(), template.ID, BackfillOptions{To: date(2024, 1, 22)})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Generated)
	assert.Equal(t, 0, report.Skipped)
	require.Len(t, persisted, 4)

	wantDeliveries := []time.Time{
		date(2024, 1, 1), date(2024, 1, 8), date(2024, 1, 15), date(2024, 1, 22),
	}
	for i, o := range persisted {
		assert.Equal(t, wantDeliveries[i], *o.DeliveryDate)
		assert.False(t, o.IsRecurring)
		require.NotNil(t, o.ParentID)
		assert.Equal(t, template.ID, *o.ParentID)
		require.Len(t, o.Items, 1)
		assert.Equal(t, "sunflower", o.Items[0].Product)
		assert.Equal(t, o.ID, o.Items[0].OrderID, "line items reparented to the new order")
	}
}

func TestBackfillIsIdempotent(t *testing.T) {
	repo := new(MockOrderRepository)
	now := date(2024, 1, 22)
	svc := newTestService(repo, now)

	template := weeklyTemplate(date(2024, 1, 1))
	repo.On("GetTemplate", mock.Anything, template.ID).Return(template, nil)
	// Second run: every delivery date already exists
	repo.On("GetGeneratedDeliveryDates", mock.Anything, template.ID, mock.Anything, mock.Anything).
		Return([]time.Time{
			date(2024, 1, 1), date(2024, 1, 8), date(2024, 1, 15), date(2024, 1, 22),
		}, nil)
	repo.On("CreateGeneratedOrders", mock.Anything, template.ID,
		mock.MatchedBy(func(orders []domain.Order) bool { return len(orders) == 0 }),
		mock.Anything, mock.Anything).Return(nil)

	report, err := svc.Backfill(context.Background(), template.ID, BackfillOptions{To: date(2024, 1, 22)})
	require.NoError(t, err)

	assert.Equal(t, 0, report.Generated)
	assert.Equal(t, 4, report.Skipped)
}

func TestBackfillInitialStatus(t *testing.T) {
	tests := []struct {
		name     string
		delivery time.Time
		want     domain.OrderStatus
	}{
		{"10 days past", date(2024, 3, 7), domain.OrderStatusCompleted},
		{"8 days past", date(2024, 3, 9), domain.OrderStatusCompleted},
		{"7 days past", date(2024, 3, 10), domain.OrderStatusDelivered},
		{"3 days past", date(2024, 3, 14), domain.OrderStatusDelivered},
		{"1 day past", date(2024, 3, 16), domain.OrderStatusDelivered},
		{"today", date(2024, 3, 17), domain.OrderStatusPending},
		{"future", date(2024, 3, 24), domain.OrderStatusPending},
	}

	svc := newTestService(new(MockOrderRepository), date(2024, 3, 17))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.initialStatus(tt.delivery, date(2024, 3, 17)))
		})
	}
}

func TestBackfillClampsToEndDate(t *testing.T) {
	repo := new(MockOrderRepository)
	now := date(2024, 1, 1)
	svc := newTestService(repo, now)

	template := weeklyTemplate(date(2024, 1, 1))
	endDate := date(2024, 1, 10)
	template.EndDate = &endDate

	repo.On("GetTemplate", mock.Anything, template.ID).Return(template, nil)
	repo.On("GetGeneratedDeliveryDates", mock.Anything, template.ID, mock.Anything, mock.Anything).
		Return([]time.Time{}, nil)

	var persisted []domain.Order
	var nextGen *time.Time
	repo.On("CreateGeneratedOrders", mock.Anything, template.ID, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(2).([]domain.Order)
			nextGen = args.Get(4).(*time.Time)
		}).Return(nil)

	report, err := svc.Backfill(context.Background(), template.ID, BackfillOptions{To: date(2024, 2, 1)})
	require.NoError(t, err)

	// Only Jan 1 and Jan 8 fit before the end date
	assert.Equal(t, 2, report.Generated)
	require.Len(t, persisted, 2)
	assert.Nil(t, nextGen, "exhausted template deactivates future generation")
}

func TestBackfillAssignsBillingPeriods(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := newTestService(repo, date(2024, 3, 1))

	template := weeklyTemplate(date(2024, 3, 11))
	template.Type = domain.OrderTypeB2B

	repo.On("GetTemplate", mock.Anything, template.ID).Return(template, nil)
	repo.On("GetGeneratedDeliveryDates", mock.Anything, template.ID, mock.Anything, mock.Anything).
		Return([]time.Time{}, nil)

	var persisted []domain.Order
	repo.On("CreateGeneratedOrders", mock.Anything, template.ID, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(2).([]domain.Order)
		}).Return(nil)

	_, err := svc.Backfill(context.Background(), template.ID, BackfillOptions{To: date(2024, 3, 11)})
	require.NoError(t, err)

	require.Len(t, persisted, 1)
	o := persisted[0]
	// b2b delivers the day after harvest and bills monthly
	assert.Equal(t, date(2024, 3, 11), *o.HarvestDate)
	assert.Equal(t, date(2024, 3, 12), *o.DeliveryDate)
	assert.Equal(t, "2024-03", o.BillingPeriod)
	assert.Equal(t, date(2024, 3, 1), *o.BillingPeriodStart)
	assert.Equal(t, date(2024, 3, 31), *o.BillingPeriodEnd)
}

func TestBackfillAllIsolatesFailures(t *testing.T) {
	repo := new(MockOrderRepository)
	now := date(2024, 1, 22)
	svc := newTestService(repo, now)

	bad := weeklyTemplate(date(2024, 1, 1))
	good := weeklyTemplate(date(2024, 1, 1))

	repo.On("GetActiveTemplates", mock.Anything).Return([]domain.Order{*bad, *good}, nil)
	repo.On("GetTemplate", mock.Anything, bad.ID).Return(nil, errors.New("corrupt template"))
	repo.On("GetTemplate", mock.Anything, good.ID).Return(good, nil)
	repo.On("GetGeneratedDeliveryDates", mock.Anything, good.ID, mock.Anything, mock.Anything).
		Return([]time.Time{}, nil)
	repo.On("CreateGeneratedOrders", mock.Anything, good.ID, mock.Anything, mock.Anything, mock.Anything).
		Return(nil)

	report, err := svc.BackfillAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.TemplatesProcessed)
	assert.Equal(t, 1, report.Failed)
	assert.Greater(t, report.Generated, 0, "good template still generated")
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "corrupt template")
}

func TestBackfillRejectsNonTemplates(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := newTestService(repo, date(2024, 1, 1))

	parent := uuid.New()
	order := &domain.Order{ID: uuid.New(), ParentID: &parent, IsRecurring: false, Active: true}
	repo.On("GetTemplate", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.Backfill(context.Background(), order.ID, BackfillOptions{})
	assert.ErrorIs(t, err, domain.ErrNotTemplate)
}
