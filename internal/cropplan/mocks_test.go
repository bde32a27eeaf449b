package cropplan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/tillerhq/farmops/internal/domain"
	"github.com/tillerhq/farmops/internal/repository"
)

// MockOrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetTemplate(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveTemplates(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListTemplates(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetGeneratedDeliveryDates(ctx context.Context, templateID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	args := m.Called(ctx, templateID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockOrderRepository) CreateGeneratedOrders(ctx context.Context, templateID uuid.UUID, orders []domain.Order, lastGeneratedAt time.Time, nextGeneration *time.Time) error {
	args := m.Called(ctx, templateID, orders, lastGeneratedAt, nextGeneration)
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrdersWithoutPlans(ctx context.Context, horizon time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, horizon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrdersByHarvestDate(ctx context.Context, date time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) DeactivateTemplate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) UpsertPlans(ctx context.Context, plans []*domain.CropPlan) ([]repository.PlanUpsert, error) {
	args := m.Called(ctx, plans)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PlanUpsert), args.Error(1)
}

func (m *MockPlanRepository) GetPlan(ctx context.Context, id uuid.UUID) (*domain.CropPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CropPlan), args.Error(1)
}

func (m *MockPlanRepository) ListPlans(ctx context.Context, from, to time.Time) ([]domain.CropPlan, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CropPlan), args.Error(1)
}

func (m *MockPlanRepository) ListOpenPlans(ctx context.Context) ([]domain.CropPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CropPlan), args.Error(1)
}

func (m *MockPlanRepository) UpdatePlanStatus(ctx context.Context, id uuid.UUID, status domain.PlanStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockCropRepository
type MockCropRepository struct {
	mock.Mock
}

func (m *MockCropRepository) CreateCrops(ctx context.Context, crops []domain.Crop) error {
	args := m.Called(ctx, crops)
	return args.Error(0)
}

func (m *MockCropRepository) GetCrop(ctx context.Context, id uuid.UUID) (*domain.Crop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crop), args.Error(1)
}

func (m *MockCropRepository) UpdateCropStage(ctx context.Context, crop *domain.Crop) error {
	args := m.Called(ctx, crop)
	return args.Error(0)
}

func (m *MockCropRepository) ListActiveCrops(ctx context.Context) ([]domain.Crop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Crop), args.Error(1)
}

func (m *MockCropRepository) ListCropsByPlan(ctx context.Context, planID uuid.UUID) ([]domain.Crop, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Crop), args.Error(1)
}

func (m *MockCropRepository) ListCropsByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Crop, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Crop), args.Error(1)
}

func (m *MockCropRepository) DeleteCrop(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) GetRecipe(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) GetRecipeByProduct(ctx context.Context, product string) (*domain.Recipe, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) UpsertRecipe(ctx context.Context, recipe *domain.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

// MockStageScheduler
type MockStageScheduler struct {
	mock.Mock
}

func (m *MockStageScheduler) ScheduleStageTasks(ctx context.Context, cropID uuid.UUID) error {
	args := m.Called(ctx, cropID)
	return args.Error(0)
}
