package stagetask

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/tillerhq/farmops/internal/domain"
)

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

// MockTaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) UpsertCropTask(ctx context.Context, task *domain.TaskSchedule) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetActiveCropTask(ctx context.Context, cropID uuid.UUID) (*domain.TaskSchedule, error) {
	args := m.Called(ctx, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskSchedule), args.Error(1)
}

func (m *MockTaskRepository) ListActiveTasks(ctx context.Context) ([]domain.TaskSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskSchedule), args.Error(1)
}

func (m *MockTaskRepository) ListTasksDueBy(ctx context.Context, by time.Time) ([]domain.TaskSchedule, error) {
	args := m.Called(ctx, by)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskSchedule), args.Error(1)
}

func (m *MockTaskRepository) DeactivateCropTask(ctx context.Context, cropID uuid.UUID) error {
	args := m.Called(ctx, cropID)
	return args.Error(0)
}
