package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tillerhq/farmops/internal/cropplan"
	"github.com/tillerhq/farmops/internal/domain"
	"github.com/tillerhq/farmops/internal/ordergen"
)

// MockGenerator mocks the order generation service
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Backfill(ctx context.Context, templateID uuid.UUID, opts ordergen.BackfillOptions) (*ordergen.Report, error) {
	args := m.Called(ctx, templateID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordergen.Report), args.Error(1)
}

func (m *MockGenerator) BackfillAll(ctx context.Context) (*ordergen.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordergen.Report), args.Error(1)
}

// MockDeriver mocks the crop plan derivation service
type MockDeriver struct {
	mock.Mock
}

func (m *MockDeriver) DeriveForOrder(ctx context.Context, orderID uuid.UUID) (*cropplan.Report, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cropplan.Report), args.Error(1)
}

func (m *MockDeriver) DeriveForHarvestDate(ctx context.Context, harvest time.Time) (*cropplan.Report, error) {
	args := m.Called(ctx, harvest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cropplan.Report), args.Error(1)
}

func (m *MockDeriver) DeriveAll(ctx context.Context) (*cropplan.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cropplan.Report), args.Error(1)
}

func (m *MockDeriver) StartProduction(ctx context.Context, planID uuid.UUID) ([]domain.Crop, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Crop), args.Error(1)
}

// MockCropRepository
type MockCropRepository struct {
	mock.Mock
}

func (m *MockCropRepository) CreateCrops(ctx context.Context, crops []domain.Crop) error {
	return m.Called(ctx, crops).Error(0)
}

func (m *MockCropRepository) GetCrop(ctx context.Context, id uuid.UUID) (*domain.Crop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crop), args.Error(1)
}

func (m *MockCropRepository) UpdateCropStage(ctx context.Context, crop *domain.Crop) error {
	return m.Called(ctx, crop).Error(0)
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
	return m.Called(ctx, id).Error(0)
}

// MockTaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) UpsertCropTask(ctx context.Context, task *domain.TaskSchedule) error {
	return m.Called(ctx, task).Error(0)
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
	return m.Called(ctx, cropID).Error(0)
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
	return m.Called(ctx, recipe).Error(0)
}

func TestHandleListRecipes(t *testing.T) {
	recipes := new(MockRecipeRepository)
	recipes.On("ListRecipes", mock.Anything).Return([]domain.Recipe{
		{ID: uuid.New(), Name: "sunflower", Product: "sunflower shoots"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	rec := httptest.NewRecorder()

	HandleListRecipes(recipes)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []domain.Recipe `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "sunflower", resp.Data[0].Name)
}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	HandleHealthz()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleBackfillAll(t *testing.T) {
	generator := new(MockGenerator)
	generator.On("BackfillAll", mock.Anything).Return(&ordergen.Report{
		TemplatesProcessed: 2,
		Generated:          5,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/orders/backfill", nil)
	rec := httptest.NewRecorder()

	HandleBackfillAll(generator)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data ordergen.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Data.Generated)
}

func TestHandleBackfillTemplate(t *testing.T) {
	generator := new(MockGenerator)
	templateID := uuid.New()
	generator.On("Backfill", mock.Anything, templateID, mock.Anything).
		Return(&ordergen.Report{TemplatesProcessed: 1, Generated: 4}, nil)

	r := chi.NewRouter()
	r.Post("/templates/{id}/backfill", HandleBackfillTemplate(generator))

	req := httptest.NewRequest(http.MethodPost, "/templates/"+templateID.String()+"/backfill?to=2024-01-22", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	opts := generator.Calls[0].Arguments.Get(2).(ordergen.BackfillOptions)
	assert.Equal(t, 2024, opts.To.Year())
}

func TestHandleBackfillTemplateBadID(t *testing.T) {
	generator := new(MockGenerator)

	r := chi.NewRouter()
	r.Post("/templates/{id}/backfill", HandleBackfillTemplate(generator))

	req := httptest.NewRequest(http.MethodPost, "/templates/not-a-uuid/backfill", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	generator.AssertNotCalled(t, "Backfill", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleDerivePlansSweepsByDefault(t *testing.T) {
	deriver := new(MockDeriver)
	deriver.On("DeriveAll", mock.Anything).Return(&cropplan.Report{PlansCreated: 2}, nil)

	req := httptest.NewRequest(http.MethodPost, "/plans/derive", nil)
	rec := httptest.NewRecorder()

	HandleDerivePlans(deriver)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	deriver.AssertNotCalled(t, "DeriveForHarvestDate", mock.Anything, mock.Anything)
}

func TestHandleDerivePlansForHarvestDate(t *testing.T) {
	deriver := new(MockDeriver)
	harvest := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	deriver.On("DeriveForHarvestDate", mock.Anything, harvest).
		Return(&cropplan.Report{OrdersProcessed: 3, PlansCreated: 1, PlansAggregated: 2}, nil)

	req := httptest.NewRequest(http.MethodPost, "/plans/derive?harvest=2024-03-20", nil)
	rec := httptest.NewRecorder()

	HandleDerivePlans(deriver)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data cropplan.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data.OrdersProcessed)
	deriver.AssertNotCalled(t, "DeriveAll", mock.Anything)
}

func TestHandleDerivePlansBadHarvestDate(t *testing.T) {
	deriver := new(MockDeriver)

	req := httptest.NewRequest(http.MethodPost, "/plans/derive?harvest=soon", nil)
	rec := httptest.NewRecorder()

	HandleDerivePlans(deriver)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	deriver.AssertNotCalled(t, "DeriveAll", mock.Anything)
	deriver.AssertNotCalled(t, "DeriveForHarvestDate", mock.Anything, mock.Anything)
}

func TestHandleListPlanCrops(t *testing.T) {
	crops := new(MockCropRepository)
	planID := uuid.New()
	crops.On("ListCropsByPlan", mock.Anything, planID).Return([]domain.Crop{
		{ID: uuid.New(), PlanID: planID, TrayNumber: 1},
		{ID: uuid.New(), PlanID: planID, TrayNumber: 2},
	}, nil)

	r := chi.NewRouter()
	r.Get("/plans/{id}/crops", HandleListPlanCrops(crops))

	req := httptest.NewRequest(http.MethodGet, "/plans/"+planID.String()+"/crops", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []domain.Crop `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestHandleDeleteCropDeactivatesScheduleFirst(t *testing.T) {
	crops := new(MockCropRepository)
	tasks := new(MockTaskRepository)
	cropID := uuid.New()

	tasks.On("DeactivateCropTask", mock.Anything, cropID).Return(nil)
	crops.On("DeleteCrop", mock.Anything, cropID).Return(nil)

	r := chi.NewRouter()
	r.Delete("/crops/{id}", HandleDeleteCrop(crops, tasks))

	req := httptest.NewRequest(http.MethodDelete, "/crops/"+cropID.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	tasks.AssertCalled(t, "DeactivateCropTask", mock.Anything, cropID)
	crops.AssertCalled(t, "DeleteCrop", mock.Anything, cropID)
}

func TestHandleDeleteCropNotFound(t *testing.T) {
	crops := new(MockCropRepository)
	tasks := new(MockTaskRepository)
	cropID := uuid.New()

	tasks.On("DeactivateCropTask", mock.Anything, cropID).Return(nil)
	crops.On("DeleteCrop", mock.Anything, cropID).Return(domain.ErrCropNotFound)

	r := chi.NewRouter()
	r.Delete("/crops/{id}", HandleDeleteCrop(crops, tasks))

	req := httptest.NewRequest(http.MethodDelete, "/crops/"+cropID.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleBackfillTemplateNotATemplate(t *testing.T) {
	generator := new(MockGenerator)
	templateID := uuid.New()
	generator.On("Backfill", mock.Anything, templateID, mock.Anything).
		Return(nil, domain.ErrNotTemplate)

	r := chi.NewRouter()
	r.Post("/templates/{id}/backfill", HandleBackfillTemplate(generator))

	req := httptest.NewRequest(http.MethodPost, "/templates/"+templateID.String()+"/backfill", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
