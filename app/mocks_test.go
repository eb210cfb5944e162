package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pulseboard/internal"
	"pulseboard/models"
	"pulseboard/ports"
)

func testLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

// Mock implementations of the store ports for service-level tests

type MockKPIRepository struct {
	mock.Mock
}

func (m *MockKPIRepository) GetKPI(ctx context.Context, id uuid.UUID) (*models.KPI, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KPI), args.Error(1)
}

func (m *MockKPIRepository) ListKPIs(ctx context.Context, activeOnly bool) ([]*models.KPI, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]*models.KPI), args.Error(1)
}

func (m *MockKPIRepository) ListByDepartment(ctx context.Context, departmentID uuid.UUID, activeOnly bool) ([]*models.KPI, error) {
	args := m.Called(ctx, departmentID, activeOnly)
	return args.Get(0).([]*models.KPI), args.Error(1)
}

func (m *MockKPIRepository) CreateKPI(ctx context.Context, kpi *models.KPI) error {
	args := m.Called(ctx, kpi)
	return args.Error(0)
}

func (m *MockKPIRepository) UpdateKPI(ctx context.Context, kpi *models.KPI) error {
	args := m.Called(ctx, kpi)
	return args.Error(0)
}

type MockTargetRepository struct {
	mock.Mock
}

func (m *MockTargetRepository) GetTarget(ctx context.Context, id uuid.UUID) (*models.Target, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Target), args.Error(1)
}

func (m *MockTargetRepository) GetForPeriod(ctx context.Context, kpiID uuid.UUID, year, quarter int) (*models.Target, error) {
	args := m.Called(ctx, kpiID, year, quarter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Target), args.Error(1)
}

func (m *MockTargetRepository) ListForKPI(ctx context.Context, kpiID uuid.UUID) ([]*models.Target, error) {
	args := m.Called(ctx, kpiID)
	return args.Get(0).([]*models.Target), args.Error(1)
}

func (m *MockTargetRepository) CreateTarget(ctx context.Context, target *models.Target) error {
	args := m.Called(ctx, target)
	return args.Error(0)
}

type MockActualRepository struct {
	mock.Mock
}

func (m *MockActualRepository) GetActual(ctx context.Context, id uuid.UUID) (*models.Actual, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Actual), args.Error(1)
}

func (m *MockActualRepository) ListForPeriod(ctx context.Context, kpiID uuid.UUID, year, quarter int) ([]*models.Actual, error) {
	args := m.Called(ctx, kpiID, year, quarter)
	return args.Get(0).([]*models.Actual), args.Error(1)
}

func (m *MockActualRepository) CurrentForPeriod(ctx context.Context, kpiID uuid.UUID, year, quarter int) (*models.Actual, error) {
	args := m.Called(ctx, kpiID, year, quarter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Actual), args.Error(1)
}

func (m *MockActualRepository) CreateActual(ctx context.Context, actual *models.Actual) error {
	args := m.Called(ctx, actual)
	return args.Error(0)
}

func (m *MockActualRepository) UpdateReview(ctx context.Context, actual *models.Actual) error {
	args := m.Called(ctx, actual)
	return args.Error(0)
}

type MockAlertRepository struct {
	mock.Mock
	created []*models.Alert
}

func (m *MockAlertRepository) CreateAlert(ctx context.Context, alert *models.Alert) error {
	args := m.Called(ctx, alert)
	if args.Error(0) == nil {
		alert.IsRead = false
		alert.IsResolved = false
		m.created = append(m.created, alert)
	}
	return args.Error(0)
}

func (m *MockAlertRepository) GetAlert(ctx context.Context, id uuid.UUID) (*models.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Alert), args.Error(1)
}

func (m *MockAlertRepository) ListAlerts(ctx context.Context, filter ports.AlertFilter) ([]*models.Alert, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Alert), args.Error(1)
}

func (m *MockAlertRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAlertRepository) Resolve(ctx context.Context, id uuid.UUID, resolver uuid.UUID) error {
	args := m.Called(ctx, id, resolver)
	return args.Error(0)
}

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) GetDepartment(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Department), args.Error(1)
}

func (m *MockDepartmentRepository) ListDepartments(ctx context.Context, activeOnly bool) ([]*models.Department, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]*models.Department), args.Error(1)
}

func (m *MockDepartmentRepository) ListPillars(ctx context.Context) ([]*models.Pillar, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Pillar), args.Error(1)
}
