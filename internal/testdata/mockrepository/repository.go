package mockrepository

import (
	"context"
	"time"

	"crm-analytics-service/internal/model"
	"crm-analytics-service/internal/repository"

	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

// Interface compliance check
var _ repository.ReportRepository = &Repository{}

func (m *Repository) CreateActivityBatch(ctx context.Context, entries []model.ActivityLog) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *Repository) FetchPipelineItems(ctx context.Context) ([]model.PipelineItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.PipelineItem), args.Error(1)
}

func (m *Repository) FetchActivityLogs(ctx context.Context, from, to time.Time) ([]model.ActivityLog, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]model.ActivityLog), args.Error(1)
}

func (m *Repository) FetchFinanceEntries(ctx context.Context, from, to time.Time) ([]model.FinanceEntry, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]model.FinanceEntry), args.Error(1)
}

func (m *Repository) FetchKPITargets(ctx context.Context) ([]model.KPITarget, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.KPITarget), args.Error(1)
}
