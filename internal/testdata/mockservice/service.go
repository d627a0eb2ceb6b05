package mockservice

import (
	"context"
	"time"

	"crm-analytics-service/internal/model"

	"github.com/stretchr/testify/mock"
)

type ActivityService struct {
	mock.Mock
}

func (m *ActivityService) BuildActivity(req model.ActivityRequest) (model.ActivityLog, error) {
	args := m.Called(req)
	return args.Get(0).(model.ActivityLog), args.Error(1)
}

func (m *ActivityService) ProcessActivity(ctx context.Context, entry model.ActivityLog) {
	m.Called(ctx, entry)
}

type ReportService struct {
	mock.Mock
}

func (m *ReportService) GetKPIs(ctx context.Context, from, to time.Time) (model.KPIReport, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(model.KPIReport), args.Error(1)
}

func (m *ReportService) GetFunnel(ctx context.Context) (model.FunnelReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.FunnelReport), args.Error(1)
}

func (m *ReportService) GetTrends(ctx context.Context) (model.TrendReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.TrendReport), args.Error(1)
}

func (m *ReportService) GetInsights(ctx context.Context) ([]model.Insight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Insight), args.Error(1)
}

func (m *ReportService) GetTeamTargets(ctx context.Context) (model.TeamTargets, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.TeamTargets), args.Error(1)
}
