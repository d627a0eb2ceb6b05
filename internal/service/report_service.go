package service

import (
	"context"
	"time"

	"crm-analytics-service/internal/analytics"
	"crm-analytics-service/internal/model"
	"crm-analytics-service/internal/repository"
)

// ReportService orchestrates report computation: it validates windows,
// applies calendar defaults, fetches snapshots, and delegates all aggregation
// to the analytics engine. All time handling is UTC.
type ReportService interface {
	GetKPIs(ctx context.Context, from, to time.Time) (model.KPIReport, error)
	GetFunnel(ctx context.Context) (model.FunnelReport, error)
	GetTrends(ctx context.Context) (model.TrendReport, error)
	GetInsights(ctx context.Context) ([]model.Insight, error)
	GetTeamTargets(ctx context.Context) (model.TeamTargets, error)
}

type reportService struct {
	repo   repository.ReportRepository
	engine analytics.Engine
	now    func() time.Time
}

// NewReportService constructs a reportService.
func NewReportService(repo repository.ReportRepository, engine analytics.Engine) ReportService {
	return &reportService{
		repo:   repo,
		engine: engine,
		now:    time.Now,
	}
}

// Windows longer than this are judged against monthly rather than weekly
// targets.
const monthlyWindowThreshold = 8 * 24 * time.Hour

// GetKPIs computes the KPI block for the window, defaulting to the current
// ISO week (Monday through now).
func (s *reportService) GetKPIs(ctx context.Context, from, to time.Time) (model.KPIReport, error) {
	now := s.now().UTC()

	if to.IsZero() {
		to = now
	} else {
		to = to.UTC()
	}
	if from.IsZero() {
		from = analytics.WeekStart(now)
	} else {
		from = from.UTC()
	}
	if from.After(to) {
		return model.KPIReport{}, &ValidationError{Message: "from must be before to"}
	}

	// One log fetch serves both the window counts and the active-roster
	// check; the analytics functions filter by window themselves.
	fetchFrom := from
	if lookback := now.Add(-s.engine.Targets.ActiveWindow); lookback.Before(fetchFrom) {
		fetchFrom = lookback
	}
	fetchTo := to
	if now.After(fetchTo) {
		fetchTo = now
	}

	items, logs, finance, targets, err := s.fetchSnapshot(ctx, fetchFrom, fetchTo)
	if err != nil {
		return model.KPIReport{}, err
	}

	team := s.engine.Targets.TeamTargets(items, logs, targets, now)
	scale := team.Weekly
	callsTarget := model.TargetWeeklyCalls
	agreementsTarget := model.TargetWeeklyAgreements
	listsTarget := model.TargetWeeklyLists
	salesTarget := model.TargetWeeklySales
	if to.Sub(from) > monthlyWindowThreshold {
		scale = team.Monthly
		callsTarget = model.TargetMonthlyCalls
		agreementsTarget = model.TargetMonthlyAgreements
		listsTarget = model.TargetMonthlyLists
		salesTarget = model.TargetMonthlySales
	}

	report := model.KPIReport{
		Period: model.ReportPeriod{
			Start: from.Format(time.RFC3339),
			End:   to.Format(time.RFC3339),
		},
		Calls:      s.engine.KPIForPeriod(model.ActivityCallCompleted, from, to, scale[callsTarget], items, logs),
		Agreements: s.engine.KPIForPeriod(model.ActivityAgreementSent, from, to, scale[agreementsTarget], items, logs),
		Lists:      s.engine.KPIForPeriod(model.ActivityPartnerListSent, from, to, scale[listsTarget], items, logs),
		Sales:      s.engine.SalesForPeriod(from, to, scale[salesTarget], items, logs, finance),
		Conversion: s.engine.ConversionForPeriod(from, to, items, logs),
	}
	return report, nil
}

// GetFunnel aggregates the full current pipeline snapshot.
func (s *reportService) GetFunnel(ctx context.Context) (model.FunnelReport, error) {
	items, err := s.fetchPipelineItems(ctx)
	if err != nil {
		return model.FunnelReport{}, err
	}
	return s.engine.Funnel(items), nil
}

// GetTrends computes the rolling series; the fetch window spans the oldest
// quarter in the series, which always covers the weekly and monthly series
// too.
func (s *reportService) GetTrends(ctx context.Context) (model.TrendReport, error) {
	now := s.now().UTC()
	from := analytics.LastQuarters(now, 2)[0].From

	items, logs, finance, targets, err := s.fetchSnapshot(ctx, from, now)
	if err != nil {
		return model.TrendReport{}, err
	}
	return s.engine.Trends(now, items, logs, finance, targets), nil
}

// GetInsights runs the rule set over the same span as the trend series.
func (s *reportService) GetInsights(ctx context.Context) ([]model.Insight, error) {
	now := s.now().UTC()
	from := analytics.LastQuarters(now, 2)[0].From

	items, logs, finance, targets, err := s.fetchSnapshot(ctx, from, now)
	if err != nil {
		return nil, err
	}
	return s.engine.Insights(now, items, logs, finance, targets), nil
}

// GetTeamTargets returns the current team targets and active roster.
func (s *reportService) GetTeamTargets(ctx context.Context) (model.TeamTargets, error) {
	now := s.now().UTC()
	from := now.Add(-s.engine.Targets.ActiveWindow)

	items, err := s.fetchPipelineItems(ctx)
	if err != nil {
		return model.TeamTargets{}, err
	}
	logs, err := s.repo.FetchActivityLogs(ctx, from, now)
	if err != nil {
		return model.TeamTargets{}, err
	}
	targets, err := s.repo.FetchKPITargets(ctx)
	if err != nil {
		return model.TeamTargets{}, err
	}
	return s.engine.Targets.TeamTargets(items, logs, targets, now), nil
}

// fetchPipelineItems fetches the snapshot and verifies the partner-contact
// structure: every contact must hang off an existing list container.
func (s *reportService) fetchPipelineItems(ctx context.Context) ([]model.PipelineItem, error) {
	items, err := s.repo.FetchPipelineItems(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := model.BuildTree(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *reportService) fetchSnapshot(ctx context.Context, from, to time.Time) ([]model.PipelineItem, []model.ActivityLog, []model.FinanceEntry, []model.KPITarget, error) {
	items, err := s.fetchPipelineItems(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	logs, err := s.repo.FetchActivityLogs(ctx, from, to)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	finance, err := s.repo.FetchFinanceEntries(ctx, from, to)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	targets, err := s.repo.FetchKPITargets(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return items, logs, finance, targets, nil
}
