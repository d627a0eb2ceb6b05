package analytics

import (
	"testing"
	"time"

	"crm-analytics-service/internal/model"

	"github.com/stretchr/testify/suite"
)

type TrendTestSuite struct {
	suite.Suite

	engine Engine
	now    time.Time
}

func TestTrendSuite(t *testing.T) {
	suite.Run(t, new(TrendTestSuite))
}

func (s *TrendTestSuite) SetupTest() {
	s.engine = NewEngine()
	s.now = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
}

func (s *TrendTestSuite) TestWeeklyCallSeries() {
	logs := []model.ActivityLog{
		// Week of Aug 10.
		{ID: "l1", BDR: "Ana", ActivityType: model.ActivityCallCompleted, Timestamp: time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC), PipelineItemID: "p1"},
		// Week of Aug 17 (also keeps Ana active).
		{ID: "l2", BDR: "Ana", ActivityType: model.ActivityCallCompleted, Timestamp: time.Date(2026, 8, 18, 10, 0, 0, 0, time.UTC), PipelineItemID: "p2"},
		{ID: "l3", BDR: "Ana", ActivityType: model.ActivityCallCompleted, Timestamp: time.Date(2026, 8, 19, 10, 0, 0, 0, time.UTC), PipelineItemID: "p3"},
	}

	report := s.engine.Trends(s.now, nil, logs, nil, nil)

	s.Require().Len(report.WeeklyCalls, 4)
	s.Equal("2026-W31", report.WeeklyCalls[0].Period)
	s.Equal("2026-W34", report.WeeklyCalls[3].Period)
	s.Equal([]float64{0, 0, 1, 2}, []float64{
		report.WeeklyCalls[0].Actual,
		report.WeeklyCalls[1].Actual,
		report.WeeklyCalls[2].Actual,
		report.WeeklyCalls[3].Actual,
	})

	// One active agent, so the weekly team call target is the per-agent 10.
	s.Equal(10.0, report.WeeklyCalls[3].Target)
	s.InDelta(-80, report.WeeklyCalls[3].Variance, 0.001)
}

func (s *TrendTestSuite) TestMonthlyAgreementSeries() {
	logs := []model.ActivityLog{
		{ID: "l1", BDR: "Ana", ActivityType: model.ActivityNoteAdded, Timestamp: s.now.Add(-time.Hour)},
		{ID: "l2", BDR: "Ana", ActivityType: model.ActivityAgreementSent, Timestamp: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "l3", BDR: "Ana", ActivityType: model.ActivityAgreementSent, Timestamp: time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)},
	}

	report := s.engine.Trends(s.now, nil, logs, nil, nil)

	s.Require().Len(report.MonthlyAgreements, 4)
	s.Equal("2026-05", report.MonthlyAgreements[0].Period)
	s.Equal(1.0, report.MonthlyAgreements[1].Actual)
	s.Equal(0.0, report.MonthlyAgreements[2].Actual)
	s.Equal(1.0, report.MonthlyAgreements[3].Actual)
	s.Equal(12.0, report.MonthlyAgreements[3].Target, "one active agent x monthly default 12")
}

func (s *TrendTestSuite) TestQuarterlySeriesAndRevenueVariance() {
	logs := []model.ActivityLog{
		{ID: "l1", BDR: "Ana", ActivityType: model.ActivityNoteAdded, Timestamp: s.now.Add(-time.Hour)},
		{ID: "l2", BDR: "Ana", ActivityType: model.ActivityPartnerListSent, Timestamp: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
	}
	finance := []model.FinanceEntry{
		{ID: "f1", BDR: "Ana", InvoiceDate: time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), GBPAmount: 1000},
		{ID: "f2", BDR: "Ana", InvoiceDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), GBPAmount: 500},
	}

	report := s.engine.Trends(s.now, nil, logs, finance, nil)

	s.Require().Len(report.QuarterlyLists, 2)
	s.Equal("2026-Q2", report.QuarterlyLists[0].Period)
	s.Equal(0.0, report.QuarterlyLists[0].Actual)
	s.Equal(1.0, report.QuarterlyLists[1].Actual)
	s.Equal(12.0, report.QuarterlyLists[1].Target, "monthly list target x 3")

	s.Equal(1000.0, report.QuarterlyRevenue[0].Actual)
	s.Equal(500.0, report.QuarterlyRevenue[1].Actual)
	s.Equal(0.0, report.QuarterlyRevenue[0].Variance, "no revenue target configured")
}

func (s *TrendTestSuite) TestPredictionsAreScaledMeans() {
	logs := []model.ActivityLog{
		{ID: "l1", BDR: "Ana", ActivityType: model.ActivityCallCompleted, Timestamp: time.Date(2026, 8, 18, 10, 0, 0, 0, time.UTC), PipelineItemID: "p1"},
		{ID: "l2", BDR: "Ana", ActivityType: model.ActivityCallCompleted, Timestamp: time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC), PipelineItemID: "p2"},
		{ID: "l3", BDR: "Ana", ActivityType: model.ActivityCallCompleted, Timestamp: time.Date(2026, 8, 5, 10, 0, 0, 0, time.UTC), PipelineItemID: "p3"},
		{ID: "l4", BDR: "Ana", ActivityType: model.ActivityCallCompleted, Timestamp: time.Date(2026, 7, 29, 10, 0, 0, 0, time.UTC), PipelineItemID: "p4"},
	}

	report := s.engine.Trends(s.now, nil, logs, nil, nil)

	// Four weeks of one call each: mean 1 x default optimism 1.05.
	s.InDelta(1.05, report.Predictions.NextWeekCalls, 0.001)
}

func (s *TrendTestSuite) TestCustomOptimismFactor() {
	s.engine.Optimism = 1.1
	logs := []model.ActivityLog{
		{ID: "l1", BDR: "Ana", ActivityType: model.ActivityCallCompleted, Timestamp: time.Date(2026, 8, 18, 10, 0, 0, 0, time.UTC), PipelineItemID: "p1"},
	}

	report := s.engine.Trends(s.now, nil, logs, nil, nil)

	// One call across four weeks: mean 0.25 x 1.1.
	s.InDelta(0.275, report.Predictions.NextWeekCalls, 0.001)
}

func (s *TrendTestSuite) TestEmptySnapshot() {
	report := s.engine.Trends(s.now, nil, nil, nil, nil)

	s.Len(report.WeeklyCalls, 4)
	s.Len(report.MonthlyAgreements, 4)
	s.Len(report.QuarterlyLists, 2)
	s.Equal(0.0, report.Predictions.NextWeekCalls)
	s.Equal(0.0, report.WeeklyCalls[0].Variance, "zero headcount means zero target, variance guarded")
}
