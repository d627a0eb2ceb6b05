package analytics

import (
	"time"

	"crm-analytics-service/internal/model"
)

// Trends produces the rolling series for the dashboards: last 4 ISO weeks of
// call volume, last 4 calendar months of agreements, and last 2 calendar
// quarters of lists out and invoiced revenue. Targets are the current team
// targets applied uniformly across the series; variance is actual vs target
// as a percentage. Predictions are the series mean scaled by the optimism
// factor, a deliberately naive extrapolation rather than a forecast model.
func (e Engine) Trends(now time.Time, items []model.PipelineItem, logs []model.ActivityLog, finance []model.FinanceEntry, targets []model.KPITarget) model.TrendReport {
	team := e.Targets.TeamTargets(items, logs, targets, now)

	var report model.TrendReport

	weeklyCallTarget := team.Weekly[model.TargetWeeklyCalls]
	for _, w := range LastWeeks(now, 4) {
		actual := float64(len(e.Detector.Reconcile(logs, w.From, w.To)))
		report.WeeklyCalls = append(report.WeeklyCalls, trendPoint(WeekLabel(w.From), actual, weeklyCallTarget))
	}

	monthlyAgreementTarget := team.Monthly[model.TargetMonthlyAgreements]
	for _, w := range LastMonths(now, 4) {
		actual := countLogs(logs, model.ActivityAgreementSent, w)
		report.MonthlyAgreements = append(report.MonthlyAgreements, trendPoint(MonthLabel(w.From), actual, monthlyAgreementTarget))
	}

	quarterlyListTarget := team.Monthly[model.TargetMonthlyLists] * 3
	for _, w := range LastQuarters(now, 2) {
		lists := countLogs(logs, model.ActivityPartnerListSent, w)
		report.QuarterlyLists = append(report.QuarterlyLists, trendPoint(QuarterLabel(w.From), lists, quarterlyListTarget))

		var revenue float64
		for _, entry := range finance {
			if inWindow(entry.InvoiceDate, w.From, w.To) {
				revenue += entry.GBPAmount
			}
		}
		// No configured revenue target exists; variance stays 0.
		report.QuarterlyRevenue = append(report.QuarterlyRevenue, trendPoint(QuarterLabel(w.From), revenue, 0))
	}

	report.Predictions = model.Predictions{
		NextWeekCalls:       e.predict(report.WeeklyCalls),
		NextMonthAgreements: e.predict(report.MonthlyAgreements),
		NextQuarterLists:    e.predict(report.QuarterlyLists),
		NextQuarterRevenue:  e.predict(report.QuarterlyRevenue),
	}

	return report
}

func (e Engine) predict(series []model.TrendPoint) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, p := range series {
		sum += p.Actual
	}
	return sum / float64(len(series)) * e.Optimism
}

func trendPoint(label string, actual, target float64) model.TrendPoint {
	point := model.TrendPoint{Period: label, Actual: actual, Target: target}
	if target > 0 {
		point.Variance = (actual - target) / target * 100
	}
	return point
}

func countLogs(logs []model.ActivityLog, activityType string, w Window) float64 {
	var count float64
	for _, entry := range logs {
		if entry.ActivityType == activityType && inWindow(entry.Timestamp, w.From, w.To) {
			count++
		}
	}
	return count
}
