package analytics

import (
	"sort"
	"time"

	"crm-analytics-service/internal/model"
)

// Per-agent fallback targets used when no explicit KPI target is configured.
var defaultTargets = map[string]float64{
	model.TargetWeeklyCalls:       10,
	model.TargetWeeklyAgreements:  3,
	model.TargetWeeklyLists:       1,
	model.TargetWeeklySales:       0.5,
	model.TargetMonthlyCalls:      40,
	model.TargetMonthlyAgreements: 12,
	model.TargetMonthlyLists:      4,
	model.TargetMonthlySales:      2,
}

var weeklyTargetNames = []string{
	model.TargetWeeklyCalls,
	model.TargetWeeklyAgreements,
	model.TargetWeeklyLists,
	model.TargetWeeklySales,
}

var monthlyTargetNames = []string{
	model.TargetMonthlyCalls,
	model.TargetMonthlyAgreements,
	model.TargetMonthlyLists,
	model.TargetMonthlySales,
}

// TargetCalculator scales per-agent targets to team-wide targets based on
// the currently active roster, so performance is judged against present
// headcount rather than a fixed absolute number.
type TargetCalculator struct {
	// ActiveWindow is how recently an agent must have logged activity to
	// count as active.
	ActiveWindow time.Duration
}

// NewTargetCalculator returns a calculator with the 7-day activity window.
func NewTargetCalculator() TargetCalculator {
	return TargetCalculator{ActiveWindow: 7 * 24 * time.Hour}
}

// PerAgentTarget resolves a configured per-agent target by name, falling
// back to the documented default.
func PerAgentTarget(targets []model.KPITarget, name string) float64 {
	for _, t := range targets {
		if t.Name == name {
			return t.Value
		}
	}
	return defaultTargets[name]
}

// TeamTargets determines the active roster and scales every per-agent target
// by the active headcount. The roster is the union of agent names seen in
// either collection; records with no agent are skipped.
func (c TargetCalculator) TeamTargets(items []model.PipelineItem, logs []model.ActivityLog, targets []model.KPITarget, now time.Time) model.TeamTargets {
	roster := make(map[string]bool)
	for _, item := range items {
		if item.BDR != "" {
			roster[item.BDR] = false
		}
	}
	for _, entry := range logs {
		if entry.BDR != "" {
			if _, ok := roster[entry.BDR]; !ok {
				roster[entry.BDR] = false
			}
		}
	}

	cutoff := now.Add(-c.ActiveWindow)
	for _, entry := range logs {
		if entry.BDR != "" && !entry.Timestamp.Before(cutoff) {
			roster[entry.BDR] = true
		}
	}

	var active []string
	for agent, isActive := range roster {
		if isActive {
			active = append(active, agent)
		}
	}
	sort.Strings(active)

	headcount := float64(len(active))
	weekly := make(map[string]float64, len(weeklyTargetNames))
	for _, name := range weeklyTargetNames {
		weekly[name] = headcount * PerAgentTarget(targets, name)
	}
	monthly := make(map[string]float64, len(monthlyTargetNames))
	for _, name := range monthlyTargetNames {
		monthly[name] = headcount * PerAgentTarget(targets, name)
	}

	return model.TeamTargets{
		Weekly:       weekly,
		Monthly:      monthly,
		ActiveAgents: active,
	}
}
