package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"crm-analytics-service/internal/model"
)

// Insight rule thresholds. Each rule is independent and additive: every
// firing rule emits, nothing suppresses anything else.
const (
	overdueListAfter  = 14 * 24 * time.Hour
	staleItemAfter    = 30 * 24 * time.Hour
	weeklyCallFloor   = 25
	conversionFloor   = 12
	supportScoreFloor = 50
)

// Insights evaluates the rule set against the snapshot and returns action
// items sorted urgent first.
func (e Engine) Insights(now time.Time, items []model.PipelineItem, logs []model.ActivityLog, finance []model.FinanceEntry, targets []model.KPITarget) []model.Insight {
	var insights []model.Insight

	if n := countOverdueLists(items, now); n > 0 {
		insights = append(insights, model.Insight{
			Priority: model.PriorityUrgent,
			Category: "lists",
			Action:   fmt.Sprintf("Send %d overdue partner lists", n),
			Metric:   fmt.Sprintf("%d agreements waiting over 14 days for a list", n),
			Deadline: "today",
		})
	}

	weekStart := WeekStart(now)
	weekCalls := len(e.Detector.Reconcile(logs, weekStart, now))
	if weekCalls < weeklyCallFloor {
		insights = append(insights, model.Insight{
			Priority: model.PriorityHigh,
			Category: "calls",
			Action:   fmt.Sprintf("Increase call volume: %d completed this week, floor is %d", weekCalls, weeklyCallFloor),
			Metric:   fmt.Sprintf("%d calls this week", weekCalls),
			Deadline: "end of week",
		})
	}

	conversion := e.ConversionForPeriod(weekStart, now, items, logs)
	if weekCalls > 0 && conversion.Current < conversionFloor {
		insights = append(insights, model.Insight{
			Priority: model.PriorityHigh,
			Category: "conversion",
			Action:   fmt.Sprintf("Review call quality: conversion at %.1f%%, floor is %d%%", conversion.Current, conversionFloor),
			Metric:   fmt.Sprintf("%.1f%% call-to-sale conversion", conversion.Current),
			Deadline: "end of week",
		})
	}

	if struggling := e.strugglingAgents(now, logs, targets); len(struggling) > 0 {
		insights = append(insights, model.Insight{
			Priority: model.PriorityMedium,
			Category: "team",
			Action:   "Schedule support sessions for " + strings.Join(struggling, ", "),
			Metric:   fmt.Sprintf("%d agents below composite score %d", len(struggling), supportScoreFloor),
			Deadline: "this week",
		})
	}

	if n := countStaleItems(items, now); n > 0 {
		insights = append(insights, model.Insight{
			Priority: model.PriorityMedium,
			Category: "pipeline",
			Action:   fmt.Sprintf("Review %d pipeline items untouched for over 30 days", n),
			Metric:   fmt.Sprintf("%d stale items", n),
			Deadline: "this week",
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority.Rank() < insights[j].Priority.Rank()
	})
	return insights
}

// countOverdueLists counts agreements older than the overdue threshold that
// still have no partner list sent. Only standalone items and list containers
// owe a list; partner contacts are children of an already-sent list.
func countOverdueLists(items []model.PipelineItem, now time.Time) int {
	cutoff := now.Add(-overdueListAfter)
	count := 0
	for _, item := range items {
		if item.Kind() == model.KindContact {
			continue
		}
		if model.StageFor(item.Status) != model.StageAgreementReached {
			continue
		}
		if item.AgreementDate == nil || item.AgreementDate.After(cutoff) {
			continue
		}
		if item.PartnerListSentDate == nil {
			count++
		}
	}
	return count
}

// countStaleItems counts live funnel items (not sold, not declined, not
// partner contacts) without an update inside the stale threshold.
func countStaleItems(items []model.PipelineItem, now time.Time) int {
	cutoff := now.Add(-staleItemAfter)
	count := 0
	for _, item := range items {
		stage := model.StageFor(item.Status)
		if stage == "" || stage == model.StageSold || stage == model.StageDeclined {
			continue
		}
		if item.LastUpdated.Before(cutoff) {
			count++
		}
	}
	return count
}

// strugglingAgents scores each active agent's week against their per-agent
// targets for calls, agreements, and lists. The composite score is the mean
// attainment percentage over the metrics with a positive target, each capped
// at 100 so one strong metric cannot mask the rest. An agent with no scorable
// metric is never flagged.
func (e Engine) strugglingAgents(now time.Time, logs []model.ActivityLog, targets []model.KPITarget) []string {
	weekStart := WeekStart(now)
	team := e.Targets.TeamTargets(nil, logs, targets, now)

	perAgent := map[string]float64{
		model.ActivityCallCompleted:   PerAgentTarget(targets, model.TargetWeeklyCalls),
		model.ActivityAgreementSent:   PerAgentTarget(targets, model.TargetWeeklyAgreements),
		model.ActivityPartnerListSent: PerAgentTarget(targets, model.TargetWeeklyLists),
	}

	var struggling []string
	for _, agent := range team.ActiveAgents {
		var agentLogs []model.ActivityLog
		for _, entry := range logs {
			if entry.BDR == agent {
				agentLogs = append(agentLogs, entry)
			}
		}

		var score float64
		scored := 0
		for activityType, target := range perAgent {
			if target <= 0 {
				continue
			}
			var actual float64
			if activityType == model.ActivityCallCompleted {
				actual = float64(len(e.Detector.Reconcile(agentLogs, weekStart, now)))
			} else {
				actual = countLogs(agentLogs, activityType, Window{From: weekStart, To: now})
			}
			attainment := actual / target * 100
			if attainment > 100 {
				attainment = 100
			}
			score += attainment
			scored++
		}
		if scored == 0 {
			continue
		}
		score /= float64(scored)

		if score < supportScoreFloor {
			struggling = append(struggling, agent)
		}
	}
	return struggling
}
