package analytics

import (
	"time"

	"crm-analytics-service/internal/model"
)

// ConversionTargetPercent is the fixed display target for the call-to-sale
// conversion rate.
const ConversionTargetPercent = 20

// Engine bundles the analytics heuristics with their tuning knobs. All
// methods are pure: same snapshot and same window in, same aggregates out.
type Engine struct {
	Classifier SaleClassifier
	Detector   CompletionDetector
	Targets    TargetCalculator

	// Optimism scales moving-average predictions, typically 1.05 to 1.1.
	Optimism float64
}

// NewEngine returns an engine with production defaults.
func NewEngine() Engine {
	return Engine{
		Classifier: NewSaleClassifier(),
		Detector:   NewCompletionDetector(),
		Targets:    NewTargetCalculator(),
		Optimism:   1.05,
	}
}

// ClassifyStatus maps an actual-vs-target pair onto the four-tier scale used
// for every metric: >=125% excellent, >=100% good, >=50% needs attention,
// otherwise critical.
func ClassifyStatus(current, target float64) model.KPIStatus {
	switch {
	case current >= target*1.25:
		return model.KPIExcellent
	case current >= target:
		return model.KPIGood
	case current >= target*0.5:
		return model.KPINeedsAttention
	default:
		return model.KPICritical
	}
}

// KPIForPeriod computes one metric's actual-vs-target result for the
// inclusive window. Call_Completed counts go through reconciliation so
// inferred completions are included; every other type is a plain count of
// matching log entries.
func (e Engine) KPIForPeriod(activityType string, from, to time.Time, target float64, items []model.PipelineItem, logs []model.ActivityLog) model.KPIResult {
	var current float64
	if activityType == model.ActivityCallCompleted {
		current = float64(len(e.Detector.Reconcile(logs, from, to)))
	} else {
		for _, entry := range logs {
			if entry.ActivityType == activityType && inWindow(entry.Timestamp, from, to) {
				current++
			}
		}
	}
	return model.KPIResult{
		Current: current,
		Target:  target,
		Status:  ClassifyStatus(current, target),
	}
}

// SalesForPeriod counts sales in the window. Finance entries are the
// authoritative source and are preferred whenever supplied; without them the
// count falls back to text classification over item and log notes, unioned
// with items marked Sold in the window, deduplicated per pipeline item.
func (e Engine) SalesForPeriod(from, to time.Time, target float64, items []model.PipelineItem, logs []model.ActivityLog, finance []model.FinanceEntry) model.KPIResult {
	var current float64
	if finance != nil {
		for _, entry := range finance {
			if inWindow(entry.InvoiceDate, from, to) {
				current++
			}
		}
	} else {
		seen := make(map[string]bool)
		for _, item := range items {
			if !inWindow(item.LastUpdated, from, to) {
				continue
			}
			if item.Status == model.StatusSold || e.Classifier.IsSaleIndicated(item.Notes) {
				seen["item:"+item.ID] = true
			}
		}
		for _, entry := range logs {
			if !inWindow(entry.Timestamp, from, to) || !e.Classifier.IsSaleIndicated(entry.Notes) {
				continue
			}
			if entry.PipelineItemID != "" {
				seen["item:"+entry.PipelineItemID] = true
			} else {
				seen["log:"+entry.ID] = true
			}
		}
		current = float64(len(seen))
	}
	return model.KPIResult{
		Current: current,
		Target:  target,
		Status:  ClassifyStatus(current, target),
	}
}

// ConversionForPeriod is distinct sold items over call completions for the
// window, as a percentage. Zero completions yields 0 rather than dividing
// by zero.
func (e Engine) ConversionForPeriod(from, to time.Time, items []model.PipelineItem, logs []model.ActivityLog) model.KPIResult {
	calls := len(e.Detector.Reconcile(logs, from, to))
	sold := countSoldItems(items, from, to)

	var rate float64
	if calls > 0 {
		rate = float64(sold) / float64(calls) * 100
	}
	return model.KPIResult{
		Current: rate,
		Target:  ConversionTargetPercent,
		Status:  classifyConversion(rate),
	}
}

func classifyConversion(rate float64) model.KPIStatus {
	switch {
	case rate >= 25:
		return model.KPIExcellent
	case rate >= 18:
		return model.KPIGood
	case rate >= 12:
		return model.KPINeedsAttention
	default:
		return model.KPICritical
	}
}

func countSoldItems(items []model.PipelineItem, from, to time.Time) int {
	seen := make(map[string]bool)
	for _, item := range items {
		if item.Status == model.StatusSold && inWindow(item.LastUpdated, from, to) {
			seen[item.ID] = true
		}
	}
	return len(seen)
}
