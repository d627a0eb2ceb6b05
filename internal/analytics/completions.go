package analytics

import (
	"strings"
	"time"

	"crm-analytics-service/internal/model"
)

// CompletionDetector infers call completions from the activity log and
// reconciles them with explicitly logged ones.
//
// Not every real-world completed call produces an explicit Call_Completed
// event: agents frequently move an item straight out of "Call Booked" into
// the next status. A call is treated as operationally completed the moment
// its status leaves the booked state for anything other than the explicit
// non-completion outcomes.
type CompletionDetector struct {
	// DedupWindow is the time-proximity radius within which an explicit and
	// an inferred completion for the same pipeline item are considered the
	// same real-world event.
	DedupWindow time.Duration

	// Exclusions are the newStatus values (lowercase, matched by exact
	// equality, never by substring) that do not count as a completion.
	Exclusions []string
}

// NewCompletionDetector returns a detector with the production defaults:
// 60 second dedup proximity and the "no show"/"rescheduled" exclusions.
func NewCompletionDetector() CompletionDetector {
	return CompletionDetector{
		DedupWindow: time.Minute,
		Exclusions:  []string{"no show", "rescheduled"},
	}
}

func (d CompletionDetector) excluded(status string) bool {
	lowered := strings.ToLower(status)
	for _, ex := range d.Exclusions {
		if lowered == ex {
			return true
		}
	}
	return false
}

// DetectAutomatic infers completions from Status_Change events inside the
// inclusive window: previousStatus must be "Call Booked" and newStatus must
// be present, different from "Call Booked", and not excluded.
func (d CompletionDetector) DetectAutomatic(logs []model.ActivityLog, from, to time.Time) []model.CallCompletion {
	var completions []model.CallCompletion
	for _, entry := range logs {
		if entry.ActivityType != model.ActivityStatusChange {
			continue
		}
		if !inWindow(entry.Timestamp, from, to) {
			continue
		}
		if entry.PreviousStatus != model.StatusCallBooked {
			continue
		}
		if entry.NewStatus == "" || entry.NewStatus == model.StatusCallBooked {
			continue
		}
		if d.excluded(entry.NewStatus) {
			continue
		}
		completions = append(completions, model.CallCompletion{
			BDR:            entry.BDR,
			PipelineItemID: entry.PipelineItemID,
			Timestamp:      entry.Timestamp,
			IsAutomatic:    true,
		})
	}
	return completions
}

// Reconcile merges explicitly logged completions with inferred ones.
// Explicit Call_Completed events come first, so on a proximity collision the
// explicit record wins. Two completions are the same real-world event when
// they share a pipeline item id and their timestamps differ by less than
// DedupWindow. Two genuinely distinct completions of the same item inside
// the window would be collapsed; that is an accepted limitation of the
// proximity heuristic.
func (d CompletionDetector) Reconcile(logs []model.ActivityLog, from, to time.Time) []model.CallCompletion {
	var merged []model.CallCompletion
	for _, entry := range logs {
		if entry.ActivityType != model.ActivityCallCompleted {
			continue
		}
		if !inWindow(entry.Timestamp, from, to) {
			continue
		}
		merged = append(merged, model.CallCompletion{
			BDR:            entry.BDR,
			PipelineItemID: entry.PipelineItemID,
			Timestamp:      entry.Timestamp,
		})
	}
	merged = append(merged, d.DetectAutomatic(logs, from, to)...)

	var deduped []model.CallCompletion
	for _, candidate := range merged {
		duplicate := false
		for _, kept := range deduped {
			if candidate.PipelineItemID == "" || kept.PipelineItemID != candidate.PipelineItemID {
				continue
			}
			delta := candidate.Timestamp.Sub(kept.Timestamp)
			if delta < 0 {
				delta = -delta
			}
			if delta < d.DedupWindow {
				duplicate = true
				break
			}
		}
		if !duplicate {
			deduped = append(deduped, candidate)
		}
	}
	return deduped
}
