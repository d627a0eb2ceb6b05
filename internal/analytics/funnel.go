package analytics

import "crm-analytics-service/internal/model"

// Funnel aggregates the current snapshot into stage counts, percentages, and
// stage-to-stage conversion/drop-off rates. Statuses outside the funnel
// vocabulary (partner contacts, unknown statuses) are skipped. The declined
// branch contributes to totals and percentages but never to the conversion
// chain: it has no preceding stage in the funnel sense.
func (e Engine) Funnel(items []model.PipelineItem) model.FunnelReport {
	counts := make(map[string]int)
	total := 0
	for _, item := range items {
		stage := model.StageFor(item.Status)
		if stage == "" {
			continue
		}
		counts[stage]++
		total++
	}

	report := model.FunnelReport{TotalItems: total}

	prevCount := 0
	for i, stage := range model.ProgressiveStages {
		count := counts[stage]
		entry := model.FunnelStage{Name: stage, Count: count}
		if total > 0 {
			entry.Percentage = float64(count) / float64(total) * 100
		}
		switch {
		case i == 0:
			// Top of funnel, nothing to convert from.
			if count > 0 {
				entry.ConversionRate = 100
			}
		case prevCount > 0:
			entry.ConversionRate = float64(count) / float64(prevCount) * 100
			entry.DropoffRate = 100 - entry.ConversionRate
		}
		report.Stages = append(report.Stages, entry)
		prevCount = count
	}

	declined := model.FunnelStage{Name: model.StageDeclined, Count: counts[model.StageDeclined]}
	if total > 0 {
		declined.Percentage = float64(declined.Count) / float64(total) * 100
	}
	report.Stages = append(report.Stages, declined)

	for _, stage := range report.Stages {
		if stage.DropoffRate <= 0 {
			continue
		}
		if report.BiggestDropoff == nil || stage.DropoffRate > report.BiggestDropoff.DropoffRate {
			report.BiggestDropoff = &model.FunnelDrop{Stage: stage.Name, DropoffRate: stage.DropoffRate}
		}
	}

	return report
}
