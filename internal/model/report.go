package model

// KPIStatus is the four-tier classification applied to every metric.
type KPIStatus string

const (
	KPICritical       KPIStatus = "critical"
	KPINeedsAttention KPIStatus = "needs_attention"
	KPIGood           KPIStatus = "good"
	KPIExcellent      KPIStatus = "excellent"
)

// Rank orders tiers from critical (0) to excellent (3).
func (s KPIStatus) Rank() int {
	switch s {
	case KPINeedsAttention:
		return 1
	case KPIGood:
		return 2
	case KPIExcellent:
		return 3
	default:
		return 0
	}
}

// KPIResult is one metric's actual-vs-target outcome for a window.
type KPIResult struct {
	Current float64   `json:"current"`
	Target  float64   `json:"target"`
	Status  KPIStatus `json:"status"`
}

// ReportPeriod captures the reporting window boundaries.
type ReportPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// KPIReport is the per-window KPI block returned to dashboards.
type KPIReport struct {
	Period     ReportPeriod `json:"period"`
	Calls      KPIResult    `json:"calls"`
	Agreements KPIResult    `json:"agreements"`
	Lists      KPIResult    `json:"lists"`
	Sales      KPIResult    `json:"sales"`
	Conversion KPIResult    `json:"conversion"`
}

// TeamTargets holds team-wide targets scaled by active headcount.
type TeamTargets struct {
	Weekly       map[string]float64 `json:"weekly"`
	Monthly      map[string]float64 `json:"monthly"`
	ActiveAgents []string           `json:"active_agents"`
}

// FunnelStage is one aggregated stage of the sales funnel.
type FunnelStage struct {
	Name           string  `json:"name"`
	Count          int     `json:"count"`
	Percentage     float64 `json:"percentage"`
	ConversionRate float64 `json:"conversion_rate"`
	DropoffRate    float64 `json:"dropoff_rate"`
}

// FunnelDrop identifies the worst stage-to-stage loss.
type FunnelDrop struct {
	Stage       string  `json:"stage"`
	DropoffRate float64 `json:"dropoff_rate"`
}

// FunnelReport is the full funnel aggregation.
type FunnelReport struct {
	TotalItems     int           `json:"total_items"`
	Stages         []FunnelStage `json:"stages"`
	BiggestDropoff *FunnelDrop   `json:"biggest_dropoff,omitempty"`
}

// TrendPoint is one period of a rolling series.
type TrendPoint struct {
	Period   string  `json:"period"`
	Actual   float64 `json:"actual"`
	Target   float64 `json:"target"`
	Variance float64 `json:"variance"`
}

// Predictions are naive moving-average extrapolations, not statistical
// forecasts.
type Predictions struct {
	NextWeekCalls       float64 `json:"next_week_calls"`
	NextMonthAgreements float64 `json:"next_month_agreements"`
	NextQuarterLists    float64 `json:"next_quarter_lists"`
	NextQuarterRevenue  float64 `json:"next_quarter_revenue"`
}

// TrendReport bundles the rolling series and predictions.
type TrendReport struct {
	WeeklyCalls       []TrendPoint `json:"weekly_calls"`
	MonthlyAgreements []TrendPoint `json:"monthly_agreements"`
	QuarterlyLists    []TrendPoint `json:"quarterly_lists"`
	QuarterlyRevenue  []TrendPoint `json:"quarterly_revenue"`
	Predictions       Predictions  `json:"predictions"`
}

// InsightPriority orders action items.
type InsightPriority string

const (
	PriorityUrgent InsightPriority = "urgent"
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
)

// Rank orders priorities from urgent (0) downwards for sorting.
func (p InsightPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	default:
		return 2
	}
}

// Insight is one rule-generated action item.
type Insight struct {
	Priority InsightPriority `json:"priority"`
	Category string          `json:"category"`
	Action   string          `json:"action"`
	Metric   string          `json:"metric"`
	Deadline string          `json:"deadline"`
}
