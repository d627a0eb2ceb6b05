package model

import "time"

// Activity types recorded in the log.
const (
	ActivityStatusChange    = "Status_Change"
	ActivityCallCompleted   = "Call_Completed"
	ActivityAgreementSent   = "Agreement_Sent"
	ActivityPartnerListSent = "Partner_List_Sent"
	ActivityNoteAdded       = "Note_Added"
)

// ActivityRequest represents an incoming activity event payload.
type ActivityRequest struct {
	BDR            string `json:"bdr"`
	ActivityType   string `json:"activity_type"`
	Timestamp      int64  `json:"timestamp"`
	PipelineItemID string `json:"pipeline_item_id"`
	LeadID         string `json:"lead_id"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	Notes          string `json:"notes"`
	Description    string `json:"description"`
}

// ActivityLog is an immutable, append-only event record. PreviousStatus and
// NewStatus are populated only for Status_Change events. Empty string means
// the field is absent.
type ActivityLog struct {
	ID             string
	BDR            string
	ActivityType   string
	Timestamp      time.Time
	PipelineItemID string
	LeadID         string
	PreviousStatus string
	NewStatus      string
	Notes          string
	Description    string
}

// FinanceEntry is a billing record, the authoritative signal that a sale
// occurred.
type FinanceEntry struct {
	ID          string
	BDR         string
	InvoiceDate time.Time
	SoldAmount  float64
	GBPAmount   float64
	Status      string
}

// Per-agent KPI target metric names.
const (
	TargetWeeklyCalls       = "weeklyCalls"
	TargetWeeklyAgreements  = "weeklyAgreements"
	TargetWeeklyLists       = "weeklyLists"
	TargetWeeklySales       = "weeklySales"
	TargetMonthlyCalls      = "monthlyCalls"
	TargetMonthlyAgreements = "monthlyAgreements"
	TargetMonthlyLists      = "monthlyLists"
	TargetMonthlySales      = "monthlySales"
)

// KPITarget is a configured per-agent target value for one metric.
type KPITarget struct {
	Name  string
	Value float64
}

// CallCompletion is a derived record: the business event of a booked call
// having taken place. IsAutomatic marks completions inferred from status
// transitions rather than explicitly logged.
type CallCompletion struct {
	BDR            string    `json:"bdr"`
	PipelineItemID string    `json:"pipeline_item_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	IsAutomatic    bool      `json:"is_automatic"`
}
