package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"crm-analytics-service/internal/model"
)

// ReportRepository defines database operations for the analytics service.
type ReportRepository interface {
	// CreateActivityBatch inserts ingested activity events in one batch.
	CreateActivityBatch(ctx context.Context, entries []model.ActivityLog) error

	// FetchPipelineItems returns the full current pipeline snapshot.
	FetchPipelineItems(ctx context.Context) ([]model.PipelineItem, error)

	// FetchActivityLogs returns log entries with timestamps in [from, to].
	FetchActivityLogs(ctx context.Context, from, to time.Time) ([]model.ActivityLog, error)

	// FetchFinanceEntries returns billing records invoiced in [from, to].
	FetchFinanceEntries(ctx context.Context, from, to time.Time) ([]model.FinanceEntry, error)

	// FetchKPITargets returns the configured per-agent targets.
	FetchKPITargets(ctx context.Context) ([]model.KPITarget, error)
}

type reportRepository struct {
	conn clickhouse.Conn
}

// NewReportRepository creates a ReportRepository backed by ClickHouse.
func NewReportRepository(conn clickhouse.Conn) ReportRepository {
	return &reportRepository{conn: conn}
}

const insertActivityQuery = `
	INSERT INTO activity_logs (id, bdr, activity_type, ts, pipeline_item_id, lead_id, previous_status, new_status, notes, description)
`

func (r *reportRepository) CreateActivityBatch(ctx context.Context, entries []model.ActivityLog) error {
	if len(entries) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertActivityQuery)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, entry := range entries {
		err := batch.Append(
			entry.ID,
			entry.BDR,
			entry.ActivityType,
			entry.Timestamp,
			nullIfEmpty(entry.PipelineItemID),
			nullIfEmpty(entry.LeadID),
			nullIfEmpty(entry.PreviousStatus),
			nullIfEmpty(entry.NewStatus),
			entry.Notes,
			entry.Description,
		)
		if err != nil {
			return fmt.Errorf("append batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

type pipelineItemRow struct {
	ID                  string     `ch:"id"`
	BDR                 string     `ch:"bdr"`
	Category            string     `ch:"category"`
	Status              string     `ch:"status"`
	Value               float64    `ch:"value"`
	Probability         int32      `ch:"probability"`
	AddedDate           time.Time  `ch:"added_date"`
	LastUpdated         time.Time  `ch:"last_updated"`
	CallDate            *time.Time `ch:"call_date"`
	ExpectedCloseDate   *time.Time `ch:"expected_close_date"`
	AgreementDate       *time.Time `ch:"agreement_date"`
	PartnerListSentDate *time.Time `ch:"partner_list_sent_date"`
	FirstSaleDate       *time.Time `ch:"first_sale_date"`
	Notes               string     `ch:"notes"`
	ParentID            *string    `ch:"parent_id"`
	IsSublist           bool       `ch:"is_sublist"`
	PartnerListSize     int32      `ch:"partner_list_size"`
}

const selectPipelineItemsQuery = `
	SELECT id, bdr, category, status, value, probability, added_date, last_updated,
	       call_date, expected_close_date, agreement_date, partner_list_sent_date, first_sale_date,
	       notes, parent_id, is_sublist, partner_list_size
	FROM pipeline_items FINAL
`

func (r *reportRepository) FetchPipelineItems(ctx context.Context) ([]model.PipelineItem, error) {
	var rows []pipelineItemRow
	if err := r.conn.Select(ctx, &rows, selectPipelineItemsQuery); err != nil {
		return nil, fmt.Errorf("fetch pipeline items: %w", err)
	}

	items := make([]model.PipelineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, model.PipelineItem{
			ID:                  row.ID,
			BDR:                 row.BDR,
			Category:            row.Category,
			Status:              row.Status,
			Value:               row.Value,
			Probability:         int(row.Probability),
			AddedDate:           row.AddedDate,
			LastUpdated:         row.LastUpdated,
			CallDate:            row.CallDate,
			ExpectedCloseDate:   row.ExpectedCloseDate,
			AgreementDate:       row.AgreementDate,
			PartnerListSentDate: row.PartnerListSentDate,
			FirstSaleDate:       row.FirstSaleDate,
			Notes:               row.Notes,
			ParentID:            emptyIfNil(row.ParentID),
			IsSublist:           row.IsSublist,
			PartnerListSize:     int(row.PartnerListSize),
		})
	}
	return items, nil
}

type activityLogRow struct {
	ID             string    `ch:"id"`
	BDR            string    `ch:"bdr"`
	ActivityType   string    `ch:"activity_type"`
	Timestamp      time.Time `ch:"ts"`
	PipelineItemID *string   `ch:"pipeline_item_id"`
	LeadID         *string   `ch:"lead_id"`
	PreviousStatus *string   `ch:"previous_status"`
	NewStatus      *string   `ch:"new_status"`
	Notes          string    `ch:"notes"`
	Description    string    `ch:"description"`
}

const selectActivityLogsQuery = `
	SELECT id, bdr, activity_type, ts, pipeline_item_id, lead_id, previous_status, new_status, notes, description
	FROM activity_logs
	WHERE ts >= ? AND ts <= ?
	ORDER BY ts
`

func (r *reportRepository) FetchActivityLogs(ctx context.Context, from, to time.Time) ([]model.ActivityLog, error) {
	var rows []activityLogRow
	if err := r.conn.Select(ctx, &rows, selectActivityLogsQuery, from, to); err != nil {
		return nil, fmt.Errorf("fetch activity logs: %w", err)
	}

	logs := make([]model.ActivityLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, model.ActivityLog{
			ID:             row.ID,
			BDR:            row.BDR,
			ActivityType:   row.ActivityType,
			Timestamp:      row.Timestamp,
			PipelineItemID: emptyIfNil(row.PipelineItemID),
			LeadID:         emptyIfNil(row.LeadID),
			PreviousStatus: emptyIfNil(row.PreviousStatus),
			NewStatus:      emptyIfNil(row.NewStatus),
			Notes:          row.Notes,
			Description:    row.Description,
		})
	}
	return logs, nil
}

type financeEntryRow struct {
	ID          string    `ch:"id"`
	BDR         string    `ch:"bdr"`
	InvoiceDate time.Time `ch:"invoice_date"`
	SoldAmount  float64   `ch:"sold_amount"`
	GBPAmount   float64   `ch:"gbp_amount"`
	Status      string    `ch:"status"`
}

const selectFinanceEntriesQuery = `
	SELECT id, bdr, invoice_date, sold_amount, gbp_amount, status
	FROM finance_entries FINAL
	WHERE invoice_date >= ? AND invoice_date <= ?
	ORDER BY invoice_date
`

func (r *reportRepository) FetchFinanceEntries(ctx context.Context, from, to time.Time) ([]model.FinanceEntry, error) {
	var rows []financeEntryRow
	if err := r.conn.Select(ctx, &rows, selectFinanceEntriesQuery, from, to); err != nil {
		return nil, fmt.Errorf("fetch finance entries: %w", err)
	}

	entries := make([]model.FinanceEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, model.FinanceEntry{
			ID:          row.ID,
			BDR:         row.BDR,
			InvoiceDate: row.InvoiceDate,
			SoldAmount:  row.SoldAmount,
			GBPAmount:   row.GBPAmount,
			Status:      row.Status,
		})
	}
	return entries, nil
}

type kpiTargetRow struct {
	Name  string  `ch:"name"`
	Value float64 `ch:"value"`
}

const selectKPITargetsQuery = `
	SELECT name, value FROM kpi_targets FINAL ORDER BY name
`

func (r *reportRepository) FetchKPITargets(ctx context.Context) ([]model.KPITarget, error) {
	var rows []kpiTargetRow
	if err := r.conn.Select(ctx, &rows, selectKPITargetsQuery); err != nil {
		return nil, fmt.Errorf("fetch kpi targets: %w", err)
	}

	targets := make([]model.KPITarget, 0, len(rows))
	for _, row := range rows {
		targets = append(targets, model.KPITarget{Name: row.Name, Value: row.Value})
	}
	return targets, nil
}

func nullIfEmpty(val string) any {
	if val == "" {
		return nil
	}
	return val
}

func emptyIfNil(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}
