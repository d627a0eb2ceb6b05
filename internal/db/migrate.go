package db

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// RunMigrations ensures required tables exist. This keeps the service
// self-contained without an external migration step.
func RunMigrations(ctx context.Context, conn clickhouse.Conn) error {
	statements := []string{`
CREATE TABLE IF NOT EXISTS activity_logs
(
	id               String,
	bdr              String,
	activity_type    String,
	ts               DateTime64(3, 'UTC'),
	pipeline_item_id Nullable(String),
	lead_id          Nullable(String),
	previous_status  Nullable(String),
	new_status       Nullable(String),
	notes            String DEFAULT '',
	description      String DEFAULT '',
	ingested_at      DateTime DEFAULT now()
)
ENGINE = ReplacingMergeTree
PARTITION BY toYYYYMM(ts)
ORDER BY (activity_type, ts, bdr, id)
SETTINGS index_granularity = 8192;
`, `
CREATE TABLE IF NOT EXISTS pipeline_items
(
	id                     String,
	bdr                    String,
	category               String,
	status                 String,
	value                  Float64,
	probability            Int32,
	added_date             DateTime64(3, 'UTC'),
	last_updated           DateTime64(3, 'UTC'),
	call_date              Nullable(DateTime64(3, 'UTC')),
	expected_close_date    Nullable(DateTime64(3, 'UTC')),
	agreement_date         Nullable(DateTime64(3, 'UTC')),
	partner_list_sent_date Nullable(DateTime64(3, 'UTC')),
	first_sale_date        Nullable(DateTime64(3, 'UTC')),
	notes                  String DEFAULT '',
	parent_id              Nullable(String),
	is_sublist             Bool DEFAULT false,
	partner_list_size      Int32 DEFAULT 0
)
ENGINE = ReplacingMergeTree(last_updated)
ORDER BY (id)
SETTINGS index_granularity = 8192;
`, `
CREATE TABLE IF NOT EXISTS finance_entries
(
	id           String,
	bdr          String,
	invoice_date DateTime64(3, 'UTC'),
	sold_amount  Float64,
	gbp_amount   Float64,
	status       String
)
ENGINE = ReplacingMergeTree
ORDER BY (id)
SETTINGS index_granularity = 8192;
`, `
CREATE TABLE IF NOT EXISTS kpi_targets
(
	name  String,
	value Float64
)
ENGINE = ReplacingMergeTree
ORDER BY (name)
SETTINGS index_granularity = 8192;
`}

	for _, stmt := range statements {
		if err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
