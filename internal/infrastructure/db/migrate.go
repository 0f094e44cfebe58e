package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the minimal tables needed by this app.
// This keeps setup simple (no external migration tool), but still gives persistence.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists scan_results (
			id bigserial primary key,
			symbol text not null,
			timeframe text not null,
			ts timestamptz not null,
			price double precision not null,
			score double precision not null,
			label text not null,
			confidence double precision not null,
			indicators jsonb not null default '{}'::jsonb,
			events jsonb not null default '{}'::jsonb,
			timeframe_scores jsonb not null default '[]'::jsonb,
			ml_class int null,
			ml_probability double precision null,
			created_at timestamptz not null default now()
		);`,
		`create index if not exists idx_scan_results_symbol_ts
			on scan_results (symbol, ts desc);`,
		`create index if not exists idx_scan_results_label
			on scan_results (label);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
