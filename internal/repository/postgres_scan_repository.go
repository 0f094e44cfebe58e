package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"signalcipher-backend/internal/domain"
)

// PostgresScanHistoryRepository appends every scan cycle's results to
// Postgres so past signals can be reviewed and backtested.
type PostgresScanHistoryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresScanHistoryRepository(pool *pgxpool.Pool) *PostgresScanHistoryRepository {
	return &PostgresScanHistoryRepository{pool: pool}
}

// SaveResults batch-inserts one cycle's results in a single round trip.
func (r *PostgresScanHistoryRepository) SaveResults(ctx context.Context, results []domain.ScoreResult) error {
	if len(results) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, res := range results {
		events, err := json.Marshal(res.Events)
		if err != nil {
			return err
		}
		indicators, err := json.Marshal(res.Indicators)
		if err != nil {
			return err
		}
		tfScores, err := json.Marshal(res.TimeframeScores)
		if err != nil {
			return err
		}

		var mlClass *int
		var mlProb *float64
		if res.ML != nil {
			mlClass = &res.ML.PredictedClass
			mlProb = &res.ML.Probability
		}

		batch.Queue(`
			insert into scan_results(
				symbol, timeframe, ts, price, score, label, confidence,
				indicators, events, timeframe_scores, ml_class, ml_probability
			) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		`,
			res.Symbol,
			res.Timeframe,
			res.Timestamp,
			res.Price,
			res.Score,
			string(res.Label),
			res.Confidence,
			indicators,
			events,
			tfScores,
			mlClass,
			mlProb,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range results {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// GetRecentBySymbol returns the newest stored results for one symbol.
func (r *PostgresScanHistoryRepository) GetRecentBySymbol(ctx context.Context, symbol string, limit int) ([]domain.ScoreResult, error) {
	rows, err := r.pool.Query(ctx, `
		select symbol, timeframe, ts, price, score, label, confidence,
			indicators, events, timeframe_scores, ml_class, ml_probability
		from scan_results
		where symbol = $1
		order by ts desc
		limit $2
	`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.ScoreResult, 0, limit)
	for rows.Next() {
		var (
			res        domain.ScoreResult
			label      string
			indicators []byte
			events     []byte
			tfScores   []byte
			mlClass    *int
			mlProb     *float64
		)
		if err := rows.Scan(
			&res.Symbol, &res.Timeframe, &res.Timestamp, &res.Price,
			&res.Score, &label, &res.Confidence,
			&indicators, &events, &tfScores, &mlClass, &mlProb,
		); err != nil {
			return nil, err
		}
		res.Label = domain.Label(label)
		if err := json.Unmarshal(indicators, &res.Indicators); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(events, &res.Events); err != nil {
			return nil, err
		}
		if len(tfScores) > 0 {
			if err := json.Unmarshal(tfScores, &res.TimeframeScores); err != nil {
				return nil, err
			}
		}
		if mlClass != nil && mlProb != nil {
			res.ML = &domain.MLPrediction{PredictedClass: *mlClass, Probability: *mlProb}
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
