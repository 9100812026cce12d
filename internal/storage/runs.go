package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/navi-hq/navi/internal/common"
	"github.com/navi-hq/navi/internal/service"
)

// SaveRun records a completed scoring run and returns its ID.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *service.ScoringRun) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if run == nil {
		return 0, fmt.Errorf("%w: run", ErrNilParameter)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO scoring_runs (
			run_at, window_start, window_end, message_count,
			overall, label, confidence,
			oracle_model, oracle_calls, cost_usd, result_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunAt.UTC(),
		run.WindowStart.UTC(),
		run.WindowEnd.UTC(),
		run.MessageCount,
		run.Overall,
		run.LabelEN,
		run.Confidence,
		run.OracleModel,
		run.OracleCalls,
		run.CostUSD,
		run.ResultJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save scoring run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// GetRun retrieves a single scoring run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id int64) (*service.ScoringRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, run_at, window_start, window_end, message_count,
			overall, label, confidence,
			oracle_model, oracle_calls, cost_usd, result_json
		FROM scoring_runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: scoring run %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the most recent scoring runs, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]service.ScoringRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_at, window_start, window_end, message_count,
			overall, label, confidence,
			oracle_model, oracle_calls, cost_usd, result_json
		FROM scoring_runs
		ORDER BY run_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scoring runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []service.ScoringRun
	for rows.Next() {
		run, scanErr := scanRun(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scoring runs: %w", err)
	}
	return runs, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*service.ScoringRun, error) {
	var run service.ScoringRun
	var oracleModel sql.NullString
	var resultJSON sql.NullString

	err := row.Scan(
		&run.ID,
		&run.RunAt,
		&run.WindowStart,
		&run.WindowEnd,
		&run.MessageCount,
		&run.Overall,
		&run.LabelEN,
		&run.Confidence,
		&oracleModel,
		&run.OracleCalls,
		&run.CostUSD,
		&resultJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan scoring run: %w", err)
	}

	run.OracleModel = oracleModel.String
	run.ResultJSON = resultJSON.String
	run.RunAt = run.RunAt.UTC()
	run.WindowStart = run.WindowStart.UTC()
	run.WindowEnd = run.WindowEnd.UTC()
	return &run, nil
}
