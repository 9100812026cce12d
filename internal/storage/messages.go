package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/navi-hq/navi/internal/model"
	"github.com/navi-hq/navi/internal/service"
)

// SaveMessages persists parsed messages, skipping duplicates by hash.
// Returns the number of newly inserted messages.
func (s *SQLiteStorage) SaveMessages(ctx context.Context, messages []model.Message) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if messages == nil {
		return 0, fmt.Errorf("%w: messages", ErrNilParameter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO messages (
			hash, timestamp, sender, text, kind, call_duration_seconds
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, msg := range messages {
		if msg.Hash == "" {
			msg.Hash = msg.GenerateHash()
		}

		result, execErr := stmt.ExecContext(ctx,
			msg.Hash,
			msg.Timestamp.UTC(),
			msg.Sender,
			msg.Text,
			string(msg.Kind),
			int64(msg.CallDuration/time.Second),
		)
		if execErr != nil {
			return 0, fmt.Errorf("failed to save message: %w", execErr)
		}

		rows, raErr := result.RowsAffected()
		if raErr != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", raErr)
		}
		inserted += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit messages: %w", err)
	}
	return inserted, nil
}

// GetMessages retrieves messages matching the filter, ordered by timestamp.
func (s *SQLiteStorage) GetMessages(ctx context.Context, filter service.MessageFilter) ([]model.Message, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT hash, timestamp, sender, text, kind, call_duration_seconds
		FROM messages
	`
	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, filter.EndDate.UTC())
	}
	if filter.Sender != "" {
		conditions = append(conditions, "sender = ?")
		args = append(args, filter.Sender)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY timestamp ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []model.Message
	for rows.Next() {
		msg, scanErr := scanMessage(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return messages, nil
}

// CountMessages returns the total number of stored messages.
func (s *SQLiteStorage) CountMessages(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

func scanMessage(rows *sql.Rows) (model.Message, error) {
	var msg model.Message
	var kind string
	var callSeconds int64

	if err := rows.Scan(&msg.Hash, &msg.Timestamp, &msg.Sender, &msg.Text, &kind, &callSeconds); err != nil {
		return model.Message{}, fmt.Errorf("failed to scan message: %w", err)
	}

	msg.Kind = model.MessageKind(kind)
	msg.CallDuration = time.Duration(callSeconds) * time.Second
	msg.Timestamp = msg.Timestamp.UTC()
	return msg, nil
}
