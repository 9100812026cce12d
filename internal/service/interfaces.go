// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/navi-hq/navi/internal/model"
)

// MessageFilter defines filtering options for message queries.
type MessageFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Sender    string
	Limit     int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Message operations
	SaveMessages(ctx context.Context, messages []model.Message) (int, error)
	GetMessages(ctx context.Context, filter MessageFilter) ([]model.Message, error)
	CountMessages(ctx context.Context) (int, error)

	// Scoring run operations
	SaveRun(ctx context.Context, run *ScoringRun) (int64, error)
	GetRun(ctx context.Context, id int64) (*ScoringRun, error)
	ListRuns(ctx context.Context, limit int) ([]ScoringRun, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ScoringRun is a persisted record of one completed health analysis.
type ScoringRun struct {
	ID           int64
	RunAt        time.Time
	WindowStart  time.Time
	WindowEnd    time.Time
	MessageCount int
	Overall      float64
	LabelEN      string
	Confidence   float64
	OracleModel  string
	OracleCalls  int
	CostUSD      float64
	ResultJSON   string
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
