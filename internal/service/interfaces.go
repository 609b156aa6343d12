// Package service defines the interfaces the command layer depends on.
package service

import (
	"context"

	"github.com/Veraticus/bill-autoreader/internal/model"
)

// RunStore persists evaluation runs.
type RunStore interface {
	SaveRun(ctx context.Context, run *model.EvaluationRun) error
	GetRun(ctx context.Context, id string) (*model.EvaluationRun, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error)
	FieldAccuracy(ctx context.Context, runID string) ([]model.FieldAccuracy, error)
	DeleteRun(ctx context.Context, id string) error
	Migrate(ctx context.Context) error
	Close() error
}
