// Package storage persists evaluation runs of the autoreader.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/bill-autoreader/internal/model"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrInvalidRun  = errors.New("invalid evaluation run")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRun checks a run before it is written.
func validateRun(run *model.EvaluationRun) error {
	if run == nil {
		return fmt.Errorf("%w: nil run", ErrInvalidRun)
	}
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRun)
	}
	if strings.TrimSpace(run.Dataset) == "" {
		return fmt.Errorf("%w: missing dataset", ErrInvalidRun)
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidRun)
	}
	if run.FinishedAt.Before(run.StartedAt) {
		return fmt.Errorf("%w: finished before it started", ErrInvalidRun)
	}

	for i, c := range run.Cases {
		if strings.TrimSpace(c.CaseID) == "" {
			return fmt.Errorf("%w: case at index %d has no ID", ErrInvalidRun, i)
		}
		for _, f := range c.Fields {
			if strings.TrimSpace(f.Field) == "" {
				return fmt.Errorf("%w: case %s has a result without a field name", ErrInvalidRun, c.CaseID)
			}
		}
	}
	return nil
}
