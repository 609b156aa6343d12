package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/bill-autoreader/internal/classification"
	"github.com/Veraticus/bill-autoreader/internal/common"
	"github.com/Veraticus/bill-autoreader/internal/demand"
	"github.com/Veraticus/bill-autoreader/internal/evaluation"
	"github.com/Veraticus/bill-autoreader/internal/pattern"
	"github.com/Veraticus/bill-autoreader/internal/service"
	"github.com/Veraticus/bill-autoreader/internal/storage"
)

// classifier builds the classifier from the built-in rules and the
// optional rules file.
func (a *app) classifier() (*classification.Classifier, error) {
	registry, err := pattern.NewRegistryFromFile(a.cfg.Classifier.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	return classification.New(registry), nil
}

// openStore opens and migrates the run database.
func (a *app) openStore(ctx context.Context) (service.RunStore, func(), error) {
	store, err := storage.NewSQLiteStorage(a.cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, func() { _ = store.Close() }, nil
}

func (a *app) matcher() *evaluation.Matcher {
	return evaluation.NewMatcher(evaluation.Thresholds{
		Name:        a.cfg.Evaluation.NameThreshold,
		MaxDistance: a.cfg.Evaluation.MaxDistance,
		TariffLabel: a.cfg.Evaluation.LabelThreshold,
		Label:       a.cfg.Evaluation.AdditionalLabelScore,
	})
}

func (a *app) unitOptions(extra ...demand.UnitOption) []demand.UnitOption {
	opts := []demand.UnitOption{
		demand.WithTolerance(a.cfg.Demand.Tolerance),
		demand.WithLossFactor(a.cfg.Demand.LossFactor),
	}
	return append(opts, extra...)
}

// lookupError turns an unknown category or group into a message that
// points at the listing commands.
func lookupError(err error) error {
	if !common.IsLookupError(err) {
		return err
	}
	return common.NewUserError("see `autoreader patterns` and `autoreader groups` for valid names", err)
}
