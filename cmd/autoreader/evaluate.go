package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/bill-autoreader/internal/cli"
	"github.com/Veraticus/bill-autoreader/internal/common"
	"github.com/Veraticus/bill-autoreader/internal/evaluation"
	"github.com/Veraticus/bill-autoreader/internal/model"
)

func (a *app) evaluateCmd() *cobra.Command {
	var (
		exportPath   string
		noStore      bool
		showFailures bool
		quiet        bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate <dataset>",
		Short: "Compare a bill reader's output with ground truth",
		Long: `Evaluate a dataset of bills. Each bill lists the fields the reader predicted
and the ground-truth values; every ground-truth field with a comparator is
checked. A field that cannot be compared counts as a miss and never stops
the run. Results are stored unless --no-store is given.`,
		Example: `  autoreader evaluate testdata/march.yaml
  autoreader evaluate march.json --export reports/march.xlsx --failures`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := evaluation.LoadDataset(args[0])
			if err != nil {
				return err
			}

			interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx, stop := interrupts.HandleInterrupts(cmd.Context(), !noStore)
			defer stop()

			var progressOut io.Writer = cmd.ErrOrStderr()
			if quiet {
				progressOut = nil
			}
			progress := cli.NewProgress(progressOut, len(ds.Cases), "Evaluating bills...")

			evaluator := evaluation.NewEvaluator(a.matcher())
			run, runErr := evaluator.EvaluateDataset(ctx, ds.Name, ds.Cases, progress.Tick)
			if runErr != nil && !errors.Is(runErr, context.Canceled) {
				return runErr
			}
			if runErr == nil {
				progress.Finish()
			}

			if !noStore {
				// the parent context may be gone after an interrupt
				if err := a.saveRun(context.WithoutCancel(ctx), &run); err != nil {
					return err
				}
			}

			if exportPath != "" {
				if err := evaluation.ExportXLSX(run, exportPath); err != nil {
					return fmt.Errorf("failed to export run: %w", err)
				}
				slog.Info("Exported evaluation run", "path", exportPath)
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, cli.RenderRun(run.Summary(), run.Accuracy())); err != nil {
				return err
			}
			if showFailures {
				if _, err := fmt.Fprintln(out, cli.RenderFailures(run)); err != nil {
					return err
				}
			}

			if runErr != nil {
				return fmt.Errorf("evaluation stopped after %d of %d bills: %w", len(run.Cases), len(ds.Cases), runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "write the results to an xlsx workbook")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not save the run to the database")
	cmd.Flags().BoolVar(&showFailures, "failures", false, "list every field that did not match")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")

	return cmd
}

func (a *app) saveRun(ctx context.Context, run *model.EvaluationRun) error {
	store, cleanup, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := store.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	common.LogInfo("Saved evaluation run", common.Fields{"id": run.ID, "database": a.cfg.Database.Path})
	return nil
}
