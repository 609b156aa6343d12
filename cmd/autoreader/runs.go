package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/bill-autoreader/internal/cli"
)

func (a *app) runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect stored evaluation runs",
	}

	cmd.AddCommand(a.runsListCmd())
	cmd.AddCommand(a.runsShowCmd())
	cmd.AddCommand(a.runsDeleteCmd())

	return cmd
}

func (a *app) runsListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List evaluation runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cleanup, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderRuns(runs))
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs (0 for all)")

	return cmd
}

func (a *app) runsShowCmd() *cobra.Command {
	var showFailures bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the per-field accuracy of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, cleanup, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			run, err := store.GetRun(ctx, args[0])
			if err != nil {
				return err
			}
			accuracy, err := store.FieldAccuracy(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, cli.RenderRun(run.Summary(), accuracy)); err != nil {
				return err
			}
			if showFailures {
				_, err = fmt.Fprintln(out, cli.RenderFailures(*run))
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&showFailures, "failures", false, "list every field that did not match")

	return cmd
}

func (a *app) runsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, cleanup, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.DeleteRun(ctx, args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted run "+args[0]))
			return err
		},
	}
}
