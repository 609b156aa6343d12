package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Veraticus/bill-autoreader/internal/cli"
	"github.com/Veraticus/bill-autoreader/internal/retailer"
)

func (a *app) auditCmd() *cobra.Command {
	var (
		group  string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Check the rules against known retailer labels",
		Long: `Classify every label from the built-in retailer tables and list the ones the
rules put in a different category. Run it after editing a rules file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if group == "" {
				group = a.cfg.Classifier.DefaultGroup
			}

			c, err := a.classifier()
			if err != nil {
				return err
			}

			report, err := retailer.Audit(c, group)
			if err != nil {
				return lookupError(err)
			}

			out := cmd.OutOrStdout()
			if len(report.Disagreements) > 0 {
				t := table.New().Headers("Retailer", "Label", "Expected", "Got")
				for _, d := range report.Disagreements {
					t.Row(d.Retailer, d.Label, string(d.Expected), d.Got.DisplayName())
				}
				if _, err := fmt.Fprintln(out, t.String()); err != nil {
					return err
				}
			}

			summary := fmt.Sprintf("%d of %d retailer labels agree (%s), %d outside %s skipped",
				report.Checked-len(report.Disagreements), report.Checked,
				cli.FormatRate(report.Agreement()), report.Skipped, report.Group)
			if _, err := fmt.Fprintln(out, summary); err != nil {
				return err
			}

			if strict && len(report.Disagreements) > 0 {
				return fmt.Errorf("%d retailer labels disagree with the rules", len(report.Disagreements))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "tariff group to audit (default from classifier.default_group)")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any label disagrees")

	return cmd
}
