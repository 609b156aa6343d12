package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/bill-autoreader/internal/demand"
	"github.com/Veraticus/bill-autoreader/internal/model"
	"github.com/Veraticus/bill-autoreader/internal/period"
)

func (a *app) demandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demand",
		Short: "Infer how demand charges are priced",
	}

	cmd.AddCommand(a.demandUnitCmd())
	cmd.AddCommand(a.demandStructureCmd())

	return cmd
}

func (a *app) demandUnitCmd() *cobra.Command {
	var (
		usage, price, subtotal float64
		days                   int
	)

	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Infer the price unit of one demand reading",
		Example: `  autoreader demand unit --usage 120 --price 0.5 --subtotal 60
  autoreader demand unit --usage 120 --price 0.5 --subtotal 1860 --days 31`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var extra []demand.UnitOption
			if days > 0 {
				extra = append(extra, demand.WithBillingDays(days))
			}

			unit := demand.InferUnit(usage, price, subtotal, a.unitOptions(extra...)...)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), unit)
			return err
		},
	}

	cmd.Flags().Float64Var(&usage, "usage", 0, "demand usage (kW or kVA)")
	cmd.Flags().Float64Var(&price, "price", 0, "demand rate")
	cmd.Flags().Float64Var(&subtotal, "subtotal", 0, "charged amount")
	cmd.Flags().IntVar(&days, "days", 0, "billing days; enables the unknown result")
	_ = cmd.MarkFlagRequired("usage")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("subtotal")

	return cmd
}

// demandInput is the file read by "demand structure".
type demandInput struct {
	StartDate string             `json:"start_date" yaml:"start_date"`
	EndDate   string             `json:"end_date" yaml:"end_date"`
	Summer    model.DemandRecord `json:"summer" yaml:"summer"`
	NonSummer model.DemandRecord `json:"nonsummer" yaml:"nonsummer"`
}

func (a *app) demandStructureCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "structure",
		Short: "Infer monthly demand, price unit and multipliers of a bill",
		Long: `Read a bill's summer and non-summer demand records from a JSON or YAML file:

  start_date: 1 Oct 2023
  end_date: 30 Nov 2023
  summer:    {usage: [100], price: [0.5], subtotal: [1500]}
  nonsummer: {usage: [90],  price: [0.5], subtotal: [1395]}

and print the inferred structure as JSON.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := readDemandInput(file)
			if err != nil {
				return err
			}

			start, err := parseOptionalDate(in.StartDate)
			if err != nil {
				return err
			}
			end, err := parseOptionalDate(in.EndDate)
			if err != nil {
				return err
			}

			structure, err := demand.InferStructure(in.Summer, in.NonSummer, start, end, a.unitOptions()...)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), structure)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON or YAML demand file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readDemandInput(path string) (*demandInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read demand file: %w", err)
	}

	var in demandInput
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &in)
	default:
		err = yaml.Unmarshal(data, &in)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse demand file: %w", err)
	}
	return &in, nil
}

func parseOptionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return period.ParseBillDate(s)
}
