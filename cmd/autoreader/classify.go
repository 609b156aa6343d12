package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/bill-autoreader/internal/classification"
	"github.com/Veraticus/bill-autoreader/internal/cli"
	"github.com/Veraticus/bill-autoreader/internal/common"
)

func (a *app) classifyCmd() *cobra.Command {
	var (
		group     string
		category  string
		billsFile string
		fromStdin bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "classify [labels...]",
		Short: "Map bill labels onto tariff categories",
		Long: `Classify bill line-item labels with one tariff group. Categories are tried in
the group's order and each label belongs to the first category that matches it.

With --category, print only the labels matching that one category. With
--bills, classify every bill of a JSON or YAML file ({id, labels} entries)
independently; a bill that fails is reported without stopping the others.`,
		Example: `  autoreader classify "Peak Usage" "Daily Supply Charge"
  autoreader classify --group market_tariff "AEMO Ancillary Charge"
  autoreader classify --category peak "Peak" "Off Peak" "General usage"
  autoreader classify --bills march-bills.yaml
  pdftotext bill.pdf - | autoreader classify --stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if group == "" {
				group = a.cfg.Classifier.DefaultGroup
			}

			c, err := a.classifier()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if billsFile != "" {
				return a.classifyBills(cmd, c, billsFile, group, asJSON)
			}

			labels := args
			if fromStdin {
				read, err := cli.ReadLabels(cmd.Context(), cmd.InOrStdin())
				if err != nil {
					return err
				}
				labels = append(labels, read...)
			}
			if len(labels) == 0 {
				return common.NewUserError("no labels to classify", nil)
			}

			if category != "" {
				matched, err := c.Identify(labels, category)
				if err != nil {
					return lookupError(err)
				}
				if asJSON {
					return writeJSON(out, matched)
				}
				for _, label := range matched {
					if _, err := fmt.Fprintln(out, label); err != nil {
						return err
					}
				}
				return nil
			}

			assignments, err := c.Assign(labels, group)
			if err != nil {
				return lookupError(err)
			}

			if asJSON {
				return writeJSON(out, assignments)
			}

			_, err = fmt.Fprintln(out, cli.RenderAssignments(assignments))
			return err
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "tariff group (default from classifier.default_group)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list the labels matching this category")
	cmd.Flags().StringVar(&billsFile, "bills", "", "JSON or YAML file of bills to classify")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read additional labels from stdin, one per line")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.MarkFlagsMutuallyExclusive("category", "bills")
	cmd.MarkFlagsMutuallyExclusive("stdin", "bills")

	return cmd
}

// billOutput is the JSON form of one classified bill.
type billOutput struct {
	Assignments any    `json:"assignments,omitempty"`
	BillID      string `json:"id"`
	Error       string `json:"error,omitempty"`
}

func (a *app) classifyBills(cmd *cobra.Command, c *classification.Classifier, path, group string, asJSON bool) error {
	bills, err := readBills(path)
	if err != nil {
		return err
	}

	results, err := c.ClassifyBatch(cmd.Context(), bills, group)
	if err != nil {
		return lookupError(err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			common.LogError(r.Err, "bill classification failed", common.Fields{"bill": r.BillID})
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		outputs := make([]billOutput, len(results))
		for i, r := range results {
			outputs[i] = billOutput{BillID: r.BillID}
			if r.Err != nil {
				outputs[i].Error = r.Err.Error()
			} else {
				outputs[i].Assignments = r.Assignments
			}
		}
		if err := writeJSON(out, outputs); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Err != nil {
				if _, err := fmt.Fprintln(out, cli.FormatError(r.Err.Error())); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(out, "%s\n%s\n", cli.BoldStyle.Render(r.BillID), cli.RenderAssignments(r.Assignments)); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d bills could not be classified", failed, len(results))
	}
	return nil
}

func readBills(path string) ([]classification.Bill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bills: %w", err)
	}

	var bills []classification.Bill
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &bills)
	default:
		err = yaml.Unmarshal(data, &bills)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse bills %s: %w", path, err)
	}

	for i := range bills {
		if bills[i].ID == "" {
			bills[i].ID = fmt.Sprintf("bill-%d", i+1)
		}
	}
	return bills, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
