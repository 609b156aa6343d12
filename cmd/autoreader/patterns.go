package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/bill-autoreader/internal/cli"
	"github.com/Veraticus/bill-autoreader/internal/model"
)

func (a *app) patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patterns [category]",
		Aliases: []string{"pattern"},
		Short:   "Show the match rules of a category",
		Long: `Without arguments, list every category and the tariff group it belongs to.
With a category name (case-insensitive), print its rules in match order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.classifier()
			if err != nil {
				return err
			}
			registry := c.Registry()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, category := range registry.Categories() {
					group := "-"
					if g, ok := registry.GroupOf(category); ok {
						group = string(g)
					}
					if _, err := fmt.Fprintf(out, "%-24s %s\n", category, cli.SubtleStyle.Render(group)); err != nil {
						return err
					}
				}
				return nil
			}

			category, err := registry.Category(args[0])
			if err != nil {
				return lookupError(err)
			}
			patterns, err := registry.PatternsFor(args[0])
			if err != nil {
				return lookupError(err)
			}

			_, err = fmt.Fprint(out, cli.RenderPatterns(category, patterns))
			return err
		},
	}

	return cmd
}

func (a *app) groupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups [group]",
		Short: "Show tariff groups in priority order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.classifier()
			if err != nil {
				return err
			}
			registry := c.Registry()

			groups := registry.Groups()
			if len(args) == 1 {
				groups = []model.TariffGroup{model.TariffGroup(strings.ToLower(args[0]))}
			}

			for _, g := range groups {
				members, err := registry.Group(string(g))
				if err != nil {
					return lookupError(err)
				}
				if _, err := fmt.Fprint(cmd.OutOrStdout(), cli.RenderGroup(g, members)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
