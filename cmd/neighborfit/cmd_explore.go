package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"neighborfit/internal/console"
	"neighborfit/internal/dataset"
	"neighborfit/internal/similarity"
)

func (a *app) similarCmd() *cobra.Command {
	var (
		metric string
		k      int
	)
	cmd := &cobra.Command{
		Use:   "similar [neighborhood]",
		Short: "List the most similar neighborhoods for each neighborhood",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := dataset.LoadNeighborhoods()
			top, err := similarity.TopK(t, similarity.Metric(metric), k)
			if err != nil {
				return err
			}
			targets := t.Names()
			if len(args) == 1 {
				n, ok := t.ByName(args[0])
				if !ok {
					return fmt.Errorf("unknown neighborhood %q", args[0])
				}
				targets = []string{n.Name}
			}

			out := console.New(cmd.OutOrStdout())
			out.Header(fmt.Sprintf("SIMILAR NEIGHBORHOODS (%s, k=%d)", metric, k), true)
			for _, name := range targets {
				out.Blank()
				out.Section(name + ":")
				for _, nb := range top[name] {
					out.Line("  %s: %.3f", nb.Name, nb.Sim)
				}
			}
			return out.Err()
		},
	}
	cmd.Flags().StringVar(&metric, "metric", string(similarity.Cosine), "cosine or jaccard")
	cmd.Flags().IntVar(&k, "k", 3, "Neighbors per neighborhood")
	return cmd
}

func (a *app) neighborhoodsCmd() *cobra.Command {
	var search, sortKey string
	cmd := &cobra.Command{
		Use:   "neighborhoods",
		Short: "List neighborhoods, optionally filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := dataset.Search(dataset.LoadNeighborhoods(), search)
			if err := dataset.SortBy(rows, sortKey); err != nil {
				return err
			}

			out := console.New(cmd.OutOrStdout())
			out.Header("NEIGHBORHOODS", true)
			if len(rows) == 0 {
				out.Warn("No neighborhoods match %q", search)
				return out.Err()
			}
			for _, n := range rows {
				out.Blank()
				out.Section(fmt.Sprintf("%s (%s)", n.Name, n.City))
				out.Line("  %s", n.Description)
				out.Line("  walkability %.0f · safety %.0f · affordability %.0f · nightlife %.0f · family_friendly %.0f · transit %.0f",
					n.Scores.Walkability, n.Scores.Safety, n.Scores.Affordability,
					n.Scores.Nightlife, n.Scores.FamilyFriendly, n.Scores.Transit)
				out.Line("  rent $%.0f · median income $%.0f · median age %.0f · population %.0f",
					n.AverageRent, n.MedianIncome, n.MedianAge, n.Population)
				keys := append([]string(nil), n.KeyFeatures...)
				sort.Strings(keys)
				out.Note("  %s", strings.Join(keys, ", "))
			}
			return out.Err()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive filter over name, description and key features")
	cmd.Flags().StringVar(&sortKey, "sort", "name", "name, rent (cheapest first) or a numeric column (highest first)")
	return cmd
}
