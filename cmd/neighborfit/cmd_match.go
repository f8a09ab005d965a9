package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"neighborfit/internal/console"
	"neighborfit/internal/dataset"
	"neighborfit/internal/recommend"
)

func (a *app) matchCmd() *cobra.Command {
	var (
		prefs     recommend.Preferences
		lifestyle string
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank neighborhoods for one set of preferences",
		Long: `Scores every neighborhood against the given preferences using lifestyle
multipliers, a budget-aware affordability weight and priority bonuses.

Example:
  neighborfit match --budget 2200 --walkability 9 --nightlife 8 --lifestyle student --priority "Public transportation"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs.Lifestyle = recommend.Lifestyle(lifestyle)
			if lifestyle != "" && !prefs.Lifestyle.Known() {
				a.log.Warn("unknown lifestyle %q, using neutral multipliers", lifestyle)
			}
			matches, err := recommend.Rank(dataset.LoadNeighborhoods(), prefs, limit)
			if err != nil {
				return err
			}
			a.log.Info("ranked %d neighborhoods (lifestyle=%q, priorities=%d)", len(matches), lifestyle, len(prefs.Priorities))

			out := console.New(cmd.OutOrStdout())
			out.Header("NEIGHBORHOOD MATCHES", true)
			for i, m := range matches {
				out.Blank()
				out.Success("%d. %s: %d%% match (confidence %d%%)", i+1, m.Neighborhood.Name, m.Overall, m.Confidence)
				out.Line("   %s", categoryLine(m.Categories))
				for _, r := range m.Reasons {
					out.Line("   - %s", r)
				}
			}
			return out.Err()
		},
	}

	f := cmd.Flags()
	f.Float64Var(&prefs.Budget, "budget", 2500, "Monthly rent budget in dollars")
	f.Float64Var(&prefs.Walkability, "walkability", 5, "Walkability preference (0-10)")
	f.Float64Var(&prefs.Safety, "safety", 5, "Safety preference (0-10)")
	f.Float64Var(&prefs.Nightlife, "nightlife", 5, "Nightlife preference (0-10)")
	f.Float64Var(&prefs.FamilyFriendly, "family-friendly", 5, "Family friendliness preference (0-10)")
	f.Float64Var(&prefs.Transit, "transit", 5, "Transit preference (0-10)")
	f.StringVar(&lifestyle, "lifestyle", "", "young-professional, family, student, retiree or remote-worker")
	f.StringArrayVar(&prefs.Priorities, "priority", nil, "Priority such as \"Safe neighborhood\" (repeatable)")
	f.IntVar(&limit, "limit", recommend.DefaultLimit, "Maximum matches to print")
	return cmd
}

// categoryLine: "walkability 95% · safety 75% · ..." en orden de columnas.
func categoryLine(cats map[string]int) string {
	parts := make([]string, 0, len(cats))
	for _, f := range dataset.ScoreFeatures {
		if v, ok := cats[f]; ok {
			parts = append(parts, fmt.Sprintf("%s %d%%", f, v))
		}
	}
	return strings.Join(parts, " · ")
}
