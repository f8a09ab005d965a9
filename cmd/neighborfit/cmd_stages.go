package main

import (
	"github.com/spf13/cobra"
)

func (a *app) runAnalyze(cmd *cobra.Command, args []string) error {
	_, err := a.pipeline(cmd).Run(cmd.Context())
	return err
}

func (a *app) analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis pipeline",
		Args:  cobra.NoArgs,
		RunE:  a.runAnalyze,
	}
}

func (a *app) correlateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "correlate",
		Short: "Print key correlations between neighborhood characteristics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.pipeline(cmd)
			t, err := p.Load()
			if err != nil {
				return err
			}
			_, err = p.Correlate(t)
			return err
		},
	}
}

func (a *app) clusterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cluster",
		Short: "Cluster neighborhoods with k-means and pick k by silhouette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.pipeline(cmd)
			t, err := p.Load()
			if err != nil {
				return err
			}
			_, _, err = p.Cluster(cmd.Context(), t)
			return err
		},
	}
}

func (a *app) usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Generate synthetic users and print preference statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := a.pipeline(cmd).Users()
			return err
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Score best matches for a sample of synthetic users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.pipeline(cmd)
			t, err := p.Load()
			if err != nil {
				return err
			}
			u, _, err := p.Users()
			if err != nil {
				return err
			}
			_, err = p.ValidateMatching(t, u)
			return err
		},
	}
}

func (a *app) importanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "importance",
		Short: "Print the feature importance table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.pipeline(cmd).Importance()
			return err
		},
	}
}
