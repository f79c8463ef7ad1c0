package main

import (
	"github.com/spf13/cobra"
)

var (
	analyzeName   string
	analyzeFormat string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <profile-url>",
	Short: "Summarize a faculty member's research from their profile page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(analyzeFormat); err != nil {
			return err
		}
		if err := cfg.Validate("analyze"); err != nil {
			return err
		}

		env, err := initEnv(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}

		analysis, err := env.Analyzer.Analyze(cmd.Context(), args[0], analyzeName)
		if err != nil {
			return err
		}
		return writeAnalysis(cmd.OutOrStdout(), analyzeFormat, analysis)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeName, "name", "", "faculty member's name")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", formatTable, "output format: table, json, or yaml")
	rootCmd.AddCommand(analyzeCmd)
}
