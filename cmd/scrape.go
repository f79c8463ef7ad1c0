package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/faculty-cli/internal/model"
)

var (
	scrapeGroup  string
	scrapeFormat string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <faculty-url>",
	Short: "Discover and extract faculty from a directory URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(scrapeFormat); err != nil {
			return err
		}
		if err := cfg.Validate("scrape"); err != nil {
			return err
		}

		env, err := initEnv(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}

		resp, err := env.Pipeline.Run(cmd.Context(), model.ScrapeRequest{
			FacultyURL: args[0],
			GroupLabel: scrapeGroup,
		})
		if err != nil {
			return err
		}
		return writeScrape(cmd.OutOrStdout(), scrapeFormat, resp)
	},
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeGroup, "group", "", "group label copied onto every record (e.g. department)")
	scrapeCmd.Flags().StringVar(&scrapeFormat, "format", formatTable, "output format: table, json, or yaml")
	rootCmd.AddCommand(scrapeCmd)
}
