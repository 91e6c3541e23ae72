package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbeier/pokedex-web/internal/export"
)

func newExportCmd() *cobra.Command {
	var (
		configPath string
		page       int
		pageSize   int
		name       string
		species    string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one filtered catalog page to a local .xlsx file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := buildApp(configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.service.FetchPage(cmd.Context(), page, pageSize, name, species)
			if err != nil {
				return fmt.Errorf("fetch page: %w", err)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()

			if err := export.Write(f, result.Items); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s (catalog total %d)\n",
				len(result.Items), out, result.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the YAML config file")
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "entries per page")
	cmd.Flags().StringVar(&name, "name", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&species, "species", "", "case-insensitive species filter")
	cmd.Flags().StringVar(&out, "out", export.Filename, "output file path")

	return cmd
}
