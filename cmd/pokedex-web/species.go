package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSpeciesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "species",
		Short: "Print all species names, one per line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := buildApp(configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			names, err := app.service.SpeciesNames(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch species names: %w", err)
			}

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the YAML config file")

	return cmd
}
