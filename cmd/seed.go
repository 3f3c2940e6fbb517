package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubemap/internal/loader"
	"tubemap/internal/logging"
	"tubemap/internal/repositories"
)

func newSeedCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import a JSON network file into Neo4j",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = a.cfg.DataFile
			}
			network, err := loader.NewImporter(a.logger).LoadFile(file)
			if err != nil {
				return err
			}

			db, err := a.openDatabase()
			if err != nil {
				return err
			}
			defer logging.SafeCloseWithLogging(db, a.logger, "neo4j_driver")

			repo := repositories.NewNetworkRepository(db.Driver, a.logger)
			if err := repo.SaveNetwork(cmd.Context(), network); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d stations, %d lines, %d connections from %s\n",
				len(network.Stations), len(network.Lines), len(network.Connections), file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "network JSON file (defaults to the configured data file)")
	return cmd
}
