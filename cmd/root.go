package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tubemap/internal/config"
	"tubemap/internal/database"
	"tubemap/internal/loader"
	"tubemap/internal/logging"
	"tubemap/internal/repositories"
	"tubemap/internal/services"
)

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath, logLevel string

	root := &cobra.Command{
		Use:          "tubemap",
		Short:        "Shortest paths across an underground rail network",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := os.Setenv("TUBEMAP_CONFIG", configPath); err != nil {
					return err
				}
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			a.cfg = cfg
			a.logger = logging.NewStructuredLogger(cmd.ErrOrStderr(), logging.ParseLevel(cfg.LogLevel))
			slog.SetDefault(a.logger)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(a),
		newPathCmd(a),
		newNeighboursCmd(a),
		newSeedCmd(a),
	)
	return root
}

// openSource returns the configured network source and a function releasing
// whatever it holds open.
func (a *app) openSource(ctx context.Context) (services.NetworkSource, func(), error) {
	switch a.cfg.DataSource {
	case config.SourceNeo4j:
		db, err := a.openDatabase()
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() { logging.SafeCloseWithLogging(db, a.logger, "neo4j_driver") }
		return repositories.NewNetworkRepository(db.Driver, a.logger), closeDB, nil
	default:
		source := loader.FileSource{Path: a.cfg.DataFile, Importer: loader.NewImporter(a.logger)}
		return source, func() {}, nil
	}
}

func (a *app) openDatabase() (*database.Neo4jDatabase, error) {
	db, err := database.NewNeo4jDatabase(a.cfg.Neo4jURI, a.cfg.Neo4jUser, a.cfg.Neo4jPassword)
	if err != nil {
		return nil, err
	}

	if a.cfg.SeedCypher != "" {
		if err := db.ExecuteCypherFile(a.cfg.SeedCypher); err != nil {
			a.logger.Warn("could not run cypher script", "path", a.cfg.SeedCypher, "error", err)
		} else {
			a.logger.Info("cypher script applied", "path", a.cfg.SeedCypher)
		}
	}
	return db, nil
}

// loadService builds a network service populated from the configured source.
func (a *app) loadService(ctx context.Context) (*services.NetworkService, func(), error) {
	source, release, err := a.openSource(ctx)
	if err != nil {
		return nil, nil, err
	}

	svc := services.NewNetworkService(source, a.cfg.CacheTTL, a.logger)
	if err := svc.ReloadFrom(ctx, nil); err != nil {
		release()
		return nil, nil, err
	}
	return svc, release, nil
}
