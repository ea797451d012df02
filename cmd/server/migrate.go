package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/albaranes/deliverynotes-api/internal/infrastructure/config"
	mongodb "github.com/albaranes/deliverynotes-api/internal/infrastructure/db/mongo"
	"github.com/albaranes/deliverynotes-api/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the MongoDB indexes and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Service: serviceName})

		if cfg.DBDriver != config.DriverMongo {
			return errors.New("migrate: DB_DRIVER must be mongo")
		}

		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(ctx) }()

		if err := mongodb.NewStore(db).EnsureIndexes(ctx); err != nil {
			return err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
		return nil
	},
}
