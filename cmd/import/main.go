// Command import loads the legacy CSV exports into MongoDB through the same
// repositories the API uses.
package main

import (
	"context"
	"flag"

	"github.com/mdip/intelligence-platform/internal/importer"
	"github.com/mdip/intelligence-platform/internal/infrastructure/config"
	mongostore "github.com/mdip/intelligence-platform/internal/infrastructure/db/mongo"
	"github.com/mdip/intelligence-platform/pkg/logger"
)

func main() {
	dataDir := flag.String("data", "DATA", "directory containing the CSV exports")
	workers := flag.Int("workers", 0, "number of insert workers (0 = default)")
	flag.Parse()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	ctx := context.Background()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	loader := importer.NewLoader(
		*dataDir,
		mongostore.NewIncidentRepository(db),
		mongostore.NewDatasetRepository(db),
		mongostore.NewTicketRepository(db),
		*workers,
		log,
	)

	summary, err := loader.ImportAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	log.Info().
		Int64("incidents", summary.Incidents.Imported).
		Int64("datasets", summary.Datasets.Imported).
		Int64("tickets", summary.Tickets.Imported).
		Int64("total", summary.Total()).
		Msg("import finished")
}
