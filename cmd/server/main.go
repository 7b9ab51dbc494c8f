// Package main provides the unified EcoDesign API server.
// It trains the learned models at startup, wires optional Postgres and
// ClickHouse backends from the environment, and serves the design API.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/api"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/dataset"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/storage"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/platform"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	logger := platform.InitLogger(
		platform.GetEnv("LOG_LEVEL", "info"),
		platform.GetEnvBool("LOG_PRETTY", false),
	)

	dataDir := platform.GetEnv("DATA_DIR", "data")
	seed := int64(platform.GetEnvInt("TRAINING_SEED", dataset.DefaultSeed))

	cost, ranker, recommender, records := dataset.TrainModels(logger, dataDir, seed)

	// Optional columnar archive of the training batch.
	if platform.GetEnvBool("CLICKHOUSE_ENABLED", false) {
		store, err := dataset.NewStore(&dataset.StoreConfig{
			Host:     platform.GetEnv("CLICKHOUSE_HOST", "localhost"),
			Port:     platform.GetEnvInt("CLICKHOUSE_PORT", 9000),
			Database: platform.GetEnv("CLICKHOUSE_DATABASE", "ecodesign"),
			Username: platform.GetEnv("CLICKHOUSE_USER", "default"),
			Password: platform.GetEnv("CLICKHOUSE_PASSWORD", ""),
		})
		if err != nil {
			logger.Warn().Err(err).Msg("ClickHouse unavailable, skipping archive")
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := store.EnsureSchema(ctx); err != nil {
				logger.Warn().Err(err).Msg("failed to ensure ClickHouse schema")
			} else if batchID, err := store.SaveBatch(ctx, "startup", records); err != nil {
				logger.Warn().Err(err).Msg("failed to archive training records")
			} else {
				logger.Info().Str("batch_id", batchID.String()).Int("records", len(records)).Msg("archived training batch")
			}
			cancel()
			store.Close()
		}
	}

	// Optional project persistence.
	var projects *storage.ProjectStore
	if dsn := platform.GetEnv("DATABASE_URL", ""); dsn != "" {
		var err error
		projects, err = storage.NewProjectStore(dsn)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open project store")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := projects.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to ensure project schema")
		}
		cancel()
		defer projects.Close()
	}

	cfg := api.DefaultConfig()
	cfg.Port = platform.GetEnvInt("PORT", 8080)

	srv := api.NewServer(api.Models{
		Cost:        cost,
		Ranker:      ranker,
		Recommender: recommender,
	}, projects, cfg, logger)

	if err := srv.StartWithGracefulShutdown(); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
