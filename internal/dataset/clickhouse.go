package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/errors"
)

// StoreConfig holds ClickHouse connection configuration for the training
// record archive.
type StoreConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Debug    bool
}

// DefaultStoreConfig returns default development configuration.
func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		Host:     "localhost",
		Port:     9000,
		Database: "ecodesign",
		Username: "default",
		Password: "",
		Debug:    false,
	}
}

// Store archives training records in ClickHouse. Records accumulate in an
// append-only table tagged by source and batch; training reads the whole
// table back in one columnar scan.
type Store struct {
	conn clickhouse.Conn
	cfg  *StoreConfig
}

// NewStore connects to ClickHouse.
func NewStore(cfg *StoreConfig) (*Store, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Debug: cfg.Debug,
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, errors.NewStoreUnavailableError("clickhouse", err)
	}
	return &Store{conn: conn, cfg: cfg}, nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// EnsureSchema creates the training records table if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS training_records (
			batch_id          UUID,
			source            String,
			area              UInt32,
			budget            UInt8,
			climate           LowCardinality(String),
			priority          LowCardinality(String),
			design_id         UInt8,
			actual_cost       UInt32,
			energy_efficiency UInt8,
			water_efficiency  UInt8,
			carbon_level      LowCardinality(String),
			created_at        DateTime
		) ENGINE = MergeTree()
		ORDER BY (source, created_at)
	`
	return s.conn.Exec(ctx, query)
}

// SaveBatch appends a batch of training records tagged with the given
// source label, returning the batch id.
func (s *Store) SaveBatch(ctx context.Context, source string, records []api.TrainingRecord) (uuid.UUID, error) {
	batchID := uuid.New()
	if len(records) == 0 {
		return batchID, nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO training_records (
			batch_id, source, area, budget, climate, priority,
			design_id, actual_cost, energy_efficiency, water_efficiency,
			carbon_level, created_at
		)
	`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to prepare batch: %w", err)
	}

	now := time.Now()
	for _, r := range records {
		err := batch.Append(
			batchID,
			source,
			uint32(r.Area),
			uint8(r.Budget),
			string(r.Climate),
			string(r.Priority),
			uint8(r.DesignID),
			uint32(r.ActualCost),
			uint8(r.EnergyEfficiency),
			uint8(r.WaterEfficiency),
			string(r.CarbonLevel),
			now,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to append record: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to send batch: %w", err)
	}
	return batchID, nil
}

// LoadAll reads every archived training record back, oldest batches first.
func (s *Store) LoadAll(ctx context.Context) ([]api.TrainingRecord, error) {
	query := `
		SELECT area, budget, climate, priority, design_id,
			   actual_cost, energy_efficiency, water_efficiency, carbon_level
		FROM training_records
		ORDER BY created_at
	`
	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query training records: %w", err)
	}
	defer rows.Close()

	var records []api.TrainingRecord
	for rows.Next() {
		var (
			area, cost                uint32
			budget, designID          uint8
			energyEff, waterEff       uint8
			climate, priority, carbon string
		)
		err := rows.Scan(&area, &budget, &climate, &priority, &designID, &cost, &energyEff, &waterEff, &carbon)
		if err != nil {
			return nil, fmt.Errorf("failed to scan training record: %w", err)
		}
		records = append(records, api.TrainingRecord{
			Area:             int(area),
			Budget:           int(budget),
			Climate:          api.Climate(climate),
			Priority:         api.Priority(priority),
			DesignID:         int(designID),
			ActualCost:       int(cost),
			EnergyEfficiency: int(energyEff),
			WaterEfficiency:  int(waterEff),
			CarbonLevel:      api.CarbonLevel(carbon),
		})
	}
	return records, rows.Err()
}

// CountBySource returns the archived record count per source label.
func (s *Store) CountBySource(ctx context.Context) (map[string]uint64, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT source, count() FROM training_records GROUP BY source
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count training records: %w", err)
	}
	defer rows.Close()

	counts := map[string]uint64{}
	for rows.Next() {
		var source string
		var n uint64
		if err := rows.Scan(&source, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[source] = n
	}
	return counts, rows.Err()
}
