// Package storage persists generated design sets so clients can revisit
// past briefs. Projects are stored in Postgres with the design and model
// payloads as jsonb documents.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

// Project is a persisted design session.
type Project struct {
	ID          uuid.UUID       `json:"id"`
	UserID      *string         `json:"user_id"`
	Constraints api.Constraints `json:"constraints"`
	Designs     []api.Design    `json:"designs"`
	MLData      json.RawMessage `json:"ml_data"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProjectSummary is the listing row: identity and brief without the
// design payloads.
type ProjectSummary struct {
	ID          uuid.UUID       `json:"id"`
	UserID      *string         `json:"user_id"`
	Constraints api.Constraints `json:"constraints"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProjectStore persists projects in Postgres.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore opens a connection pool against the given DSN.
func NewProjectStore(dsn string) (*ProjectStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	return &ProjectStore{db: db}, nil
}

// Ping checks database connectivity.
func (s *ProjectStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *ProjectStore) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the projects table if missing.
func (s *ProjectStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS projects (
			id          UUID PRIMARY KEY,
			user_id     TEXT,
			area        INTEGER NOT NULL,
			budget      DOUBLE PRECISION NOT NULL,
			climate     TEXT NOT NULL,
			priority    TEXT NOT NULL,
			designs     JSONB NOT NULL,
			ml_data     JSONB NOT NULL DEFAULT '{}',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create projects table: %w", err)
	}
	return nil
}

// Save inserts a new project and returns its id.
func (s *ProjectStore) Save(ctx context.Context, c api.Constraints, designs []api.Design, mlData json.RawMessage, userID *string) (uuid.UUID, error) {
	id := uuid.New()

	designsJSON, err := json.Marshal(designs)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode designs: %w", err)
	}
	if len(mlData) == 0 {
		mlData = json.RawMessage(`{}`)
	}

	query := `
		INSERT INTO projects (id, user_id, area, budget, climate, priority, designs, ml_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(ctx, query,
		id, userID, c.Area, c.Budget, string(c.Climate), string(c.Priority),
		designsJSON, []byte(mlData), time.Now(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save project: %w", err)
	}
	return id, nil
}

// Get retrieves a project by id, or nil when absent.
func (s *ProjectStore) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	query := `
		SELECT id, user_id, area, budget, climate, priority, designs, ml_data, created_at
		FROM projects
		WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, query, id)

	var p Project
	var climate, priority string
	var designsJSON, mlJSON []byte
	err := row.Scan(&p.ID, &p.UserID, &p.Constraints.Area, &p.Constraints.Budget,
		&climate, &priority, &designsJSON, &mlJSON, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	p.Constraints.Climate = api.Climate(climate)
	p.Constraints.Priority = api.Priority(priority)
	if err := json.Unmarshal(designsJSON, &p.Designs); err != nil {
		return nil, fmt.Errorf("failed to decode designs: %w", err)
	}
	p.MLData = json.RawMessage(mlJSON)
	return &p, nil
}

// List returns up to limit project summaries, newest first. A non-nil
// userID filters to that user's projects; guest filters to anonymous
// projects.
func (s *ProjectStore) List(ctx context.Context, limit int, userID *string, guest bool) ([]ProjectSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, user_id, area, budget, climate, priority, created_at
		FROM projects
	`
	args := []interface{}{}
	switch {
	case guest:
		query += ` WHERE user_id IS NULL`
	case userID != nil:
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	summaries := make([]ProjectSummary, 0)
	for rows.Next() {
		var ps ProjectSummary
		var climate, priority string
		err := rows.Scan(&ps.ID, &ps.UserID, &ps.Constraints.Area, &ps.Constraints.Budget,
			&climate, &priority, &ps.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		ps.Constraints.Climate = api.Climate(climate)
		ps.Constraints.Priority = api.Priority(priority)
		summaries = append(summaries, ps)
	}
	return summaries, rows.Err()
}

// Clear deletes projects and returns the number removed. A non-nil
// userID restricts deletion to that user's projects; guest restricts to
// anonymous projects; otherwise all projects go.
func (s *ProjectStore) Clear(ctx context.Context, userID *string, guest bool) (int64, error) {
	query := `DELETE FROM projects`
	args := []interface{}{}
	switch {
	case guest:
		query += ` WHERE user_id IS NULL`
	case userID != nil:
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to clear projects: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared projects: %w", err)
	}
	return n, nil
}
