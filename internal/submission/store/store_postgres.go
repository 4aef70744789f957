package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"formtrail/internal/submission/models"
)

// PostgresStore persists submissions in a single append-only table.
type PostgresStore struct {
	db    *sql.DB
	table string
}

// NewPostgres constructs a PostgreSQL-backed submission store writing to table.
func NewPostgres(db *sql.DB, table string) *PostgresStore {
	return &PostgresStore{
		db:    db,
		table: pq.QuoteIdentifier(table),
	}
}

// EnsureSchema creates the submissions table if it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id           UUID PRIMARY KEY,
			gmail        TEXT NOT NULL,
			title        TEXT NOT NULL,
			submitted_at TIMESTAMPTZ NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure submissions schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, submission models.Submission) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, gmail, title, submitted_at) VALUES ($1, $2, $3, $4)`, s.table)
	_, err := s.db.ExecContext(ctx, query,
		submission.ID,
		submission.Identity.String(),
		submission.FormLabel.String(),
		submission.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Submission, error) {
	query := fmt.Sprintf(`SELECT id, gmail, title, submitted_at FROM %s`, s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []models.Submission
	for rows.Next() {
		var (
			id          uuid.UUID
			gmail       string
			title       string
			submittedAt time.Time
		)
		if err := rows.Scan(&id, &gmail, &title, &submittedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, models.Submission{
			ID:          id,
			Identity:    models.ResolvedIdentity(gmail),
			FormLabel:   models.KnownLabel(title),
			SubmittedAt: models.CanonicalTime(submittedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
