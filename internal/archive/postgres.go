package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore writes submissions to the form_submissions table.
type PostgresStore struct {
	db DB
}

// NewPostgresStore initializes a store backed by a pgx pool.
func NewPostgresStore(db DB) *PostgresStore {
	if db == nil {
		panic("archive: pgx pool required")
	}
	return &PostgresStore{db: db}
}

const insertSubmission = `
	INSERT INTO form_submissions (id, kind, reference_id, contact_name, email, phone, payload, submitted_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// Archive inserts one row.
func (p *PostgresStore) Archive(ctx context.Context, record Record) error {
	submittedAt := record.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}
	if _, err := p.db.Exec(ctx, insertSubmission,
		uuid.New(),
		record.Kind,
		record.ReferenceID,
		record.ContactName,
		record.Email,
		record.Phone,
		[]byte(record.Payload),
		submittedAt,
	); err != nil {
		return fmt.Errorf("archive: insert failed: %w", err)
	}
	return nil
}
