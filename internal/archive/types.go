package archive

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Submission kinds.
const (
	KindBooking = "booking"
	KindQuote   = "quote"
)

// Record is one accepted form submission.
type Record struct {
	Kind        string          `json:"kind"`
	ReferenceID string          `json:"reference_id"`
	ContactName string          `json:"contact_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Payload     json.RawMessage `json:"payload"`
}

// NewRecord marshals payload into a Record.
func NewRecord(kind, referenceID string, submittedAt time.Time, contactName, email, phone string, payload any) (Record, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Kind:        kind,
		ReferenceID: referenceID,
		ContactName: contactName,
		Email:       email,
		Phone:       phone,
		SubmittedAt: submittedAt,
		Payload:     raw,
	}, nil
}

// ManifestEntry is one JSONL line in the monthly manifest file. Contact
// details are reduced to a phone hash.
type ManifestEntry struct {
	Kind        string `json:"kind"`
	ReferenceID string `json:"reference_id"`
	S3Key       string `json:"s3_key"`
	PhoneHash   string `json:"phone_hash"`
	SubmittedAt string `json:"submitted_at"`
}

// Archiver keeps accepted submissions somewhere durable.
type Archiver interface {
	Archive(ctx context.Context, record Record) error
}

// Noop discards records. It is the default: the endpoints acknowledge
// submissions without storing them.
type Noop struct{}

// Archive does nothing.
func (Noop) Archive(context.Context, Record) error { return nil }

// Multi fans a record out to several archivers and joins their errors.
type Multi []Archiver

// Archive writes to every archiver even when one fails.
func (m Multi) Archive(ctx context.Context, record Record) error {
	var errs []error
	for _, a := range m {
		if a == nil {
			continue
		}
		if err := a.Archive(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
