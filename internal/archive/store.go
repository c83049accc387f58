package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/hplandscaping/booking-platform/pkg/logging"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store archives submissions as JSON objects in a bucket.
type S3Store struct {
	bucket   string
	s3Client S3API
	logger   *logging.Logger

	manifestAttempts int
}

// NewS3Store creates an S3Store. If bucket is empty, all operations are no-ops.
func NewS3Store(s3Client S3API, bucket string, logger *logging.Logger) *S3Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &S3Store{bucket: bucket, s3Client: s3Client, logger: logger}
}

// Enabled returns true if archival is configured (bucket is set).
func (s *S3Store) Enabled() bool {
	return s != nil && s.bucket != "" && s.s3Client != nil
}

// ObjectKey returns where a record is stored.
func ObjectKey(record Record) string {
	at := record.SubmittedAt.UTC()
	return fmt.Sprintf("submissions/v1/%s/by-date/%d/%02d/%02d/%s.json",
		record.Kind, at.Year(), at.Month(), at.Day(), record.ReferenceID)
}

// Archive writes the record as JSON and appends it to the monthly manifest.
func (s *S3Store) Archive(ctx context.Context, record Record) error {
	if !s.Enabled() {
		return nil
	}
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = time.Now().UTC()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("archive: marshal record: %w", err)
	}

	key := ObjectKey(record)
	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("archive: s3 put %s: %w", key, err)
	}

	s.logger.Info("archived submission to S3",
		"kind", record.Kind,
		"reference_id", record.ReferenceID,
		"s3_key", key,
	)

	entry := ManifestEntry{
		Kind:        record.Kind,
		ReferenceID: record.ReferenceID,
		S3Key:       key,
		PhoneHash:   logging.HashPhone(record.Phone),
		SubmittedAt: record.SubmittedAt.UTC().Format(time.RFC3339),
	}
	if err := s.AppendManifest(ctx, record.SubmittedAt, entry); err != nil {
		// the object itself is stored; a missing manifest line is recoverable
		s.logger.Warn("failed to append manifest", "error", err, "reference_id", record.ReferenceID)
	}
	return nil
}

// manifestAttempts bounds the conditional-write retries of AppendManifest.
const manifestAttempts = 5

// AppendManifest appends a JSONL line to the monthly manifest file. S3 has no
// append, so the object is rewritten with an ETag precondition and the
// read-modify-write is retried when another writer got there first.
func (s *S3Store) AppendManifest(ctx context.Context, at time.Time, entry ManifestEntry) error {
	if !s.Enabled() {
		return nil
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("archive: marshal manifest entry: %w", err)
	}

	at = at.UTC()
	manifestKey := fmt.Sprintf("submissions/v1/manifests/%d-%02d.jsonl", at.Year(), at.Month())

	attempts := s.manifestAttempts
	if attempts <= 0 {
		attempts = manifestAttempts
	}
	for attempt := 1; ; attempt++ {
		err := s.appendOnce(ctx, manifestKey, line)
		if err == nil {
			return nil
		}
		if !isPreconditionFailed(err) || attempt >= attempts {
			return err
		}
		s.logger.Debug("manifest changed concurrently, retrying", "key", manifestKey, "attempt", attempt)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 20 * time.Millisecond):
		}
	}
}

func (s *S3Store) appendOnce(ctx context.Context, manifestKey string, line []byte) error {
	var (
		existing []byte
		etag     *string
	)
	getResp, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(manifestKey),
	})
	switch {
	case err == nil:
		etag = getResp.ETag
		existing, err = io.ReadAll(getResp.Body)
		getResp.Body.Close()
		if err != nil {
			return fmt.Errorf("archive: read manifest: %w", err)
		}
	case isNotFound(err):
		s.logger.Debug("manifest not found, creating new", "key", manifestKey)
	default:
		return fmt.Errorf("archive: s3 get manifest: %w", err)
	}

	var buf bytes.Buffer
	if len(existing) > 0 {
		buf.Write(existing)
		if existing[len(existing)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	buf.Write(line)
	buf.WriteByte('\n')

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(manifestKey),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/x-ndjson"),
	}
	if etag != nil {
		input.IfMatch = etag
	} else {
		input.IfNoneMatch = aws.String("*")
	}
	if _, err := s.s3Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("archive: s3 put manifest: %w", err)
	}
	return nil
}

func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "PreconditionFailed", "ConditionalRequestConflict":
		return true
	}
	return false
}

func isNotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "NoSuchKey") || strings.Contains(msg, "404") || strings.Contains(msg, "not found")
}
