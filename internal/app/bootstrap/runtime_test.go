package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/hplandscaping/booking-platform/internal/archive"
	appconfig "github.com/hplandscaping/booking-platform/internal/config"
	"github.com/hplandscaping/booking-platform/internal/notify"
	"github.com/hplandscaping/booking-platform/internal/promo"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

func TestBuildRedisClientDisabled(t *testing.T) {
	if client := BuildRedisClient(context.Background(), &appconfig.Config{}, logging.Discard(), true); client != nil {
		t.Fatalf("expected nil client without REDIS_ADDR")
	}
	if client := BuildRedisClient(context.Background(), nil, logging.Discard(), true); client != nil {
		t.Fatalf("expected nil client for nil config")
	}
}

func TestBuildRedisClientVerifies(t *testing.T) {
	mr := miniredis.RunT(t)
	client := BuildRedisClient(context.Background(), &appconfig.Config{RedisAddr: mr.Addr()}, logging.Discard(), true)
	if client == nil {
		t.Fatalf("expected client")
	}
	t.Cleanup(func() { _ = client.Close() })

	store := BuildFlagStore(client, &appconfig.Config{ExitIntentTTL: time.Hour})
	if _, ok := store.(*promo.RedisFlagStore); !ok {
		t.Fatalf("expected redis flag store, got %T", store)
	}
	if first, err := store.MarkIfUnseen(context.Background(), "sess-1"); err != nil || !first {
		t.Fatalf("mark seen: first=%v err=%v", first, err)
	}
	if ttl := mr.TTL("exit_intent:sess-1"); ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", ttl)
	}
}

func TestBuildRedisClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if client := BuildRedisClient(context.Background(), &appconfig.Config{RedisAddr: addr}, logging.Discard(), true); client != nil {
		t.Fatalf("expected nil client when ping fails")
	}
}

func TestBuildFlagStoreFallsBackToMemory(t *testing.T) {
	if _, ok := BuildFlagStore(nil, nil).(*promo.MemoryFlagStore); !ok {
		t.Fatalf("expected memory flag store")
	}
}

func TestBuildPostgresPoolDisabled(t *testing.T) {
	pool, err := BuildPostgresPool(context.Background(), &appconfig.Config{}, logging.Discard())
	if err != nil || pool != nil {
		t.Fatalf("expected nil pool and nil error, got %v, %v", pool, err)
	}
}

func TestBuildEmailSender(t *testing.T) {
	logger := logging.Discard()

	sender, err := BuildEmailSender(&appconfig.Config{EmailProvider: appconfig.EmailProviderLog}, nil, logger)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if _, ok := sender.(*notify.LogSender); !ok {
		t.Fatalf("expected log sender, got %T", sender)
	}

	sender, err = BuildEmailSender(&appconfig.Config{
		EmailProvider:  appconfig.EmailProviderSendGrid,
		SendGridAPIKey: "SG.test",
		EmailFrom:      "bookings@hplandscaping.com",
	}, nil, logger)
	if err != nil {
		t.Fatalf("sendgrid: %v", err)
	}
	if _, ok := sender.(*notify.SendGridSender); !ok {
		t.Fatalf("expected sendgrid sender, got %T", sender)
	}

	if _, err := BuildEmailSender(&appconfig.Config{EmailProvider: appconfig.EmailProviderSendGrid}, nil, logger); err == nil {
		t.Fatalf("expected error without api key")
	}

	if _, err := BuildEmailSender(&appconfig.Config{EmailProvider: appconfig.EmailProviderSES}, nil, logger); err != ErrAWSConfigRequired {
		t.Fatalf("expected ErrAWSConfigRequired, got %v", err)
	}

	sender, err = BuildEmailSender(&appconfig.Config{
		EmailProvider: appconfig.EmailProviderSES,
		EmailFrom:     "bookings@hplandscaping.com",
	}, &aws.Config{Region: "us-west-2"}, logger)
	if err != nil {
		t.Fatalf("ses: %v", err)
	}
	if _, ok := sender.(*notify.SESSender); !ok {
		t.Fatalf("expected ses sender, got %T", sender)
	}
}

func TestBuildArchiver(t *testing.T) {
	logger := logging.Discard()

	a, err := BuildArchiver(&appconfig.Config{}, nil, nil, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := a.(archive.Noop); !ok {
		t.Fatalf("expected noop archiver, got %T", a)
	}

	if _, err := BuildArchiver(&appconfig.Config{ArchiveBucket: "hpl-submissions"}, nil, nil, logger); err != ErrAWSConfigRequired {
		t.Fatalf("expected ErrAWSConfigRequired, got %v", err)
	}

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	a, err = BuildArchiver(&appconfig.Config{ArchiveBucket: "hpl-submissions"}, mock, &aws.Config{Region: "us-west-2"}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	multi, ok := a.(archive.Multi)
	if !ok {
		t.Fatalf("expected multi archiver, got %T", a)
	}
	if len(multi) != 2 {
		t.Fatalf("expected postgres and s3 stores, got %d", len(multi))
	}
}
