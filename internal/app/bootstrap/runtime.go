package bootstrap

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hplandscaping/booking-platform/internal/archive"
	appconfig "github.com/hplandscaping/booking-platform/internal/config"
	"github.com/hplandscaping/booking-platform/internal/notify"
	"github.com/hplandscaping/booking-platform/internal/promo"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

// ErrAWSConfigRequired is returned when a backend needs AWS but no config was loaded.
var ErrAWSConfigRequired = errors.New("bootstrap: aws config is required")

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, exit-intent state stays in memory", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildFlagStore picks where exit-intent "already shown" flags live.
func BuildFlagStore(redisClient *redis.Client, cfg *appconfig.Config) promo.FlagStore {
	ttl := promo.DefaultFlagTTL
	if cfg != nil && cfg.ExitIntentTTL > 0 {
		ttl = cfg.ExitIntentTTL
	}
	if redisClient == nil {
		return promo.NewMemoryFlagStore(ttl)
	}
	return promo.NewRedisFlagStore(redisClient, ttl)
}

// BuildPostgresPool connects to DATABASE_URL. A blank URL returns nil, nil.
func BuildPostgresPool(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*pgxpool.Pool, error) {
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap: ping postgres: %w", err)
	}
	logger.Info("postgres connected")
	return pool, nil
}

// BuildEmailSender returns the sender selected by EMAIL_PROVIDER.
func BuildEmailSender(cfg *appconfig.Config, awsCfg *aws.Config, logger *logging.Logger) (notify.EmailSender, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	switch cfg.EmailProvider {
	case appconfig.EmailProviderSendGrid:
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("bootstrap: sendgrid api key missing")
		}
		return sender, nil
	case appconfig.EmailProviderSES:
		if awsCfg == nil {
			return nil, ErrAWSConfigRequired
		}
		return notify.NewSESSender(sesv2.NewFromConfig(*awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger), nil
	default:
		return notify.NewLogSender(logger), nil
	}
}

// BuildArchiver combines every configured submission store. With nothing
// configured submissions are only logged.
func BuildArchiver(cfg *appconfig.Config, db archive.DB, awsCfg *aws.Config, logger *logging.Logger) (archive.Archiver, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	var stores archive.Multi
	if db != nil {
		stores = append(stores, archive.NewPostgresStore(db))
	}
	if bucket := strings.TrimSpace(cfg.ArchiveBucket); bucket != "" {
		if awsCfg == nil {
			return nil, ErrAWSConfigRequired
		}
		client := s3.NewFromConfig(*awsCfg, func(o *s3.Options) {
			o.UsePathStyle = cfg.AWSEndpointOverride != ""
		})
		stores = append(stores, archive.NewS3Store(client, bucket, logger))
	}
	if len(stores) == 0 {
		logger.Info("no submission archive configured")
		return archive.Noop{}, nil
	}
	return stores, nil
}
