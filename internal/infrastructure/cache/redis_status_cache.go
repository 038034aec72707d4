package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bfinancial_sdk/internal/domain/entities"
	"bfinancial_sdk/internal/infrastructure/config"
	"bfinancial_sdk/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "bfinancial:status:"
	defaultStatusTTL = 5 * time.Second
)

// HitRecorder receives cache hit/miss events. *metrics.Metrics satisfies it.
type HitRecorder interface {
	RecordCacheHit()
	RecordCacheMiss()
}

// NewRedisClient creates a Redis client and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisStatusCache keeps recent gateway lookups for a short TTL so clients
// polling the relay do not multiply calls to the gateway.
type RedisStatusCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	hits   HitRecorder
}

var _ interfaces.IStatusCache = (*RedisStatusCache)(nil)

func NewRedisStatusCache(client redis.UniversalClient, ttl time.Duration, hits HitRecorder) *RedisStatusCache {
	if ttl <= 0 {
		ttl = defaultStatusTTL
	}
	return &RedisStatusCache{client: client, prefix: defaultKeyPrefix, ttl: ttl, hits: hits}
}

// cachedReport is the stored form of entities.StatusReport. The payment
// variant is flattened through PaymentRecord.
type cachedReport struct {
	PaymentID    string                  `json:"payment_id"`
	RawStatus    string                  `json:"status"`
	HasStatus    bool                    `json:"has_status"`
	Cause        string                  `json:"cause,omitempty"`
	GatewayError string                  `json:"error,omitempty"`
	HasError     bool                    `json:"has_error"`
	Payment      *entities.PaymentRecord `json:"payment,omitempty"`
	Raw          json.RawMessage         `json:"raw,omitempty"`
}

func (c *RedisStatusCache) Get(ctx context.Context, paymentID string) (entities.StatusReport, bool, error) {
	data, err := c.client.Get(ctx, c.key(paymentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.recordMiss()
			return entities.StatusReport{}, false, nil
		}
		return entities.StatusReport{}, false, fmt.Errorf("get from cache: %w", err)
	}

	report, err := decodeReport(data)
	if err != nil {
		return entities.StatusReport{}, false, err
	}
	if c.hits != nil {
		c.hits.RecordCacheHit()
	}
	return report, true, nil
}

func (c *RedisStatusCache) Set(ctx context.Context, paymentID string, report entities.StatusReport) error {
	data, err := encodeReport(report)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key(paymentID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set in cache: %w", err)
	}
	return nil
}

func (c *RedisStatusCache) key(paymentID string) string {
	return c.prefix + paymentID
}

func (c *RedisStatusCache) recordMiss() {
	if c.hits != nil {
		c.hits.RecordCacheMiss()
	}
}

func encodeReport(r entities.StatusReport) ([]byte, error) {
	cached := cachedReport{
		PaymentID:    r.PaymentID,
		RawStatus:    r.RawStatus,
		HasStatus:    r.HasStatus,
		Cause:        r.Cause,
		GatewayError: r.GatewayError,
		HasError:     r.HasError,
		Raw:          r.Raw,
	}
	if !r.Payment.IsZero() {
		if rec, err := entities.NewPaymentRecord(entities.PaymentCreate{}, r.Payment, time.Time{}); err == nil {
			cached.Payment = &rec
		}
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return nil, fmt.Errorf("marshal status report: %w", err)
	}
	return data, nil
}

func decodeReport(data []byte) (entities.StatusReport, error) {
	var cached cachedReport
	if err := json.Unmarshal(data, &cached); err != nil {
		return entities.StatusReport{}, fmt.Errorf("unmarshal cached status report: %w", err)
	}
	r := entities.StatusReport{
		PaymentID:    cached.PaymentID,
		RawStatus:    cached.RawStatus,
		HasStatus:    cached.HasStatus,
		Cause:        cached.Cause,
		GatewayError: cached.GatewayError,
		HasError:     cached.HasError,
		Raw:          cached.Raw,
	}
	if cached.Payment != nil {
		r.Payment = cached.Payment.Response()
	}
	return r, nil
}
