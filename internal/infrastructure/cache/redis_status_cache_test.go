package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"bfinancial_sdk/internal/domain/entities"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeReport(t *testing.T) {
	t.Run("pix payment survives the round trip", func(t *testing.T) {
		pix := entities.NewInstantTransferResponse(entities.InstantTransfer{
			Status:      entities.NormalizeStatus("approved", ""),
			PaymentID:   "abc",
			QRCodeImage: "aW1n",
			QRCodeText:  "000201",
		})
		in := entities.StatusReport{
			PaymentID: "abc",
			RawStatus: "approved",
			HasStatus: true,
			Payment:   pix,
			Raw:       json.RawMessage(`{"data":{"status":"approved"}}`),
		}

		data, err := encodeReport(in)
		require.NoError(t, err)
		out, err := decodeReport(data)
		require.NoError(t, err)

		assert.Equal(t, "approved", out.RawStatus)
		assert.True(t, out.HasStatus)
		assert.JSONEq(t, string(in.Raw), string(out.Raw))
		got, ok := out.Payment.InstantTransfer()
		require.True(t, ok)
		assert.Equal(t, "abc", got.PaymentID)
		assert.Equal(t, "000201", got.QRCodeText)
		assert.Equal(t, entities.StatusApproved, got.Status.Kind)
	})

	t.Run("rejected cause is kept", func(t *testing.T) {
		data, err := encodeReport(entities.StatusReport{PaymentID: "77", RawStatus: "rejected", HasStatus: true, Cause: "insufficient funds"})
		require.NoError(t, err)
		out, err := decodeReport(data)
		require.NoError(t, err)

		assert.Equal(t, entities.StatusRejected, out.Status().Kind)
		assert.Equal(t, "insufficient funds", out.Status().Reason)
		assert.True(t, out.Payment.IsZero())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := decodeReport([]byte("{"))
		assert.Error(t, err)
	})
}

type countingRecorder struct{ hits, misses int }

func (c *countingRecorder) RecordCacheHit()  { c.hits++ }
func (c *countingRecorder) RecordCacheMiss() { c.misses++ }

func TestRedisStatusCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	rec := &countingRecorder{}
	c := NewRedisStatusCache(client, 0, rec)
	assert.Equal(t, defaultStatusTTL, c.ttl)
	assert.Equal(t, "bfinancial:status:abc", c.key("abc"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, ok, err := c.Get(ctx, "abc")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Zero(t, rec.hits)

	assert.Error(t, c.Set(ctx, "abc", entities.StatusReport{PaymentID: "abc", RawStatus: "pending", HasStatus: true}))
}
