package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// WebhookResponse is the last payment webhook answer received for a lead
type WebhookResponse struct {
	LeadID        string          `msgpack:"lead_id"`
	TransactionID string          `msgpack:"transaction_id"`
	PaymentMethod string          `msgpack:"payment_method"`
	Amount        float64         `msgpack:"amount"`
	Body          json.RawMessage `msgpack:"body"`
	ReceivedAt    time.Time       `msgpack:"received_at"`
}

// WebhookResponseCache keeps webhook answers until the confirmation page reads them
type WebhookResponseCache interface {
	FindByLeadID(context.Context, string) (*WebhookResponse, error)
	Create(context.Context, *WebhookResponse) error
	DeleteByLeadID(context.Context, string) error
}

type redisWebhookResponseCache struct {
	client     *redis.Client
	timeToLive time.Duration
}

// NewRedisWebhookResponseCache builds cache on top of redis, entries expire after ttl
func NewRedisWebhookResponseCache(client *redis.Client, ttl time.Duration) WebhookResponseCache {
	return &redisWebhookResponseCache{client: client, timeToLive: ttl}
}

func (r *redisWebhookResponseCache) FindByLeadID(ctx context.Context, leadID string) (*WebhookResponse, error) {
	res, err := r.client.Get(ctx, r.key(leadID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var resp WebhookResponse
	if err := msgpack.Unmarshal(res, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create replaces any previous answer, the latest purchase attempt is the one to confirm
func (r *redisWebhookResponseCache) Create(ctx context.Context, resp *WebhookResponse) error {
	encoded, err := msgpack.Marshal(resp)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(resp.LeadID), encoded, r.timeToLive).Err()
}

func (r *redisWebhookResponseCache) DeleteByLeadID(ctx context.Context, leadID string) error {
	return r.client.Del(ctx, r.key(leadID)).Err()
}

func (r *redisWebhookResponseCache) key(leadID string) string {
	return fmt.Sprintf("webhook-response:%s", leadID)
}
