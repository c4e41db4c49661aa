package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/peoplepulse/perform-backend-go/internal/domain/draft"
	"github.com/redis/go-redis/v9"
)

type draftRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftRepository creates a redis-backed draft store. Drafts expire
// after ttl so abandoned forms do not accumulate.
func NewDraftRepository(client *redis.Client, ttl time.Duration) draft.Repository {
	return &draftRepository{client: client, ttl: ttl}
}

func (r *draftRepository) Load(ctx context.Context, key string) (*draft.Draft, error) {
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var d draft.Draft
	if err := json.Unmarshal([]byte(result), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &d, nil
}

func (r *draftRepository) Save(ctx context.Context, d draft.Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := r.client.Set(ctx, d.Key, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (r *draftRepository) Clear(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
