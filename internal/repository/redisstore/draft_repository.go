// Package redisstore keeps chat drafts in Redis so several API instances can
// serve the same session.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hcp-crm-be/internal/repository/contract"
	"hcp-crm-be/pkg/agent"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "hcp-crm:draft:"

type DraftRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDraftRepository(rdb *redis.Client, ttl time.Duration) contract.DraftRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &DraftRepository{rdb: rdb, ttl: ttl}
}

func draftKey(sessionID string) string {
	return keyPrefix + sessionID
}

func (r *DraftRepository) Save(ctx context.Context, sessionID string, draft agent.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := r.rdb.Set(ctx, draftKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (r *DraftRepository) Get(ctx context.Context, sessionID string) (agent.Draft, bool, error) {
	data, err := r.rdb.Get(ctx, draftKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return agent.Draft{}, false, nil
		}
		return agent.Draft{}, false, fmt.Errorf("load draft: %w", err)
	}
	var draft agent.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return agent.Draft{}, false, fmt.Errorf("decode draft: %w", err)
	}
	return draft, true, nil
}

func (r *DraftRepository) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, draftKey(sessionID)).Err()
}
