package memory

import (
	"context"
	"time"

	"hcp-crm-be/internal/repository/contract"
	"hcp-crm-be/pkg/agent"

	"github.com/patrickmn/go-cache"
)

type DraftRepository struct {
	cache *cache.Cache
}

// NewDraftRepository keeps drafts for ttl after their last save and purges
// expired entries every 10 minutes.
func NewDraftRepository(ttl time.Duration) contract.DraftRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &DraftRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *DraftRepository) Save(ctx context.Context, sessionID string, draft agent.Draft) error {
	r.cache.Set(sessionID, draft.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *DraftRepository) Get(ctx context.Context, sessionID string) (agent.Draft, bool, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(agent.Draft).Clone(), true, nil
	}
	return agent.Draft{}, false, nil
}

func (r *DraftRepository) Delete(ctx context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}
