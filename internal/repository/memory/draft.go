package memory

import (
	"context"
	"sync"

	"github.com/peoplepulse/perform-backend-go/internal/domain/draft"
)

type draftRepository struct {
	mu     sync.RWMutex
	drafts map[string]draft.Draft
}

// NewDraftRepository creates an in-process draft store for single-instance
// deployments and tests.
func NewDraftRepository() draft.Repository {
	return &draftRepository{drafts: make(map[string]draft.Draft)}
}

func (r *draftRepository) Load(ctx context.Context, key string) (*draft.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drafts[key]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *draftRepository) Save(ctx context.Context, d draft.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drafts[d.Key] = d
	return nil
}

func (r *draftRepository) Clear(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts, key)
	return nil
}
