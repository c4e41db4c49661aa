package draft

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/peoplepulse/perform-backend-go/internal/domain/draft"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/validator"
)

// DraftService fronts the draft store with key validation. Drafts are a
// convenience cache: a failed load degrades to "no draft" instead of
// failing the caller. Every draft is stored under the owning user, so a
// key only ever resolves to the caller's own saved state.
type DraftService struct {
	drafts draft.Repository
}

func NewDraftService(drafts draft.Repository) *DraftService {
	return &DraftService{drafts: drafts}
}

func (s *DraftService) Save(ctx context.Context, userID string, key string, payload draft.Payload) (draft.Draft, error) {
	if !draft.ValidKey(key) {
		return draft.Draft{}, validator.ValidationErrors{{
			Field:   "key",
			Message: "key must use a known draft namespace",
		}}
	}

	d := draft.Draft{
		Key:     draft.StorageKey(userID, key),
		Payload: payload,
		SavedAt: time.Now(),
	}
	if err := s.drafts.Save(ctx, d); err != nil {
		return draft.Draft{}, fmt.Errorf("failed to save draft: %w", err)
	}
	d.Key = key
	return d, nil
}

// Load returns nil when no draft exists or when the store read fails.
func (s *DraftService) Load(ctx context.Context, userID string, key string) (*draft.Draft, error) {
	if !draft.ValidKey(key) {
		return nil, validator.ValidationErrors{{
			Field:   "key",
			Message: "key must use a known draft namespace",
		}}
	}

	d, err := s.drafts.Load(ctx, draft.StorageKey(userID, key))
	if err != nil {
		slog.Warn("draft load failed, treating as absent", "key", key, "error", err)
		return nil, nil
	}
	if d != nil {
		d.Key = key
	}
	return d, nil
}

func (s *DraftService) Clear(ctx context.Context, userID string, key string) error {
	if !draft.ValidKey(key) {
		return validator.ValidationErrors{{
			Field:   "key",
			Message: "key must use a known draft namespace",
		}}
	}

	if err := s.drafts.Clear(ctx, draft.StorageKey(userID, key)); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
