package review

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peoplepulse/perform-backend-go/internal/domain/kpi"
)

func TestCanSubmitSelfRating(t *testing.T) {
	t.Parallel()
	assert.NoError(t, CanSubmitSelfRating(kpi.StatusAcknowledged, true, nil))

	assert.ErrorIs(t, CanSubmitSelfRating(kpi.StatusAcknowledged, false, nil), ErrSelfRatingDisabled)
	assert.ErrorIs(t, CanSubmitSelfRating(kpi.StatusPending, true, nil), ErrSelfRatingNotOpen)
	assert.ErrorIs(t, CanSubmitSelfRating(kpi.StatusCompleted, true, nil), ErrSelfRatingNotOpen)

	existing := &Review{Status: StatusEmployeeSubmitted}
	assert.ErrorIs(t, CanSubmitSelfRating(kpi.StatusAcknowledged, true, existing), ErrReviewAlreadyExists)
}

func TestCanInitiateManagerReview(t *testing.T) {
	t.Parallel()
	assert.NoError(t, CanInitiateManagerReview(kpi.StatusAcknowledged, false, nil))

	// With self-rating enabled the manager must wait for the employee.
	assert.ErrorIs(t, CanInitiateManagerReview(kpi.StatusAcknowledged, true, nil), ErrManagerReviewNotOpen)
	assert.ErrorIs(t, CanInitiateManagerReview(kpi.StatusPending, false, nil), ErrManagerReviewNotOpen)

	existing := &Review{Status: StatusManagerSubmitted}
	assert.ErrorIs(t, CanInitiateManagerReview(kpi.StatusAcknowledged, false, existing), ErrReviewAlreadyExists)
}

func TestCanSubmitManagerReview(t *testing.T) {
	t.Parallel()
	assert.NoError(t, CanSubmitManagerReview(Review{Status: StatusEmployeeSubmitted}))
	// Manager edits before employee confirmation stay open.
	assert.NoError(t, CanSubmitManagerReview(Review{Status: StatusManagerSubmitted}))

	assert.ErrorIs(t, CanSubmitManagerReview(Review{Status: StatusCompleted}), ErrReviewLocked)
	assert.ErrorIs(t, CanSubmitManagerReview(Review{Status: StatusRejected}), ErrReviewLocked)
	assert.ErrorIs(t, CanSubmitManagerReview(Review{Status: StatusPending}), ErrManagerReviewNotOpen)
}

func TestCanConfirmAndReject(t *testing.T) {
	t.Parallel()
	assert.NoError(t, CanConfirmCompletion(Review{Status: StatusManagerSubmitted}))
	assert.NoError(t, CanReject(Review{Status: StatusManagerSubmitted}))

	assert.ErrorIs(t, CanConfirmCompletion(Review{Status: StatusCompleted}), ErrReviewLocked)
	assert.ErrorIs(t, CanConfirmCompletion(Review{Status: StatusEmployeeSubmitted}), ErrManagerReviewNotOpen)
	assert.ErrorIs(t, CanReject(Review{Status: StatusRejected}), ErrReviewLocked)
}

func TestCanResolveRejection(t *testing.T) {
	t.Parallel()
	assert.NoError(t, CanResolveRejection(Review{Status: StatusRejected}))
	assert.ErrorIs(t, CanResolveRejection(Review{Status: StatusCompleted}), ErrNotRejected)
	assert.ErrorIs(t, CanResolveRejection(Review{Status: StatusManagerSubmitted}), ErrNotRejected)
}

func TestStatusTerminal(t *testing.T) {
	t.Parallel()
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusEmployeeSubmitted.Terminal())
	assert.False(t, StatusManagerSubmitted.Terminal())
	assert.False(t, StatusPending.Terminal())
}
