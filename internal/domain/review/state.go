package review

import (
	"github.com/peoplepulse/perform-backend-go/internal/domain/kpi"
)

// The review lifecycle, with the KPI acknowledgement stages folded in:
//
//	Pending -> Acknowledged -> EmployeeSubmitted -> ManagerSubmitted -> Completed | Rejected
//
// When self-rating is disabled for the period type the manager initiates
// the review straight from Acknowledged and the EmployeeSubmitted stage is
// skipped. These checks are enforced in the service layer on every
// submission; they do not rely on upstream UI gating.

// CanSubmitSelfRating reports whether an employee may submit a self-rating
// for the given KPI. Requires an acknowledged KPI, self-rating enabled and
// no existing review past pending.
func CanSubmitSelfRating(kpiStatus kpi.Status, selfRatingEnabled bool, existing *Review) error {
	if !selfRatingEnabled {
		return ErrSelfRatingDisabled
	}
	if kpiStatus != kpi.StatusAcknowledged {
		return ErrSelfRatingNotOpen
	}
	if existing != nil && existing.Status != StatusPending {
		return ErrReviewAlreadyExists
	}
	return nil
}

// CanInitiateManagerReview reports whether a manager may initiate a review
// without an employee self-rating. Only allowed when self-rating is
// disabled for the period type.
func CanInitiateManagerReview(kpiStatus kpi.Status, selfRatingEnabled bool, existing *Review) error {
	if selfRatingEnabled {
		return ErrManagerReviewNotOpen
	}
	if kpiStatus != kpi.StatusAcknowledged {
		return ErrManagerReviewNotOpen
	}
	if existing != nil && existing.Status != StatusPending {
		return ErrReviewAlreadyExists
	}
	return nil
}

// CanSubmitManagerReview reports whether a manager may submit or edit
// manager ratings on an existing review. Completed and rejected reviews
// are permanently locked.
func CanSubmitManagerReview(rv Review) error {
	if rv.Status.Terminal() {
		return ErrReviewLocked
	}
	if rv.Status != StatusEmployeeSubmitted && rv.Status != StatusManagerSubmitted {
		return ErrManagerReviewNotOpen
	}
	return nil
}

// CanConfirmCompletion reports whether the employee may confirm a
// manager-submitted review, completing it.
func CanConfirmCompletion(rv Review) error {
	if rv.Status.Terminal() {
		return ErrReviewLocked
	}
	if rv.Status != StatusManagerSubmitted {
		return ErrManagerReviewNotOpen
	}
	return nil
}

// CanReject reports whether the employee may reject a manager-submitted
// review.
func CanReject(rv Review) error {
	return CanConfirmCompletion(rv)
}

// CanResolveRejection reports whether a rejection may be annotated with an
// HR resolution note. Resolution never reopens rating edits.
func CanResolveRejection(rv Review) error {
	if rv.Status != StatusRejected {
		return ErrNotRejected
	}
	return nil
}
