package review

import "errors"

var (
	ErrReviewNotFound       = errors.New("review not found")
	ErrReviewAlreadyExists  = errors.New("review already exists for this kpi")
	ErrReviewLocked         = errors.New("review is completed or rejected and can no longer be edited")
	ErrSelfRatingNotOpen    = errors.New("self-rating can only be submitted for an acknowledged kpi")
	ErrSelfRatingDisabled   = errors.New("self-rating is disabled for this period type")
	ErrManagerReviewNotOpen = errors.New("manager review is not open at this stage")
	ErrNotReviewEmployee    = errors.New("review belongs to another employee")
	ErrNotReviewManager     = errors.New("review is managed by another manager")
	ErrConfirmationRequired = errors.New("confirmation required before submitting")
	ErrNotRejected          = errors.New("review is not rejected")
)
