package review

import "context"

type ReviewService interface {
	GetReview(ctx context.Context, userID string, reviewID string, includeDraft bool) (ReviewDetail, error)
	ValidateSubmission(ctx context.Context, userID string, kpiID string, req SubmitReviewRequest) ([]Warning, error)
	InitiateReview(ctx context.Context, userID string, kpiID string, req SubmitReviewRequest) (Review, error)
	SubmitManagerReview(ctx context.Context, userID string, reviewID string, req SubmitReviewRequest) (Review, error)
	ConfirmReview(ctx context.Context, userID string, reviewID string) (Review, error)
	RejectReview(ctx context.Context, userID string, reviewID string, req RejectReviewRequest) (Review, error)
	ResolveRejection(ctx context.Context, userID string, reviewID string, req ResolveRejectionRequest) (Review, error)
	RatingOptions(ctx context.Context, periodType string) ([]RatingOption, error)
}
