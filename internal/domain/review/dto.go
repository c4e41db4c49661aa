package review

import (
	"github.com/peoplepulse/perform-backend-go/internal/domain/kpi"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/validator"
)

// Warning is a soft validation outcome the caller must explicitly
// acknowledge before the submission proceeds.
type Warning string

const (
	WarningMeetingNotConfirmed Warning = "meeting_not_confirmed"
	WarningNoGoalWeights       Warning = "no_goal_weights"
)

type ItemRatingInput struct {
	ItemID            string  `json:"item_id"`
	Rating            float64 `json:"rating"`
	Comment           string  `json:"comment,omitempty"`
	ActualValue       *string `json:"actual_value,omitempty"`
	QualitativeRating *string `json:"qualitative_rating,omitempty"`

	// ManualPercentage overrides the computed manager rating percentage
	// verbatim (a percent sign is tolerated).
	ManualPercentage *string `json:"manual_percentage,omitempty"`
}

type SubmitReviewRequest struct {
	Ratings          []ItemRatingInput `json:"ratings"`
	OverallComment   string            `json:"overall_comment,omitempty"`
	Signature        string            `json:"signature"`
	MeetingConfirmed bool              `json:"meeting_confirmed,omitempty"`
	MeetingDate      *string           `json:"meeting_date,omitempty"`
	MeetingLocation  *string           `json:"meeting_location,omitempty"`
	Accomplishments  []Accomplishment  `json:"accomplishments,omitempty"`

	// AcknowledgedWarnings lists the soft warnings the user has already
	// confirmed through the cancellable gates.
	AcknowledgedWarnings []Warning `json:"acknowledged_warnings,omitempty"`
}

// Validate checks request shape only; business rules run in the service.
func (r *SubmitReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Ratings) == 0 && len(r.Accomplishments) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "ratings",
			Message: "at least one rating or accomplishment is required",
		})
	}

	for _, rating := range r.Ratings {
		if validator.IsEmpty(rating.ItemID) {
			errs = append(errs, validator.ValidationError{
				Field:   "ratings",
				Message: "item_id is required on every rating entry",
			})
			break
		}
	}

	if r.MeetingDate != nil {
		if _, ok := validator.IsValidDate(*r.MeetingDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "meeting_date",
				Message: "meeting_date must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectReviewRequest struct {
	Note string `json:"note"`
}

func (r *RejectReviewRequest) Validate() error {
	if validator.IsEmpty(r.Note) {
		return validator.ValidationErrors{{
			Field:   "note",
			Message: "note is required when rejecting a review",
		}}
	}
	return nil
}

type ResolveRejectionRequest struct {
	Note string `json:"note"`
}

func (r *ResolveRejectionRequest) Validate() error {
	if validator.IsEmpty(r.Note) {
		return validator.ValidationErrors{{
			Field:   "note",
			Message: "note is required when resolving a rejection",
		}}
	}
	return nil
}

// ReviewDetail is the assembled read model for one review: the record, its
// KPI, and the normalized rating maps, optionally overlaid with the
// caller's saved draft.
type ReviewDetail struct {
	Review  Review
	KPI     kpi.KPI
	Ratings NormalizedRatings

	// DraftApplied is set when a stored draft contributed values.
	DraftApplied bool
}
