package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/peoplepulse/perform-backend-go/internal/domain/auth"
	"github.com/peoplepulse/perform-backend-go/internal/domain/company"
	"github.com/peoplepulse/perform-backend-go/internal/domain/employee"
	"github.com/peoplepulse/perform-backend-go/internal/domain/kpi"
	"github.com/peoplepulse/perform-backend-go/internal/domain/review"
	"github.com/peoplepulse/perform-backend-go/internal/domain/user"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")

	// Role errors
	case errors.Is(err, user.ErrOwnerAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Company domain errors
	case errors.Is(err, company.ErrSettingsNotFound):
		NotFound(w, "Company settings not found")

	// KPI domain errors
	case errors.Is(err, kpi.ErrKPINotFound):
		NotFound(w, "KPI not found")
	case errors.Is(err, kpi.ErrKPIItemNotFound):
		NotFound(w, "KPI item not found")
	case errors.Is(err, kpi.ErrKPILocked):
		Conflict(w, "KPI is completed or rejected and can no longer be updated")
	case errors.Is(err, kpi.ErrTemplateNotFound):
		NotFound(w, "KPI template not found")
	case errors.Is(err, kpi.ErrNotKPIOwner), errors.Is(err, kpi.ErrNotKPIManager):
		Forbidden(w, err.Error())
	case errors.Is(err, kpi.ErrAlreadyAcknowledged):
		Conflict(w, "KPI already acknowledged")
	case errors.Is(err, kpi.ErrPartialGoalWeights), errors.Is(err, kpi.ErrGoalWeightSum):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, kpi.ErrWeightConfirmationRequired):
		ConfirmationRequired(w, err.Error(), []string{string(review.WarningNoGoalWeights)})

	// Review domain errors
	case errors.Is(err, review.ErrReviewNotFound):
		NotFound(w, "Review not found")
	case errors.Is(err, review.ErrReviewAlreadyExists):
		Conflict(w, "A review already exists for this KPI")
	case errors.Is(err, review.ErrReviewLocked):
		Conflict(w, "Review is completed or rejected and can no longer be edited")
	case errors.Is(err, review.ErrSelfRatingNotOpen),
		errors.Is(err, review.ErrSelfRatingDisabled),
		errors.Is(err, review.ErrManagerReviewNotOpen),
		errors.Is(err, review.ErrNotRejected):
		Conflict(w, err.Error())
	case errors.Is(err, review.ErrNotReviewEmployee), errors.Is(err, review.ErrNotReviewManager):
		Forbidden(w, err.Error())
	case errors.Is(err, review.ErrConfirmationRequired):
		ConfirmationRequired(w, "Submission requires acknowledging warnings", confirmationWarnings(err))

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

// confirmationWarnings recovers the warning codes appended after the
// sentinel's message.
func confirmationWarnings(err error) []string {
	msg := err.Error()
	idx := strings.LastIndex(msg, ": ")
	if idx < 0 {
		return nil
	}
	var warnings []string
	for _, code := range strings.Split(msg[idx+2:], ", ") {
		if code != "" {
			warnings = append(warnings, code)
		}
	}
	return warnings
}
