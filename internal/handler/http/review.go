package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peoplepulse/perform-backend-go/internal/domain/review"
	"github.com/peoplepulse/perform-backend-go/internal/handler/http/response"
)

// ReviewHandler defines the review handler interface
type ReviewHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
	Initiate(w http.ResponseWriter, r *http.Request)
	SubmitManagerReview(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	RatingOptions(w http.ResponseWriter, r *http.Request)
}

type reviewHandlerImpl struct {
	reviewService review.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService review.ReviewService) ReviewHandler {
	return &reviewHandlerImpl{reviewService: reviewService}
}

// Get returns the review detail with normalized rating maps. Pass
// include_draft=true to overlay the caller's saved draft.
func (h *reviewHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	reviewID := chi.URLParam(r, "id")
	if reviewID == "" {
		response.BadRequest(w, "Review ID is required", nil)
		return
	}

	includeDraft := r.URL.Query().Get("include_draft") == "true"

	detail, err := h.reviewService.GetReview(r.Context(), userID, reviewID, includeDraft)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

// Validate dry-runs the submission checks and returns the warnings the
// caller would have to acknowledge.
func (h *reviewHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	kpiID := chi.URLParam(r, "kpiID")
	if kpiID == "" {
		response.BadRequest(w, "KPI ID is required", nil)
		return
	}

	var req review.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	warnings, err := h.reviewService.ValidateSubmission(r.Context(), userID, kpiID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if warnings == nil {
		warnings = []review.Warning{}
	}
	response.Success(w, map[string]interface{}{"ok": true, "warnings": warnings})
}

// Initiate creates the review for a KPI: employee self-rating, or the
// manager's first submission when self-rating is disabled.
func (h *reviewHandlerImpl) Initiate(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	kpiID := chi.URLParam(r, "kpiID")
	if kpiID == "" {
		response.BadRequest(w, "KPI ID is required", nil)
		return
	}

	var req review.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.reviewService.InitiateReview(r.Context(), userID, kpiID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Review submitted", created)
}

func (h *reviewHandlerImpl) SubmitManagerReview(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	reviewID := chi.URLParam(r, "id")
	if reviewID == "" {
		response.BadRequest(w, "Review ID is required", nil)
		return
	}

	var req review.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.reviewService.SubmitManagerReview(r.Context(), userID, reviewID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manager review submitted", updated)
}

func (h *reviewHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	reviewID := chi.URLParam(r, "id")
	if reviewID == "" {
		response.BadRequest(w, "Review ID is required", nil)
		return
	}

	updated, err := h.reviewService.ConfirmReview(r.Context(), userID, reviewID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review completed", updated)
}

func (h *reviewHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	reviewID := chi.URLParam(r, "id")
	if reviewID == "" {
		response.BadRequest(w, "Review ID is required", nil)
		return
	}

	var req review.RejectReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.reviewService.RejectReview(r.Context(), userID, reviewID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review rejected", updated)
}

// Resolve records an HR resolution note on a rejected review.
func (h *reviewHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	reviewID := chi.URLParam(r, "id")
	if reviewID == "" {
		response.BadRequest(w, "Review ID is required", nil)
		return
	}

	var req review.ResolveRejectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.reviewService.ResolveRejection(r.Context(), userID, reviewID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rejection resolved", updated)
}

func (h *reviewHandlerImpl) RatingOptions(w http.ResponseWriter, r *http.Request) {
	periodType := r.URL.Query().Get("period_type")

	options, err := h.reviewService.RatingOptions(r.Context(), periodType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, options)
}
