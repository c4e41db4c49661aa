package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/peoplepulse/perform-backend-go/internal/domain/company"
	"github.com/peoplepulse/perform-backend-go/internal/domain/draft"
	"github.com/peoplepulse/perform-backend-go/internal/domain/employee"
	"github.com/peoplepulse/perform-backend-go/internal/domain/kpi"
	"github.com/peoplepulse/perform-backend-go/internal/domain/notification"
	"github.com/peoplepulse/perform-backend-go/internal/domain/review"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/database"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/validator"
	notificationService "github.com/peoplepulse/perform-backend-go/internal/service/notification"
)

type ReviewService struct {
	db *database.DB
	review.ReviewRepository
	review.RatingOptionRepository
	kpi.KPIRepository
	employee.EmployeeRepository
	company.SettingsRepository
	drafts        draft.Repository
	notifications *notificationService.Service
}

func NewReviewService(
	db *database.DB,
	reviewRepository review.ReviewRepository,
	ratingOptionRepository review.RatingOptionRepository,
	kpiRepository kpi.KPIRepository,
	employeeRepository employee.EmployeeRepository,
	settingsRepository company.SettingsRepository,
	drafts draft.Repository,
	notifications *notificationService.Service,
) *ReviewService {
	return &ReviewService{
		db:                     db,
		ReviewRepository:       reviewRepository,
		RatingOptionRepository: ratingOptionRepository,
		KPIRepository:          kpiRepository,
		EmployeeRepository:     employeeRepository,
		SettingsRepository:     settingsRepository,
		drafts:                 drafts,
		notifications:          notifications,
	}
}

// RatingOptions returns the discrete rating scale for a period type,
// falling back to the hardcoded scale when the lookup fails or is empty.
func (s *ReviewService) RatingOptions(ctx context.Context, periodType string) ([]review.RatingOption, error) {
	options, err := s.RatingOptionRepository.ListByPeriodType(ctx, periodType)
	if err != nil || len(options) == 0 {
		return review.FallbackRatingOptions(), nil
	}
	return options, nil
}

// GetReview assembles the review detail: record, KPI, normalized rating
// maps, and optionally the caller's saved draft overlaid onto their side.
func (s *ReviewService) GetReview(ctx context.Context, userID string, reviewID string, includeDraft bool) (review.ReviewDetail, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return review.ReviewDetail{}, fmt.Errorf("failed to get employee by user ID: %w", err)
	}

	rv, err := s.ReviewRepository.GetByID(ctx, reviewID)
	if err != nil {
		return review.ReviewDetail{}, fmt.Errorf("failed to get review by ID: %w", err)
	}

	record, err := s.KPIRepository.GetByID(ctx, rv.KPIID)
	if err != nil {
		return review.ReviewDetail{}, fmt.Errorf("failed to get kpi by ID: %w", err)
	}

	if emp.ID != record.EmployeeID && emp.ID != record.ManagerID {
		return review.ReviewDetail{}, review.ErrNotReviewEmployee
	}

	detail := review.ReviewDetail{
		Review:  rv,
		KPI:     record,
		Ratings: review.Normalize(rv, qualitativeItems(record.Items)),
	}

	if includeDraft && !rv.Status.Terminal() {
		// Only the caller's own draft; a failed read is treated as "no draft".
		if d, err := s.drafts.Load(ctx, draft.StorageKey(userID, draft.ReviewKey(reviewID))); err == nil && d != nil {
			if emp.ID == record.ManagerID {
				detail.Ratings.Manager = overlayDraft(detail.Ratings.Manager, d.Payload)
			} else {
				detail.Ratings.Employee = overlayDraft(detail.Ratings.Employee, d.Payload)
			}
			detail.DraftApplied = true
		}
	}

	return detail, nil
}

// ValidateSubmission runs the full pre-submission checks without
// persisting anything. Hard failures come back as an error; soft
// conditions come back as warnings the caller must acknowledge on submit.
func (s *ReviewService) ValidateSubmission(ctx context.Context, userID string, kpiID string, req review.SubmitReviewRequest) ([]review.Warning, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by user ID: %w", err)
	}

	record, err := s.KPIRepository.GetByID(ctx, kpiID)
	if err != nil {
		return nil, fmt.Errorf("failed to get kpi by ID: %w", err)
	}

	asManager := emp.ID == record.ManagerID
	if !asManager && emp.ID != record.EmployeeID {
		return nil, review.ErrNotReviewEmployee
	}

	settings, err := s.companySettings(ctx, record.CompanyID)
	if err != nil {
		return nil, err
	}

	submission, err := s.buildSubmission(ctx, record, req, asManager, settings.ForPeriod(string(record.PeriodType)))
	if err != nil {
		return nil, err
	}
	return submission.warnings, nil
}

// InitiateReview creates the review for a KPI: the employee's self-rating
// submission, or the manager's initial review when self-rating is disabled
// for the period type.
func (s *ReviewService) InitiateReview(ctx context.Context, userID string, kpiID string, req review.SubmitReviewRequest) (review.Review, error) {
	if err := req.Validate(); err != nil {
		return review.Review{}, err
	}

	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to get employee by user ID: %w", err)
	}

	record, err := s.KPIRepository.GetByID(ctx, kpiID)
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to get kpi by ID: %w", err)
	}

	settings, err := s.companySettings(ctx, record.CompanyID)
	if err != nil {
		return review.Review{}, err
	}
	periodSettings := settings.ForPeriod(string(record.PeriodType))

	existing, err := s.existingReview(ctx, record.ID)
	if err != nil {
		return review.Review{}, err
	}

	var asManager bool
	switch emp.ID {
	case record.EmployeeID:
		if err := review.CanSubmitSelfRating(record.Status, periodSettings.SelfRatingEnabled, existing); err != nil {
			return review.Review{}, err
		}
	case record.ManagerID:
		asManager = true
		if err := review.CanInitiateManagerReview(record.Status, periodSettings.SelfRatingEnabled, existing); err != nil {
			return review.Review{}, err
		}
	default:
		return review.Review{}, review.ErrNotReviewEmployee
	}

	submission, err := s.buildSubmission(ctx, record, req, asManager, periodSettings)
	if err != nil {
		return review.Review{}, err
	}
	if err := requireAcknowledged(submission.warnings, req.AcknowledgedWarnings); err != nil {
		return review.Review{}, err
	}

	rv := review.Review{
		KPIID:  record.ID,
		Status: review.StatusEmployeeSubmitted,
	}
	nextKPIStatus := kpi.StatusEmployeeSubmitted
	if asManager {
		rv.Status = review.StatusManagerSubmitted
		nextKPIStatus = kpi.StatusManagerSubmitted
		applyManagerSide(&rv, req, submission)
	} else {
		applyEmployeeSide(&rv, req, submission)
	}

	created, err := s.ReviewRepository.Create(ctx, rv)
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.KPIRepository.UpdateStatus(ctx, record.ID, nextKPIStatus); err != nil {
		return review.Review{}, fmt.Errorf("failed to update kpi status: %w", err)
	}

	// Draft only goes away once the submission is confirmed saved. Before
	// the review exists the form draft is keyed by the KPI ID.
	_ = s.drafts.Clear(ctx, draft.StorageKey(userID, draft.ReviewKey(record.ID)))

	s.notifyCounterpart(ctx, record, emp, asManager, created)

	return created, nil
}

// SubmitManagerReview records the manager's ratings on an existing review.
// Completed and rejected reviews are permanently locked.
func (s *ReviewService) SubmitManagerReview(ctx context.Context, userID string, reviewID string, req review.SubmitReviewRequest) (review.Review, error) {
	if err := req.Validate(); err != nil {
		return review.Review{}, err
	}

	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to get employee by user ID: %w", err)
	}

	rv, err := s.ReviewRepository.GetByID(ctx, reviewID)
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to get review by ID: %w", err)
	}

	record, err := s.KPIRepository.GetByID(ctx, rv.KPIID)
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to get kpi by ID: %w", err)
	}

	if emp.ID != record.ManagerID {
		return review.Review{}, review.ErrNotReviewManager
	}
	if err := review.CanSubmitManagerReview(rv); err != nil {
		return review.Review{}, err
	}

	settings, err := s.companySettings(ctx, record.CompanyID)
	if err != nil {
		return review.Review{}, err
	}

	submission, err := s.buildSubmission(ctx, record, req, true, settings.ForPeriod(string(record.PeriodType)))
	if err != nil {
		return review.Review{}, err
	}
	if err := requireAcknowledged(submission.warnings, req.AcknowledgedWarnings); err != nil {
		return review.Review{}, err
	}

	applyManagerSide(&rv, req, submission)
	rv.Status = review.StatusManagerSubmitted

	if err := s.ReviewRepository.Update(ctx, rv); err != nil {
		return review.Review{}, fmt.Errorf("failed to update review: %w", err)
	}

	if err := s.KPIRepository.UpdateStatus(ctx, record.ID, kpi.StatusManagerSubmitted); err != nil {
		return review.Review{}, fmt.Errorf("failed to update kpi status: %w", err)
	}

	_ = s.drafts.Clear(ctx, draft.StorageKey(userID, draft.ReviewKey(rv.ID)))

	s.notifyCounterpart(ctx, record, emp, true, rv)

	return rv, nil
}

// ConfirmReview completes a manager-submitted review on the employee's
// confirmation.
func (s *ReviewService) ConfirmReview(ctx context.Context, userID string, reviewID string) (review.Review, error) {
	emp, rv, record, err := s.loadForEmployeeAction(ctx, userID, reviewID)
	if err != nil {
		return review.Review{}, err
	}

	if err := review.CanConfirmCompletion(rv); err != nil {
		return review.Review{}, err
	}

	rv.Status = review.StatusCompleted
	if err := s.ReviewRepository.Update(ctx, rv); err != nil {
		return review.Review{}, fmt.Errorf("failed to update review: %w", err)
	}
	if err := s.KPIRepository.UpdateStatus(ctx, record.ID, kpi.StatusCompleted); err != nil {
		return review.Review{}, fmt.Errorf("failed to update kpi status: %w", err)
	}

	s.notifyManager(ctx, record, emp, notification.TypeReviewCompleted,
		"Review completed",
		fmt.Sprintf("%s confirmed the review for %q", emp.Name, record.Title), rv)

	return rv, nil
}

// RejectReview rejects a manager-submitted review with the employee's
// mandatory note.
func (s *ReviewService) RejectReview(ctx context.Context, userID string, reviewID string, req review.RejectReviewRequest) (review.Review, error) {
	if err := req.Validate(); err != nil {
		return review.Review{}, err
	}

	emp, rv, record, err := s.loadForEmployeeAction(ctx, userID, reviewID)
	if err != nil {
		return review.Review{}, err
	}

	if err := review.CanReject(rv); err != nil {
		return review.Review{}, err
	}

	rv.Status = review.StatusRejected
	rv.RejectionNote = &req.Note
	if err := s.ReviewRepository.Update(ctx, rv); err != nil {
		return review.Review{}, fmt.Errorf("failed to update review: %w", err)
	}
	if err := s.KPIRepository.UpdateStatus(ctx, record.ID, kpi.StatusRejected); err != nil {
		return review.Review{}, fmt.Errorf("failed to update kpi status: %w", err)
	}

	s.notifyManager(ctx, record, emp, notification.TypeReviewRejected,
		"Review rejected",
		fmt.Sprintf("%s rejected the review for %q", emp.Name, record.Title), rv)

	return rv, nil
}

// ResolveRejection records an HR resolution note on a rejected review.
// Resolution never reopens rating edits.
func (s *ReviewService) ResolveRejection(ctx context.Context, userID string, reviewID string, req review.ResolveRejectionRequest) (review.Review, error) {
	if err := req.Validate(); err != nil {
		return review.Review{}, err
	}

	rv, err := s.ReviewRepository.GetByID(ctx, reviewID)
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to get review by ID: %w", err)
	}

	if err := review.CanResolveRejection(rv); err != nil {
		return review.Review{}, err
	}

	now := time.Now()
	rv.ResolutionNote = &req.Note
	rv.ResolvedAt = &now
	if err := s.ReviewRepository.Update(ctx, rv); err != nil {
		return review.Review{}, fmt.Errorf("failed to update review: %w", err)
	}

	return rv, nil
}

// submission carries everything the pre-submission pipeline derives.
type submission struct {
	itemRatings map[string]review.ItemRating
	average     float64
	rounded     float64
	warnings    []review.Warning
}

// buildSubmission runs the ordered pre-submission checks and, on success,
// derives the per-item payload and the average/rounded scores. Hard checks
// return a distinct validation message each; soft conditions are returned
// as warnings for the caller's confirmation gates.
func (s *ReviewService) buildSubmission(ctx context.Context, record kpi.KPI, req review.SubmitReviewRequest, asManager bool, periodSettings company.PeriodSettings) (submission, error) {
	// 1. Period selection
	if record.PeriodType == kpi.PeriodQuarterly && record.Quarter == nil {
		return submission{}, validator.ValidationErrors{{
			Field:   "quarter",
			Message: "Select a quarter before submitting",
		}}
	}

	options, err := s.RatingOptions(ctx, string(record.PeriodType))
	if err != nil {
		return submission{}, err
	}
	calc := NewRatingCalculator(review.ScaleOf(options))

	inputs := make(map[string]review.ItemRatingInput, len(req.Ratings))
	for _, input := range req.Ratings {
		inputs[input.ItemID] = input
	}

	// 2. Every item rated from the allowed set
	numericRatings := map[string]float64{}
	for _, item := range record.Items {
		input, ok := inputs[item.ID]
		if item.IsQualitative {
			if input.QualitativeRating == nil || !review.ValidQualitativeRating(*input.QualitativeRating) {
				return submission{}, validator.ValidationErrors{{
					Field:   "ratings",
					Message: fmt.Sprintf("Choose a qualitative rating for %q", item.Title),
				}}
			}
			continue
		}
		if !ok || input.Rating == 0 || !calc.AllowedRating(input.Rating) {
			return submission{}, validator.ValidationErrors{{
				Field:   "ratings",
				Message: fmt.Sprintf("Rate %q using the allowed rating scale", item.Title),
			}}
		}
		if !item.ExcludeFromCalculation {
			numericRatings[item.ID] = input.Rating
		}
	}

	// 3. Guard against an accidental empty submission
	if len(numericRatings) == 0 && len(req.Accomplishments) == 0 {
		return submission{}, validator.ValidationErrors{{
			Field:   "ratings",
			Message: "Rate at least one item or add an accomplishment before submitting",
		}}
	}

	// 4. Accomplishments need manager ratings unless the section is hidden
	if asManager && !periodSettings.HidesReflection() {
		for _, acc := range req.Accomplishments {
			if acc.ManagerRating == 0 {
				return submission{}, validator.ValidationErrors{{
					Field:   "accomplishments",
					Message: "Rate every accomplishment before submitting",
				}}
			}
		}
	}

	// 5. Digital signature
	if validator.IsEmpty(req.Signature) {
		return submission{}, validator.ValidationErrors{{
			Field:   "signature",
			Message: "A digital signature is required",
		}}
	}

	var warnings []review.Warning

	// 6. Unconfirmed meeting is a soft warning, not a hard block
	if asManager && !req.MeetingConfirmed {
		warnings = append(warnings, review.WarningMeetingNotConfirmed)
	}

	// 7. Goal-weight invariant
	validation, err := kpi.ValidateGoalWeights(record.Items)
	if err != nil {
		return submission{}, err
	}
	if validation.NeedsConfirmation {
		warnings = append(warnings, review.WarningNoGoalWeights)
	}

	var accomplishments []review.Accomplishment
	if asManager {
		accomplishments = req.Accomplishments
	}
	average := calc.AverageRating(record.Items, numericRatings, accomplishments)
	rounded := calc.RoundToAllowed(average)

	itemRatings := make(map[string]review.ItemRating, len(record.Items))
	for _, item := range record.Items {
		input, ok := inputs[item.ID]
		if !ok {
			continue
		}
		entry := review.ItemRating{
			Rating:            input.Rating,
			Comment:           input.Comment,
			ActualValue:       input.ActualValue,
			QualitativeRating: input.QualitativeRating,
			TargetValue:       item.TargetValue,
			GoalWeight:        item.GoalWeight,
		}
		if item.IsQualitative {
			entry.Rating = 0
		} else {
			entry.PercentageObtained = PercentageObtained(input.ActualValue, item.TargetValue)
			if asManager {
				entry.ManagerRatingPercentage = ManagerRatingPercentage(entry.PercentageObtained, item.GoalWeight, input.ManualPercentage)
			}
		}
		itemRatings[item.ID] = entry
	}

	return submission{
		itemRatings: itemRatings,
		average:     average,
		rounded:     rounded,
		warnings:    warnings,
	}, nil
}

func applyEmployeeSide(rv *review.Review, req review.SubmitReviewRequest, sub submission) {
	rv.ItemRatings.Employee = sub.itemRatings
	if req.OverallComment != "" {
		rv.EmployeeOverallComment = &req.OverallComment
	}
	if req.Signature != "" {
		rv.EmployeeSignature = &req.Signature
	}
	average, rounded := sub.average, sub.rounded
	rv.EmployeeAverageRating = &average
	rv.EmployeeRoundedRating = &rounded
}

func applyManagerSide(rv *review.Review, req review.SubmitReviewRequest, sub submission) {
	rv.ItemRatings.Manager = sub.itemRatings
	if req.OverallComment != "" {
		rv.ManagerOverallComment = &req.OverallComment
	}
	if req.Signature != "" {
		rv.ManagerSignature = &req.Signature
	}
	rv.MeetingConfirmed = req.MeetingConfirmed
	if req.MeetingDate != nil {
		if date, err := time.Parse("2006-01-02", *req.MeetingDate); err == nil {
			rv.MeetingDate = &date
		}
	}
	rv.MeetingLocation = req.MeetingLocation
	rv.Accomplishments = req.Accomplishments
	average, rounded := sub.average, sub.rounded
	rv.ManagerAverageRating = &average
	rv.ManagerRoundedRating = &rounded
}

// requireAcknowledged fails with ErrConfirmationRequired when a raised
// warning was not acknowledged by the caller.
func requireAcknowledged(raised []review.Warning, acknowledged []review.Warning) error {
	var missing []string
	for _, warning := range raised {
		found := false
		for _, ack := range acknowledged {
			if ack == warning {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, string(warning))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", review.ErrConfirmationRequired, strings.Join(missing, ", "))
	}
	return nil
}

func (s *ReviewService) existingReview(ctx context.Context, kpiID string) (*review.Review, error) {
	rv, err := s.ReviewRepository.GetByKPIID(ctx, kpiID)
	if err != nil {
		if errors.Is(err, review.ErrReviewNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review by kpi ID: %w", err)
	}
	return &rv, nil
}

func (s *ReviewService) companySettings(ctx context.Context, companyID string) (company.Settings, error) {
	settings, err := s.SettingsRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrSettingsNotFound) {
			return company.DefaultSettings(companyID), nil
		}
		return company.Settings{}, fmt.Errorf("failed to get company settings: %w", err)
	}
	return settings, nil
}

func (s *ReviewService) loadForEmployeeAction(ctx context.Context, userID, reviewID string) (employee.Employee, review.Review, kpi.KPI, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return employee.Employee{}, review.Review{}, kpi.KPI{}, fmt.Errorf("failed to get employee by user ID: %w", err)
	}

	rv, err := s.ReviewRepository.GetByID(ctx, reviewID)
	if err != nil {
		return employee.Employee{}, review.Review{}, kpi.KPI{}, fmt.Errorf("failed to get review by ID: %w", err)
	}

	record, err := s.KPIRepository.GetByID(ctx, rv.KPIID)
	if err != nil {
		return employee.Employee{}, review.Review{}, kpi.KPI{}, fmt.Errorf("failed to get kpi by ID: %w", err)
	}

	if emp.ID != record.EmployeeID {
		return employee.Employee{}, review.Review{}, kpi.KPI{}, review.ErrNotReviewEmployee
	}

	return emp, rv, record, nil
}

func (s *ReviewService) notifyCounterpart(ctx context.Context, record kpi.KPI, actor employee.Employee, asManager bool, rv review.Review) {
	var recipientEmployeeID string
	notifType := notification.TypeSelfRatingSubmitted
	title := "Self-rating submitted"
	message := fmt.Sprintf("%s submitted a self-rating for %q", actor.Name, record.Title)
	if asManager {
		recipientEmployeeID = record.EmployeeID
		notifType = notification.TypeManagerReviewSubmitted
		title = "Manager review submitted"
		message = fmt.Sprintf("%s submitted a review for %q", actor.Name, record.Title)
	} else {
		recipientEmployeeID = record.ManagerID
	}

	recipient, err := s.EmployeeRepository.GetByID(ctx, recipientEmployeeID)
	if err != nil {
		return
	}
	s.notifications.Notify(ctx, record.CompanyID, recipient.UserID, &actor.UserID, notifType, title, message,
		map[string]interface{}{"kpi_id": record.ID, "review_id": rv.ID})
}

func (s *ReviewService) notifyManager(ctx context.Context, record kpi.KPI, actor employee.Employee, notifType notification.NotificationType, title, message string, rv review.Review) {
	manager, err := s.EmployeeRepository.GetByID(ctx, record.ManagerID)
	if err != nil {
		return
	}
	s.notifications.Notify(ctx, record.CompanyID, manager.UserID, &actor.UserID, notifType, title, message,
		map[string]interface{}{"kpi_id": record.ID, "review_id": rv.ID})
}

func qualitativeItems(items []kpi.KPIItem) map[string]bool {
	qualitative := make(map[string]bool, len(items))
	for _, item := range items {
		if item.IsQualitative {
			qualitative[item.ID] = true
		}
	}
	return qualitative
}

// overlayDraft merges a stored draft into one side's normalized rating
// maps. Draft values never clobber non-empty authoritative state.
func overlayDraft(set review.RatingSet, payload draft.Payload) review.RatingSet {
	merged := draft.Merge(draft.Payload{
		Ratings:      set.Ratings,
		Comments:     set.Comments,
		Qualitative:  set.Qualitative,
		ActualValues: set.ActualValues,
	}, payload)
	return review.RatingSet{
		Ratings:      merged.Ratings,
		Comments:     merged.Comments,
		Qualitative:  merged.Qualitative,
		ActualValues: merged.ActualValues,
	}
}
