package kpi

import (
	"strconv"

	"github.com/peoplepulse/perform-backend-go/internal/pkg/validator"
)

type SetKPIItemRequest struct {
	Title                  string  `json:"title"`
	Description            string  `json:"description"`
	IsQualitative          bool    `json:"is_qualitative"`
	TargetValue            *string `json:"target_value,omitempty"`
	MeasureUnit            *string `json:"measure_unit,omitempty"`
	GoalWeight             *string `json:"goal_weight,omitempty"`
	ExpectedCompletionDate *string `json:"expected_completion_date,omitempty"`
	ExcludeFromCalculation bool    `json:"exclude_from_calculation,omitempty"`
}

type SetKPIRequest struct {
	EmployeeID string             `json:"employee_id"`
	Title      string             `json:"title"`
	PeriodType string             `json:"period_type"`
	Quarter    *int               `json:"quarter,omitempty"`
	Year       int                `json:"year"`
	TemplateID *string            `json:"template_id,omitempty"`
	Items      []SetKPIItemRequest `json:"items"`

	// ConfirmedNoGoalWeights acknowledges the "proceed without goal
	// weights" confirmation gate.
	ConfirmedNoGoalWeights bool `json:"confirmed_no_goal_weights,omitempty"`
}

func (r *SetKPIRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}

	if !validator.IsInSlice(r.PeriodType, []string{string(PeriodQuarterly), string(PeriodYearly)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_type",
			Message: "period_type must be quarterly or yearly",
		})
	}

	if r.PeriodType == string(PeriodQuarterly) {
		if r.Quarter == nil || *r.Quarter < 1 || *r.Quarter > 4 {
			errs = append(errs, validator.ValidationError{
				Field:   "quarter",
				Message: "quarter must be between 1 and 4 for quarterly KPIs",
			})
		}
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if r.TemplateID == nil && len(r.Items) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "items",
			Message: "at least one item or a template_id is required",
		})
	}

	for i, item := range r.Items {
		if validator.IsEmpty(item.Title) {
			errs = append(errs, validator.ValidationError{
				Field:   "items",
				Message: "item " + strconv.Itoa(i) + ": title is required",
			})
		}
		if validator.IsEmpty(item.Description) {
			errs = append(errs, validator.ValidationError{
				Field:   "items",
				Message: "item " + strconv.Itoa(i) + ": description is required",
			})
		}
		if item.ExpectedCompletionDate != nil {
			if _, ok := validator.IsValidDate(*item.ExpectedCompletionDate); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   "items",
					Message: "item " + strconv.Itoa(i) + ": expected_completion_date must be YYYY-MM-DD",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateTemplateRequest struct {
	Name  string         `json:"name"`
	Items []TemplateItem `json:"items"`
}

func (r *CreateTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Items) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "items",
			Message: "at least one item is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateItemStatusRequest sets or clears an item's in-cycle performance
// status. A nil or empty status clears the flag.
type UpdateItemStatusRequest struct {
	Status *string `json:"status"`
}

func (r *UpdateItemStatusRequest) Validate() error {
	if r.Status == nil || *r.Status == "" {
		return nil
	}
	if !validator.IsInSlice(*r.Status, []string{PerformanceOnTrack, PerformanceAtRisk, PerformanceOffTrack}) {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be on_track, at_risk or off_track",
		}}
	}
	return nil
}

type KPIFilter struct {
	EmployeeID string
	ManagerID  string
	PeriodType string
	Year       int
}
