package review

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Status string

const (
	StatusPending           Status = "pending"
	StatusEmployeeSubmitted Status = "employee_submitted"
	StatusManagerSubmitted  Status = "manager_submitted"
	StatusCompleted         Status = "completed"
	StatusRejected          Status = "rejected"
)

// Terminal reports whether the status permanently locks rating edits.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Qualitative rating labels
const (
	QualitativeExceeds          = "exceeds"
	QualitativeMeets            = "meets"
	QualitativeNeedsImprovement = "needs_improvement"
)

// ValidQualitativeRating reports whether label is one of the allowed
// qualitative labels.
func ValidQualitativeRating(label string) bool {
	switch label {
	case QualitativeExceeds, QualitativeMeets, QualitativeNeedsImprovement:
		return true
	}
	return false
}

// ItemRating is one side's rating of a single KPI item in the structured
// wire shape.
type ItemRating struct {
	Rating                  float64  `json:"rating"`
	Comment                 string   `json:"comment,omitempty"`
	ActualValue             *string  `json:"actual_value,omitempty"`
	QualitativeRating       *string  `json:"qualitative_rating,omitempty"`
	TargetValue             *string  `json:"target_value,omitempty"`
	GoalWeight              *string  `json:"goal_weight,omitempty"`
	PercentageObtained      *float64 `json:"percentage_obtained,omitempty"`
	ManagerRatingPercentage *float64 `json:"manager_rating_percentage,omitempty"`
}

// ItemRatings is the structured per-item rating payload, keyed by item ID,
// stored as JSONB.
type ItemRatings struct {
	Employee map[string]ItemRating `json:"employee,omitempty"`
	Manager  map[string]ItemRating `json:"manager,omitempty"`
}

// Value implements driver.Valuer for database storage
func (ir ItemRatings) Value() (driver.Value, error) {
	if len(ir.Employee) == 0 && len(ir.Manager) == 0 {
		return nil, nil
	}
	return json.Marshal(ir)
}

// Scan implements sql.Scanner for database retrieval
func (ir *ItemRatings) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ItemRatings: invalid type")
	}

	return json.Unmarshal(bytes, ir)
}

// Accomplishment is a manager-added "Performance Reflection" entry with its
// own manager rating.
type Accomplishment struct {
	Description   string  `json:"description"`
	ManagerRating float64 `json:"manager_rating"`
}

type Accomplishments []Accomplishment

// Value implements driver.Valuer for database storage
func (a Accomplishments) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *Accomplishments) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Accomplishments: invalid type")
	}

	return json.Unmarshal(bytes, a)
}

// Review is the evaluation record tied 1:1 to a KPI. Numeric average and
// rounded fields are derived from item-level data, never authored directly.
type Review struct {
	ID    string
	KPIID string

	ItemRatings ItemRatings

	// Legacy records carry per-item data as a JSON blob inside these
	// comment columns instead of ItemRatings.
	EmployeeComment *string
	ManagerComment  *string

	EmployeeOverallComment *string
	ManagerOverallComment  *string

	EmployeeAverageRating *float64
	EmployeeRoundedRating *float64
	ManagerAverageRating  *float64
	ManagerRoundedRating  *float64

	EmployeeSignature *string
	ManagerSignature  *string

	MeetingConfirmed bool
	MeetingDate      *time.Time
	MeetingLocation  *string

	Accomplishments Accomplishments

	Status Status

	RejectionNote  *string
	ResolutionNote *string
	ResolvedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatingOption is one value of the discrete rating scale for a period type.
type RatingOption struct {
	Value      float64 `json:"value"`
	Label      string  `json:"label"`
	PeriodType string  `json:"period_type"`
}

// FallbackRatingOptions is the hardcoded scale used when the rating options
// lookup fails or returns nothing.
func FallbackRatingOptions() []RatingOption {
	return []RatingOption{
		{Value: 1.00, Label: "Below Expectation"},
		{Value: 1.25, Label: "Meets Expectation"},
		{Value: 1.50, Label: "Exceeds Expectation"},
	}
}

// ScaleOf extracts the numeric scale from a list of rating options.
func ScaleOf(options []RatingOption) []float64 {
	scale := make([]float64, 0, len(options))
	for _, opt := range options {
		scale = append(scale, opt.Value)
	}
	return scale
}
