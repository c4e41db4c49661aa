package kpi

import "time"

type Status string

const (
	StatusPending           Status = "pending"
	StatusAcknowledged      Status = "acknowledged"
	StatusEmployeeSubmitted Status = "employee_submitted"
	StatusManagerSubmitted  Status = "manager_submitted"
	StatusCompleted         Status = "completed"
	StatusRejected          Status = "rejected"
)

type PeriodType string

const (
	PeriodQuarterly PeriodType = "quarterly"
	PeriodYearly    PeriodType = "yearly"
)

// Allowed CurrentPerformanceStatus values. The flag tracks how an item is
// trending during the cycle and is independent of the final rating.
const (
	PerformanceOnTrack  = "on_track"
	PerformanceAtRisk   = "at_risk"
	PerformanceOffTrack = "off_track"
)

// KPIItem is one measurable objective inside a KPI. Once the KPI is
// acknowledged the item is immutable except for rating-related fields.
type KPIItem struct {
	ID                       string
	KPIID                    string
	Title                    string
	Description              string
	IsQualitative            bool
	TargetValue              *string
	MeasureUnit              *string
	GoalWeight               *string // percentage string, optional
	ExpectedCompletionDate   *time.Time
	ExcludeFromCalculation   bool // qualitative items only
	CurrentPerformanceStatus *string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// KPI is a named collection of items for one employee and period, owned by
// exactly one manager and one employee.
type KPI struct {
	ID             string
	CompanyID      string
	EmployeeID     string
	ManagerID      string
	Title          string
	PeriodType     PeriodType
	Quarter        *int // 1-4, quarterly only
	Year           int
	Status         Status
	AcknowledgedAt *time.Time
	Items          []KPIItem
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Relationships (for responses)
	EmployeeName *string
	ManagerName  *string
}

// KPITemplate is a reusable named item set a manager can instantiate a KPI
// from.
type KPITemplate struct {
	ID        string
	CompanyID string
	Name      string
	Items     []TemplateItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TemplateItem struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	IsQualitative bool    `json:"is_qualitative"`
	TargetValue   *string `json:"target_value,omitempty"`
	MeasureUnit   *string `json:"measure_unit,omitempty"`
	GoalWeight    *string `json:"goal_weight,omitempty"`
}
