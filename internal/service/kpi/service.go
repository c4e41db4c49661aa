package kpi

import (
	"context"
	"fmt"
	"time"

	"github.com/peoplepulse/perform-backend-go/internal/domain/draft"
	"github.com/peoplepulse/perform-backend-go/internal/domain/employee"
	"github.com/peoplepulse/perform-backend-go/internal/domain/kpi"
	"github.com/peoplepulse/perform-backend-go/internal/domain/notification"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/database"
	notificationService "github.com/peoplepulse/perform-backend-go/internal/service/notification"
)

type KPIService struct {
	db *database.DB
	kpi.KPIRepository
	kpi.TemplateRepository
	employee.EmployeeRepository
	drafts        draft.Repository
	notifications *notificationService.Service
}

func NewKPIService(
	db *database.DB,
	kpiRepository kpi.KPIRepository,
	templateRepository kpi.TemplateRepository,
	employeeRepository employee.EmployeeRepository,
	drafts draft.Repository,
	notifications *notificationService.Service,
) *KPIService {
	return &KPIService{
		db:                 db,
		KPIRepository:      kpiRepository,
		TemplateRepository: templateRepository,
		EmployeeRepository: employeeRepository,
		drafts:             drafts,
		notifications:      notifications,
	}
}

// SetKPI creates a KPI with its items, directly or from a template. The
// goal-weight invariant is enforced here; proceeding with no weights at all
// requires the caller to have confirmed it.
func (s *KPIService) SetKPI(ctx context.Context, managerUserID string, req kpi.SetKPIRequest) (kpi.KPI, error) {
	manager, err := s.EmployeeRepository.GetByUserID(ctx, managerUserID)
	if err != nil {
		return kpi.KPI{}, fmt.Errorf("failed to get manager by user ID: %w", err)
	}

	target, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return kpi.KPI{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	isManager, err := s.EmployeeRepository.IsManagerOf(ctx, manager.ID, target.ID)
	if err != nil {
		return kpi.KPI{}, fmt.Errorf("failed to check manager relationship: %w", err)
	}
	if !isManager {
		return kpi.KPI{}, kpi.ErrNotKPIManager
	}

	items := req.Items
	if req.TemplateID != nil {
		template, err := s.TemplateRepository.GetByID(ctx, *req.TemplateID)
		if err != nil {
			return kpi.KPI{}, fmt.Errorf("failed to get template by ID: %w", err)
		}
		items = append(templateItems(template), items...)
	}

	candidate := buildItems(items)
	validation, err := kpi.ValidateGoalWeights(candidate)
	if err != nil {
		return kpi.KPI{}, err
	}
	if validation.NeedsConfirmation && !req.ConfirmedNoGoalWeights {
		return kpi.KPI{}, kpi.ErrWeightConfirmationRequired
	}

	record := kpi.KPI{
		CompanyID:  manager.CompanyID,
		EmployeeID: target.ID,
		ManagerID:  manager.ID,
		Title:      req.Title,
		PeriodType: kpi.PeriodType(req.PeriodType),
		Quarter:    req.Quarter,
		Year:       req.Year,
		Status:     kpi.StatusPending,
		Items:      candidate,
	}

	created, err := s.KPIRepository.Create(ctx, record)
	if err != nil {
		return kpi.KPI{}, fmt.Errorf("failed to create kpi: %w", err)
	}

	// A successful save supersedes the manager's setting draft.
	_ = s.drafts.Clear(ctx, draft.StorageKey(managerUserID, draft.SettingKey(target.ID)))

	s.notifications.Notify(ctx, manager.CompanyID, target.UserID, &managerUserID,
		notification.TypeKPIAssigned,
		"New KPI assigned",
		fmt.Sprintf("%s set the KPI %q for you", manager.Name, created.Title),
		map[string]interface{}{"kpi_id": created.ID},
	)

	return created, nil
}

// AcknowledgeKPI moves a pending KPI to acknowledged. Only the owning
// employee may acknowledge; items become immutable afterwards except for
// rating-related fields.
func (s *KPIService) AcknowledgeKPI(ctx context.Context, userID string, kpiID string) (kpi.KPI, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return kpi.KPI{}, fmt.Errorf("failed to get employee by user ID: %w", err)
	}

	record, err := s.KPIRepository.GetByID(ctx, kpiID)
	if err != nil {
		return kpi.KPI{}, fmt.Errorf("failed to get kpi by ID: %w", err)
	}

	if record.EmployeeID != emp.ID {
		return kpi.KPI{}, kpi.ErrNotKPIOwner
	}
	if record.Status != kpi.StatusPending {
		return kpi.KPI{}, kpi.ErrAlreadyAcknowledged
	}

	if err := s.KPIRepository.MarkAcknowledged(ctx, record.ID); err != nil {
		return kpi.KPI{}, fmt.Errorf("failed to acknowledge kpi: %w", err)
	}

	record.Status = kpi.StatusAcknowledged
	now := time.Now()
	record.AcknowledgedAt = &now

	manager, err := s.EmployeeRepository.GetByID(ctx, record.ManagerID)
	if err == nil {
		s.notifications.Notify(ctx, record.CompanyID, manager.UserID, &userID,
			notification.TypeKPIAcknowledged,
			"KPI acknowledged",
			fmt.Sprintf("%s acknowledged the KPI %q", emp.Name, record.Title),
			map[string]interface{}{"kpi_id": record.ID},
		)
	}

	return record, nil
}

func (s *KPIService) GetKPI(ctx context.Context, userID string, kpiID string) (kpi.KPI, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return kpi.KPI{}, fmt.Errorf("failed to get employee by user ID: %w", err)
	}

	record, err := s.KPIRepository.GetByID(ctx, kpiID)
	if err != nil {
		return kpi.KPI{}, fmt.Errorf("failed to get kpi by ID: %w", err)
	}

	if record.EmployeeID != emp.ID && record.ManagerID != emp.ID {
		return kpi.KPI{}, kpi.ErrNotKPIOwner
	}

	return record, nil
}

// UpdateItemStatus sets or clears the in-cycle performance flag on one KPI
// item. Either party on the KPI may update it until the cycle is completed
// or rejected.
func (s *KPIService) UpdateItemStatus(ctx context.Context, userID string, kpiID string, itemID string, req kpi.UpdateItemStatusRequest) (kpi.KPIItem, error) {
	if err := req.Validate(); err != nil {
		return kpi.KPIItem{}, err
	}

	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return kpi.KPIItem{}, fmt.Errorf("failed to get employee by user ID: %w", err)
	}

	record, err := s.KPIRepository.GetByID(ctx, kpiID)
	if err != nil {
		return kpi.KPIItem{}, fmt.Errorf("failed to get kpi by ID: %w", err)
	}

	if record.EmployeeID != emp.ID && record.ManagerID != emp.ID {
		return kpi.KPIItem{}, kpi.ErrNotKPIOwner
	}
	if record.Status == kpi.StatusCompleted || record.Status == kpi.StatusRejected {
		return kpi.KPIItem{}, kpi.ErrKPILocked
	}

	var item *kpi.KPIItem
	for i := range record.Items {
		if record.Items[i].ID == itemID {
			item = &record.Items[i]
			break
		}
	}
	if item == nil {
		return kpi.KPIItem{}, kpi.ErrKPIItemNotFound
	}

	status := req.Status
	if status != nil && *status == "" {
		status = nil
	}

	if err := s.KPIRepository.UpdateItemPerformanceStatus(ctx, itemID, status); err != nil {
		return kpi.KPIItem{}, fmt.Errorf("failed to update item performance status: %w", err)
	}

	item.CurrentPerformanceStatus = status
	return *item, nil
}

// ListKPIs returns the caller's own KPIs plus, for managers, the KPIs they
// manage.
func (s *KPIService) ListKPIs(ctx context.Context, userID string, filter kpi.KPIFilter) ([]kpi.KPI, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by user ID: %w", err)
	}

	if filter.EmployeeID == "" && filter.ManagerID == "" {
		filter.EmployeeID = emp.ID
	}
	// Callers may only scope listings to themselves.
	if filter.EmployeeID != "" && filter.EmployeeID != emp.ID {
		filter.ManagerID = emp.ID
	}

	records, err := s.KPIRepository.List(ctx, emp.CompanyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpis: %w", err)
	}
	return records, nil
}

func (s *KPIService) CreateTemplate(ctx context.Context, managerUserID string, req kpi.CreateTemplateRequest) (kpi.KPITemplate, error) {
	manager, err := s.EmployeeRepository.GetByUserID(ctx, managerUserID)
	if err != nil {
		return kpi.KPITemplate{}, fmt.Errorf("failed to get manager by user ID: %w", err)
	}

	template := kpi.KPITemplate{
		CompanyID: manager.CompanyID,
		Name:      req.Name,
		Items:     req.Items,
	}

	created, err := s.TemplateRepository.Create(ctx, template)
	if err != nil {
		return kpi.KPITemplate{}, fmt.Errorf("failed to create template: %w", err)
	}
	return created, nil
}

func (s *KPIService) ListTemplates(ctx context.Context, userID string) ([]kpi.KPITemplate, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by user ID: %w", err)
	}

	templates, err := s.TemplateRepository.List(ctx, emp.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func templateItems(template kpi.KPITemplate) []kpi.SetKPIItemRequest {
	items := make([]kpi.SetKPIItemRequest, 0, len(template.Items))
	for _, item := range template.Items {
		items = append(items, kpi.SetKPIItemRequest{
			Title:         item.Title,
			Description:   item.Description,
			IsQualitative: item.IsQualitative,
			TargetValue:   item.TargetValue,
			MeasureUnit:   item.MeasureUnit,
			GoalWeight:    item.GoalWeight,
		})
	}
	return items
}

func buildItems(requests []kpi.SetKPIItemRequest) []kpi.KPIItem {
	items := make([]kpi.KPIItem, 0, len(requests))
	for _, req := range requests {
		item := kpi.KPIItem{
			Title:         req.Title,
			Description:   req.Description,
			IsQualitative: req.IsQualitative,
			TargetValue:   req.TargetValue,
			MeasureUnit:   req.MeasureUnit,
			GoalWeight:    req.GoalWeight,
		}
		if req.IsQualitative {
			item.ExcludeFromCalculation = req.ExcludeFromCalculation
		}
		if req.ExpectedCompletionDate != nil {
			if date, err := time.Parse("2006-01-02", *req.ExpectedCompletionDate); err == nil {
				item.ExpectedCompletionDate = &date
			}
		}
		items = append(items, item)
	}
	return items
}
