package kpi

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplepulse/perform-backend-go/internal/domain/draft"
	"github.com/peoplepulse/perform-backend-go/internal/domain/employee"
	"github.com/peoplepulse/perform-backend-go/internal/domain/kpi"
	"github.com/peoplepulse/perform-backend-go/internal/domain/notification"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/validator"
	"github.com/peoplepulse/perform-backend-go/internal/repository/memory"
	notificationService "github.com/peoplepulse/perform-backend-go/internal/service/notification"
)

func ptr(s string) *string { return &s }

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) IsManagerOf(_ context.Context, managerEmployeeID, employeeID string) (bool, error) {
	e, ok := f.employees[employeeID]
	if !ok {
		return false, employee.ErrEmployeeNotFound
	}
	return e.ManagerID != nil && *e.ManagerID == managerEmployeeID, nil
}

type fakeKPIRepo struct {
	kpis map[string]kpi.KPI
}

func (f *fakeKPIRepo) Create(_ context.Context, k kpi.KPI) (kpi.KPI, error) {
	k.ID = fmt.Sprintf("kpi-%d", len(f.kpis)+1)
	for i := range k.Items {
		k.Items[i].ID = fmt.Sprintf("%s-item-%d", k.ID, i+1)
	}
	f.kpis[k.ID] = k
	return k, nil
}

func (f *fakeKPIRepo) GetByID(_ context.Context, id string) (kpi.KPI, error) {
	k, ok := f.kpis[id]
	if !ok {
		return kpi.KPI{}, kpi.ErrKPINotFound
	}
	return k, nil
}

func (f *fakeKPIRepo) List(_ context.Context, _ string, filter kpi.KPIFilter) ([]kpi.KPI, error) {
	var out []kpi.KPI
	for _, k := range f.kpis {
		if filter.EmployeeID != "" && k.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.ManagerID != "" && k.ManagerID != filter.ManagerID {
			continue
		}
		out = append(out, k)
	}
	return out, nil
}

func (f *fakeKPIRepo) UpdateStatus(_ context.Context, id string, status kpi.Status) error {
	k, ok := f.kpis[id]
	if !ok {
		return kpi.ErrKPINotFound
	}
	k.Status = status
	f.kpis[id] = k
	return nil
}

func (f *fakeKPIRepo) MarkAcknowledged(_ context.Context, id string) error {
	k, ok := f.kpis[id]
	if !ok || k.Status != kpi.StatusPending {
		return kpi.ErrAlreadyAcknowledged
	}
	k.Status = kpi.StatusAcknowledged
	f.kpis[id] = k
	return nil
}

func (f *fakeKPIRepo) UpdateItemPerformanceStatus(_ context.Context, itemID string, status *string) error {
	for id, k := range f.kpis {
		for i := range k.Items {
			if k.Items[i].ID == itemID {
				k.Items[i].CurrentPerformanceStatus = status
				f.kpis[id] = k
				return nil
			}
		}
	}
	return kpi.ErrKPIItemNotFound
}

type fakeTemplateRepo struct {
	templates map[string]kpi.KPITemplate
}

func (f *fakeTemplateRepo) Create(_ context.Context, t kpi.KPITemplate) (kpi.KPITemplate, error) {
	t.ID = fmt.Sprintf("tpl-%d", len(f.templates)+1)
	f.templates[t.ID] = t
	return t, nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id string) (kpi.KPITemplate, error) {
	t, ok := f.templates[id]
	if !ok {
		return kpi.KPITemplate{}, kpi.ErrTemplateNotFound
	}
	return t, nil
}

func (f *fakeTemplateRepo) List(_ context.Context, _ string) ([]kpi.KPITemplate, error) {
	var out []kpi.KPITemplate
	for _, t := range f.templates {
		out = append(out, t)
	}
	return out, nil
}

type fakeNotificationRepo struct {
	created []*notification.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) GetByUserID(_ context.Context, _ string, _, _ int, _ bool) ([]*notification.Notification, int, error) {
	return f.created, len(f.created), nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, _ []string, _ string) error {
	return nil
}

const (
	mgrUserID = "user-mgr"
	empUserID = "user-emp"
)

func newService(t *testing.T) (*KPIService, *fakeKPIRepo, *fakeTemplateRepo, draft.Repository, *fakeNotificationRepo) {
	t.Helper()

	managerID := "emp-mgr"
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", UserID: empUserID, CompanyID: "co-1", ManagerID: &managerID, Name: "Ana"},
		managerID: {ID: managerID, UserID: mgrUserID, CompanyID: "co-1", Name: "Mika"},
	}}
	kpis := &fakeKPIRepo{kpis: map[string]kpi.KPI{}}
	templates := &fakeTemplateRepo{templates: map[string]kpi.KPITemplate{}}
	drafts := memory.NewDraftRepository()
	notifs := &fakeNotificationRepo{}

	svc := NewKPIService(nil, kpis, templates, employees,
		drafts, notificationService.NewNotificationService(notifs))
	return svc, kpis, templates, drafts, notifs
}

func setKPIRequest() kpi.SetKPIRequest {
	quarter := 1
	return kpi.SetKPIRequest{
		EmployeeID: "emp-1",
		Title:      "Q1 delivery",
		PeriodType: "quarterly",
		Quarter:    &quarter,
		Year:       2025,
		Items: []kpi.SetKPIItemRequest{
			{Title: "revenue", Description: "grow revenue", TargetValue: ptr("100"), GoalWeight: ptr("60")},
			{Title: "churn", Description: "reduce churn", GoalWeight: ptr("40")},
		},
	}
}

func TestSetKPI(t *testing.T) {
	t.Parallel()
	svc, _, _, drafts, notifs := newService(t)
	ctx := context.Background()

	require.NoError(t, drafts.Save(ctx, draft.Draft{
		Key:     draft.StorageKey(mgrUserID, draft.SettingKey("emp-1")),
		Payload: draft.Payload{Items: []draft.SettingItem{{Title: "drafted"}}},
	}))

	created, err := svc.SetKPI(ctx, mgrUserID, setKPIRequest())
	require.NoError(t, err)

	assert.Equal(t, kpi.StatusPending, created.Status)
	assert.Equal(t, "emp-1", created.EmployeeID)
	assert.Equal(t, "emp-mgr", created.ManagerID)
	assert.Len(t, created.Items, 2)

	// The setting draft is superseded by the save.
	d, err := drafts.Load(ctx, draft.StorageKey(mgrUserID, draft.SettingKey("emp-1")))
	require.NoError(t, err)
	assert.Nil(t, d)

	require.Len(t, notifs.created, 1)
	assert.Equal(t, notification.TypeKPIAssigned, notifs.created[0].Type)
}

func TestSetKPINotTheirManager(t *testing.T) {
	t.Parallel()
	svc, _, _, _, _ := newService(t)

	req := setKPIRequest()
	req.EmployeeID = "emp-mgr" // the manager is not their own manager

	_, err := svc.SetKPI(context.Background(), mgrUserID, req)
	assert.ErrorIs(t, err, kpi.ErrNotKPIManager)
}

func TestSetKPIWeightGates(t *testing.T) {
	t.Parallel()
	svc, _, _, _, _ := newService(t)
	ctx := context.Background()

	// Partial weights are always rejected.
	req := setKPIRequest()
	req.Items[1].GoalWeight = nil
	_, err := svc.SetKPI(ctx, mgrUserID, req)
	assert.ErrorIs(t, err, kpi.ErrPartialGoalWeights)

	// No weights at all needs an explicit confirmation.
	req = setKPIRequest()
	req.Items[0].GoalWeight = nil
	req.Items[1].GoalWeight = nil
	_, err = svc.SetKPI(ctx, mgrUserID, req)
	assert.ErrorIs(t, err, kpi.ErrWeightConfirmationRequired)

	req.ConfirmedNoGoalWeights = true
	_, err = svc.SetKPI(ctx, mgrUserID, req)
	assert.NoError(t, err)

	// A bad sum is rejected outright.
	req = setKPIRequest()
	req.Items[0].GoalWeight = ptr("60")
	req.Items[1].GoalWeight = ptr("30")
	_, err = svc.SetKPI(ctx, mgrUserID, req)
	assert.ErrorIs(t, err, kpi.ErrGoalWeightSum)
}

func TestSetKPIFromTemplate(t *testing.T) {
	t.Parallel()
	svc, _, templates, _, _ := newService(t)
	ctx := context.Background()

	tpl, err := templates.Create(ctx, kpi.KPITemplate{
		CompanyID: "co-1",
		Name:      "engineering defaults",
		Items: []kpi.TemplateItem{
			{Title: "uptime", Description: "keep the lights on", GoalWeight: ptr("50")},
		},
	})
	require.NoError(t, err)

	req := setKPIRequest()
	req.TemplateID = &tpl.ID
	req.Items = []kpi.SetKPIItemRequest{
		{Title: "revenue", Description: "grow revenue", GoalWeight: ptr("50")},
	}

	created, err := svc.SetKPI(ctx, mgrUserID, req)
	require.NoError(t, err)
	require.Len(t, created.Items, 2)
	assert.Equal(t, "uptime", created.Items[0].Title)
	assert.Equal(t, "revenue", created.Items[1].Title)
}

func TestAcknowledgeKPI(t *testing.T) {
	t.Parallel()
	svc, kpis, _, _, notifs := newService(t)
	ctx := context.Background()

	created, err := svc.SetKPI(ctx, mgrUserID, setKPIRequest())
	require.NoError(t, err)

	// Only the owning employee may acknowledge.
	_, err = svc.AcknowledgeKPI(ctx, mgrUserID, created.ID)
	assert.ErrorIs(t, err, kpi.ErrNotKPIOwner)

	acked, err := svc.AcknowledgeKPI(ctx, empUserID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, kpi.StatusAcknowledged, acked.Status)
	assert.NotNil(t, acked.AcknowledgedAt)

	_, err = svc.AcknowledgeKPI(ctx, empUserID, created.ID)
	assert.ErrorIs(t, err, kpi.ErrAlreadyAcknowledged)

	stored, err := kpis.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, kpi.StatusAcknowledged, stored.Status)

	// assignment + acknowledgement
	assert.Len(t, notifs.created, 2)
}

func TestUpdateItemStatus(t *testing.T) {
	t.Parallel()
	svc, kpis, _, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.SetKPI(ctx, mgrUserID, setKPIRequest())
	require.NoError(t, err)
	itemID := created.Items[0].ID

	item, err := svc.UpdateItemStatus(ctx, empUserID, created.ID, itemID,
		kpi.UpdateItemStatusRequest{Status: ptr(kpi.PerformanceAtRisk)})
	require.NoError(t, err)
	require.NotNil(t, item.CurrentPerformanceStatus)
	assert.Equal(t, kpi.PerformanceAtRisk, *item.CurrentPerformanceStatus)

	stored, err := kpis.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, kpi.PerformanceAtRisk, *stored.Items[0].CurrentPerformanceStatus)

	// An empty status clears the flag. The manager may update too.
	item, err = svc.UpdateItemStatus(ctx, mgrUserID, created.ID, itemID,
		kpi.UpdateItemStatusRequest{Status: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, item.CurrentPerformanceStatus)
}

func TestUpdateItemStatusGuards(t *testing.T) {
	t.Parallel()
	svc, kpis, _, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.SetKPI(ctx, mgrUserID, setKPIRequest())
	require.NoError(t, err)
	itemID := created.Items[0].ID

	var verrs validator.ValidationErrors
	_, err = svc.UpdateItemStatus(ctx, empUserID, created.ID, itemID,
		kpi.UpdateItemStatusRequest{Status: ptr("doing great")})
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.UpdateItemStatus(ctx, empUserID, created.ID, "no-such-item",
		kpi.UpdateItemStatusRequest{Status: ptr(kpi.PerformanceOnTrack)})
	assert.ErrorIs(t, err, kpi.ErrKPIItemNotFound)

	require.NoError(t, kpis.UpdateStatus(ctx, created.ID, kpi.StatusCompleted))
	_, err = svc.UpdateItemStatus(ctx, empUserID, created.ID, itemID,
		kpi.UpdateItemStatusRequest{Status: ptr(kpi.PerformanceOnTrack)})
	assert.ErrorIs(t, err, kpi.ErrKPILocked)
}

func TestGetKPIAccess(t *testing.T) {
	t.Parallel()
	svc, _, _, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.SetKPI(ctx, mgrUserID, setKPIRequest())
	require.NoError(t, err)

	_, err = svc.GetKPI(ctx, empUserID, created.ID)
	assert.NoError(t, err)
	_, err = svc.GetKPI(ctx, mgrUserID, created.ID)
	assert.NoError(t, err)
}
