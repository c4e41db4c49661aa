package kpi

import "context"

type KPIService interface {
	SetKPI(ctx context.Context, managerUserID string, req SetKPIRequest) (KPI, error)
	AcknowledgeKPI(ctx context.Context, userID string, kpiID string) (KPI, error)
	GetKPI(ctx context.Context, userID string, kpiID string) (KPI, error)
	UpdateItemStatus(ctx context.Context, userID string, kpiID string, itemID string, req UpdateItemStatusRequest) (KPIItem, error)
	ListKPIs(ctx context.Context, userID string, filter KPIFilter) ([]KPI, error)
	CreateTemplate(ctx context.Context, managerUserID string, req CreateTemplateRequest) (KPITemplate, error)
	ListTemplates(ctx context.Context, userID string) ([]KPITemplate, error)
}
