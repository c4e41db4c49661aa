package kpi

import "context"

type KPIRepository interface {
	Create(ctx context.Context, k KPI) (KPI, error)
	GetByID(ctx context.Context, id string) (KPI, error)
	List(ctx context.Context, companyID string, filter KPIFilter) ([]KPI, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	MarkAcknowledged(ctx context.Context, id string) error
	UpdateItemPerformanceStatus(ctx context.Context, itemID string, status *string) error
}

type TemplateRepository interface {
	Create(ctx context.Context, t KPITemplate) (KPITemplate, error)
	GetByID(ctx context.Context, id string) (KPITemplate, error)
	List(ctx context.Context, companyID string) ([]KPITemplate, error)
}
