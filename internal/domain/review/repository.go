package review

import "context"

type ReviewRepository interface {
	Create(ctx context.Context, rv Review) (Review, error)
	GetByID(ctx context.Context, id string) (Review, error)
	GetByKPIID(ctx context.Context, kpiID string) (Review, error)
	Update(ctx context.Context, rv Review) error
}

type RatingOptionRepository interface {
	ListByPeriodType(ctx context.Context, periodType string) ([]RatingOption, error)
}
