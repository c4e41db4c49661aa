package company

import "context"

type SettingsRepository interface {
	GetByCompanyID(ctx context.Context, companyID string) (Settings, error)
}
