package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peoplepulse/perform-backend-go/internal/domain/company"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/database"
)

type companySettingsRepository struct {
	db *database.DB
}

// NewCompanySettingsRepository creates a new company settings repository
func NewCompanySettingsRepository(db *database.DB) company.SettingsRepository {
	return &companySettingsRepository{db: db}
}

func (r *companySettingsRepository) GetByCompanyID(ctx context.Context, companyID string) (company.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id,
			quarterly_calculation_method, quarterly_self_rating_enabled,
			yearly_calculation_method, yearly_self_rating_enabled
		FROM company_review_settings
		WHERE company_id = $1
	`

	var s company.Settings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.CompanyID,
		&s.Quarterly.CalculationMethod,
		&s.Quarterly.SelfRatingEnabled,
		&s.Yearly.CalculationMethod,
		&s.Yearly.SelfRatingEnabled,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Settings{}, company.ErrSettingsNotFound
		}
		return company.Settings{}, fmt.Errorf("failed to get company settings: %w", err)
	}

	return s, nil
}
