package postgresql

import (
	"context"
	"fmt"

	"github.com/peoplepulse/perform-backend-go/internal/domain/review"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/database"
)

type ratingOptionRepository struct {
	db *database.DB
}

// NewRatingOptionRepository creates a new rating option repository
func NewRatingOptionRepository(db *database.DB) review.RatingOptionRepository {
	return &ratingOptionRepository{db: db}
}

func (r *ratingOptionRepository) ListByPeriodType(ctx context.Context, periodType string) ([]review.RatingOption, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT value, label, period_type
		FROM rating_options
		WHERE period_type = $1 OR period_type = ''
		ORDER BY value ASC
	`

	rows, err := q.Query(ctx, query, periodType)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating options: %w", err)
	}
	defer rows.Close()

	var options []review.RatingOption
	for rows.Next() {
		var opt review.RatingOption
		if err := rows.Scan(&opt.Value, &opt.Label, &opt.PeriodType); err != nil {
			return nil, fmt.Errorf("failed to scan rating option: %w", err)
		}
		options = append(options, opt)
	}

	return options, nil
}
