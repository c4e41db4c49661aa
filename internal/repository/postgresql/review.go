package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peoplepulse/perform-backend-go/internal/domain/review"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/database"
)

type reviewRepository struct {
	db *database.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *database.DB) review.ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `
	id, kpi_id, item_ratings,
	employee_comment, manager_comment,
	employee_overall_comment, manager_overall_comment,
	employee_average_rating, employee_rounded_rating,
	manager_average_rating, manager_rounded_rating,
	employee_signature, manager_signature,
	meeting_confirmed, meeting_date, meeting_location,
	accomplishments, status,
	rejection_note, resolution_note, resolved_at,
	created_at, updated_at
`

func (r *reviewRepository) Create(ctx context.Context, rv review.Review) (review.Review, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO kpi_reviews (
			id, kpi_id, item_ratings,
			employee_overall_comment, manager_overall_comment,
			employee_average_rating, employee_rounded_rating,
			manager_average_rating, manager_rounded_rating,
			employee_signature, manager_signature,
			meeting_confirmed, meeting_date, meeting_location,
			accomplishments, status,
			created_at, updated_at
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rv.KPIID,
		rv.ItemRatings,
		rv.EmployeeOverallComment,
		rv.ManagerOverallComment,
		rv.EmployeeAverageRating,
		rv.EmployeeRoundedRating,
		rv.ManagerAverageRating,
		rv.ManagerRoundedRating,
		rv.EmployeeSignature,
		rv.ManagerSignature,
		rv.MeetingConfirmed,
		rv.MeetingDate,
		rv.MeetingLocation,
		rv.Accomplishments,
		string(rv.Status),
	).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to create review: %w", err)
	}

	return rv, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (review.Review, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM kpi_reviews WHERE id = $1`, reviewColumns)
	return r.scanOne(q.QueryRow(ctx, query, id))
}

func (r *reviewRepository) GetByKPIID(ctx context.Context, kpiID string) (review.Review, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM kpi_reviews WHERE kpi_id = $1`, reviewColumns)
	return r.scanOne(q.QueryRow(ctx, query, kpiID))
}

func (r *reviewRepository) Update(ctx context.Context, rv review.Review) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE kpi_reviews
		SET item_ratings = $1,
			employee_overall_comment = $2, manager_overall_comment = $3,
			employee_average_rating = $4, employee_rounded_rating = $5,
			manager_average_rating = $6, manager_rounded_rating = $7,
			employee_signature = $8, manager_signature = $9,
			meeting_confirmed = $10, meeting_date = $11, meeting_location = $12,
			accomplishments = $13, status = $14,
			rejection_note = $15, resolution_note = $16, resolved_at = $17,
			updated_at = NOW()
		WHERE id = $18
	`

	result, err := q.Exec(ctx, query,
		rv.ItemRatings,
		rv.EmployeeOverallComment,
		rv.ManagerOverallComment,
		rv.EmployeeAverageRating,
		rv.EmployeeRoundedRating,
		rv.ManagerAverageRating,
		rv.ManagerRoundedRating,
		rv.EmployeeSignature,
		rv.ManagerSignature,
		rv.MeetingConfirmed,
		rv.MeetingDate,
		rv.MeetingLocation,
		rv.Accomplishments,
		string(rv.Status),
		rv.RejectionNote,
		rv.ResolutionNote,
		rv.ResolvedAt,
		rv.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return review.ErrReviewNotFound
	}

	return nil
}

func (r *reviewRepository) scanOne(row pgx.Row) (review.Review, error) {
	var rv review.Review
	var status string
	err := row.Scan(
		&rv.ID,
		&rv.KPIID,
		&rv.ItemRatings,
		&rv.EmployeeComment,
		&rv.ManagerComment,
		&rv.EmployeeOverallComment,
		&rv.ManagerOverallComment,
		&rv.EmployeeAverageRating,
		&rv.EmployeeRoundedRating,
		&rv.ManagerAverageRating,
		&rv.ManagerRoundedRating,
		&rv.EmployeeSignature,
		&rv.ManagerSignature,
		&rv.MeetingConfirmed,
		&rv.MeetingDate,
		&rv.MeetingLocation,
		&rv.Accomplishments,
		&status,
		&rv.RejectionNote,
		&rv.ResolutionNote,
		&rv.ResolvedAt,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return review.Review{}, review.ErrReviewNotFound
		}
		return review.Review{}, fmt.Errorf("failed to get review: %w", err)
	}
	rv.Status = review.Status(status)

	return rv, nil
}
