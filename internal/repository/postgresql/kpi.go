package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peoplepulse/perform-backend-go/internal/domain/kpi"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/database"
)

type kpiRepository struct {
	db *database.DB
}

// NewKPIRepository creates a new KPI repository
func NewKPIRepository(db *database.DB) kpi.KPIRepository {
	return &kpiRepository{db: db}
}

// Create inserts the KPI and its items atomically.
func (r *kpiRepository) Create(ctx context.Context, k kpi.KPI) (kpi.KPI, error) {
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO kpis (id, company_id, employee_id, manager_id, title, period_type, quarter, year, status, created_at, updated_at)
			VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		err := q.QueryRow(txCtx, query,
			k.CompanyID,
			k.EmployeeID,
			k.ManagerID,
			k.Title,
			string(k.PeriodType),
			k.Quarter,
			k.Year,
			string(k.Status),
		).Scan(&k.ID, &k.CreatedAt, &k.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create kpi: %w", err)
		}

		itemQuery := `
			INSERT INTO kpi_items (id, kpi_id, title, description, is_qualitative, target_value, measure_unit, goal_weight, expected_completion_date, exclude_from_calculation, created_at, updated_at)
			VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		for i := range k.Items {
			item := &k.Items[i]
			item.KPIID = k.ID
			err := q.QueryRow(txCtx, itemQuery,
				k.ID,
				item.Title,
				item.Description,
				item.IsQualitative,
				item.TargetValue,
				item.MeasureUnit,
				item.GoalWeight,
				item.ExpectedCompletionDate,
				item.ExcludeFromCalculation,
			).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to create kpi item: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return kpi.KPI{}, err
	}

	return k, nil
}

func (r *kpiRepository) GetByID(ctx context.Context, id string) (kpi.KPI, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT k.id, k.company_id, k.employee_id, k.manager_id, k.title, k.period_type, k.quarter, k.year, k.status, k.acknowledged_at, k.created_at, k.updated_at,
			e.name, m.name
		FROM kpis k
		JOIN employees e ON e.id = k.employee_id
		JOIN employees m ON m.id = k.manager_id
		WHERE k.id = $1
	`

	var k kpi.KPI
	var periodType, status string
	err := q.QueryRow(ctx, query, id).Scan(
		&k.ID,
		&k.CompanyID,
		&k.EmployeeID,
		&k.ManagerID,
		&k.Title,
		&periodType,
		&k.Quarter,
		&k.Year,
		&status,
		&k.AcknowledgedAt,
		&k.CreatedAt,
		&k.UpdatedAt,
		&k.EmployeeName,
		&k.ManagerName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return kpi.KPI{}, kpi.ErrKPINotFound
		}
		return kpi.KPI{}, fmt.Errorf("failed to get kpi: %w", err)
	}
	k.PeriodType = kpi.PeriodType(periodType)
	k.Status = kpi.Status(status)

	items, err := r.itemsByKPIID(ctx, k.ID)
	if err != nil {
		return kpi.KPI{}, err
	}
	k.Items = items

	return k, nil
}

func (r *kpiRepository) List(ctx context.Context, companyID string, filter kpi.KPIFilter) ([]kpi.KPI, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "k.company_id = $1"
	args := []interface{}{companyID}
	argIndex := 2

	if filter.EmployeeID != "" {
		whereClause += fmt.Sprintf(" AND k.employee_id = $%d", argIndex)
		args = append(args, filter.EmployeeID)
		argIndex++
	}
	if filter.ManagerID != "" {
		whereClause += fmt.Sprintf(" AND k.manager_id = $%d", argIndex)
		args = append(args, filter.ManagerID)
		argIndex++
	}
	if filter.PeriodType != "" {
		whereClause += fmt.Sprintf(" AND k.period_type = $%d", argIndex)
		args = append(args, filter.PeriodType)
		argIndex++
	}
	if filter.Year != 0 {
		whereClause += fmt.Sprintf(" AND k.year = $%d", argIndex)
		args = append(args, filter.Year)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT k.id, k.company_id, k.employee_id, k.manager_id, k.title, k.period_type, k.quarter, k.year, k.status, k.acknowledged_at, k.created_at, k.updated_at,
			e.name, m.name
		FROM kpis k
		JOIN employees e ON e.id = k.employee_id
		JOIN employees m ON m.id = k.manager_id
		WHERE %s
		ORDER BY k.created_at DESC
	`, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query kpis: %w", err)
	}
	defer rows.Close()

	var kpis []kpi.KPI
	for rows.Next() {
		var k kpi.KPI
		var periodType, status string
		if err := rows.Scan(
			&k.ID,
			&k.CompanyID,
			&k.EmployeeID,
			&k.ManagerID,
			&k.Title,
			&periodType,
			&k.Quarter,
			&k.Year,
			&status,
			&k.AcknowledgedAt,
			&k.CreatedAt,
			&k.UpdatedAt,
			&k.EmployeeName,
			&k.ManagerName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan kpi: %w", err)
		}
		k.PeriodType = kpi.PeriodType(periodType)
		k.Status = kpi.Status(status)
		kpis = append(kpis, k)
	}

	return kpis, nil
}

func (r *kpiRepository) UpdateStatus(ctx context.Context, id string, status kpi.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE kpis
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := q.Exec(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update kpi status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return kpi.ErrKPINotFound
	}

	return nil
}

// MarkAcknowledged acknowledges a pending KPI. The status guard in the
// WHERE clause makes concurrent acknowledgements idempotent-safe.
func (r *kpiRepository) MarkAcknowledged(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE kpis
		SET status = 'acknowledged', acknowledged_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to acknowledge kpi: %w", err)
	}
	if result.RowsAffected() == 0 {
		return kpi.ErrAlreadyAcknowledged
	}

	return nil
}

func (r *kpiRepository) UpdateItemPerformanceStatus(ctx context.Context, itemID string, status *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE kpi_items
		SET current_performance_status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := q.Exec(ctx, query, status, itemID)
	if err != nil {
		return fmt.Errorf("failed to update item performance status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return kpi.ErrKPIItemNotFound
	}

	return nil
}

func (r *kpiRepository) itemsByKPIID(ctx context.Context, kpiID string) ([]kpi.KPIItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, kpi_id, title, description, is_qualitative, target_value, measure_unit, goal_weight, expected_completion_date, exclude_from_calculation, current_performance_status, created_at, updated_at
		FROM kpi_items
		WHERE kpi_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, kpiID)
	if err != nil {
		return nil, fmt.Errorf("failed to query kpi items: %w", err)
	}
	defer rows.Close()

	var items []kpi.KPIItem
	for rows.Next() {
		var item kpi.KPIItem
		if err := rows.Scan(
			&item.ID,
			&item.KPIID,
			&item.Title,
			&item.Description,
			&item.IsQualitative,
			&item.TargetValue,
			&item.MeasureUnit,
			&item.GoalWeight,
			&item.ExpectedCompletionDate,
			&item.ExcludeFromCalculation,
			&item.CurrentPerformanceStatus,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan kpi item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}
