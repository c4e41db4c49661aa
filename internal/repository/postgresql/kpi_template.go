package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peoplepulse/perform-backend-go/internal/domain/kpi"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/database"
)

type kpiTemplateRepository struct {
	db *database.DB
}

// NewKPITemplateRepository creates a new KPI template repository
func NewKPITemplateRepository(db *database.DB) kpi.TemplateRepository {
	return &kpiTemplateRepository{db: db}
}

func (r *kpiTemplateRepository) Create(ctx context.Context, t kpi.KPITemplate) (kpi.KPITemplate, error) {
	q := GetQuerier(ctx, r.db)

	itemsJSON, err := json.Marshal(t.Items)
	if err != nil {
		return kpi.KPITemplate{}, fmt.Errorf("failed to marshal template items: %w", err)
	}

	query := `
		INSERT INTO kpi_templates (id, company_id, name, items, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query, t.CompanyID, t.Name, itemsJSON).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return kpi.KPITemplate{}, fmt.Errorf("failed to create kpi template: %w", err)
	}

	return t, nil
}

func (r *kpiTemplateRepository) GetByID(ctx context.Context, id string) (kpi.KPITemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, items, created_at, updated_at
		FROM kpi_templates
		WHERE id = $1
	`

	var t kpi.KPITemplate
	var itemsJSON []byte
	err := q.QueryRow(ctx, query, id).Scan(&t.ID, &t.CompanyID, &t.Name, &itemsJSON, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return kpi.KPITemplate{}, kpi.ErrTemplateNotFound
		}
		return kpi.KPITemplate{}, fmt.Errorf("failed to get kpi template: %w", err)
	}

	if itemsJSON != nil {
		if err := json.Unmarshal(itemsJSON, &t.Items); err != nil {
			return kpi.KPITemplate{}, fmt.Errorf("failed to unmarshal template items: %w", err)
		}
	}

	return t, nil
}

func (r *kpiTemplateRepository) List(ctx context.Context, companyID string) ([]kpi.KPITemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, items, created_at, updated_at
		FROM kpi_templates
		WHERE company_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query kpi templates: %w", err)
	}
	defer rows.Close()

	var templates []kpi.KPITemplate
	for rows.Next() {
		var t kpi.KPITemplate
		var itemsJSON []byte
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &itemsJSON, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan kpi template: %w", err)
		}
		if itemsJSON != nil {
			if err := json.Unmarshal(itemsJSON, &t.Items); err != nil {
				return nil, fmt.Errorf("failed to unmarshal template items: %w", err)
			}
		}
		templates = append(templates, t)
	}

	return templates, nil
}
