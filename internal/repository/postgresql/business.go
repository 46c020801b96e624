package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/business"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type businessRepository struct {
	db *database.DB
}

func NewBusinessRepository(db *database.DB) business.BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) ListActive(ctx context.Context) ([]business.Business, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, COALESCE(timezone, ''), is_active, created_at, updated_at
		FROM businesses
		WHERE is_active = true
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}

	businesses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (business.Business, error) {
		var b business.Business
		err := row.Scan(&b.ID, &b.Name, &b.Timezone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan businesses: %w", err)
	}
	return businesses, nil
}

func (r *businessRepository) GetByID(ctx context.Context, id string) (business.Business, error) {
	q := GetQuerier(ctx, r.db)

	var b business.Business
	err := q.QueryRow(ctx, `
		SELECT id, name, COALESCE(timezone, ''), is_active, created_at, updated_at
		FROM businesses
		WHERE id = $1
	`, id).Scan(&b.ID, &b.Name, &b.Timezone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return business.Business{}, business.ErrBusinessNotFound
		}
		return business.Business{}, fmt.Errorf("failed to get business %s: %w", id, err)
	}
	return b, nil
}
