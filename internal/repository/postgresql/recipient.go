package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/jwt"
	"github.com/jackc/pgx/v5"
)

type recipientDirectory struct {
	db *database.DB
}

func NewRecipientDirectory(db *database.DB) notification.RecipientDirectory {
	return &recipientDirectory{db: db}
}

// ListManagersAndSuperAdmins implements notification.RecipientDirectory.
func (r *recipientDirectory) ListManagersAndSuperAdmins(ctx context.Context, businessID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT DISTINCT id
		FROM profiles
		WHERE (business_id = $1 AND role = ANY($2)) OR role = $3
		ORDER BY id
	`, businessID, []string{jwt.RoleOwner, jwt.RoleAdmin, jwt.RoleManager}, jwt.RoleSuperAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipients: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan recipients: %w", err)
	}
	return ids, nil
}
