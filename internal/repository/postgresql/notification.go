package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const notificationColumns = `id, business_id, recipient_id, employee_id, branch_id, type, category, severity,
	title, message, requires_action, data, is_read, read_at, created_at`

const notificationInsertArgs = 13

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// CreateBatch inserts all rows with a single statement. Rows are never
// updated afterwards except for read state.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	placeholders := make([]string, 0, len(notifications))
	args := make([]interface{}, 0, len(notifications)*notificationInsertArgs)
	now := time.Now()

	for i, n := range notifications {
		if n.ID == "" {
			n.ID = uuid.New().String()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = now
		}

		data, err := json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}

		slots := make([]string, notificationInsertArgs)
		for j := range slots {
			slots[j] = fmt.Sprintf("$%d", i*notificationInsertArgs+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(slots, ", ")+")")

		args = append(args,
			n.ID,
			n.BusinessID,
			n.RecipientID,
			n.EmployeeID,
			n.BranchID,
			string(n.Type),
			string(n.Category),
			string(n.Severity),
			n.Title,
			n.Message,
			n.RequiresAction,
			data,
			n.CreatedAt,
		)
	}

	query := `
		INSERT INTO notifications (id, business_id, recipient_id, employee_id, branch_id, type, category,
			severity, title, message, requires_action, data, created_at)
		VALUES ` + strings.Join(placeholders, ", ")

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert notifications: %w", err)
	}
	return nil
}

func (r *notificationRepository) GetByUserID(ctx context.Context, userID string, query notification.InboxQuery) ([]*notification.Notification, int, error) {
	q := GetQuerier(ctx, r.db)

	where, args := inboxFilter(userID, query)

	var total int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM notifications WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	sql := fmt.Sprintf(`
		SELECT %s
		FROM notifications
		WHERE %s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d
	`, notificationColumns, where, len(args)+1, len(args)+2)
	args = append(args, query.PageSize, (query.Page-1)*query.PageSize)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query notifications: %w", err)
	}

	list, err := pgx.CollectRows(rows, scanNotification)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan notifications: %w", err)
	}
	return list, total, nil
}

// inboxFilter builds the WHERE clause of an inbox listing with positional
// args starting at $1.
func inboxFilter(userID string, query notification.InboxQuery) (string, []any) {
	conds := []string{"recipient_id = $1"}
	args := []any{userID}

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if query.UnreadOnly {
		conds = append(conds, "is_read = false")
	}
	if query.Severity != "" {
		add("severity = $%d", string(query.Severity))
	}
	if query.Type != "" {
		add("type = $%d", string(query.Type))
	}
	if query.EmployeeID != "" {
		add("employee_id = $%d", query.EmployeeID)
	}
	if query.RequiresAction != nil {
		add("requires_action = $%d", *query.RequiresAction)
	}

	return strings.Join(conds, " AND "), args
}

func scanNotification(row pgx.CollectableRow) (*notification.Notification, error) {
	var (
		n                             notification.Notification
		data                          []byte
		notifType, category, severity string
	)
	if err := row.Scan(
		&n.ID,
		&n.BusinessID,
		&n.RecipientID,
		&n.EmployeeID,
		&n.BranchID,
		&notifType,
		&category,
		&severity,
		&n.Title,
		&n.Message,
		&n.RequiresAction,
		&data,
		&n.IsRead,
		&n.ReadAt,
		&n.CreatedAt,
	); err != nil {
		return nil, err
	}

	n.Type = notification.NotificationType(notifType)
	n.Category = notification.Category(category)
	n.Severity = notification.Severity(severity)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &n.Data); err != nil {
			return nil, fmt.Errorf("decode notification data: %w", err)
		}
	}
	return &n, nil
}

func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = true, read_at = $1
		WHERE recipient_id = $2 AND id = ANY($3) AND is_read = false
	`, time.Now(), userID, ids)
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = true, read_at = $1
		WHERE recipient_id = $2 AND is_read = false
	`, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
