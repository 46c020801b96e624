package notification

import (
	"context"
	"time"
)

// Repository defines the notification repository interface
type Repository interface {
	// Notifications are append-only from the dispatcher's point of view.
	CreateBatch(ctx context.Context, notifications []*Notification) error
	// GetByUserID applies query's filters and paging; the returned total
	// counts every match.
	GetByUserID(ctx context.Context, userID string, query InboxQuery) ([]*Notification, int, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string, userID string) error
}

// SettingRepository stores per-business notification thresholds.
type SettingRepository interface {
	ListByBusiness(ctx context.Context, businessID string) ([]Setting, error)
	ListEnabled(ctx context.Context, businessID string) ([]Setting, error)
	Upsert(ctx context.Context, setting Setting) (Setting, error)
}

// Transactor runs fn so that repository calls made with its ctx commit or
// roll back together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RecipientDirectory resolves who is told about a business's violations.
type RecipientDirectory interface {
	// ListManagersAndSuperAdmins returns the profile ids of every manager of
	// the business plus every super admin.
	ListManagersAndSuperAdmins(ctx context.Context, businessID string) ([]string, error)
}

// CooldownStore records which violation occurrences were already reported.
type CooldownStore interface {
	// Acquire returns true when key was not held and is now held for ttl.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release frees key so the next run reports the violation again.
	Release(ctx context.Context, key string) error
}
