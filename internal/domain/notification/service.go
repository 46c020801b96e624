package notification

import (
	"context"
)

// Dispatcher fans a violation out to its recipients.
type Dispatcher interface {
	// Dispatch writes one notification per distinct recipient and returns
	// how many were written. Empty and repeated ids are collapsed, so
	// [r1, r1, r2] writes two. No recipients is a no-op.
	Dispatch(ctx context.Context, event ViolationEvent, recipients []string) (int, error)
}

// Service defines the notification inbox used by managers
type Service interface {
	GetNotifications(ctx context.Context, userID string, query InboxQuery) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string, notificationID string) error

	// SSE subscription
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())
}

// SettingService manages business notification thresholds.
type SettingService interface {
	ListSettings(ctx context.Context, businessID string) ([]SettingResponse, error)
	UpsertSetting(ctx context.Context, req UpsertSettingRequest) (SettingResponse, error)
	// UpsertSettings saves every setting or none.
	UpsertSettings(ctx context.Context, req BulkUpsertSettingsRequest) ([]SettingResponse, error)
}
