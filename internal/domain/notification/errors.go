package notification

import "errors"

// Notification domain errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUnauthorized         = errors.New("unauthorized to access this notification")
	ErrInvalidSettingKey    = errors.New("invalid notification setting key")
	ErrInvalidThresholdUnit = errors.New("threshold unit must be minutes, hours or days")
	ErrSettingNotFound      = errors.New("notification setting not found")
)
