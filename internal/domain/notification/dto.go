package notification

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

// MarkAsReadRequest represents a request to mark notifications as read
type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

func (r *MarkAsReadRequest) Validate() error {
	if len(r.NotificationIDs) == 0 {
		return validator.ValidationErrors{{
			Field:   "notification_ids",
			Message: "notification_ids is required",
		}}
	}
	return nil
}

// InboxQuery narrows and pages a manager's inbox. Zero-valued filters match
// everything.
type InboxQuery struct {
	Page           int
	PageSize       int
	UnreadOnly     bool
	Severity       Severity
	Type           NotificationType
	EmployeeID     string
	RequiresAction *bool
}

func (q *InboxQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.Severity != "" && q.Severity.Rank() == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "severity",
			Message: "severity must be one of info, warning, error, critical",
		})
	}

	if q.Type != "" {
		known := false
		for _, t := range AllNotificationTypes() {
			if t == q.Type {
				known = true
				break
			}
		}
		if !known {
			errs = append(errs, validator.ValidationError{
				Field:   "type",
				Message: fmt.Sprintf("unknown notification type %q", q.Type),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpsertSettingRequest creates or replaces one business notification setting.
type UpsertSettingRequest struct {
	BusinessID     string `json:"-"`
	Category       string `json:"category"`
	Key            string `json:"key"`
	Enabled        bool   `json:"enabled"`
	ThresholdValue *int   `json:"threshold_value,omitempty"`
	ThresholdUnit  string `json:"threshold_unit"`
	SoundEnabled   bool   `json:"sound_enabled"`
	MobileEnabled  bool   `json:"mobile_enabled"`
	EmailEnabled   bool   `json:"email_enabled"`
}

func (r *UpsertSettingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BusinessID) {
		errs = append(errs, validator.ValidationError{
			Field:   "business_id",
			Message: "business_id is required",
		})
	}

	known := false
	for _, k := range KnownSettingKeys() {
		if string(k.Category) == r.Category && k.Key == r.Key {
			known = true
			break
		}
	}
	if !known {
		errs = append(errs, validator.ValidationError{
			Field:   "key",
			Message: ErrInvalidSettingKey.Error(),
		})
	}

	if r.ThresholdUnit == "" {
		r.ThresholdUnit = string(UnitMinutes)
	}
	if !validator.IsInSlice(r.ThresholdUnit, ThresholdUnitValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "threshold_unit",
			Message: ErrInvalidThresholdUnit.Error(),
		})
	}

	if r.ThresholdValue != nil && *r.ThresholdValue < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "threshold_value",
			Message: "threshold_value must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *UpsertSettingRequest) ToSetting() Setting {
	return Setting{
		BusinessID:     r.BusinessID,
		Category:       Category(r.Category),
		Key:            r.Key,
		Enabled:        r.Enabled,
		ThresholdValue: r.ThresholdValue,
		ThresholdUnit:  ThresholdUnit(r.ThresholdUnit),
		SoundEnabled:   r.SoundEnabled,
		MobileEnabled:  r.MobileEnabled,
		EmailEnabled:   r.EmailEnabled,
	}
}

// BulkUpsertSettingsRequest saves several settings of one business at once.
type BulkUpsertSettingsRequest struct {
	BusinessID string                 `json:"-"`
	Settings   []UpsertSettingRequest `json:"settings"`
}

func (r *BulkUpsertSettingsRequest) Validate() error {
	if len(r.Settings) == 0 {
		return validator.ValidationErrors{{
			Field:   "settings",
			Message: "settings is required",
		}}
	}

	var errs validator.ValidationErrors
	seen := make(map[string]bool, len(r.Settings))
	for i := range r.Settings {
		s := &r.Settings[i]
		s.BusinessID = r.BusinessID
		prefix := fmt.Sprintf("settings[%d].", i)

		if err := s.Validate(); err != nil {
			if vErrs, ok := err.(validator.ValidationErrors); ok {
				for _, e := range vErrs {
					errs = append(errs, validator.ValidationError{Field: prefix + e.Field, Message: e.Message})
				}
			}
		}

		id := s.Category + "/" + s.Key
		if seen[id] {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + "key",
				Message: "duplicate setting " + id,
			})
		}
		seen[id] = true
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ============= Response DTOs =============

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID             string                 `json:"id"`
	Type           NotificationType       `json:"type"`
	Category       Category               `json:"category"`
	Severity       Severity               `json:"severity"`
	Title          string                 `json:"title"`
	Message        string                 `json:"message"`
	EmployeeID     *string                `json:"employee_id,omitempty"`
	BranchID       *string                `json:"branch_id,omitempty"`
	RequiresAction bool                   `json:"requires_action"`
	Data           map[string]interface{} `json:"data,omitempty"`
	IsRead         bool                   `json:"is_read"`
	ReadAt         *time.Time             `json:"read_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

// NotificationListResponse represents a paginated list of notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

// UnreadCountResponse represents unread count response
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// SSETokenResponse represents the SSE token response
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type SettingResponse struct {
	Category         Category      `json:"category"`
	Key              string        `json:"key"`
	Enabled          bool          `json:"enabled"`
	ThresholdValue   *int          `json:"threshold_value,omitempty"`
	ThresholdUnit    ThresholdUnit `json:"threshold_unit"`
	ThresholdMinutes int           `json:"threshold_minutes"`
	SoundEnabled     bool          `json:"sound_enabled"`
	MobileEnabled    bool          `json:"mobile_enabled"`
	EmailEnabled     bool          `json:"email_enabled"`
	IsDefault        bool          `json:"is_default"`
}

// ============= SSE Event =============

// SSEEvent represents a Server-Sent Event
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}

// ToResponse converts a Notification entity to NotificationResponse
func (n *Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:             n.ID,
		Type:           n.Type,
		Category:       n.Category,
		Severity:       n.Severity,
		Title:          n.Title,
		Message:        n.Message,
		EmployeeID:     n.EmployeeID,
		BranchID:       n.BranchID,
		RequiresAction: n.RequiresAction,
		Data:           n.Data,
		IsRead:         n.IsRead,
		ReadAt:         n.ReadAt,
		CreatedAt:      n.CreatedAt,
	}
}
