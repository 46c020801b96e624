package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const settingColumns = `id, business_id, category, setting_key, enabled, threshold_value,
	COALESCE(threshold_unit, 'minutes'), sound_enabled, mobile_enabled, email_enabled, created_at, updated_at`

type notificationSettingRepository struct {
	db *database.DB
}

func NewNotificationSettingRepository(db *database.DB) notification.SettingRepository {
	return &notificationSettingRepository{db: db}
}

func (r *notificationSettingRepository) ListByBusiness(ctx context.Context, businessID string) ([]notification.Setting, error) {
	return r.list(ctx, `WHERE business_id = $1`, businessID)
}

func (r *notificationSettingRepository) ListEnabled(ctx context.Context, businessID string) ([]notification.Setting, error) {
	return r.list(ctx, `WHERE business_id = $1 AND enabled = true`, businessID)
}

func (r *notificationSettingRepository) list(ctx context.Context, where string, businessID string) ([]notification.Setting, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT "+settingColumns+" FROM notification_settings "+where+" ORDER BY category, setting_key", businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification settings: %w", err)
	}

	settings, err := pgx.CollectRows(rows, scanSetting)
	if err != nil {
		return nil, fmt.Errorf("failed to scan notification settings: %w", err)
	}
	return settings, nil
}

// Upsert writes the setting identified by business, category and key.
func (r *notificationSettingRepository) Upsert(ctx context.Context, s notification.Setting) (notification.Setting, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now()

	rows, err := q.Query(ctx, `
		INSERT INTO notification_settings (id, business_id, category, setting_key, enabled, threshold_value,
			threshold_unit, sound_enabled, mobile_enabled, email_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		ON CONFLICT (business_id, category, setting_key)
		DO UPDATE SET enabled = EXCLUDED.enabled,
			threshold_value = EXCLUDED.threshold_value,
			threshold_unit = EXCLUDED.threshold_unit,
			sound_enabled = EXCLUDED.sound_enabled,
			mobile_enabled = EXCLUDED.mobile_enabled,
			email_enabled = EXCLUDED.email_enabled,
			updated_at = EXCLUDED.updated_at
		RETURNING `+settingColumns,
		s.ID, s.BusinessID, string(s.Category), s.Key, s.Enabled, s.ThresholdValue,
		string(s.ThresholdUnit), s.SoundEnabled, s.MobileEnabled, s.EmailEnabled, now,
	)
	if err != nil {
		return notification.Setting{}, fmt.Errorf("failed to upsert notification setting: %w", err)
	}

	saved, err := pgx.CollectExactlyOneRow(rows, scanSetting)
	if err != nil {
		return notification.Setting{}, fmt.Errorf("failed to read upserted notification setting: %w", err)
	}
	return saved, nil
}

func scanSetting(row pgx.CollectableRow) (notification.Setting, error) {
	var (
		s              notification.Setting
		category, unit string
	)
	err := row.Scan(
		&s.ID, &s.BusinessID, &category, &s.Key, &s.Enabled, &s.ThresholdValue,
		&unit, &s.SoundEnabled, &s.MobileEnabled, &s.EmailEnabled, &s.CreatedAt, &s.UpdatedAt,
	)
	s.Category = notification.Category(category)
	s.ThresholdUnit = notification.ThresholdUnit(unit)
	return s, err
}
