package notification

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/monitor"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
)

type settingService struct {
	repo notification.SettingRepository
	tx   notification.Transactor
}

func NewSettingService(repo notification.SettingRepository, tx notification.Transactor) notification.SettingService {
	return &settingService{repo: repo, tx: tx}
}

// ListSettings returns every known setting of the business. Keys never saved
// are reported disabled with their default threshold.
func (s *settingService) ListSettings(ctx context.Context, businessID string) ([]notification.SettingResponse, error) {
	list, err := s.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("list notification settings: %w", err)
	}
	saved := notification.NewSettings(list)

	responses := make([]notification.SettingResponse, 0, len(notification.KnownSettingKeys()))
	for _, key := range notification.KnownSettingKeys() {
		setting, ok := saved[key]
		if !ok {
			responses = append(responses, notification.SettingResponse{
				Category:         key.Category,
				Key:              key.Key,
				ThresholdUnit:    notification.UnitMinutes,
				ThresholdMinutes: defaultThreshold(key),
				IsDefault:        true,
			})
			continue
		}
		responses = append(responses, toSettingResponse(setting))
	}
	return responses, nil
}

func (s *settingService) UpsertSetting(ctx context.Context, req notification.UpsertSettingRequest) (notification.SettingResponse, error) {
	if err := req.Validate(); err != nil {
		return notification.SettingResponse{}, err
	}

	saved, err := s.repo.Upsert(ctx, req.ToSetting())
	if err != nil {
		return notification.SettingResponse{}, fmt.Errorf("save notification setting: %w", err)
	}
	return toSettingResponse(saved), nil
}

func (s *settingService) UpsertSettings(ctx context.Context, req notification.BulkUpsertSettingsRequest) ([]notification.SettingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	responses := make([]notification.SettingResponse, 0, len(req.Settings))
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, item := range req.Settings {
			saved, err := s.repo.Upsert(ctx, item.ToSetting())
			if err != nil {
				return fmt.Errorf("save notification setting %s/%s: %w", item.Category, item.Key, err)
			}
			responses = append(responses, toSettingResponse(saved))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func toSettingResponse(s notification.Setting) notification.SettingResponse {
	return notification.SettingResponse{
		Category:         s.Category,
		Key:              s.Key,
		Enabled:          s.Enabled,
		ThresholdValue:   s.ThresholdValue,
		ThresholdUnit:    s.ThresholdUnit,
		ThresholdMinutes: s.ThresholdMinutes(defaultThreshold(s.SettingKey())),
		SoundEnabled:     s.SoundEnabled,
		MobileEnabled:    s.MobileEnabled,
		EmailEnabled:     s.EmailEnabled,
	}
}

func defaultThreshold(key notification.SettingKey) int {
	switch key {
	case notification.KeyLateArrival:
		return monitor.DefaultLateArrivalMinutes
	case notification.KeyOvertime:
		return monitor.DefaultOvertimeMinutes
	case notification.KeyLongBreak:
		return monitor.DefaultLongBreakMinutes
	case notification.KeyMissingCheckIn:
		return monitor.DefaultMissingCheckInMinutes
	}
	return 0
}
