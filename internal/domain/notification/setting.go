package notification

import "time"

// SettingKey addresses a business notification setting by category and key.
type SettingKey struct {
	Category Category
	Key      string
}

var (
	KeyLateArrival    = SettingKey{Category: CategoryAttendance, Key: "late_arrival"}
	KeyMissingCheckIn = SettingKey{Category: CategoryAttendance, Key: "missing_checkin"}
	KeyOvertime       = SettingKey{Category: CategoryOvertime, Key: "overtime_threshold"}
	KeyLongBreak      = SettingKey{Category: CategoryBreak, Key: "long_break"}
)

// KnownSettingKeys lists the keys the monitor evaluates.
func KnownSettingKeys() []SettingKey {
	return []SettingKey{KeyLateArrival, KeyMissingCheckIn, KeyOvertime, KeyLongBreak}
}

type ThresholdUnit string

const (
	UnitMinutes ThresholdUnit = "minutes"
	UnitHours   ThresholdUnit = "hours"
	UnitDays    ThresholdUnit = "days"
)

var ThresholdUnitValues = []string{
	string(UnitMinutes),
	string(UnitHours),
	string(UnitDays),
}

type Setting struct {
	ID             string
	BusinessID     string
	Category       Category
	Key            string
	Enabled        bool
	ThresholdValue *int
	ThresholdUnit  ThresholdUnit
	SoundEnabled   bool
	MobileEnabled  bool
	EmailEnabled   bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s Setting) SettingKey() SettingKey {
	return SettingKey{Category: s.Category, Key: s.Key}
}

// ThresholdMinutes converts the configured threshold to minutes. A missing or
// non-positive threshold yields def.
func (s Setting) ThresholdMinutes(def int) int {
	if s.ThresholdValue == nil || *s.ThresholdValue <= 0 {
		return def
	}
	v := *s.ThresholdValue
	switch s.ThresholdUnit {
	case UnitHours:
		return v * 60
	case UnitDays:
		return v * 24 * 60
	default:
		return v
	}
}

// Settings is a business's notification configuration indexed by key.
type Settings map[SettingKey]Setting

func NewSettings(list []Setting) Settings {
	settings := make(Settings, len(list))
	for _, s := range list {
		settings[s.SettingKey()] = s
	}
	return settings
}

// Threshold returns the threshold in minutes for key and whether the key is
// enabled. An absent setting counts as disabled.
func (s Settings) Threshold(key SettingKey, def int) (int, bool) {
	setting, ok := s[key]
	if !ok || !setting.Enabled {
		return 0, false
	}
	return setting.ThresholdMinutes(def), true
}

// AnyEnabled reports whether at least one setting is switched on.
func (s Settings) AnyEnabled() bool {
	for _, setting := range s {
		if setting.Enabled {
			return true
		}
	}
	return false
}
