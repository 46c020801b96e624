package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/business"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) *time.Time {
	t := day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return &t
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func enabled(key notification.SettingKey, threshold *int, unit notification.ThresholdUnit) notification.Setting {
	return notification.Setting{
		Category:       key.Category,
		Key:            key.Key,
		Enabled:        true,
		ThresholdValue: threshold,
		ThresholdUnit:  unit,
	}
}

func allEnabled() notification.Settings {
	var list []notification.Setting
	for _, key := range notification.KnownSettingKeys() {
		list = append(list, enabled(key, nil, notification.UnitMinutes))
	}
	return notification.NewSettings(list)
}

type fakeBusinesses struct {
	list []business.Business
	err  error
}

func (f *fakeBusinesses) ListActive(context.Context) ([]business.Business, error) {
	return f.list, f.err
}

func (f *fakeBusinesses) GetByID(_ context.Context, id string) (business.Business, error) {
	for _, b := range f.list {
		if b.ID == id {
			return b, nil
		}
	}
	return business.Business{}, business.ErrBusinessNotFound
}

type fakeAttendance struct {
	mu      sync.Mutex
	today   map[string][]attendance.Record
	overdue map[string][]attendance.Record
	failFor map[string]error
	calls   map[string]int
}

func newFakeAttendance() *fakeAttendance {
	return &fakeAttendance{
		today:   map[string][]attendance.Record{},
		overdue: map[string][]attendance.Record{},
		failFor: map[string]error{},
		calls:   map[string]int{},
	}
}

func (f *fakeAttendance) ListByDate(_ context.Context, businessID string, _ time.Time) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[businessID]++
	if err := f.failFor[businessID]; err != nil {
		return nil, err
	}
	return f.today[businessID], nil
}

func (f *fakeAttendance) ListOverdueScheduled(_ context.Context, businessID string, _ time.Time) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[businessID]; err != nil {
		return nil, err
	}
	return f.overdue[businessID], nil
}

type fakeSettings struct {
	byBusiness map[string][]notification.Setting
}

func (f *fakeSettings) ListByBusiness(_ context.Context, businessID string) ([]notification.Setting, error) {
	return f.byBusiness[businessID], nil
}

func (f *fakeSettings) ListEnabled(_ context.Context, businessID string) ([]notification.Setting, error) {
	var out []notification.Setting
	for _, s := range f.byBusiness[businessID] {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSettings) Upsert(_ context.Context, s notification.Setting) (notification.Setting, error) {
	return s, nil
}

type fakeRecipients struct {
	ids []string
}

func (f *fakeRecipients) ListManagersAndSuperAdmins(context.Context, string) ([]string, error) {
	return f.ids, nil
}

type dispatched struct {
	event      notification.ViolationEvent
	recipients []string
}

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []dispatched
	err  error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, ev notification.ViolationEvent, recipients []string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.sent = append(f.sent, dispatched{event: ev, recipients: recipients})
	return len(recipients), nil
}

type brokenCooldown struct {
	released []string
}

func (b *brokenCooldown) Acquire(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func (b *brokenCooldown) Release(_ context.Context, key string) error {
	b.released = append(b.released, key)
	return nil
}
