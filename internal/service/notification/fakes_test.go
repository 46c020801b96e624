package notification

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
)

type fakeRepo struct {
	batches [][]*notification.Notification
	byUser  map[string][]*notification.Notification
	unread  int
	marked  []string
	err     error

	gotQuery notification.InboxQuery
}

func (f *fakeRepo) CreateBatch(_ context.Context, ns []*notification.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, ns)
	return nil
}

func (f *fakeRepo) inserted() []*notification.Notification {
	var all []*notification.Notification
	for _, b := range f.batches {
		all = append(all, b...)
	}
	return all
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID string, query notification.InboxQuery) ([]*notification.Notification, int, error) {
	f.gotQuery = query
	if f.err != nil {
		return nil, 0, f.err
	}
	list := f.byUser[userID]
	return list, len(list), nil
}

func (f *fakeRepo) GetUnreadCount(context.Context, string) (int, error) {
	return f.unread, f.err
}

func (f *fakeRepo) MarkAsRead(_ context.Context, ids []string, _ string) error {
	f.marked = append(f.marked, ids...)
	return f.err
}

func (f *fakeRepo) MarkAllAsRead(context.Context, string) error { return f.err }

func (f *fakeRepo) Delete(context.Context, string, string) error { return f.err }

type fakeSettingRepo struct {
	settings []notification.Setting
	upserted []notification.Setting
	failKey  string
	err      error
}

func (f *fakeSettingRepo) ListByBusiness(context.Context, string) ([]notification.Setting, error) {
	return f.settings, f.err
}

func (f *fakeSettingRepo) ListEnabled(context.Context, string) ([]notification.Setting, error) {
	var out []notification.Setting
	for _, s := range f.settings {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out, f.err
}

func (f *fakeSettingRepo) Upsert(_ context.Context, s notification.Setting) (notification.Setting, error) {
	if f.err != nil {
		return notification.Setting{}, f.err
	}
	if s.Key == f.failKey {
		return notification.Setting{}, errors.New("constraint violation")
	}
	s.ID = "setting-1"
	f.upserted = append(f.upserted, s)
	return s, nil
}

// fakeTx runs fn inline and discards the writes made inside it when fn fails.
type fakeTx struct {
	repo       *fakeSettingRepo
	calls      int
	rolledBack bool
}

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	var before int
	if f.repo != nil {
		before = len(f.repo.upserted)
	}
	if err := fn(ctx); err != nil {
		f.rolledBack = true
		if f.repo != nil {
			f.repo.upserted = f.repo.upserted[:before]
		}
		return err
	}
	return nil
}

func intPtr(v int) *int { return &v }
