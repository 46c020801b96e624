package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/config"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/business"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/monitor"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/recommendation"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret       = "test-secret-key-for-jwt"
	testMonitorToken = "monitor-token"
)

type fakeRecommendationService struct {
	got recommendation.RecommendRequest
	err error
}

func (f *fakeRecommendationService) Recommend(context.Context, string, time.Time, recommendation.ScoreWeights) ([]recommendation.ShiftRecommendationData, error) {
	return nil, nil
}

func (f *fakeRecommendationService) RecommendForRequest(_ context.Context, req recommendation.RecommendRequest) (recommendation.RecommendResponse, error) {
	f.got = req
	if f.err != nil {
		return recommendation.RecommendResponse{}, f.err
	}
	return recommendation.RecommendResponse{
		WeekStart: "2026-03-02",
		Weights:   recommendation.DefaultScoreWeights(),
		Shifts:    []recommendation.ShiftRecommendationData{},
	}, nil
}

type fakeWeightsService struct {
	userID string
	update recommendation.UpdateWeightsRequest
}

func (f *fakeWeightsService) GetWeights(_ context.Context, userID string) (recommendation.WeightsResponse, error) {
	f.userID = userID
	return recommendation.WeightsResponse{ScoreWeights: recommendation.DefaultScoreWeights(), IsDefault: true}, nil
}

func (f *fakeWeightsService) UpdateWeights(_ context.Context, req recommendation.UpdateWeightsRequest) (recommendation.WeightsResponse, error) {
	f.update = req
	if err := req.Validate(); err != nil {
		return recommendation.WeightsResponse{}, err
	}
	return recommendation.WeightsResponse{ScoreWeights: req.Weights()}, nil
}

func (f *fakeWeightsService) ResetWeights(_ context.Context, userID string) (recommendation.WeightsResponse, error) {
	f.userID = userID
	return recommendation.WeightsResponse{ScoreWeights: recommendation.DefaultScoreWeights(), IsDefault: true}, nil
}

type fakeInbox struct {
	userID string
	query  notification.InboxQuery
}

func (f *fakeInbox) GetNotifications(_ context.Context, userID string, query notification.InboxQuery) (*notification.NotificationListResponse, error) {
	f.userID, f.query = userID, query
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return &notification.NotificationListResponse{
		Notifications: []notification.NotificationResponse{{ID: "n-1", Title: "Late arrival"}},
		Total:         41,
		Page:          query.Page,
		PageSize:      query.PageSize,
	}, nil
}

func (f *fakeInbox) GetUnreadCount(context.Context, string) (int, error) { return 3, nil }

func (f *fakeInbox) MarkAsRead(_ context.Context, _ string, req notification.MarkAsReadRequest) error {
	return req.Validate()
}

func (f *fakeInbox) MarkAllAsRead(context.Context, string) error { return nil }

func (f *fakeInbox) Delete(_ context.Context, _ string, id string) error {
	if id != "n-1" {
		return notification.ErrNotificationNotFound
	}
	return nil
}

func (f *fakeInbox) Subscribe(context.Context, string) (<-chan notification.SSEEvent, func()) {
	ch := make(chan notification.SSEEvent)
	close(ch)
	return ch, func() {}
}

type fakeSettingService struct {
	got notification.UpsertSettingRequest
}

func (f *fakeSettingService) ListSettings(context.Context, string) ([]notification.SettingResponse, error) {
	return []notification.SettingResponse{{Category: notification.CategoryAttendance, Key: "late_arrival", IsDefault: true}}, nil
}

func (f *fakeSettingService) UpsertSetting(_ context.Context, req notification.UpsertSettingRequest) (notification.SettingResponse, error) {
	f.got = req
	if err := req.Validate(); err != nil {
		return notification.SettingResponse{}, err
	}
	return notification.SettingResponse{Category: notification.Category(req.Category), Key: req.Key, Enabled: req.Enabled}, nil
}

func (f *fakeSettingService) UpsertSettings(_ context.Context, req notification.BulkUpsertSettingsRequest) ([]notification.SettingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	f.got = req.Settings[len(req.Settings)-1]
	out := make([]notification.SettingResponse, 0, len(req.Settings))
	for _, s := range req.Settings {
		out = append(out, notification.SettingResponse{Category: notification.Category(s.Category), Key: s.Key, Enabled: s.Enabled})
	}
	return out, nil
}

type fakeMonitorService struct {
	runs       int
	businessID string
}

func (f *fakeMonitorService) Run(_ context.Context, now time.Time) (monitor.RunReport, error) {
	f.runs++
	return monitor.RunReport{StartedAt: now, Businesses: 2}, nil
}

func (f *fakeMonitorService) RunBusiness(_ context.Context, businessID string, _ time.Time) (monitor.BusinessResult, error) {
	f.businessID = businessID
	if businessID != "biz-1" {
		return monitor.BusinessResult{}, business.ErrBusinessNotFound
	}
	return monitor.BusinessResult{BusinessID: businessID}, nil
}

type testServer struct {
	handler        http.Handler
	jwt            jwt.Service
	recommendation *fakeRecommendationService
	weights        *fakeWeightsService
	inbox          *fakeInbox
	settings       *fakeSettingService
	monitor        *fakeMonitorService
}

func newTestServer() *testServer {
	s := &testServer{
		jwt:            jwt.NewJWTService(testSecret, time.Hour, time.Minute),
		recommendation: &fakeRecommendationService{},
		weights:        &fakeWeightsService{},
		inbox:          &fakeInbox{},
		settings:       &fakeSettingService{},
		monitor:        &fakeMonitorService{},
	}
	s.handler = NewRouter(
		config.AppConfig{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		s.jwt,
		NewRecommendationHandler(s.recommendation, s.weights),
		NewNotificationHandler(s.inbox, s.jwt),
		NewNotificationSettingHandler(s.settings),
		NewMonitorHandler(s.monitor, testMonitorToken),
	)
	return s
}

func (s *testServer) token(t *testing.T, role, businessID string) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken("user-1", businessID, role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		TotalItems int `json:"total_items"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRecommend_Auth(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized},
		{"employee role", s.token(t, jwt.RoleEmployee, "biz-1"), http.StatusForbidden},
		{"no business", s.token(t, jwt.RoleManager, ""), http.StatusForbidden},
		{"manager", s.token(t, jwt.RoleManager, "biz-1"), http.StatusOK},
		{"super admin", s.token(t, jwt.RoleSuperAdmin, "biz-1"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/v1/recommendations", tt.token, nil)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRecommend_PassesClaimsAndBody(t *testing.T) {
	s := newTestServer()
	token := s.token(t, jwt.RoleOwner, "biz-1")

	rec := s.do(t, http.MethodPost, "/api/v1/recommendations", token, map[string]interface{}{
		"week_start": "2026-03-02",
		"weights":    map[string]float64{"branch_assignment": 80},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode(t, rec).Success)
	assert.Equal(t, "biz-1", s.recommendation.got.BusinessID)
	assert.Equal(t, "user-1", s.recommendation.got.UserID)
	assert.Equal(t, "2026-03-02", s.recommendation.got.WeekStart)
	require.NotNil(t, s.recommendation.got.Weights)
	assert.Equal(t, 80.0, *s.recommendation.got.Weights.BranchAssignment)
}

func TestRecommend_ValidationError(t *testing.T) {
	s := newTestServer()
	s.recommendation.err = validator.ValidationErrors{{Field: "week_start", Message: "week_start must be in YYYY-MM-DD format"}}

	rec := s.do(t, http.MethodPost, "/api/v1/recommendations", s.token(t, jwt.RoleManager, "biz-1"), map[string]string{"week_start": "soon"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "week_start")
}

func TestRecommend_MalformedBody(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+s.token(t, jwt.RoleManager, "biz-1"))
	rec := httptest.NewRecorder()

	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeights(t *testing.T) {
	s := newTestServer()
	token := s.token(t, jwt.RoleManager, "biz-1")

	rec := s.do(t, http.MethodGet, "/api/v1/recommendations/weights", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", s.weights.userID)

	rec = s.do(t, http.MethodPut, "/api/v1/recommendations/weights", token, map[string]float64{
		"shift_type": 10, "branch_assignment": 20, "day_availability": 30, "weekly_hours": 40,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", s.weights.update.UserID)
	assert.Equal(t, 40.0, s.weights.update.WeeklyHours)

	rec = s.do(t, http.MethodPut, "/api/v1/recommendations/weights", token, map[string]float64{"shift_type": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/recommendations/weights", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotificationSettings(t *testing.T) {
	s := newTestServer()
	body := map[string]interface{}{
		"category":        "attendance",
		"key":             "late_arrival",
		"enabled":         true,
		"threshold_value": 20,
		"threshold_unit":  "minutes",
	}

	rec := s.do(t, http.MethodGet, "/api/v1/notification-settings", s.token(t, jwt.RoleManager, "biz-1"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/notification-settings", s.token(t, jwt.RoleManager, "biz-1"), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/notification-settings", s.token(t, jwt.RoleOwner, "biz-1"), body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "biz-1", s.settings.got.BusinessID)

	body["threshold_unit"] = "weeks"
	rec = s.do(t, http.MethodPut, "/api/v1/notification-settings", s.token(t, jwt.RoleAdmin, "biz-1"), body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestNotificationSettings_Bulk(t *testing.T) {
	s := newTestServer()
	token := s.token(t, jwt.RoleOwner, "biz-1")

	rec := s.do(t, http.MethodPut, "/api/v1/notification-settings/bulk", token, map[string]interface{}{
		"settings": []map[string]interface{}{
			{"category": "attendance", "key": "late_arrival", "enabled": true},
			{"category": "break", "key": "long_break", "enabled": true, "threshold_value": 15},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "biz-1", s.settings.got.BusinessID)
	assert.Equal(t, "long_break", s.settings.got.Key)

	var saved []notification.SettingResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &saved))
	assert.Len(t, saved, 2)

	rec = s.do(t, http.MethodPut, "/api/v1/notification-settings/bulk", token, map[string]interface{}{"settings": []interface{}{}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestNotifications_List(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, http.MethodGet, "/api/v1/notifications?page=2&page_size=20", s.token(t, jwt.RoleManager, "biz-1"), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, 41, env.Meta.TotalItems)
	assert.Equal(t, 3, env.Meta.TotalPages)
	assert.Equal(t, "user-1", s.inbox.userID)
	assert.Equal(t, notification.InboxQuery{Page: 2, PageSize: 20}, s.inbox.query)
}

func TestNotifications_ListFilters(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name  string
		query string
		want  notification.InboxQuery
	}{
		{
			name:  "defaults",
			query: "",
			want:  notification.InboxQuery{Page: 1, PageSize: 20},
		},
		{
			name:  "unread only",
			query: "?unread_only=true",
			want:  notification.InboxQuery{Page: 1, PageSize: 20, UnreadOnly: true},
		},
		{
			name:  "severity",
			query: "?severity=critical",
			want:  notification.InboxQuery{Page: 1, PageSize: 20, Severity: notification.SeverityCritical},
		},
		{
			name:  "type",
			query: "?type=long_break",
			want:  notification.InboxQuery{Page: 1, PageSize: 20, Type: notification.TypeLongBreak},
		},
		{
			name:  "employee",
			query: "?employee_id=emp-7",
			want:  notification.InboxQuery{Page: 1, PageSize: 20, EmployeeID: "emp-7"},
		},
		{
			name:  "requires action",
			query: "?requires_action=true",
			want:  notification.InboxQuery{Page: 1, PageSize: 20, RequiresAction: &yes},
		},
		{
			name:  "no action required",
			query: "?requires_action=false",
			want:  notification.InboxQuery{Page: 1, PageSize: 20, RequiresAction: &no},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			rec := s.do(t, http.MethodGet, "/api/v1/notifications"+tt.query, s.token(t, jwt.RoleManager, "biz-1"), nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, s.inbox.query)
		})
	}
}

func TestNotifications_ListRejectsBadFilters(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{"unknown severity", "?severity=fatal", "severity"},
		{"unknown type", "?type=absence", "type"},
		{"non boolean requires_action", "?requires_action=maybe", "requires_action"},
		{"non integer page", "?page=two", "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			rec := s.do(t, http.MethodGet, "/api/v1/notifications"+tt.query, s.token(t, jwt.RoleManager, "biz-1"), nil)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			env := decode(t, rec)
			require.NotNil(t, env.Error)
			assert.Contains(t, env.Error.Details, tt.field)
		})
	}
}

func TestNotifications_MarkAndDelete(t *testing.T) {
	s := newTestServer()
	token := s.token(t, jwt.RoleManager, "biz-1")

	rec := s.do(t, http.MethodPost, "/api/v1/notifications/read", token, map[string][]string{"notification_ids": {}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/notifications/read", token, map[string][]string{"notification_ids": {"n-1"}})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/notifications/n-2", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/notifications/n-1", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotifications_SSEToken(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, http.MethodPost, "/api/v1/notifications/sse-token", s.token(t, jwt.RoleManager, "biz-1"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp notification.SSETokenResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &resp))
	assert.Equal(t, 60, resp.ExpiresIn)

	userID, err := s.jwt.ValidateSSEToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestNotifications_StreamRejectsAccessToken(t *testing.T) {
	s := newTestServer()

	rec := s.do(t, http.MethodGet, "/api/v1/notifications/stream?token="+s.token(t, jwt.RoleManager, "biz-1"), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/notifications/stream", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNotifications_StreamSendsConnected(t *testing.T) {
	s := newTestServer()
	token, _, err := s.jwt.GenerateSSEToken("user-1")
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/api/v1/notifications/stream?token="+token, "", nil)

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "event: connected")
}

func TestMonitorRun(t *testing.T) {
	s := newTestServer()

	run := func(token, query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/monitor/run"+query, nil)
		if token != "" {
			req.Header.Set(monitorTokenHeader, token)
		}
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, run("", "").Code)
	assert.Equal(t, http.StatusUnauthorized, run("wrong", "").Code)
	assert.Zero(t, s.monitor.runs)

	rec := run(testMonitorToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, s.monitor.runs)

	var report monitor.RunReport
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &report))
	assert.Equal(t, 2, report.Businesses)

	assert.Equal(t, http.StatusOK, run(testMonitorToken, "?business_id=biz-1").Code)
	assert.Equal(t, http.StatusNotFound, run(testMonitorToken, "?business_id=biz-9").Code)
	assert.Equal(t, "biz-9", s.monitor.businessID)
}

func TestMonitorRun_DisabledWithoutToken(t *testing.T) {
	h := NewMonitorHandler(&fakeMonitorService{}, "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/monitor/run", nil)
	req.Header.Set(monitorTokenHeader, "")
	rec := httptest.NewRecorder()

	h.Run(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
