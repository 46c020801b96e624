package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/staffing-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const (
	sseKeepalive    = 30 * time.Second
	defaultPageSize = 20
)

// NotificationHandler serves the violation inbox of managers and super
// admins, plus its live stream.
type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	// SSE
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	inbox      notification.Service
	jwtService jwt.Service
}

func NewNotificationHandler(inbox notification.Service, jwtService jwt.Service) NotificationHandler {
	return &notificationHandlerImpl{inbox: inbox, jwtService: jwtService}
}

// recipient returns the caller's user id, or writes 401 and returns false.
func recipient(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return "", false
	}
	return userID, true
}

// parseInboxQuery reads paging and violation filters from the query string:
// page, page_size, unread_only, severity, type, employee_id, requires_action.
func parseInboxQuery(r *http.Request) (notification.InboxQuery, error) {
	values := r.URL.Query()
	query := notification.InboxQuery{
		Page:       1,
		PageSize:   defaultPageSize,
		Severity:   notification.Severity(values.Get("severity")),
		Type:       notification.NotificationType(values.Get("type")),
		EmployeeID: values.Get("employee_id"),
	}
	var errs validator.ValidationErrors

	parseInt := func(key string, dst *int) {
		raw := values.Get(key)
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: key, Message: key + " must be an integer"})
			return
		}
		*dst = n
	}
	parseBool := func(key string) *bool {
		raw := values.Get(key)
		if raw == "" {
			return nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: key, Message: key + " must be true or false"})
			return nil
		}
		return &b
	}

	parseInt("page", &query.Page)
	parseInt("page_size", &query.PageSize)
	if unread := parseBool("unread_only"); unread != nil {
		query.UnreadOnly = *unread
	}
	query.RequiresAction = parseBool("requires_action")

	if len(errs) > 0 {
		return query, errs
	}
	return query, nil
}

// List returns one page of the caller's violation notifications, newest first.
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := recipient(w, r)
	if !ok {
		return
	}

	query, err := parseInboxQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page, err := h.inbox.GetNotifications(r.Context(), userID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, page.Notifications, &response.Meta{
		Page:       page.Page,
		Limit:      page.PageSize,
		TotalItems: int64(page.Total),
		TotalPages: totalPages(page.Total, page.PageSize),
	})
}

func (h *notificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := recipient(w, r)
	if !ok {
		return
	}

	count, err := h.inbox.GetUnreadCount(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, notification.UnreadCountResponse{UnreadCount: count})
}

func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := recipient(w, r)
	if !ok {
		return
	}

	var req notification.MarkAsReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := h.inbox.MarkAsRead(r.Context(), userID, req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notifications marked as read", nil)
}

func (h *notificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := recipient(w, r)
	if !ok {
		return
	}

	if err := h.inbox.MarkAllAsRead(r.Context(), userID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "All notifications marked as read", nil)
}

// Delete removes one notification; other recipients keep their copies.
func (h *notificationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := recipient(w, r)
	if !ok {
		return
	}

	if err := h.inbox.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notification deleted", nil)
}

// GetSSEToken issues a short-lived token for the stream endpoint, since
// EventSource cannot send an Authorization header.
func (h *notificationHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := recipient(w, r)
	if !ok {
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}
	response.Success(w, notification.SSETokenResponse{Token: token, ExpiresIn: expiresIn})
}

// sseWriter frames server-sent events and flushes each one.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (s sseWriter) send(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data)
	s.flusher.Flush()
}

// Stream pushes violation notifications to the connected manager as they are
// dispatched. Authentication uses the ?token= issued by GetSSEToken.
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "Missing stream token")
		return
	}
	userID, err := h.jwtService.ValidateSSEToken(token)
	if err != nil {
		response.Unauthorized(w, "Invalid stream token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")

	events, unsubscribe := h.inbox.Subscribe(r.Context(), userID)
	defer unsubscribe()

	out := sseWriter{w: w, flusher: flusher}
	out.send("connected", map[string]string{"status": "connected", "user_id": userID})

	keepalive := time.NewTicker(sseKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			out.send(ev.Event, ev.Data)
		case now := <-keepalive.C:
			out.send("ping", map[string]int64{"timestamp": now.Unix()})
		case <-r.Context().Done():
			return
		}
	}
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
