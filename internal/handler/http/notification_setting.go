package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/staffing-backend-go/internal/handler/http/response"
)

type NotificationSettingHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	BulkUpsert(w http.ResponseWriter, r *http.Request)
}

type notificationSettingHandlerImpl struct {
	settingService notification.SettingService
}

func NewNotificationSettingHandler(settingService notification.SettingService) NotificationSettingHandler {
	return &notificationSettingHandlerImpl{settingService: settingService}
}

// List returns every monitored setting of the caller's business, with
// defaults filled in for keys that were never configured.
func (h *notificationSettingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingService.ListSettings(r.Context(), getBusinessIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings)
}

func (h *notificationSettingHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req notification.UpsertSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.BusinessID = getBusinessIDFromContext(r)

	setting, err := h.settingService.UpsertSetting(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification setting saved", setting)
}

func (h *notificationSettingHandlerImpl) BulkUpsert(w http.ResponseWriter, r *http.Request) {
	var req notification.BulkUpsertSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.BusinessID = getBusinessIDFromContext(r)

	settings, err := h.settingService.UpsertSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification settings saved", settings)
}
