package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/monitor"
	"github.com/cmlabs-hris/staffing-backend-go/internal/handler/http/response"
)

const monitorTokenHeader = "X-Monitor-Token"

type MonitorHandler interface {
	Run(w http.ResponseWriter, r *http.Request)
}

type monitorHandlerImpl struct {
	monitorService monitor.MonitorService
	token          string
	now            func() time.Time
}

// NewMonitorHandler exposes the monitor pass to external schedulers. An empty
// token disables the endpoint.
func NewMonitorHandler(monitorService monitor.MonitorService, token string) MonitorHandler {
	return &monitorHandlerImpl{
		monitorService: monitorService,
		token:          token,
		now:            time.Now,
	}
}

// Run performs one monitor pass, or a single business when business_id is
// given in the query.
func (h *monitorHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r.Header.Get(monitorTokenHeader)) {
		response.HandleError(w, monitor.ErrInvalidMonitorToken)
		return
	}

	now := h.now()
	if businessID := r.URL.Query().Get("business_id"); businessID != "" {
		result, err := h.monitorService.RunBusiness(r.Context(), businessID, now)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
		return
	}

	report, err := h.monitorService.Run(r.Context(), now)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

func (h *monitorHandlerImpl) authorized(given string) bool {
	if h.token == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(h.token), []byte(given)) == 1
}
