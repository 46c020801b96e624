package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/business"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/monitor"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/recommendation"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrBusinessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrManagerAccessRequired),
		errors.Is(err, auth.ErrOwnerAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, monitor.ErrInvalidMonitorToken):
		Unauthorized(w, "Invalid monitor token")

	// Business
	case errors.Is(err, business.ErrBusinessNotFound):
		NotFound(w, "Business not found")

	// Recommendation
	case errors.Is(err, recommendation.ErrBusinessRequired),
		errors.Is(err, recommendation.ErrOperatorRequired),
		errors.Is(err, recommendation.ErrInvalidWeekStart),
		errors.Is(err, recommendation.ErrNegativeWeight):
		BadRequest(w, err.Error(), nil)

	// Notification
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, notification.ErrSettingNotFound):
		NotFound(w, "Notification setting not found")
	case errors.Is(err, notification.ErrInvalidSettingKey),
		errors.Is(err, notification.ErrInvalidThresholdUnit):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, context.DeadlineExceeded):
		Timeout(w)

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
