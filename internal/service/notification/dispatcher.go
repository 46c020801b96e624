package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

const eventNotification = "notification"

type dispatcher struct {
	repo notification.Repository
	hub  *sse.Hub
	now  func() time.Time
}

// NewDispatcher returns a Dispatcher writing through repo. hub may be nil when
// no live streams are served.
func NewDispatcher(repo notification.Repository, hub *sse.Hub) notification.Dispatcher {
	return &dispatcher{repo: repo, hub: hub, now: time.Now}
}

// Dispatch implements notification.Dispatcher.
func (d *dispatcher) Dispatch(ctx context.Context, event notification.ViolationEvent, recipients []string) (int, error) {
	if len(recipients) == 0 {
		return 0, nil
	}

	createdAt := d.now()
	employeeID := event.EmployeeID
	seen := make(map[string]bool, len(recipients))
	batch := make([]*notification.Notification, 0, len(recipients))

	for _, recipient := range recipients {
		if recipient == "" || seen[recipient] {
			continue
		}
		seen[recipient] = true

		batch = append(batch, &notification.Notification{
			ID:             uuid.New().String(),
			BusinessID:     event.BusinessID,
			RecipientID:    recipient,
			EmployeeID:     &employeeID,
			BranchID:       event.BranchID,
			Type:           event.Type,
			Category:       event.Category,
			Severity:       event.Severity,
			Title:          event.Title,
			Message:        event.Message,
			RequiresAction: event.RequiresAction,
			Data:           copyMetadata(event.Metadata),
			CreatedAt:      createdAt,
		})
	}

	if err := d.repo.CreateBatch(ctx, batch); err != nil {
		return 0, fmt.Errorf("insert notifications: %w", err)
	}

	if d.hub != nil {
		for _, n := range batch {
			d.hub.Publish(n.RecipientID, sse.Event{Event: eventNotification, Data: n.ToResponse()})
		}
	}

	slog.Debug("Dispatched violation",
		"business_id", event.BusinessID,
		"type", event.Type,
		"severity", event.Severity,
		"recipients", len(batch))

	return len(batch), nil
}

func copyMetadata(src map[string]interface{}) map[string]interface{} {
	if src == nil {
		return nil
	}
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
