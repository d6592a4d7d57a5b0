package notify

import (
	"context"
	"errors"

	"github.com/mediadesk/coverage-allocator/internal/db"
	"github.com/mediadesk/coverage-allocator/internal/models"
)

// Sender delivers one notification to a sink.
type Sender interface {
	Send(ctx context.Context, n models.Notification) error
}

// StoreSender persists notifications so clients can poll them.
type StoreSender struct {
	Notifications db.NotificationCollection
}

// Send inserts the notification into the notifications collection.
func (s *StoreSender) Send(ctx context.Context, n models.Notification) error {
	return s.Notifications.InsertNotification(ctx, n)
}

// MultiSender fans a notification out to every sink. Each sink is attempted
// even when an earlier one fails; the errors are joined.
type MultiSender []Sender

// Send delivers the notification to all sinks.
func (m MultiSender) Send(ctx context.Context, n models.Notification) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
