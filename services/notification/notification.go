package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shutterbook/models"
	"shutterbook/utils"
)

// NotificationService delivers session reminders to clients and
// photographers. Push/chat delivery is handled by an external system; this
// service hands the reminder off to it.
type NotificationService interface {
	SendSessionReminder(ctx context.Context, payload models.ReminderPayload) error
}

// LogNotificationService records reminders to the structured log. It stands
// in for the external delivery channel in environments without one.
type LogNotificationService struct{}

func (s *LogNotificationService) SendSessionReminder(_ context.Context, p models.ReminderPayload) error {
	utils.GetLogger().Info("session reminder",
		zap.String("bookingID", p.BookingID),
		zap.String("clientID", p.ClientID),
		zap.String("photographerID", p.PhotographerID),
		zap.String("date", p.Date),
		zap.String("service", p.ServiceName),
		zap.String("start", fmt.Sprintf("%02d:%02d", p.Start/60, p.Start%60)),
	)
	return nil
}
