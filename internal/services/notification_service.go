package services

import (
	"context"
	"log"
	"strconv"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"github.com/anonto42/friendbook/backend/pkg/apperrors"
	"github.com/anonto42/friendbook/backend/pkg/pagination"
)

// EventNotification is the real-time event every notification is pushed under.
const EventNotification = "SendNotification"

// NotificationSink is the outbound real-time channel. Delivery is best effort.
type NotificationSink interface {
	SendToUser(userID uint, event string, payload any)
	SendToGroup(group string, event string, payload any)
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) SendToUser(uint, string, any)     {}
func (NopSink) SendToGroup(string, string, any) {}

// Activity describes a social action to fan out.
type Activity struct {
	ActorID    uint
	Recipients []uint
	Type       models.ActivityType
	ActivityID string
	Data       any
}

// NotificationService persists notifications and pushes them to recipients.
type NotificationService struct {
	notifications repositories.NotificationRepository
	sink          NotificationSink
}

func NewNotificationService(notifications repositories.NotificationRepository, sink NotificationSink) *NotificationService {
	if sink == nil {
		sink = NopSink{}
	}
	return &NotificationService{notifications: notifications, sink: sink}
}

// Dispatch stores one row per recipient, skipping the actor, then pushes each.
// A push never fails the call.
func (s *NotificationService) Dispatch(ctx context.Context, a Activity) error {
	seen := make(map[uint]bool, len(a.Recipients))
	rows := make([]models.Notification, 0, len(a.Recipients))
	for _, id := range a.Recipients {
		if id == 0 || id == a.ActorID || seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, models.Notification{
			UserID:       id,
			ActorID:      a.ActorID,
			ActivityType: a.Type,
			ActivityID:   a.ActivityID,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := s.notifications.CreateNotifications(ctx, rows); err != nil {
		return err
	}

	event := models.NotificationEvent{
		ActivityType:    a.Type,
		ActivityMessage: a.Type.Text(),
		ActivityID:      a.ActivityID,
		ActorID:         a.ActorID,
		Data:            a.Data,
	}
	for _, row := range rows {
		s.sink.SendToUser(row.UserID, EventNotification, event)
	}
	return nil
}

// notify runs Dispatch after a primary write has committed; failures are only logged.
func (s *NotificationService) notify(ctx context.Context, a Activity) {
	if err := s.Dispatch(ctx, a); err != nil {
		log.Printf("Failed to dispatch %q notification for %s: %v\n", a.Type.Text(), a.ActivityID, err)
	}
}

// Retract soft-deletes the notifications a source entity caused.
func (s *NotificationService) Retract(ctx context.Context, activityID string, types ...models.ActivityType) {
	if err := s.notifications.DeleteByActivity(ctx, types, activityID); err != nil {
		log.Printf("Failed to retract notifications for %s: %v\n", activityID, err)
	}
}

func (s *NotificationService) List(ctx context.Context, userID uint, p pagination.Params) (pagination.Page[models.NotificationView], error) {
	rows, total, err := s.notifications.GetByUserID(ctx, userID, p.Offset(), p.Limit())
	if err != nil {
		return pagination.Page[models.NotificationView]{}, err
	}
	return pagination.Map(pagination.NewPage(rows, total), toNotificationView), nil
}

// Grouped buckets the user's notifications into today, yesterday, earlier this week and older.
func (s *NotificationService) Grouped(ctx context.Context, userID uint) (map[string][]models.NotificationView, error) {
	today, yesterday, thisWeek, older, err := s.notifications.GetGrouped(ctx, userID)
	if err != nil {
		return nil, err
	}
	return map[string][]models.NotificationView{
		"today":     toNotificationViews(today),
		"yesterday": toNotificationViews(yesterday),
		"thisWeek":  toNotificationViews(thisWeek),
		"older":     toNotificationViews(older),
	}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notifications.GetUnreadCount(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	return notFound(s.notifications.MarkAsRead(ctx, userID, id), "Notification Not Found.")
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notifications.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id uint) error {
	return notFound(s.notifications.DeleteNotification(ctx, userID, id), "Notification Not Found.")
}

func (s *NotificationService) DeleteAll(ctx context.Context, userID uint) error {
	n, err := s.notifications.DeleteAllForUser(ctx, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("Notification Of This User Is Not Found.")
	}
	return nil
}

func toNotificationView(n models.Notification) models.NotificationView {
	return models.NotificationView{Notification: n, ActivityMessage: n.ActivityType.Text()}
}

func toNotificationViews(rows []models.Notification) []models.NotificationView {
	out := make([]models.NotificationView, len(rows))
	for i, n := range rows {
		out[i] = toNotificationView(n)
	}
	return out
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
