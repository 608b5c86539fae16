package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/sirupsen/logrus"
)

// NotificationService записывает отправленные уведомления. Доставка выполняется внешним шлюзом.
type NotificationService interface {
	SendNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context) ([]models.Notification, error)
}

type notificationService struct {
	store  DocumentStore
	logger *logrus.Logger
	now    func() time.Time
}

func NewNotificationService(store DocumentStore, logger *logrus.Logger) NotificationService {
	return &notificationService{store: store, logger: logger, now: time.Now}
}

func (s *notificationService) SendNotification(ctx context.Context, n *models.Notification) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "notification",
		"method":  "SendNotification",
	})

	n.Name = strings.TrimSpace(n.Name)
	n.Number = strings.TrimSpace(n.Number)
	n.Message = strings.TrimSpace(n.Message)
	for _, f := range [][2]string{{"name", n.Name}, {"number", n.Number}, {"message", n.Message}} {
		if err := required(f[0], f[1]); err != nil {
			log.WithError(err).Warn("Notification validation failed")
			return err
		}
	}

	n.SentAt = s.now().UTC()
	id, err := s.store.Create(ctx, models.CollectionNotifications, n)
	if err != nil {
		log.WithError(err).Error("Failed to record notification in store")
		return fmt.Errorf("service: could not record notification: %w", err)
	}
	n.ID = id
	log.WithField("notification_id", id).Info("Notification recorded")
	return nil
}

func (s *notificationService) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "notification", "method": "ListNotifications"})
	items, err := loadAll[models.Notification](ctx, s.store, models.CollectionNotifications, log)
	if err != nil {
		log.WithError(err).Error("Failed to list notifications from store")
		return nil, fmt.Errorf("service: could not list notifications: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].SentAt.After(items[j].SentAt) })
	return items, nil
}
