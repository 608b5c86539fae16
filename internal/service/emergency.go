package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/sirupsen/logrus"
)

// EmergencyService - чтение экстренных сообщений, записываемых внешними каналами
type EmergencyService interface {
	ListReports(ctx context.Context) ([]models.EmergencyReport, error)
	GetReport(ctx context.Context, id string) (*models.EmergencyReport, error)
}

type emergencyService struct {
	store  DocumentStore
	logger *logrus.Logger
}

func NewEmergencyService(store DocumentStore, logger *logrus.Logger) EmergencyService {
	return &emergencyService{store: store, logger: logger}
}

func (s *emergencyService) ListReports(ctx context.Context) ([]models.EmergencyReport, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "emergency", "method": "ListReports"})
	reports, err := loadAll[models.EmergencyReport](ctx, s.store, models.CollectionEmergencies, log)
	if err != nil {
		log.WithError(err).Error("Failed to list emergency reports from store")
		return nil, fmt.Errorf("service: could not list emergency reports: %w", err)
	}
	sort.SliceStable(reports, func(i, j int) bool { return reports[i].ReportedAt.After(reports[j].ReportedAt) })
	return reports, nil
}

func (s *emergencyService) GetReport(ctx context.Context, id string) (*models.EmergencyReport, error) {
	report, err := load[models.EmergencyReport](ctx, s.store, models.CollectionEmergencies, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get emergency report: %w", err)
	}
	return &report, nil
}
