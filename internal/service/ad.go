package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/sirupsen/logrus"
)

// AdService управляет объявлениями. Новое объявление создается снятым с публикации.
type AdService interface {
	CreateAd(ctx context.Context, ad *models.Ad) error
	ListAds(ctx context.Context, status models.AdStatus) ([]models.Ad, error)
	PublishAd(ctx context.Context, id string) error
	UnpublishAd(ctx context.Context, id string) error
	DeleteAd(ctx context.Context, id string) error
}

type adService struct {
	store  DocumentStore
	logger *logrus.Logger
	now    func() time.Time
}

func NewAdService(store DocumentStore, logger *logrus.Logger) AdService {
	return &adService{store: store, logger: logger, now: time.Now}
}

func validateAd(ad *models.Ad) error {
	ad.Title = strings.TrimSpace(ad.Title)
	for _, f := range [][2]string{
		{"title", ad.Title},
		{"description", ad.Description},
		{"type", ad.Type},
		{"contact", ad.Contact},
	} {
		if err := required(f[0], f[1]); err != nil {
			return err
		}
	}
	if ad.ValidFrom.IsZero() || ad.ValidTo.IsZero() {
		return apperr.Validation("validFrom", "validity period is required")
	}
	if ad.ValidTo.Before(ad.ValidFrom) {
		return apperr.Validation("validTo", "must not be before validFrom")
	}
	return nil
}

func (s *adService) CreateAd(ctx context.Context, ad *models.Ad) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "ad",
		"method":  "CreateAd",
		"title":   ad.Title,
	})
	if err := validateAd(ad); err != nil {
		log.WithError(err).Warn("Ad validation failed")
		return err
	}

	ad.Status = models.AdUnpublished
	ad.CreatedAt = s.now().UTC()
	id, err := s.store.Create(ctx, models.CollectionAds, ad)
	if err != nil {
		log.WithError(err).Error("Failed to create ad in store")
		return fmt.Errorf("service: could not create ad: %w", err)
	}
	ad.ID = id
	log.WithField("ad_id", id).Info("Ad created successfully")
	return nil
}

func (s *adService) ListAds(ctx context.Context, status models.AdStatus) ([]models.Ad, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "ad", "method": "ListAds"})
	ads, err := loadAll[models.Ad](ctx, s.store, models.CollectionAds, log)
	if err != nil {
		log.WithError(err).Error("Failed to list ads from store")
		return nil, fmt.Errorf("service: could not list ads: %w", err)
	}
	if status == "" {
		return ads, nil
	}
	out := make([]models.Ad, 0, len(ads))
	for _, a := range ads {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *adService) setStatus(ctx context.Context, id string, status models.AdStatus) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "ad",
		"method":  "setStatus",
		"ad_id":   id,
		"status":  status,
	})
	if err := s.store.Update(ctx, models.CollectionAds, id, models.Patch{"status": status}); err != nil {
		log.WithError(err).Error("Failed to update ad status in store")
		return fmt.Errorf("service: could not set ad status: %w", err)
	}
	log.Info("Ad status updated")
	return nil
}

func (s *adService) PublishAd(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, models.AdPublished)
}

func (s *adService) UnpublishAd(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, models.AdUnpublished)
}

func (s *adService) DeleteAd(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, models.CollectionAds, id); err != nil {
		s.logger.WithFields(logrus.Fields{"service": "ad", "method": "DeleteAd", "ad_id": id}).
			WithError(err).Error("Failed to delete ad in store")
		return fmt.Errorf("service: could not delete ad: %w", err)
	}
	return nil
}
