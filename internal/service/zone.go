package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=zone.go -destination=../handler/http/v1/mocks/mock_zone.go -package=mocks

// ZoneService определяет контракт управления зонами
type ZoneService interface {
	CreateZone(ctx context.Context, zone *models.Zone) error
	GetZone(ctx context.Context, id string) (*models.Zone, error)
	ListZones(ctx context.Context) ([]models.Zone, error)
	UpdateZone(ctx context.Context, zone *models.Zone) error
	DeleteZone(ctx context.Context, id string) error
	ImportZones(ctx context.Context, rows []ImportRow) (apperr.BatchResult, error)
}

type zoneService struct {
	store  DocumentStore
	logger *logrus.Logger
}

func NewZoneService(store DocumentStore, logger *logrus.Logger) ZoneService {
	return &zoneService{
		store:  store,
		logger: logger,
	}
}

func validateZone(zone *models.Zone) error {
	zone.Name = strings.TrimSpace(zone.Name)
	if err := required("name", zone.Name); err != nil {
		return err
	}
	if zone.Location != nil {
		return validatePoint(*zone.Location)
	}
	return nil
}

// CreateZone создает зону
func (s *zoneService) CreateZone(ctx context.Context, zone *models.Zone) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "CreateZone",
		"name":    zone.Name,
	})
	if err := validateZone(zone); err != nil {
		log.WithError(err).Warn("Zone validation failed")
		return err
	}

	id, err := s.store.Create(ctx, models.CollectionZones, zone)
	if err != nil {
		log.WithError(err).Error("Failed to create zone in store")
		return fmt.Errorf("service: could not create zone: %w", err)
	}
	zone.ID = id
	log.WithField("zone_id", id).Info("Zone created successfully")
	return nil
}

func (s *zoneService) GetZone(ctx context.Context, id string) (*models.Zone, error) {
	zone, err := load[models.Zone](ctx, s.store, models.CollectionZones, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get zone: %w", err)
	}
	return &zone, nil
}

func (s *zoneService) ListZones(ctx context.Context) ([]models.Zone, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "zone", "method": "ListZones"})
	zones, err := loadAll[models.Zone](ctx, s.store, models.CollectionZones, log)
	if err != nil {
		log.WithError(err).Error("Failed to list zones from store")
		return nil, fmt.Errorf("service: could not list zones: %w", err)
	}
	return zones, nil
}

// UpdateZone обновляет имя, описание и координаты зоны
func (s *zoneService) UpdateZone(ctx context.Context, zone *models.Zone) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "UpdateZone",
		"zone_id": zone.ID,
	})
	if err := validateZone(zone); err != nil {
		log.WithError(err).Warn("Zone validation failed")
		return err
	}

	patch := models.Patch{
		"name":        zone.Name,
		"description": zone.Description,
		"location":    zone.Location,
	}
	if err := s.store.Update(ctx, models.CollectionZones, zone.ID, patch); err != nil {
		log.WithError(err).Error("Failed to update zone in store")
		return fmt.Errorf("service: could not update zone: %w", err)
	}
	log.Info("Zone updated successfully")
	return nil
}

// DeleteZone удаляет зону, только если на нее не ссылаются смены, объекты и задачи
func (s *zoneService) DeleteZone(ctx context.Context, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "DeleteZone",
		"zone_id": id,
	})

	refs, err := s.countReferences(ctx, id, log)
	if err != nil {
		log.WithError(err).Error("Failed to check zone references")
		return fmt.Errorf("service: could not delete zone: %w", err)
	}
	if refs > 0 {
		log.WithField("references", refs).Warn("Attempted to delete a referenced zone")
		return apperr.Validation("zoneId", "zone is referenced by %d records", refs)
	}

	if err := s.store.Delete(ctx, models.CollectionZones, id); err != nil {
		log.WithError(err).Error("Failed to delete zone in store")
		return fmt.Errorf("service: could not delete zone: %w", err)
	}
	// численность зоны хранится отдельным документом с id зоны
	if err := s.store.Delete(ctx, models.CollectionHeadcounts, id); err != nil && !apperr.IsNotFound(err) {
		log.WithError(err).Warn("Failed to delete zone headcount")
	}
	log.Info("Zone deleted successfully")
	return nil
}

type zoneRef struct {
	ZoneID string `json:"zoneId"`
}

func (s *zoneService) countReferences(ctx context.Context, zoneID string, log *logrus.Entry) (int, error) {
	collections := []string{models.CollectionShifts, models.CollectionTasks}
	for _, t := range models.FacilityTypes() {
		collections = append(collections, t.Collection())
	}

	n := 0
	for _, c := range collections {
		refs, err := loadAll[zoneRef](ctx, s.store, c, log)
		if err != nil {
			return 0, err
		}
		for _, r := range refs {
			if r.ZoneID == zoneID {
				n++
			}
		}
	}
	return n, nil
}

// ImportZones создает зоны из строк {name, description, lat, lng}. Некорректные строки пропускаются.
func (s *zoneService) ImportZones(ctx context.Context, rows []ImportRow) (apperr.BatchResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "ImportZones",
		"rows":    len(rows),
	})
	log.Info("Importing zones")

	var result apperr.BatchResult
	for i, row := range rows {
		key := row.Get("name")
		if key == "" {
			key = "row " + strconv.Itoa(i+1)
		}
		point, err := row.Point()
		if err != nil {
			result.Fail(key, err)
			continue
		}
		zone := &models.Zone{Name: row.Get("name"), Description: row.Get("description"), Location: &point}
		if err := validateZone(zone); err != nil {
			result.Fail(key, err)
			continue
		}
		if _, err := s.store.Create(ctx, models.CollectionZones, zone); err != nil {
			result.Fail(key, err)
			continue
		}
		result.Ok(key)
	}

	log.WithFields(logrus.Fields{
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failures),
	}).Info("Zone import finished")
	return result, nil
}
