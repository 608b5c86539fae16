package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/sirupsen/logrus"
)

// FacilityService определяет контракт управления объектами
type FacilityService interface {
	CreateFacility(ctx context.Context, facility *models.Facility) error
	ListFacilities(ctx context.Context, facilityType models.FacilityType) ([]models.Facility, error)
	UpdateStatus(ctx context.Context, facilityType models.FacilityType, id, status string) error
	AssignTask(ctx context.Context, facilityType models.FacilityType, id, task string) error
	DeleteFacility(ctx context.Context, facilityType models.FacilityType, id string) error
	ImportFacilities(ctx context.Context, rows []ImportRow) (apperr.BatchResult, error)
}

type facilityService struct {
	store  DocumentStore
	logger *logrus.Logger
	now    func() time.Time
}

func NewFacilityService(store DocumentStore, logger *logrus.Logger) FacilityService {
	return &facilityService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ParseFacilityType принимает также "Water Supply" и регистр в любом виде
func ParseFacilityType(raw string) (models.FacilityType, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	for _, t := range models.FacilityTypes() {
		if strings.ToLower(string(t)) == normalized {
			return t, nil
		}
	}
	return "", apperr.Validation("type", "unknown facility type %q", raw)
}

func validateFacility(f *models.Facility) error {
	f.Code = strings.TrimSpace(f.Code)
	if err := required("code", f.Code); err != nil {
		return err
	}
	if !f.Type.Valid() {
		return apperr.Validation("type", "unknown facility type %q", f.Type)
	}
	if err := required("zoneId", f.ZoneID); err != nil {
		return err
	}
	if err := validatePoint(f.Location); err != nil {
		return err
	}
	if !f.Type.AllowsStatus(f.Status) {
		return apperr.Validation("status", "%q is not a %s status, expected one of %v", f.Status, f.Type, f.Type.Statuses())
	}
	return nil
}

// CreateFacility создает объект в коллекции его типа
func (s *facilityService) CreateFacility(ctx context.Context, facility *models.Facility) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "facility",
		"method":  "CreateFacility",
		"code":    facility.Code,
		"type":    facility.Type,
	})
	if err := validateFacility(facility); err != nil {
		log.WithError(err).Warn("Facility validation failed")
		return err
	}

	facility.LastUpdated = s.now().UTC()
	id, err := s.store.Create(ctx, facility.Type.Collection(), facility)
	if err != nil {
		log.WithError(err).Error("Failed to create facility in store")
		return fmt.Errorf("service: could not create facility: %w", err)
	}
	facility.ID = id
	log.WithField("facility_id", id).Info("Facility created successfully")
	return nil
}

// ListFacilities возвращает объекты одного типа или всех типов, если тип пуст
func (s *facilityService) ListFacilities(ctx context.Context, facilityType models.FacilityType) ([]models.Facility, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "facility", "method": "ListFacilities", "type": facilityType})

	types := models.FacilityTypes()
	if facilityType != "" {
		if !facilityType.Valid() {
			return nil, apperr.Validation("type", "unknown facility type %q", facilityType)
		}
		types = []models.FacilityType{facilityType}
	}

	out := make([]models.Facility, 0)
	for _, t := range types {
		items, err := loadAll[models.Facility](ctx, s.store, t.Collection(), log)
		if err != nil {
			log.WithError(err).Error("Failed to list facilities from store")
			return nil, fmt.Errorf("service: could not list facilities: %w", err)
		}
		for _, f := range items {
			// тип определяется коллекцией
			f.Type = t
			out = append(out, f)
		}
	}
	return out, nil
}

// UpdateStatus меняет статус по словарю типа
func (s *facilityService) UpdateStatus(ctx context.Context, facilityType models.FacilityType, id, status string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "facility",
		"method":      "UpdateStatus",
		"facility_id": id,
		"status":      status,
	})
	if !facilityType.Valid() {
		return apperr.Validation("type", "unknown facility type %q", facilityType)
	}
	if !facilityType.AllowsStatus(status) {
		return apperr.Validation("status", "%q is not a %s status, expected one of %v", status, facilityType, facilityType.Statuses())
	}

	patch := models.Patch{"status": status, "lastUpdated": s.now().UTC()}
	if err := s.store.Update(ctx, facilityType.Collection(), id, patch); err != nil {
		log.WithError(err).Error("Failed to update facility status in store")
		return fmt.Errorf("service: could not update facility status: %w", err)
	}
	log.Info("Facility status updated")
	return nil
}

// AssignTask записывает свободный текст задачи на объект
func (s *facilityService) AssignTask(ctx context.Context, facilityType models.FacilityType, id, task string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "facility",
		"method":      "AssignTask",
		"facility_id": id,
	})
	if !facilityType.Valid() {
		return apperr.Validation("type", "unknown facility type %q", facilityType)
	}
	if err := required("assignedTask", task); err != nil {
		return err
	}

	patch := models.Patch{"assignedTask": strings.TrimSpace(task), "lastUpdated": s.now().UTC()}
	if err := s.store.Update(ctx, facilityType.Collection(), id, patch); err != nil {
		log.WithError(err).Error("Failed to assign facility task in store")
		return fmt.Errorf("service: could not assign facility task: %w", err)
	}
	log.Info("Facility task assigned")
	return nil
}

func (s *facilityService) DeleteFacility(ctx context.Context, facilityType models.FacilityType, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "facility",
		"method":      "DeleteFacility",
		"facility_id": id,
	})
	if !facilityType.Valid() {
		return apperr.Validation("type", "unknown facility type %q", facilityType)
	}
	if err := s.store.Delete(ctx, facilityType.Collection(), id); err != nil {
		log.WithError(err).Error("Failed to delete facility in store")
		return fmt.Errorf("service: could not delete facility: %w", err)
	}
	log.Info("Facility deleted successfully")
	return nil
}

// ImportFacilities создает объекты из строк {code|name, type, zoneId, lat, lng, status}.
// Строки с нечисловыми координатами или неизвестным типом пропускаются и попадают в итог.
func (s *facilityService) ImportFacilities(ctx context.Context, rows []ImportRow) (apperr.BatchResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "facility",
		"method":  "ImportFacilities",
		"rows":    len(rows),
	})
	log.Info("Importing facilities")

	var result apperr.BatchResult
	now := s.now().UTC()
	for i, row := range rows {
		key := row.Get("code", "name")
		if key == "" {
			key = "row " + strconv.Itoa(i+1)
		}

		point, err := row.Point()
		if err != nil {
			result.Fail(key, err)
			continue
		}
		facilityType, err := ParseFacilityType(row.Get("type"))
		if err != nil {
			result.Fail(key, err)
			continue
		}
		facility := &models.Facility{
			Code:        row.Get("code", "name"),
			Type:        facilityType,
			ZoneID:      row.Get("zoneId", "zone"),
			Location:    point,
			Status:      strings.ToLower(row.Get("status")),
			LastUpdated: now,
		}
		if err := validateFacility(facility); err != nil {
			result.Fail(key, err)
			continue
		}
		if _, err := s.store.Create(ctx, facilityType.Collection(), facility); err != nil {
			result.Fail(key, err)
			continue
		}
		result.Ok(key)
	}

	log.WithFields(logrus.Fields{
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failures),
	}).Info("Facility import finished")
	return result, nil
}
