package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/config"
	"github.com/shenikar/event_ops_system/internal/coverage"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultShiftStart = "09:00"
	defaultShiftEnd   = "17:00"
)

// ShiftService определяет контракт управления сменами и покрытием
type ShiftService interface {
	ListShifts(ctx context.Context) ([]models.ShiftAssignment, error)
	CreateDefaultShifts(ctx context.Context) (apperr.BatchResult, error)
	UpdateShiftTimes(ctx context.Context, shiftID, startTime, endTime string) error
	AssignStaff(ctx context.Context, shiftID, staffID string) error
	RemoveStaff(ctx context.Context, shiftID, staffID string) error
	SetHeadcount(ctx context.Context, zoneID string, count int) error
	ZoneCoverage(ctx context.Context, zoneID string) ([]coverage.Row, error)
	CoverageReport(ctx context.Context) ([]coverage.Row, error)
}

type shiftService struct {
	store      DocumentStore
	logger     *logrus.Logger
	calculator *coverage.Calculator
	shiftTypes []models.ShiftType
}

func NewShiftService(store DocumentStore, logger *logrus.Logger, cfg *config.Config) ShiftService {
	types := make([]models.ShiftType, 0, len(cfg.ShiftTypes))
	for _, t := range cfg.ShiftTypes {
		types = append(types, models.ShiftType(t))
	}
	return &shiftService{
		store:      store,
		logger:     logger,
		calculator: coverage.NewCalculator(cfg.CapacityPerStaff),
		shiftTypes: types,
	}
}

func (s *shiftService) ListShifts(ctx context.Context) ([]models.ShiftAssignment, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "shift", "method": "ListShifts"})
	shifts, err := loadAll[models.ShiftAssignment](ctx, s.store, models.CollectionShifts, log)
	if err != nil {
		log.WithError(err).Error("Failed to list shifts from store")
		return nil, fmt.Errorf("service: could not list shifts: %w", err)
	}
	return shifts, nil
}

// CreateDefaultShifts создает недостающие смены каждого типа для каждой зоны
func (s *shiftService) CreateDefaultShifts(ctx context.Context) (apperr.BatchResult, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "shift", "method": "CreateDefaultShifts"})
	var result apperr.BatchResult

	zones, err := loadAll[models.Zone](ctx, s.store, models.CollectionZones, log)
	if err != nil {
		log.WithError(err).Error("Failed to list zones from store")
		return result, fmt.Errorf("service: could not create default shifts: %w", err)
	}
	shifts, err := loadAll[models.ShiftAssignment](ctx, s.store, models.CollectionShifts, log)
	if err != nil {
		log.WithError(err).Error("Failed to list shifts from store")
		return result, fmt.Errorf("service: could not create default shifts: %w", err)
	}

	existing := make(map[string]bool, len(shifts))
	for _, sh := range shifts {
		existing[sh.ZoneID+"|"+string(sh.Type)] = true
	}

	for _, z := range zones {
		for _, t := range s.shiftTypes {
			key := z.ID + "|" + string(t)
			if existing[key] {
				continue
			}
			shift := models.ShiftAssignment{
				ZoneID:           z.ID,
				Type:             t,
				StartTime:        defaultShiftStart,
				EndTime:          defaultShiftEnd,
				AssignedStaffIDs: []string{},
			}
			if _, err := s.store.Create(ctx, models.CollectionShifts, shift); err != nil {
				result.Fail(key, err)
				continue
			}
			result.Ok(key)
		}
	}

	log.WithFields(logrus.Fields{
		"created": len(result.Succeeded),
		"failed":  len(result.Failures),
	}).Info("Default shifts processed")
	return result, nil
}

func validateClock(field, value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return apperr.Validation(field, "%q is not a HH:MM wall-clock time", value)
	}
	return nil
}

// UpdateShiftTimes меняет время начала и/или конца. Пустое значение оставляет поле без изменений.
func (s *shiftService) UpdateShiftTimes(ctx context.Context, shiftID, startTime, endTime string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "shift",
		"method":   "UpdateShiftTimes",
		"shift_id": shiftID,
	})

	patch := models.Patch{}
	if startTime != "" {
		if err := validateClock("startTime", startTime); err != nil {
			return err
		}
		patch["startTime"] = startTime
	}
	if endTime != "" {
		if err := validateClock("endTime", endTime); err != nil {
			return err
		}
		patch["endTime"] = endTime
	}
	if len(patch) == 0 {
		return apperr.Validation("", "startTime or endTime is required")
	}

	if err := s.store.Update(ctx, models.CollectionShifts, shiftID, patch); err != nil {
		log.WithError(err).Error("Failed to update shift times in store")
		return fmt.Errorf("service: could not update shift times: %w", err)
	}
	log.Info("Shift times updated successfully")
	return nil
}

// AssignStaff добавляет сотрудника в смену. Повторное назначение ничего не меняет.
func (s *shiftService) AssignStaff(ctx context.Context, shiftID, staffID string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "shift",
		"method":   "AssignStaff",
		"shift_id": shiftID,
		"staff_id": staffID,
	})
	if err := required("staffId", staffID); err != nil {
		return err
	}

	shift, err := load[models.ShiftAssignment](ctx, s.store, models.CollectionShifts, shiftID)
	if err != nil {
		log.WithError(err).Warn("Failed to load shift")
		return fmt.Errorf("service: could not assign staff: %w", err)
	}
	if shift.HasStaff(staffID) {
		log.Info("Staff already assigned to shift")
		return nil
	}
	if _, err := s.store.Get(ctx, models.CollectionStaff, staffID); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.Validation("staffId", "staff %s does not exist", staffID)
		}
		return fmt.Errorf("service: could not assign staff: %w", err)
	}

	assigned := append(append([]string{}, shift.AssignedStaffIDs...), staffID)
	if err := s.store.Update(ctx, models.CollectionShifts, shiftID, models.Patch{"assignedStaffIds": assigned}); err != nil {
		log.WithError(err).Error("Failed to assign staff in store")
		return fmt.Errorf("service: could not assign staff: %w", err)
	}
	log.Info("Staff assigned to shift")
	return nil
}

func (s *shiftService) RemoveStaff(ctx context.Context, shiftID, staffID string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "shift",
		"method":   "RemoveStaff",
		"shift_id": shiftID,
		"staff_id": staffID,
	})

	shift, err := load[models.ShiftAssignment](ctx, s.store, models.CollectionShifts, shiftID)
	if err != nil {
		log.WithError(err).Warn("Failed to load shift")
		return fmt.Errorf("service: could not remove staff: %w", err)
	}
	if !shift.HasStaff(staffID) {
		return nil
	}
	assigned := without(shift.AssignedStaffIDs, staffID)
	if err := s.store.Update(ctx, models.CollectionShifts, shiftID, models.Patch{"assignedStaffIds": assigned}); err != nil {
		log.WithError(err).Error("Failed to remove staff in store")
		return fmt.Errorf("service: could not remove staff: %w", err)
	}
	log.Info("Staff removed from shift")
	return nil
}

// SetHeadcount записывает численность посетителей зоны
func (s *shiftService) SetHeadcount(ctx context.Context, zoneID string, count int) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "shift",
		"method":  "SetHeadcount",
		"zone_id": zoneID,
		"count":   count,
	})
	if count < 0 {
		return apperr.Validation("count", "headcount must be non-negative")
	}
	if _, err := s.store.Get(ctx, models.CollectionZones, zoneID); err != nil {
		log.WithError(err).Warn("Failed to load zone")
		return fmt.Errorf("service: could not set headcount: %w", err)
	}
	if err := s.store.Set(ctx, models.CollectionHeadcounts, zoneID, models.Headcount{ZoneID: zoneID, Count: count}); err != nil {
		log.WithError(err).Error("Failed to set headcount in store")
		return fmt.Errorf("service: could not set headcount: %w", err)
	}
	log.Info("Headcount updated")
	return nil
}

// ZoneCoverage считает покрытие всех типов смен одной зоны
func (s *shiftService) ZoneCoverage(ctx context.Context, zoneID string) ([]coverage.Row, error) {
	zone, err := load[models.Zone](ctx, s.store, models.CollectionZones, zoneID)
	if err != nil {
		return nil, fmt.Errorf("service: could not compute zone coverage: %w", err)
	}
	return s.report(ctx, []models.Zone{zone})
}

// CoverageReport считает покрытие по всем зонам и типам смен
func (s *shiftService) CoverageReport(ctx context.Context) ([]coverage.Row, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "shift", "method": "CoverageReport"})
	zones, err := loadAll[models.Zone](ctx, s.store, models.CollectionZones, log)
	if err != nil {
		log.WithError(err).Error("Failed to list zones from store")
		return nil, fmt.Errorf("service: could not compute coverage: %w", err)
	}
	return s.report(ctx, zones)
}

func (s *shiftService) report(ctx context.Context, zones []models.Zone) ([]coverage.Row, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "shift", "method": "report"})
	shifts, err := loadAll[models.ShiftAssignment](ctx, s.store, models.CollectionShifts, log)
	if err != nil {
		return nil, fmt.Errorf("service: could not compute coverage: %w", err)
	}
	counts, err := loadAll[models.Headcount](ctx, s.store, models.CollectionHeadcounts, log)
	if err != nil {
		return nil, fmt.Errorf("service: could not compute coverage: %w", err)
	}
	headcounts := make(map[string]int, len(counts))
	for _, c := range counts {
		headcounts[c.ZoneID] = c.Count
	}
	return s.calculator.Report(zones, shifts, headcounts, s.shiftTypes), nil
}
