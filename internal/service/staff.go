package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/sirupsen/logrus"
)

// StaffFilter - фильтры списка сотрудников, пустое поле не фильтрует
type StaffFilter struct {
	Role       string
	Zone       string
	Status     string
	Department string
	Search     string
}

func (f StaffFilter) match(s models.Staff) bool {
	if f.Role != "" && !strings.EqualFold(string(s.Role), f.Role) {
		return false
	}
	if f.Zone != "" && s.Zone != f.Zone {
		return false
	}
	if f.Status != "" && f.Status != "all" && string(s.Status) != f.Status {
		return false
	}
	if f.Department != "" && f.Department != "all" && s.Department != f.Department {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(s.Name), q) && !strings.Contains(strings.ToLower(s.Email), q) {
			return false
		}
	}
	return true
}

//go:generate mockgen -source=staff.go -destination=../handler/http/v1/mocks/mock_staff.go -package=mocks

// StaffService определяет контракт управления персоналом
type StaffService interface {
	AddStaff(ctx context.Context, staff *models.Staff) error
	GetStaff(ctx context.Context, id string) (*models.Staff, error)
	UpdateStaff(ctx context.Context, staff *models.Staff) error
	DeactivateStaff(ctx context.Context, id string) error
	ListStaff(ctx context.Context, filter StaffFilter, page, pageSize int) (Page[models.Staff], error)
	GroupStaff(ctx context.Context, by string) (map[string][]models.Staff, error)
	ImportStaff(ctx context.Context, rows []ImportRow) (apperr.BatchResult, error)
}

type staffService struct {
	store  DocumentStore
	logger *logrus.Logger
	now    func() time.Time
}

func NewStaffService(store DocumentStore, logger *logrus.Logger) StaffService {
	return &staffService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func validateStaff(s *models.Staff) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	for _, f := range [][2]string{
		{"name", s.Name},
		{"email", s.Email},
		{"phone", s.Phone},
		{"department", s.Department},
	} {
		if err := required(f[0], f[1]); err != nil {
			return err
		}
	}
	if s.Role == "" {
		s.Role = models.RoleStaff
	}
	s.Role = models.Role(strings.ToLower(string(s.Role)))
	if !s.Role.Valid() {
		return apperr.Validation("role", "unknown role %q", s.Role)
	}
	if s.Status == "" {
		s.Status = models.StaffActive
	}
	if !s.Status.Valid() {
		return apperr.Validation("status", "unknown status %q", s.Status)
	}
	return nil
}

// AddStaff добавляет сотрудника
func (s *staffService) AddStaff(ctx context.Context, staff *models.Staff) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "staff",
		"method":  "AddStaff",
		"name":    staff.Name,
	})
	if err := validateStaff(staff); err != nil {
		log.WithError(err).Warn("Staff validation failed")
		return err
	}

	id, err := s.create(ctx, staff)
	if err != nil {
		log.WithError(err).Error("Failed to create staff in store")
		return fmt.Errorf("service: could not add staff: %w", err)
	}
	staff.ID = id
	log.WithField("staff_id", id).Info("Staff added successfully")
	return nil
}

func (s *staffService) create(ctx context.Context, staff *models.Staff) (string, error) {
	now := s.now().UTC()
	staff.Teams = unique(staff.Teams)
	if staff.JoinedAt.IsZero() {
		staff.JoinedAt = now
	}
	staff.LastActive = now
	staff.CreatedAt = now
	staff.UpdatedAt = now
	return s.store.Create(ctx, models.CollectionStaff, staff)
}

// Значения по умолчанию для импорта
const (
	defaultImportZone       = "General"
	defaultImportDepartment = "General"
)

// ImportStaff создает сотрудников из строк таблицы. Заголовки сравниваются без учета регистра,
// строки без имени, телефона или email пропускаются и попадают в итог как неудачные.
func (s *staffService) ImportStaff(ctx context.Context, rows []ImportRow) (apperr.BatchResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "staff",
		"method":  "ImportStaff",
		"rows":    len(rows),
	})
	log.Info("Importing staff")

	var result apperr.BatchResult
	for i, raw := range rows {
		row := raw.Normalize()
		staff := &models.Staff{
			Name:       row.Get("name", "full name", "staff name"),
			Phone:      row.Get("phone", "mobile", "mobile number", "mobile no", "contact"),
			Email:      row.Get("email", "email address"),
			Role:       models.Role(row.Get("role")),
			Zone:       row.Get("zone"),
			Department: row.Get("department"),
			Status:     models.StaffStatus(strings.ToLower(row.Get("status"))),
			Teams:      strings.Split(row.Get("teams"), ","),
		}
		if staff.Zone == "" {
			staff.Zone = defaultImportZone
		}
		if staff.Department == "" {
			staff.Department = defaultImportDepartment
		}

		key := staff.Name
		if key == "" {
			key = "row " + strconv.Itoa(i+1)
		}
		if err := validateStaff(staff); err != nil {
			result.Fail(key, err)
			continue
		}
		if _, err := s.create(ctx, staff); err != nil {
			result.Fail(key, err)
			continue
		}
		result.Ok(key)
	}

	log.WithFields(logrus.Fields{
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failures),
	}).Info("Staff import finished")
	return result, nil
}

func (s *staffService) GetStaff(ctx context.Context, id string) (*models.Staff, error) {
	staff, err := load[models.Staff](ctx, s.store, models.CollectionStaff, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get staff: %w", err)
	}
	return &staff, nil
}

// UpdateStaff обновляет карточку сотрудника. Команды меняются только через состав команды.
func (s *staffService) UpdateStaff(ctx context.Context, staff *models.Staff) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "staff",
		"method":   "UpdateStaff",
		"staff_id": staff.ID,
	})
	if err := validateStaff(staff); err != nil {
		log.WithError(err).Warn("Staff validation failed")
		return err
	}

	patch := models.Patch{
		"name":       staff.Name,
		"email":      staff.Email,
		"phone":      staff.Phone,
		"role":       staff.Role,
		"zone":       staff.Zone,
		"department": staff.Department,
		"status":     staff.Status,
		"updatedAt":  s.now().UTC(),
	}
	if err := s.store.Update(ctx, models.CollectionStaff, staff.ID, patch); err != nil {
		log.WithError(err).Error("Failed to update staff in store")
		return fmt.Errorf("service: could not update staff: %w", err)
	}
	log.Info("Staff updated successfully")
	return nil
}

// DeactivateStaff переводит сотрудника в inactive, запись остается
func (s *staffService) DeactivateStaff(ctx context.Context, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "staff",
		"method":   "DeactivateStaff",
		"staff_id": id,
	})
	patch := models.Patch{"status": models.StaffInactive, "updatedAt": s.now().UTC()}
	if err := s.store.Update(ctx, models.CollectionStaff, id, patch); err != nil {
		log.WithError(err).Error("Failed to deactivate staff in store")
		return fmt.Errorf("service: could not deactivate staff: %w", err)
	}
	log.Info("Staff deactivated successfully")
	return nil
}

// ListStaff возвращает отфильтрованный список с пагинацией, отсортированный по имени
func (s *staffService) ListStaff(ctx context.Context, filter StaffFilter, page, pageSize int) (Page[models.Staff], error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "staff",
		"method":    "ListStaff",
		"page":      page,
		"page_size": pageSize,
	})
	all, err := loadAll[models.Staff](ctx, s.store, models.CollectionStaff, log)
	if err != nil {
		log.WithError(err).Error("Failed to list staff from store")
		return Page[models.Staff]{}, fmt.Errorf("service: could not list staff: %w", err)
	}

	matched := make([]models.Staff, 0, len(all))
	for _, st := range all {
		if filter.match(st) {
			matched = append(matched, st)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	result := paginate(matched, page, pageSize)
	log.WithField("count", len(result.Items)).Info("Staff listed successfully")
	return result, nil
}

// GroupStaff группирует сотрудников по role, department или zone
func (s *staffService) GroupStaff(ctx context.Context, by string) (map[string][]models.Staff, error) {
	var key func(models.Staff) string
	switch by {
	case "role":
		key = func(st models.Staff) string { return string(st.Role) }
	case "department":
		key = func(st models.Staff) string { return st.Department }
	case "zone":
		key = func(st models.Staff) string { return st.Zone }
	default:
		return nil, apperr.Validation("by", "cannot group by %q", by)
	}

	log := s.logger.WithFields(logrus.Fields{"service": "staff", "method": "GroupStaff", "by": by})
	all, err := loadAll[models.Staff](ctx, s.store, models.CollectionStaff, log)
	if err != nil {
		log.WithError(err).Error("Failed to list staff from store")
		return nil, fmt.Errorf("service: could not group staff: %w", err)
	}

	groups := make(map[string][]models.Staff)
	for _, st := range all {
		k := key(st)
		if k == "" {
			k = "unassigned"
		}
		groups[k] = append(groups[k], st)
	}
	return groups, nil
}
