package v1

import (
	"time"

	"github.com/shenikar/event_ops_system/internal/lifecycle"
	"github.com/shenikar/event_ops_system/internal/models"
)

// ErrorResponse DTO ошибки
type ErrorResponse struct {
	Error string `json:"error"`
}

// BatchResponse DTO итога пакетной операции
// @Description Итог пакетной операции: успешные записи не откатываются
type BatchResponse struct {
	Succeeded     int                    `json:"succeeded"`
	Failed        int                    `json:"failed"`
	SucceededKeys []string               `json:"succeededKeys"`
	Failures      []BatchFailureResponse `json:"failures"`
}

type BatchFailureResponse struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// GeoPointDTO координаты
type GeoPointDTO struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// ImportRequest DTO массового импорта уже разобранных строк таблицы
// @Description Строки импорта в виде объектов "колонка -> значение"
type ImportRequest struct {
	Rows []map[string]string `json:"rows" validate:"required,min=1"`
}

// ZoneRequest DTO создания/обновления зоны
type ZoneRequest struct {
	Name        string       `json:"name" validate:"required,max=255"`
	Description string       `json:"description,omitempty"`
	Location    *GeoPointDTO `json:"location,omitempty"`
}

type ShiftTimesRequest struct {
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

type AssignStaffRequest struct {
	StaffID string `json:"staffId" validate:"required"`
}

type HeadcountRequest struct {
	Count *int `json:"count" validate:"required"`
}

// StaffRequest DTO создания/обновления сотрудника
type StaffRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Role       string `json:"role,omitempty"`
	Zone       string `json:"zone,omitempty"`
	Department string `json:"department" validate:"required"`
	Status     string `json:"status,omitempty"`
}

// TeamRequest DTO создания/обновления команды
type TeamRequest struct {
	Name         string   `json:"name" validate:"required,max=255"`
	Description  string   `json:"description,omitempty"`
	LeaderID     string   `json:"leaderId" validate:"required"`
	MemberIDs    []string `json:"memberIds"`
	ZoneIDs      []string `json:"zoneIds"`
	DefaultShift string   `json:"defaultShift,omitempty"`
}

type TeamMembersRequest struct {
	MemberIDs []string `json:"memberIds" validate:"required"`
}

// FacilityRequest DTO создания объекта
type FacilityRequest struct {
	Code     string      `json:"code" validate:"required"`
	Type     string      `json:"type" validate:"required"`
	ZoneID   string      `json:"zoneId" validate:"required"`
	Location GeoPointDTO `json:"location"`
	Status   string      `json:"status" validate:"required"`
}

type FacilityStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type FacilityTaskRequest struct {
	Task string `json:"task" validate:"required"`
}

// CreateTaskRequest DTO создания задачи
// @Description assignedTo - тегированная ссылка {type: staff|team, id}
type CreateTaskRequest struct {
	Title        string      `json:"title" validate:"required,max=255"`
	Description  string      `json:"description,omitempty"`
	FacilityID   string      `json:"facilityId,omitempty"`
	ZoneID       string      `json:"zoneId,omitempty"`
	AssignedTo   *models.Ref `json:"assignedTo,omitempty"`
	Priority     string      `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High"`
	SLAMinutes   int         `json:"slaMinutes,omitempty" validate:"gte=0"`
	PhotosBefore []string    `json:"photosBefore,omitempty"`
}

// MarkDoneRequest DTO завершения задачи, нужен хотя бы один снимок "после"
type MarkDoneRequest struct {
	PhotosAfter []string `json:"photosAfter"`
}

// TaskResponse DTO задачи с допустимыми переходами
type TaskResponse struct {
	models.Task
	AllowedActions []lifecycle.Action `json:"allowedActions"`
}

// ReportIssueRequest DTO регистрации обращения
type ReportIssueRequest struct {
	FacilityID  string `json:"facilityId,omitempty"`
	ZoneID      string `json:"zoneId,omitempty"`
	Category    string `json:"category" validate:"required"`
	Severity    string `json:"severity" validate:"required"`
	Description string `json:"description,omitempty"`
	ReportedBy  string `json:"reportedBy,omitempty"`
}

type AssignIssueRequest struct {
	AssignedTo string `json:"assignedTo" validate:"required"`
}

type EmergencyCountResponse struct {
	Count int `json:"count"`
}

type NotificationRequest struct {
	Name    string `json:"name" validate:"required"`
	Number  string `json:"number" validate:"required"`
	Message string `json:"message" validate:"required,max=1000"`
}

// AdRequest DTO создания объявления
type AdRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description" validate:"required"`
	Type        string    `json:"type" validate:"required,oneof=ad announcement"`
	ValidFrom   time.Time `json:"validFrom" validate:"required"`
	ValidTo     time.Time `json:"validTo" validate:"required"`
	Contact     string    `json:"contact" validate:"required"`
}
