package v1

import (
	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/lifecycle"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/service"
)

func ZoneRequestToModel(req ZoneRequest) *models.Zone {
	zone := &models.Zone{Name: req.Name, Description: req.Description}
	if req.Location != nil {
		zone.Location = &models.GeoPoint{Lat: req.Location.Lat, Lng: req.Location.Lng}
	}
	return zone
}

func ImportRequestToRows(req ImportRequest) []service.ImportRow {
	rows := make([]service.ImportRow, 0, len(req.Rows))
	for _, r := range req.Rows {
		rows = append(rows, service.ImportRow(r))
	}
	return rows
}

func StaffRequestToModel(req StaffRequest) *models.Staff {
	return &models.Staff{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       models.Role(req.Role),
		Zone:       req.Zone,
		Department: req.Department,
		Status:     models.StaffStatus(req.Status),
	}
}

func TeamRequestToModel(req TeamRequest) *models.Team {
	return &models.Team{
		Name:         req.Name,
		Description:  req.Description,
		LeaderID:     req.LeaderID,
		MemberIDs:    req.MemberIDs,
		ZoneIDs:      req.ZoneIDs,
		DefaultShift: req.DefaultShift,
	}
}

func FacilityRequestToModel(req FacilityRequest) (*models.Facility, error) {
	facilityType, err := service.ParseFacilityType(req.Type)
	if err != nil {
		return nil, err
	}
	return &models.Facility{
		Code:     req.Code,
		Type:     facilityType,
		ZoneID:   req.ZoneID,
		Location: models.GeoPoint{Lat: req.Location.Lat, Lng: req.Location.Lng},
		Status:   req.Status,
	}, nil
}

func CreateTaskRequestToModel(req CreateTaskRequest) *models.Task {
	task := &models.Task{
		Title:        req.Title,
		Description:  req.Description,
		FacilityID:   req.FacilityID,
		ZoneID:       req.ZoneID,
		Priority:     models.Priority(req.Priority),
		SLAMinutes:   req.SLAMinutes,
		PhotosBefore: req.PhotosBefore,
	}
	if req.AssignedTo != nil {
		task.AssignedTo = *req.AssignedTo
	}
	return task
}

// TaskToResponse дополняет задачу списком переходов, доступных из ее статуса
func TaskToResponse(task models.Task) TaskResponse {
	allowed := lifecycle.Allowed(task.Status)
	if allowed == nil {
		allowed = []lifecycle.Action{}
	}
	return TaskResponse{Task: task, AllowedActions: allowed}
}

func TasksToResponses(tasks []models.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskToResponse(t))
	}
	return out
}

func ReportIssueRequestToModel(req ReportIssueRequest) *models.Issue {
	return &models.Issue{
		FacilityID:  req.FacilityID,
		ZoneID:      req.ZoneID,
		Category:    req.Category,
		Severity:    models.Severity(req.Severity),
		Description: req.Description,
		ReportedBy:  req.ReportedBy,
	}
}

func NotificationRequestToModel(req NotificationRequest) *models.Notification {
	return &models.Notification{Name: req.Name, Number: req.Number, Message: req.Message}
}

func AdRequestToModel(req AdRequest) *models.Ad {
	return &models.Ad{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		ValidFrom:   req.ValidFrom,
		ValidTo:     req.ValidTo,
		Contact:     req.Contact,
	}
}

func BatchResultToResponse(result apperr.BatchResult) BatchResponse {
	resp := BatchResponse{
		Succeeded:     len(result.Succeeded),
		Failed:        len(result.Failures),
		SucceededKeys: result.Succeeded,
		Failures:      make([]BatchFailureResponse, 0, len(result.Failures)),
	}
	if resp.SucceededKeys == nil {
		resp.SucceededKeys = []string{}
	}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, BatchFailureResponse{Key: f.Key, Error: f.Error})
	}
	return resp
}
