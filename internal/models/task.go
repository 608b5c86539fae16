package models

import "time"

type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskDone       TaskStatus = "Done"
	TaskVerified   TaskStatus = "Verified"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task - задача по обслуживанию объекта
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	FacilityID   string     `json:"facilityId"`
	ZoneID       string     `json:"zoneId"`
	AssignedTo   Ref        `json:"assignedTo"`
	Priority     Priority   `json:"priority"`
	SLAMinutes   int        `json:"slaMinutes"`
	Status       TaskStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	PhotosBefore []string   `json:"photosBefore"`
	PhotosAfter  []string   `json:"photosAfter"`
}
