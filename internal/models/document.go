package models

import (
	"encoding/json"
	"time"
)

// Названия коллекций хранилища документов
const (
	CollectionZones         = "zones"
	CollectionShifts        = "shifts"
	CollectionHeadcounts    = "headcounts"
	CollectionStaff         = "staff"
	CollectionTeams         = "teams"
	CollectionTasks         = "tasks"
	CollectionIssues        = "issues"
	CollectionEmergencies   = "emergency_reports"
	CollectionNotifications = "notifications"
	CollectionAds           = "ads"
)

// Document - запись коллекции в хранилище документов
type Document struct {
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Patch - частичное обновление документа, ключи верхнего уровня перезаписываются целиком
type Patch map[string]any

// GeoPoint - пара широта/долгота
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
