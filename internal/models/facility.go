package models

import "time"

type FacilityType string

const (
	FacilityToilet      FacilityType = "Toilet"
	FacilityDustbin     FacilityType = "Dustbin"
	FacilityWaterSupply FacilityType = "WaterSupply"
)

var facilityStatuses = map[FacilityType][]string{
	FacilityToilet:      {"clean", "dirty", "empty", "full"},
	FacilityDustbin:     {"empty", "full"},
	FacilityWaterSupply: {"working", "faulty"},
}

var facilityCollections = map[FacilityType]string{
	FacilityToilet:      "toilets",
	FacilityDustbin:     "dustbins",
	FacilityWaterSupply: "watersupply",
}

// FacilityTypes возвращает все типы объектов в фиксированном порядке
func FacilityTypes() []FacilityType {
	return []FacilityType{FacilityToilet, FacilityDustbin, FacilityWaterSupply}
}

func (t FacilityType) Valid() bool {
	_, ok := facilityStatuses[t]
	return ok
}

// Collection возвращает коллекцию, в которой хранятся объекты этого типа
func (t FacilityType) Collection() string {
	return facilityCollections[t]
}

// Statuses возвращает словарь статусов для типа
func (t FacilityType) Statuses() []string {
	return facilityStatuses[t]
}

// AllowsStatus проверяет статус по словарю типа
func (t FacilityType) AllowsStatus(status string) bool {
	for _, s := range facilityStatuses[t] {
		if s == status {
			return true
		}
	}
	return false
}

// Facility - физический объект: туалет, урна, точка водоснабжения
type Facility struct {
	ID           string       `json:"id"`
	Code         string       `json:"code"`
	Type         FacilityType `json:"type"`
	ZoneID       string       `json:"zoneId"`
	Location     GeoPoint     `json:"location"`
	Status       string       `json:"status"`
	LastUpdated  time.Time    `json:"lastUpdated"`
	AssignedTask string       `json:"assignedTask,omitempty"`
}
