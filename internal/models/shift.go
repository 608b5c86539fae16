package models

// ShiftType - тег смены
type ShiftType string

const (
	ShiftRed    ShiftType = "red"
	ShiftOrange ShiftType = "orange"
	ShiftGreen  ShiftType = "green"
)

// ShiftAssignment - смена в зоне с назначенным персоналом
type ShiftAssignment struct {
	ID               string    `json:"id"`
	ZoneID           string    `json:"zoneId"`
	Type             ShiftType `json:"name"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	AssignedStaffIDs []string  `json:"assignedStaffIds"`
}

// HasStaff сообщает, назначен ли сотрудник на смену
func (s *ShiftAssignment) HasStaff(staffID string) bool {
	for _, id := range s.AssignedStaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
