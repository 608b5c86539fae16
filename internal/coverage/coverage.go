// Package coverage computes required staffing per zone and shift and grades
// assigned-versus-required coverage.
package coverage

import (
	"github.com/shenikar/event_ops_system/internal/models"
)

// DefaultCapacityPerStaff - сколько посетителей обслуживает один сотрудник
const DefaultCapacityPerStaff = 8

// Level - трехуровневый сигнал покрытия
type Level string

const (
	Green  Level = "green"
	Orange Level = "orange"
	Red    Level = "red"
)

// RequiredStaff возвращает ceil(headcount / capacity). Отрицательная численность считается нулем.
func RequiredStaff(headcount, capacity int) int {
	if capacity <= 0 {
		capacity = DefaultCapacityPerStaff
	}
	if headcount <= 0 {
		return 0
	}
	return (headcount + capacity - 1) / capacity
}

// Evaluate оценивает покрытие смены
func Evaluate(assigned, required int) Level {
	if required <= 0 {
		return Green
	}
	switch {
	case 2*assigned < required:
		return Red
	case assigned < required:
		return Orange
	default:
		return Green
	}
}

// Row - строка отчета о покрытии
type Row struct {
	ZoneID    string           `json:"zoneId"`
	ZoneName  string           `json:"zoneName"`
	ShiftID   string           `json:"shiftId,omitempty"`
	ShiftType models.ShiftType `json:"shiftType"`
	Headcount int              `json:"headcount"`
	Required  int              `json:"required"`
	Assigned  int              `json:"assigned"`
	Level     Level            `json:"level"`
}

// Calculator хранит настраиваемую вместимость на сотрудника
type Calculator struct {
	capacity int
}

func NewCalculator(capacityPerStaff int) *Calculator {
	if capacityPerStaff <= 0 {
		capacityPerStaff = DefaultCapacityPerStaff
	}
	return &Calculator{capacity: capacityPerStaff}
}

func (c *Calculator) Capacity() int {
	return c.capacity
}

// ForShift считает строку отчета для одной смены
func (c *Calculator) ForShift(zone models.Zone, shift models.ShiftAssignment, headcount int) Row {
	required := RequiredStaff(headcount, c.capacity)
	assigned := len(shift.AssignedStaffIDs)
	return Row{
		ZoneID:    zone.ID,
		ZoneName:  zone.Name,
		ShiftID:   shift.ID,
		ShiftType: shift.Type,
		Headcount: headcount,
		Required:  required,
		Assigned:  assigned,
		Level:     Evaluate(assigned, required),
	}
}

// Report строит отчет по всем зонам и типам смен. Отсутствующая смена дает строку с нулем назначенных.
func (c *Calculator) Report(zones []models.Zone, shifts []models.ShiftAssignment, headcounts map[string]int, types []models.ShiftType) []Row {
	byKey := make(map[string]models.ShiftAssignment, len(shifts))
	for _, s := range shifts {
		byKey[s.ZoneID+"|"+string(s.Type)] = s
	}

	rows := make([]Row, 0, len(zones)*len(types))
	for _, z := range zones {
		for _, t := range types {
			shift, ok := byKey[z.ID+"|"+string(t)]
			if !ok {
				shift = models.ShiftAssignment{ZoneID: z.ID, Type: t}
			}
			rows = append(rows, c.ForShift(z, shift, headcounts[z.ID]))
		}
	}
	return rows
}
