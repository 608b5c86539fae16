package models

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

type StaffStatus string

const (
	StaffActive   StaffStatus = "active"
	StaffInactive StaffStatus = "inactive"
	StaffOnLeave  StaffStatus = "on-leave"
)

func (s StaffStatus) Valid() bool {
	switch s {
	case StaffActive, StaffInactive, StaffOnLeave:
		return true
	}
	return false
}

// Staff - сотрудник. Деактивация меняет только статус, запись не удаляется.
type Staff struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Role       Role        `json:"role"`
	Zone       string      `json:"zone"`
	Department string      `json:"department"`
	Status     StaffStatus `json:"status"`
	Teams      []string    `json:"teams"`
	JoinedAt   time.Time   `json:"joinedAt"`
	LastActive time.Time   `json:"lastActive"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
