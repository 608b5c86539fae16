package models

import "time"

// Team - команда. Лидер не обязан входить в состав участников.
type Team struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	LeaderID     string    `json:"leaderId"`
	MemberIDs    []string  `json:"memberIds"`
	ZoneIDs      []string  `json:"zoneIds"`
	DefaultShift string    `json:"defaultShift"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
