package models

import "time"

type Severity string

const (
	SeverityLow       Severity = "low"
	SeverityMedium    Severity = "medium"
	SeverityHigh      Severity = "high"
	SeverityEmergency Severity = "emergency"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityEmergency:
		return true
	}
	return false
}

type IssueStatus string

const (
	IssueOpen     IssueStatus = "open"
	IssueAssigned IssueStatus = "assigned"
	IssueMerged   IssueStatus = "merged"
	IssueClosed   IssueStatus = "closed"
)

// Issue - обращение о проблеме на объекте или в зоне
type Issue struct {
	ID          string      `json:"id"`
	FacilityID  string      `json:"facilityId"`
	ZoneID      string      `json:"zoneId"`
	Category    string      `json:"category"`
	Severity    Severity    `json:"severity"`
	Description string      `json:"description"`
	ReportedBy  string      `json:"reportedBy"`
	Status      IssueStatus `json:"status"`
	AssignedTo  string      `json:"assignedTo,omitempty"`
	ReportedAt  time.Time   `json:"reportedAt"`
}
