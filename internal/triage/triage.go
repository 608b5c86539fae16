// Package triage holds the issue flags and the emergency banner predicate.
package triage

import (
	"strings"
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/sla"
)

// IsActiveEmergency: severity == emergency и статус не closed
func IsActiveEmergency(issue models.Issue) bool {
	return issue.Severity == models.SeverityEmergency && issue.Status != models.IssueClosed
}

// BannerCount - число активных экстренных обращений
func BannerCount(issues []models.Issue) int {
	n := 0
	for _, i := range issues {
		if IsActiveEmergency(i) {
			n++
		}
	}
	return n
}

// ActiveEmergencies отбирает активные экстренные обращения
func ActiveEmergencies(issues []models.Issue) []models.Issue {
	out := make([]models.Issue, 0)
	for _, i := range issues {
		if IsActiveEmergency(i) {
			out = append(out, i)
		}
	}
	return out
}

// HighSeverity отбирает обращения уровня high и emergency
func HighSeverity(issues []models.Issue) []models.Issue {
	out := make([]models.Issue, 0)
	for _, i := range issues {
		if i.Severity == models.SeverityHigh || i.Severity == models.SeverityEmergency {
			out = append(out, i)
		}
	}
	return out
}

func ensureOpen(issue *models.Issue, action string) error {
	if issue.Status == models.IssueClosed {
		return apperr.Transition("issue", string(issue.Status), action)
	}
	return nil
}

// Assign назначает исполнителя и переводит обращение в assigned
func Assign(issue *models.Issue, assignee string) error {
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		return apperr.Validation("assignedTo", "assignee name is required")
	}
	if err := ensureOpen(issue, "assign"); err != nil {
		return err
	}
	issue.AssignedTo = assignee
	issue.Status = models.IssueAssigned
	return nil
}

// Merge помечает обращение как объединенное
func Merge(issue *models.Issue) error {
	if err := ensureOpen(issue, "merge"); err != nil {
		return err
	}
	issue.Status = models.IssueMerged
	return nil
}

// Close закрывает обращение. Закрытое обращение больше не меняется.
func Close(issue *models.Issue) error {
	if err := ensureOpen(issue, "close"); err != nil {
		return err
	}
	issue.Status = models.IssueClosed
	return nil
}

// Countdown считает SLA обращения от времени регистрации
func Countdown(issue models.Issue, window time.Duration, now time.Time) sla.Remaining {
	return sla.Countdown(issue.ReportedAt, window, now)
}
