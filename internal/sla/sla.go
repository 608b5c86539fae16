// Package sla implements the stateless SLA clock: countdowns against a fixed
// window and compliance of completed tasks.
package sla

import (
	"fmt"
	"math"
	"time"

	"github.com/shenikar/event_ops_system/internal/models"
)

// DefaultIssueWindow - окно SLA для обращений
const DefaultIssueWindow = 24 * time.Hour

// Expired - строковое представление истекшего срока
const Expired = "Expired"

// Remaining - результат расчета обратного отсчета
type Remaining struct {
	Expired   bool          `json:"expired"`
	Remaining time.Duration `json:"-"`
}

// String форматирует остаток как "{h}h {m}m {s}s"
func (r Remaining) String() string {
	if r.Expired {
		return Expired
	}
	total := int64(r.Remaining / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// Countdown считает остаток до reportedAt+window. Часы не хранит: вызывающий пересчитывает по своему таймеру.
func Countdown(reportedAt time.Time, window time.Duration, now time.Time) Remaining {
	diff := reportedAt.Add(window).Sub(now)
	if diff <= 0 {
		return Remaining{Expired: true}
	}
	return Remaining{Remaining: diff.Truncate(time.Second)}
}

// HoursWindow переводит дробное число часов в длительность
func HoursWindow(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

// Compliant сообщает, уложилась ли задача в SLA
func Compliant(createdAt, completedAt time.Time, slaMinutes int) bool {
	return completedAt.Sub(createdAt) <= time.Duration(slaMinutes)*time.Minute
}

// TaskCompliant проверяет задачу. Без времени завершения или без бюджета SLA задача не считается уложившейся.
func TaskCompliant(t models.Task) bool {
	if t.CompletedAt == nil || t.SLAMinutes <= 0 {
		return false
	}
	return Compliant(t.CreatedAt, *t.CompletedAt, t.SLAMinutes)
}

// CompliancePercent - доля проверенных задач, уложившихся в SLA, в процентах. 0 без проверенных задач.
func CompliancePercent(tasks []models.Task) int {
	verified, compliant := 0, 0
	for _, t := range tasks {
		if t.Status != models.TaskVerified {
			continue
		}
		verified++
		if TaskCompliant(t) {
			compliant++
		}
	}
	return Percent(compliant, verified)
}

// Percent округляет part/total*100 до целого, 0 при пустом total
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
