package sla

import (
	"testing"
	"time"

	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCountdown_Expired(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	got := Countdown(now.Add(-25*time.Hour), HoursWindow(24), now)
	assert.True(t, got.Expired)
	assert.Equal(t, "Expired", got.String())
}

func TestCountdown_ExactDeadlineIsExpired(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	got := Countdown(now.Add(-24*time.Hour), DefaultIssueWindow, now)
	assert.True(t, got.Expired)
}

func TestCountdown_Remaining(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	got := Countdown(now.Add(-90*time.Minute), HoursWindow(24), now)
	assert.False(t, got.Expired)
	assert.Equal(t, 22*time.Hour+30*time.Minute, got.Remaining)
	assert.Equal(t, "22h 30m 0s", got.String())
}

func TestCountdown_FloorsSubSecond(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	reported := now.Add(-time.Hour + 61*time.Second + 900*time.Millisecond)
	got := Countdown(reported, 2*time.Hour, now)
	assert.Equal(t, "1h 1m 1s", got.String())
}

func TestHoursWindow_Fractional(t *testing.T) {
	assert.Equal(t, 90*time.Minute, HoursWindow(1.5))
}

func TestCompliant(t *testing.T) {
	created := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	assert.True(t, Compliant(created, created.Add(30*time.Minute), 30))
	assert.False(t, Compliant(created, created.Add(31*time.Minute), 30))
}

func TestCompliancePercent(t *testing.T) {
	created := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	fast := created.Add(20 * time.Minute)
	slow := created.Add(3 * time.Hour)

	tasks := []models.Task{
		{Status: models.TaskVerified, CreatedAt: created, CompletedAt: &fast, SLAMinutes: 30},
		{Status: models.TaskVerified, CreatedAt: created, CompletedAt: &slow, SLAMinutes: 30},
		{Status: models.TaskVerified, CreatedAt: created, CompletedAt: &fast, SLAMinutes: 60},
		{Status: models.TaskDone, CreatedAt: created, CompletedAt: &fast, SLAMinutes: 60},
		{Status: models.TaskVerified, CreatedAt: created, SLAMinutes: 60},
	}
	// 2 из 4 проверенных
	assert.Equal(t, 50, CompliancePercent(tasks))
}

func TestCompliancePercent_NoVerified(t *testing.T) {
	assert.Equal(t, 0, CompliancePercent(nil))
	assert.Equal(t, 0, CompliancePercent([]models.Task{{Status: models.TaskDone}}))
}

func TestPercent_Rounds(t *testing.T) {
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 25, Percent(1, 4))
	assert.Equal(t, 0, Percent(3, 0))
}
