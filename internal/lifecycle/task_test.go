package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func isTransition(t *testing.T, err error) {
	t.Helper()
	var te *apperr.InvalidTransitionError
	require.Error(t, err)
	assert.True(t, errors.As(err, &te), "expected InvalidTransitionError, got %v", err)
}

func TestFullLifecycle(t *testing.T) {
	task := &models.Task{Status: models.TaskPending}

	require.NoError(t, Start(task, now))
	assert.Equal(t, models.TaskInProgress, task.Status)
	require.NotNil(t, task.StartedAt)
	assert.Equal(t, now, *task.StartedAt)

	done := now.Add(20 * time.Minute)
	require.NoError(t, MarkDone(task, []string{"s3://after/1.jpg"}, done))
	assert.Equal(t, models.TaskDone, task.Status)
	assert.Equal(t, []string{"s3://after/1.jpg"}, task.PhotosAfter)
	assert.Equal(t, done, *task.CompletedAt)

	require.NoError(t, Verify(task))
	assert.Equal(t, models.TaskVerified, task.Status)
}

func TestStart_OnDoneFails(t *testing.T) {
	task := &models.Task{Status: models.TaskDone}
	isTransition(t, Start(task, now))
	assert.Equal(t, models.TaskDone, task.Status)
	assert.Nil(t, task.StartedAt)
}

func TestMarkDone_EmptyEvidence(t *testing.T) {
	task := &models.Task{Status: models.TaskInProgress}
	err := MarkDone(task, nil, now)
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "photosAfter", ve.Field)
	assert.Equal(t, models.TaskInProgress, task.Status)

	err = MarkDone(task, []string{""}, now)
	require.True(t, errors.As(err, &ve))
}

func TestMarkDone_FromPendingIsTransitionError(t *testing.T) {
	task := &models.Task{Status: models.TaskPending}
	isTransition(t, MarkDone(task, []string{"a"}, now))
}

func TestNoShortcutsFromPending(t *testing.T) {
	task := &models.Task{Status: models.TaskPending}
	isTransition(t, Verify(task))
	isTransition(t, Reject(task))
	assert.Equal(t, models.TaskPending, task.Status)
}

func TestVerifiedIsTerminal(t *testing.T) {
	task := &models.Task{Status: models.TaskVerified}
	isTransition(t, Start(task, now))
	isTransition(t, MarkDone(task, []string{"a"}, now))
	isTransition(t, Verify(task))
	isTransition(t, Reject(task))
	assert.Equal(t, models.TaskVerified, task.Status)
	assert.Empty(t, Allowed(models.TaskVerified))
}

func TestReject_KeepsEvidenceUntilNextMarkDone(t *testing.T) {
	task := &models.Task{Status: models.TaskInProgress}
	require.NoError(t, MarkDone(task, []string{"first.jpg", "second.jpg"}, now))
	require.NoError(t, Reject(task))
	assert.Equal(t, models.TaskInProgress, task.Status)
	assert.Equal(t, []string{"first.jpg", "second.jpg"}, task.PhotosAfter)

	require.NoError(t, MarkDone(task, []string{"third.jpg"}, now.Add(time.Hour)))
	assert.Equal(t, []string{"third.jpg"}, task.PhotosAfter)
}

func TestAllowed(t *testing.T) {
	assert.Equal(t, []Action{ActionStart}, Allowed(models.TaskPending))
	assert.Equal(t, []Action{ActionMarkDone}, Allowed(models.TaskInProgress))
	assert.Equal(t, []Action{ActionVerify, ActionReject}, Allowed(models.TaskDone))
}

func TestCompletionPercent(t *testing.T) {
	tasks := []models.Task{
		{Status: models.TaskVerified},
		{Status: models.TaskPending},
		{Status: models.TaskDone},
		{Status: models.TaskInProgress},
	}
	assert.Equal(t, 25, CompletionPercent(tasks))
	assert.Equal(t, 0, CompletionPercent(nil))
}

func TestSummarize(t *testing.T) {
	completed := now.Add(10 * time.Minute)
	tasks := []models.Task{
		{Status: models.TaskVerified, CreatedAt: now, CompletedAt: &completed, SLAMinutes: 30},
		{Status: models.TaskPending},
	}
	s := Summarize(tasks)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 50, s.CompletionPercent)
	assert.Equal(t, 100, s.SLAPercent)
	assert.Equal(t, 1, s.ByStatus[models.TaskPending])
	assert.Equal(t, 0, s.ByStatus[models.TaskDone])
}
