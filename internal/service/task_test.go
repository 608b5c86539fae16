package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestTaskService(t *testing.T) (*taskService, *mocks.MockDocumentStore) {
	store, logger := newTestStore(t)
	svc := NewTaskService(store, logger, testConfig()).(*taskService)
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func TestCreateTask_Defaults(t *testing.T) {
	svc, store := newTestTaskService(t)
	ctx := context.Background()

	store.EXPECT().
		Create(ctx, models.CollectionTasks, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, d any) (string, error) {
			task := d.(*models.Task)
			assert.Equal(t, models.TaskPending, task.Status)
			assert.Equal(t, models.PriorityMedium, task.Priority)
			assert.Equal(t, 60, task.SLAMinutes)
			assert.Equal(t, fixedNow, task.CreatedAt)
			return "task-1", nil
		}).Times(1)

	task := &models.Task{Title: "  Clean toilet T1  ", Status: models.TaskVerified}
	err := svc.CreateTask(ctx, task)

	require.NoError(t, err)
	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "Clean toilet T1", task.Title)
}

func TestCreateTask_MissingTitle(t *testing.T) {
	svc, store := newTestTaskService(t)
	store.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := svc.CreateTask(context.Background(), &models.Task{})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}

func TestCreateTask_UnknownAssignee(t *testing.T) {
	svc, store := newTestTaskService(t)
	ctx := context.Background()

	store.EXPECT().
		Get(ctx, models.CollectionTeams, "team-x").
		Return(models.Document{}, apperr.Store(apperr.StoreNotFound, "get", nil)).
		Times(1)
	store.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := svc.CreateTask(ctx, &models.Task{
		Title:      "Refill water",
		AssignedTo: models.Ref{Kind: models.RefTeam, ID: "team-x"},
	})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "assignedTo", verr.Field)
}

func TestStartTask_Success(t *testing.T) {
	svc, store := newTestTaskService(t)
	ctx := context.Background()

	store.EXPECT().
		Get(ctx, models.CollectionTasks, "task-1").
		Return(doc(t, "task-1", models.Task{Title: "t", Status: models.TaskPending}), nil)
	store.EXPECT().
		Update(ctx, models.CollectionTasks, "task-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, patch models.Patch) error {
			assert.Equal(t, models.TaskInProgress, patch["status"])
			assert.Equal(t, &fixedNow, patch["startedAt"])
			return nil
		})

	task, err := svc.StartTask(ctx, "task-1")

	require.NoError(t, err)
	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, models.TaskInProgress, task.Status)
}

func TestMarkDone_WithoutEvidence(t *testing.T) {
	svc, store := newTestTaskService(t)
	ctx := context.Background()

	store.EXPECT().
		Get(ctx, models.CollectionTasks, "task-1").
		Return(doc(t, "task-1", models.Task{Status: models.TaskInProgress}), nil)
	store.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.MarkDone(ctx, "task-1", []string{""})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "photosAfter", verr.Field)
}

func TestVerifyTask_FromPending(t *testing.T) {
	svc, store := newTestTaskService(t)
	ctx := context.Background()

	store.EXPECT().
		Get(ctx, models.CollectionTasks, "task-1").
		Return(doc(t, "task-1", models.Task{Status: models.TaskPending}), nil)
	store.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.VerifyTask(ctx, "task-1")

	var terr *apperr.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, string(models.TaskPending), terr.From)
}

func TestRejectTask_StoreFailure(t *testing.T) {
	svc, store := newTestTaskService(t)
	ctx := context.Background()
	storeErr := apperr.Store(apperr.StoreUnavailable, "update", errors.New("connection refused"))

	store.EXPECT().
		Get(ctx, models.CollectionTasks, "task-1").
		Return(doc(t, "task-1", models.Task{Status: models.TaskDone, PhotosAfter: []string{"a.jpg"}}), nil)
	store.EXPECT().Update(ctx, models.CollectionTasks, "task-1", gomock.Any()).Return(storeErr)

	_, err := svc.RejectTask(ctx, "task-1")

	var serr *apperr.StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, apperr.StoreUnavailable, serr.Kind)
}

func TestStats(t *testing.T) {
	svc, store := newTestTaskService(t)
	ctx := context.Background()
	done := fixedNow.Add(30 * time.Minute)

	store.EXPECT().List(ctx, models.CollectionTasks).Return([]models.Document{
		doc(t, "1", models.Task{Status: models.TaskVerified, CreatedAt: fixedNow, CompletedAt: &done, SLAMinutes: 60}),
		doc(t, "2", models.Task{Status: models.TaskPending}),
		{ID: "broken", Data: []byte(`{"status": 5}`)},
	}, nil)

	stats, err := svc.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 50, stats.CompletionPercent)
	assert.Equal(t, 100, stats.SLAPercent)
}
