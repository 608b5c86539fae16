package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/config"
	"github.com/shenikar/event_ops_system/internal/lifecycle"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=task.go -destination=../handler/http/v1/mocks/mock_task.go -package=mocks

// TaskFilter отбирает задачи по статусу, зоне и исполнителю, пустое поле не фильтрует
type TaskFilter struct {
	Status     models.TaskStatus
	ZoneID     string
	AssignedTo string
}

func (f TaskFilter) match(t models.Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.ZoneID != "" && t.ZoneID != f.ZoneID {
		return false
	}
	if f.AssignedTo != "" && t.AssignedTo.ID != f.AssignedTo {
		return false
	}
	return true
}

// TaskService определяет контракт жизненного цикла задач
type TaskService interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, id string) (*models.Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error)
	StartTask(ctx context.Context, id string) (*models.Task, error)
	MarkDone(ctx context.Context, id string, photosAfter []string) (*models.Task, error)
	VerifyTask(ctx context.Context, id string) (*models.Task, error)
	RejectTask(ctx context.Context, id string) (*models.Task, error)
	Stats(ctx context.Context) (lifecycle.Stats, error)
}

type taskService struct {
	store      DocumentStore
	logger     *logrus.Logger
	defaultSLA int
	now        func() time.Time
}

func NewTaskService(store DocumentStore, logger *logrus.Logger, cfg *config.Config) TaskService {
	return &taskService{
		store:      store,
		logger:     logger,
		defaultSLA: cfg.TaskDefaultSLAMinutes,
		now:        time.Now,
	}
}

// CreateTask создает задачу в статусе Pending
func (s *taskService) CreateTask(ctx context.Context, task *models.Task) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "task",
		"method":  "CreateTask",
		"title":   task.Title,
	})

	task.Title = strings.TrimSpace(task.Title)
	if err := required("title", task.Title); err != nil {
		log.WithError(err).Warn("Task validation failed")
		return err
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if !task.Priority.Valid() {
		return apperr.Validation("priority", "unknown priority %q", task.Priority)
	}
	if task.SLAMinutes < 0 {
		return apperr.Validation("slaMinutes", "must be non-negative")
	}
	if task.SLAMinutes == 0 {
		task.SLAMinutes = s.defaultSLA
	}
	if !task.AssignedTo.IsZero() {
		if err := s.checkAssignee(ctx, task.AssignedTo); err != nil {
			log.WithError(err).Warn("Task assignee check failed")
			return err
		}
	}

	task.Status = models.TaskPending
	task.CreatedAt = s.now().UTC()
	task.StartedAt = nil
	task.CompletedAt = nil
	task.PhotosAfter = []string{}
	if task.PhotosBefore == nil {
		task.PhotosBefore = []string{}
	}

	id, err := s.store.Create(ctx, models.CollectionTasks, task)
	if err != nil {
		log.WithError(err).Error("Failed to create task in store")
		return fmt.Errorf("service: could not create task: %w", err)
	}
	task.ID = id
	log.WithField("task_id", id).Info("Task created successfully")
	return nil
}

func (s *taskService) checkAssignee(ctx context.Context, ref models.Ref) error {
	if !ref.Kind.Valid() {
		return apperr.Validation("assignedTo.type", "unknown reference kind %q", ref.Kind)
	}
	if err := required("assignedTo.id", ref.ID); err != nil {
		return err
	}
	if _, err := s.store.Get(ctx, ref.Kind.Collection(), ref.ID); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.Validation("assignedTo", "%s does not exist", ref)
		}
		return fmt.Errorf("service: could not check assignee: %w", err)
	}
	return nil
}

func (s *taskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := load[models.Task](ctx, s.store, models.CollectionTasks, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get task: %w", err)
	}
	return &task, nil
}

// ListTasks возвращает задачи, новые первыми
func (s *taskService) ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "task", "method": "ListTasks"})
	tasks, err := loadAll[models.Task](ctx, s.store, models.CollectionTasks, log)
	if err != nil {
		log.WithError(err).Error("Failed to list tasks from store")
		return nil, fmt.Errorf("service: could not list tasks: %w", err)
	}
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.match(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// transition загружает задачу, применяет переход и записывает изменившиеся поля
func (s *taskService) transition(ctx context.Context, id string, action lifecycle.Action, apply func(*models.Task) error) (*models.Task, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "task",
		"method":  "transition",
		"task_id": id,
		"action":  action,
	})

	task, err := load[models.Task](ctx, s.store, models.CollectionTasks, id)
	if err != nil {
		log.WithError(err).Warn("Failed to load task")
		return nil, fmt.Errorf("service: could not %s task: %w", action, err)
	}
	from := task.Status
	if err := apply(&task); err != nil {
		log.WithError(err).WithField("status", from).Warn("Task transition rejected")
		return nil, err
	}

	patch := models.Patch{
		"status":      task.Status,
		"startedAt":   task.StartedAt,
		"completedAt": task.CompletedAt,
		"photosAfter": task.PhotosAfter,
	}
	if err := s.store.Update(ctx, models.CollectionTasks, id, patch); err != nil {
		log.WithError(err).Error("Failed to update task in store")
		return nil, fmt.Errorf("service: could not %s task: %w", action, err)
	}
	log.WithFields(logrus.Fields{"from": from, "to": task.Status}).Info("Task transition applied")
	return &task, nil
}

func (s *taskService) StartTask(ctx context.Context, id string) (*models.Task, error) {
	return s.transition(ctx, id, lifecycle.ActionStart, func(t *models.Task) error {
		return lifecycle.Start(t, s.now().UTC())
	})
}

func (s *taskService) MarkDone(ctx context.Context, id string, photosAfter []string) (*models.Task, error) {
	return s.transition(ctx, id, lifecycle.ActionMarkDone, func(t *models.Task) error {
		return lifecycle.MarkDone(t, photosAfter, s.now().UTC())
	})
}

func (s *taskService) VerifyTask(ctx context.Context, id string) (*models.Task, error) {
	return s.transition(ctx, id, lifecycle.ActionVerify, lifecycle.Verify)
}

func (s *taskService) RejectTask(ctx context.Context, id string) (*models.Task, error) {
	return s.transition(ctx, id, lifecycle.ActionReject, lifecycle.Reject)
}

// Stats считает сводку по всем задачам
func (s *taskService) Stats(ctx context.Context) (lifecycle.Stats, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "task", "method": "Stats"})
	tasks, err := loadAll[models.Task](ctx, s.store, models.CollectionTasks, log)
	if err != nil {
		log.WithError(err).Error("Failed to list tasks from store")
		return lifecycle.Stats{}, fmt.Errorf("service: could not compute task stats: %w", err)
	}
	return lifecycle.Summarize(tasks), nil
}
