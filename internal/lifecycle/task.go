// Package lifecycle enforces the task state machine:
//
//	Pending -> In Progress -> Done -> Verified
//	                 ^          |
//	                 +- reject -+
//
// Verified is terminal. Transitions mutate the task in place and never touch
// the store.
package lifecycle

import (
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/sla"
)

// Action - имя перехода
type Action string

const (
	ActionStart    Action = "start"
	ActionMarkDone Action = "markDone"
	ActionVerify   Action = "verify"
	ActionReject   Action = "reject"
)

var transitions = map[Action]struct {
	from models.TaskStatus
	to   models.TaskStatus
}{
	ActionStart:    {models.TaskPending, models.TaskInProgress},
	ActionMarkDone: {models.TaskInProgress, models.TaskDone},
	ActionVerify:   {models.TaskDone, models.TaskVerified},
	ActionReject:   {models.TaskDone, models.TaskInProgress},
}

// CanApply сообщает, допустим ли переход из текущего статуса
func CanApply(status models.TaskStatus, action Action) bool {
	tr, ok := transitions[action]
	return ok && tr.from == status
}

// Allowed возвращает переходы, доступные из статуса
func Allowed(status models.TaskStatus) []Action {
	var out []Action
	for _, a := range []Action{ActionStart, ActionMarkDone, ActionVerify, ActionReject} {
		if CanApply(status, a) {
			out = append(out, a)
		}
	}
	return out
}

func apply(t *models.Task, action Action) error {
	if !CanApply(t.Status, action) {
		return apperr.Transition("task", string(t.Status), string(action))
	}
	t.Status = transitions[action].to
	return nil
}

// Start: Pending -> In Progress, фиксирует startedAt
func Start(t *models.Task, now time.Time) error {
	if err := apply(t, ActionStart); err != nil {
		return err
	}
	t.StartedAt = &now
	return nil
}

// MarkDone: In Progress -> Done. Требует хотя бы одно фото "после"; набор заменяет прежний целиком.
func MarkDone(t *models.Task, evidence []string, now time.Time) error {
	if !CanApply(t.Status, ActionMarkDone) {
		return apperr.Transition("task", string(t.Status), string(ActionMarkDone))
	}
	photos := make([]string, 0, len(evidence))
	for _, e := range evidence {
		if e != "" {
			photos = append(photos, e)
		}
	}
	if len(photos) == 0 {
		return apperr.Validation("photosAfter", "at least one after photo is required")
	}
	_ = apply(t, ActionMarkDone)
	t.PhotosAfter = photos
	t.CompletedAt = &now
	return nil
}

// Verify: Done -> Verified, терминальный статус
func Verify(t *models.Task) error {
	return apply(t, ActionVerify)
}

// Reject: Done -> In Progress. Приложенные фото и completedAt остаются до следующего MarkDone.
func Reject(t *models.Task) error {
	return apply(t, ActionReject)
}

// CompletionPercent - доля проверенных задач в процентах, 0 для пустой коллекции
func CompletionPercent(tasks []models.Task) int {
	verified := 0
	for _, t := range tasks {
		if t.Status == models.TaskVerified {
			verified++
		}
	}
	return sla.Percent(verified, len(tasks))
}

// Stats - сводка по коллекции задач
type Stats struct {
	Total             int                       `json:"total"`
	ByStatus          map[models.TaskStatus]int `json:"byStatus"`
	CompletionPercent int                       `json:"completionPercent"`
	SLAPercent        int                       `json:"slaPercent"`
}

func Summarize(tasks []models.Task) Stats {
	byStatus := map[models.TaskStatus]int{
		models.TaskPending:    0,
		models.TaskInProgress: 0,
		models.TaskDone:       0,
		models.TaskVerified:   0,
	}
	for _, t := range tasks {
		byStatus[t.Status]++
	}
	return Stats{
		Total:             len(tasks),
		ByStatus:          byStatus,
		CompletionPercent: CompletionPercent(tasks),
		SLAPercent:        sla.CompliancePercent(tasks),
	}
}
