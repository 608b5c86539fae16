// Package apperr holds the error taxonomy shared by the services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError - отсутствующее или некорректное поле. Возвращается до любой записи в хранилище.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// Validation создает ValidationError
func Validation(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError - недопустимый переход состояния задачи или обращения
type InvalidTransitionError struct {
	Entity string
	From   string
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot %s %s in status %q", e.Action, e.Entity, e.From)
}

// Transition создает InvalidTransitionError
func Transition(entity, from, action string) error {
	return &InvalidTransitionError{Entity: entity, From: from, Action: action}
}

// StoreKind классифицирует ошибки хранилища
type StoreKind string

const (
	StoreNotFound         StoreKind = "not_found"
	StorePermissionDenied StoreKind = "permission_denied"
	StoreUnavailable      StoreKind = "unavailable"
	StoreInternal         StoreKind = "internal"
)

// StoreError - ошибка адаптера хранилища. Никогда не повторяется автоматически.
type StoreError struct {
	Kind StoreKind
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("store %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("store %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store создает StoreError
func Store(kind StoreKind, op string, err error) error {
	return &StoreError{Kind: kind, Op: op, Err: err}
}

// IsNotFound сообщает, что запись отсутствует в хранилище
func IsNotFound(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == StoreNotFound
}

// BatchFailure описывает одну неудачную запись пакета
type BatchFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// BatchResult - итог пакетной операции. Успешные записи не откатываются.
type BatchResult struct {
	Succeeded []string       `json:"succeeded"`
	Failures  []BatchFailure `json:"failures"`
}

func (r *BatchResult) Ok(key string) {
	r.Succeeded = append(r.Succeeded, key)
}

func (r *BatchResult) Fail(key string, err error) {
	r.Failures = append(r.Failures, BatchFailure{Key: key, Error: err.Error()})
}

// PartialFailure возвращает *PartialBatchError, если хоть одна запись не прошла
func (r *BatchResult) PartialFailure() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return &PartialBatchError{Succeeded: len(r.Succeeded), Failed: len(r.Failures)}
}

// PartialBatchError сообщает счетчик успехов и неудач пакета
type PartialBatchError struct {
	Succeeded int
	Failed    int
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("batch partially failed: %d succeeded, %d failed", e.Succeeded, e.Failed)
}
