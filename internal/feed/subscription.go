package feed

import (
	"sync"

	"github.com/shenikar/event_ops_system/internal/models"
)

// Snapshot - полный набор документов коллекции на момент изменения
type Snapshot struct {
	Collection string
	Documents  []models.Document
	Err        error
}

// Subscription - дескриптор живой подписки на коллекцию.
// Вызывающий обязан вызвать Close при завершении: автоматической очистки нет.
type Subscription struct {
	C <-chan Snapshot

	cancel func()
	once   sync.Once
}

// NewSubscription связывает канал снимков с функцией отмены
func NewSubscription(c <-chan Snapshot, cancel func()) *Subscription {
	return &Subscription{C: c, cancel: cancel}
}

// Close отменяет подписку. Повторный вызов безопасен.
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
}
