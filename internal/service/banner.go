package service

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/triage"
	"github.com/sirupsen/logrus"
)

// Broadcaster рассылает сообщение всем подключенным клиентам
type Broadcaster interface {
	Broadcast(msg []byte)
}

// BannerMessage - сообщение о числе активных экстренных обращений
type BannerMessage struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

const bannerMessageType = "emergency_banner"

// BannerWatcher следит за коллекцией обращений и рассылает счетчик баннера при его изменении
type BannerWatcher struct {
	store       DocumentStore
	broadcaster Broadcaster
	logger      *logrus.Logger
	count       atomic.Int64
	done        chan struct{}
}

func NewBannerWatcher(store DocumentStore, broadcaster Broadcaster, logger *logrus.Logger) *BannerWatcher {
	w := &BannerWatcher{
		store:       store,
		broadcaster: broadcaster,
		logger:      logger,
		done:        make(chan struct{}),
	}
	w.count.Store(-1)
	return w
}

// Count возвращает последнее рассчитанное значение, -1 до первого снимка
func (w *BannerWatcher) Count() int {
	return int(w.count.Load())
}

// Done закрывается после освобождения подписки
func (w *BannerWatcher) Done() <-chan struct{} {
	return w.done
}

// Greeting возвращает текущее сообщение баннера для нового клиента, nil до первого снимка
func (w *BannerWatcher) Greeting() []byte {
	count := w.Count()
	if count < 0 {
		return nil
	}
	payload, err := json.Marshal(BannerMessage{Type: bannerMessageType, Count: count})
	if err != nil {
		return nil
	}
	return payload
}

// Start подписывается на обращения и запускает горутину обработки снимков
func (w *BannerWatcher) Start(ctx context.Context) error {
	sub, err := w.store.Subscribe(ctx, models.CollectionIssues)
	if err != nil {
		w.logger.WithError(err).Error("Failed to subscribe to issues")
		return err
	}
	w.logger.Info("Starting emergency banner watcher...")

	go func() {
		defer close(w.done)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping emergency banner watcher.")
				return
			case snap, ok := <-sub.C:
				if !ok {
					w.logger.Info("Issue subscription closed.")
					return
				}
				if snap.Err != nil {
					w.logger.WithError(snap.Err).Warn("Issue snapshot failed")
					continue
				}
				w.process(snap.Documents)
			}
		}
	}()
	return nil
}

func (w *BannerWatcher) process(docs []models.Document) {
	log := w.logger.WithFields(logrus.Fields{"service": "banner", "method": "process"})
	issues := decodeAll[models.Issue](docs, log)
	count := triage.BannerCount(issues)
	if prev := w.count.Swap(int64(count)); prev == int64(count) {
		return
	}

	payload, err := json.Marshal(BannerMessage{Type: bannerMessageType, Count: count})
	if err != nil {
		log.WithError(err).Error("Failed to marshal banner message")
		return
	}
	w.broadcaster.Broadcast(payload)
	log.WithField("count", count).Info("Emergency banner updated")
}
