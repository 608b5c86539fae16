package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Listener подписывается на каналы изменений в Redis
type Listener struct {
	redisClient *redis.Client
	logger      *logrus.Logger
}

// NewListener создает новый Listener
func NewListener(client *redis.Client, logger *logrus.Logger) *Listener {
	return &Listener{redisClient: client, logger: logger}
}

// Stream - поток событий одной подписки. Его нужно закрыть через Close.
type Stream struct {
	events chan ChangeEvent
	pubsub *redis.PubSub
	done   chan struct{}
	once   sync.Once
}

// Events возвращает канал событий; закрывается после Close или отмены контекста
func (s *Stream) Events() <-chan ChangeEvent {
	return s.events
}

// Close освобождает подписку Redis
func (s *Stream) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

// Listen подписывается на изменения коллекций и ждет подтверждения подписки
func (l *Listener) Listen(ctx context.Context, collections ...string) (*Stream, error) {
	channels := make([]string, len(collections))
	for i, c := range collections {
		channels[i] = Channel(c)
	}

	pubsub := l.redisClient.Subscribe(ctx, channels...)
	// Receive ждет подтверждение, чтобы не потерять события сразу после подписки
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %v: %w", channels, err)
	}

	s := &Stream{
		events: make(chan ChangeEvent, 16),
		pubsub: pubsub,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(s.events)
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = s.Close()
				return
			case <-s.done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var event ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					l.logger.WithError(err).WithField("channel", msg.Channel).Error("Failed to unmarshal change event")
					continue
				}
				select {
				case s.events <- event:
				case <-s.done:
					return
				case <-ctx.Done():
					_ = s.Close()
					return
				}
			}
		}
	}()

	return s, nil
}
