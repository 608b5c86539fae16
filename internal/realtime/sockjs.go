package realtime

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/igm/sockjs-go/sockjs"
	"github.com/sirupsen/logrus"
)

const clientBuffer = 16

// NewHandler возвращает SockJS-обработчик с префиксом prefix.
// greeting, если задан, отправляется клиенту сразу после подключения.
func NewHandler(prefix string, hub *Hub, logger *logrus.Logger, greeting func() []byte) http.Handler {
	return sockjs.NewHandler(prefix, sockjs.DefaultOptions, func(session sockjs.Session) {
		client := NewClient(uuid.NewString(), clientBuffer)
		log := logger.WithField("client_id", client.ID)
		hub.Register(client)
		defer hub.Unregister(client)
		log.Info("Realtime client connected")

		if greeting != nil {
			if msg := greeting(); msg != nil {
				_ = session.Send(string(msg))
			}
		}

		go func() {
			for msg := range client.Send {
				if err := session.Send(string(msg)); err != nil {
					log.WithError(err).Debug("Failed to send realtime message")
				}
			}
		}()

		for {
			msg, err := session.Recv()
			if err != nil {
				log.Info("Realtime client disconnected")
				return
			}
			parsed, ok := ParseSubscribe([]byte(msg))
			if !ok {
				continue
			}
			if parsed.Action == "unsubscribe" {
				hub.Unsubscribe(client, parsed.Topics)
			} else {
				hub.Subscribe(client, parsed.Topics)
			}
		}
	})
}
