// Package realtime pushes server events to dashboard clients over SockJS.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Client - подключенный клиент с буфером исходящих сообщений
type Client struct {
	ID   string
	Send chan []byte

	// topics == nil - все типы, кроме muted
	topics map[string]bool
	muted  map[string]bool
}

// NewClient создает клиента, подписанного на все типы сообщений
func NewClient(id string, buffer int) *Client {
	return &Client{ID: id, Send: make(chan []byte, buffer)}
}

func (c *Client) wants(topic string) bool {
	if c.topics == nil {
		return !c.muted[topic]
	}
	return c.topics[topic]
}

// Hub рассылает сообщения зарегистрированным клиентам. Медленный клиент теряет сообщение, рассылка не блокируется.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{clients: make(map[string]*Client), logger: logger}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

// Unregister удаляет клиента и закрывает его канал. Повторный вызов ничего не делает.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)
}

// Subscribe ограничивает клиента перечисленными типами, пустой список снимает ограничение
func (h *Hub) Subscribe(client *Client, topics []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	client.muted = nil
	if len(topics) == 0 {
		client.topics = nil
		return
	}
	client.topics = make(map[string]bool, len(topics))
	for _, t := range topics {
		client.topics[t] = true
	}
}

// Unsubscribe отключает перечисленные типы, пустой список отключает все
func (h *Hub) Unsubscribe(client *Client, topics []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(topics) == 0 {
		client.topics = map[string]bool{}
		client.muted = nil
		return
	}
	for _, t := range topics {
		if client.topics != nil {
			delete(client.topics, t)
			continue
		}
		if client.muted == nil {
			client.muted = make(map[string]bool, len(topics))
		}
		client.muted[t] = true
	}
}

// Len - число подключенных клиентов
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast отправляет JSON-сообщение всем клиентам, подписанным на его поле type
func (h *Hub) Broadcast(msg []byte) {
	topic := messageType(msg)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if !client.wants(topic) {
			continue
		}
		select {
		case client.Send <- msg:
		default:
			h.logger.WithFields(logrus.Fields{"client_id": client.ID, "type": topic}).Warn("Dropping message for slow client")
		}
	}
}

func messageType(msg []byte) string {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &envelope); err != nil {
		return ""
	}
	return envelope.Type
}

// SubscribeMessage - команда клиента {"action":"subscribe","topics":[...]}
type SubscribeMessage struct {
	Action string   `json:"action"`
	Topics []string `json:"topics"`
}

func ParseSubscribe(data []byte) (SubscribeMessage, bool) {
	var msg SubscribeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return SubscribeMessage{}, false
	}
	if msg.Action != "subscribe" && msg.Action != "unsubscribe" {
		return SubscribeMessage{}, false
	}
	return msg, true
}
