package models

import "time"

// Notification - запись отправленного уведомления. Доставка выполняется вне сервиса.
type Notification struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Number  string    `json:"number"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sentAt"`
}
