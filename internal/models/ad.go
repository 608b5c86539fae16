package models

import "time"

type AdStatus string

const (
	AdPublished   AdStatus = "published"
	AdUnpublished AdStatus = "unpublished"
)

// Ad - объявление или реклама на информационных экранах
type Ad struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	ValidFrom   time.Time `json:"validFrom"`
	ValidTo     time.Time `json:"validTo"`
	Contact     string    `json:"contact"`
	Status      AdStatus  `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
