package models

// Zone - операционная зона площадки
type Zone struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    *GeoPoint `json:"location,omitempty"`
}

// Headcount - текущая численность посетителей в зоне, id документа совпадает с id зоны
type Headcount struct {
	ZoneID string `json:"zoneId"`
	Count  int    `json:"count"`
}
