package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// EmergencyLocation - либо свободный текст, либо адрес с координатами
type EmergencyLocation struct {
	Text    string
	Address string
	Point   *GeoPoint
}

type structuredLocation struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

func (l EmergencyLocation) MarshalJSON() ([]byte, error) {
	if l.Point == nil && l.Address == "" {
		return json.Marshal(l.Text)
	}
	s := structuredLocation{Address: l.Address}
	if l.Point != nil {
		s.Lat, s.Lng = l.Point.Lat, l.Point.Lng
	}
	return json.Marshal(s)
}

func (l *EmergencyLocation) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*l = EmergencyLocation{}
		return json.Unmarshal(data, &l.Text)
	}
	var s structuredLocation
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = EmergencyLocation{Address: s.Address, Point: &GeoPoint{Lat: s.Lat, Lng: s.Lng}}
	return nil
}

func (l EmergencyLocation) String() string {
	if l.Address != "" {
		return l.Address
	}
	return l.Text
}

// EmergencyReport - экстренное сообщение, только для чтения
type EmergencyReport struct {
	ID          string            `json:"id"`
	Contact     string            `json:"contact"`
	Description string            `json:"desc"`
	Location    EmergencyLocation `json:"location"`
	Source      string            `json:"source"`
	Type        string            `json:"type"`
	ReportedAt  time.Time         `json:"timestamp"`
}
