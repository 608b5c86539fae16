package models

import (
	"encoding/json"
	"fmt"
)

// RefKind - вид цели ссылки
type RefKind string

const (
	RefStaff RefKind = "staff"
	RefTeam  RefKind = "team"
)

func (k RefKind) Valid() bool {
	return k == RefStaff || k == RefTeam
}

// Collection возвращает коллекцию, в которой живет цель ссылки
func (k RefKind) Collection() string {
	switch k {
	case RefStaff:
		return CollectionStaff
	case RefTeam:
		return CollectionTeams
	}
	return ""
}

// Ref - тегированная ссылка {type, id}
type Ref struct {
	Kind RefKind `json:"type"`
	ID   string  `json:"id"`
}

func (r Ref) IsZero() bool {
	return r.Kind == "" && r.ID == ""
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%s", r.Kind, r.ID)
}

// UnmarshalJSON отклоняет неизвестные виды ссылок
func (r *Ref) UnmarshalJSON(data []byte) error {
	type plain Ref
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Kind != "" && !p.Kind.Valid() {
		return fmt.Errorf("unknown reference kind %q", p.Kind)
	}
	*r = Ref(p)
	return nil
}
