package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/feed"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// DocumentStore определяет контракт хранилища документов: коллекция -> набор записей
type DocumentStore interface {
	Create(ctx context.Context, collection string, doc any) (string, error)
	Set(ctx context.Context, collection, id string, doc any) error
	Get(ctx context.Context, collection, id string) (models.Document, error)
	List(ctx context.Context, collection string) ([]models.Document, error)
	Update(ctx context.Context, collection, id string, patch models.Patch) error
	Delete(ctx context.Context, collection, id string) error
	Subscribe(ctx context.Context, collection string) (*feed.Subscription, error)
}

// decode разбирает документ и подставляет его id в поле с тегом json:"id"
func decode[T any](doc models.Document) (T, error) {
	var v T
	if len(doc.Data) > 0 {
		if err := json.Unmarshal(doc.Data, &v); err != nil {
			return v, fmt.Errorf("decode document %s: %w", doc.ID, err)
		}
	}
	idJSON, _ := json.Marshal(map[string]string{"id": doc.ID})
	_ = json.Unmarshal(idJSON, &v)
	return v, nil
}

// decodeAll пропускает битые документы: записи приходят из слабо типизированного хранилища
func decodeAll[T any](docs []models.Document, log *logrus.Entry) []T {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := decode[T](doc)
		if err != nil {
			log.WithError(err).WithField("document_id", doc.ID).Warn("Skipping malformed document")
			continue
		}
		out = append(out, v)
	}
	return out
}

func load[T any](ctx context.Context, store DocumentStore, collection, id string) (T, error) {
	doc, err := store.Get(ctx, collection, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](doc)
}

func loadAll[T any](ctx context.Context, store DocumentStore, collection string, log *logrus.Entry) ([]T, error) {
	docs, err := store.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](docs, log), nil
}

// ImportRow - слабо типизированная строка массового импорта
type ImportRow map[string]string

// Get возвращает первое непустое значение среди ключей
func (r ImportRow) Get(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r[k]); v != "" {
			return v
		}
	}
	return ""
}

// Normalize приводит заголовки к нижнему регистру без крайних пробелов
func (r ImportRow) Normalize() ImportRow {
	out := make(ImportRow, len(r))
	for k, v := range r {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

// Float разбирает конечное число
func (r ImportRow) Float(key string) (float64, error) {
	raw := strings.TrimSpace(r[key])
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, apperr.Validation(key, "%q is not a finite number", raw)
	}
	return f, nil
}

// Point разбирает пару lat/lng
func (r ImportRow) Point() (models.GeoPoint, error) {
	lat, err := r.Float("lat")
	if err != nil {
		return models.GeoPoint{}, err
	}
	lng, err := r.Float("lng")
	if err != nil {
		return models.GeoPoint{}, err
	}
	p := models.GeoPoint{Lat: lat, Lng: lng}
	return p, validatePoint(p)
}

func validatePoint(p models.GeoPoint) error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return apperr.Validation("lat", "latitude must be a finite number in [-90, 90]")
	}
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) || p.Lng < -180 || p.Lng > 180 {
		return apperr.Validation("lng", "longitude must be a finite number in [-180, 180]")
	}
	return nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validation(field, "is required")
	}
	return nil
}

// unique убирает дубликаты и пустые id с сохранением порядка
func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func without(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

// Page - страница результатов
type Page[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

func paginate[T any](items []T, page, pageSize int) Page[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{Items: items[start:end], Page: page, PageSize: pageSize, Total: len(items)}
}
