package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/feed"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/service"
	"github.com/sirupsen/logrus"
)

// ChangeListener открывает поток событий изменений
type ChangeListener interface {
	Listen(ctx context.Context, collections ...string) (*feed.Stream, error)
}

// DocumentRepository - хранилище документов поверх таблицы documents (jsonb)
type DocumentRepository struct {
	db        *pgxpool.Pool
	publisher feed.Publisher
	listener  ChangeListener
	logger    *logrus.Logger

	// list читает снимок коллекции для Subscribe, по умолчанию List
	list func(ctx context.Context, collection string) ([]models.Document, error)
}

func NewDocumentRepository(db *pgxpool.Pool, publisher feed.Publisher, listener ChangeListener, logger *logrus.Logger) service.DocumentStore {
	r := &DocumentRepository{
		db:        db,
		publisher: publisher,
		listener:  listener,
		logger:    logger,
	}
	r.list = r.List
	return r
}

// Create создает документ с новым UUID и возвращает его id
func (r *DocumentRepository) Create(ctx context.Context, collection string, doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", apperr.Validation("", "document is not serializable: %v", err)
	}
	id := uuid.NewString()
	query := `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3);
	`
	if _, err := r.db.Exec(ctx, query, collection, id, data); err != nil {
		return "", classify("create", err)
	}
	r.notify(ctx, collection, id, feed.OpCreate)
	return id, nil
}

// Set создает или полностью перезаписывает документ с заданным id
func (r *DocumentRepository) Set(ctx context.Context, collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return apperr.Validation("", "document is not serializable: %v", err)
	}
	query := `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = NOW();
	`
	if _, err := r.db.Exec(ctx, query, collection, id, data); err != nil {
		return classify("set", err)
	}
	r.notify(ctx, collection, id, feed.OpSet)
	return nil
}

// Get возвращает документ по id
func (r *DocumentRepository) Get(ctx context.Context, collection, id string) (models.Document, error) {
	doc := models.Document{ID: id}
	query := `
		SELECT data, created_at, updated_at
		FROM documents
		WHERE collection = $1 AND id = $2;
	`
	err := r.db.QueryRow(ctx, query, collection, id).Scan(&doc.Data, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Document{}, apperr.Store(apperr.StoreNotFound, "get",
				fmt.Errorf("%s/%s not found", collection, id))
		}
		return models.Document{}, classify("get", err)
	}
	return doc, nil
}

// List возвращает все документы коллекции в порядке создания
func (r *DocumentRepository) List(ctx context.Context, collection string) ([]models.Document, error) {
	query := `
		SELECT id, data, created_at, updated_at
		FROM documents
		WHERE collection = $1
		ORDER BY created_at, id;
	`
	rows, err := r.db.Query(ctx, query, collection)
	if err != nil {
		return nil, classify("list", err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.Data, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, classify("list", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list", err)
	}
	return docs, nil
}

// Update сливает ключи верхнего уровня patch с документом. Последняя запись побеждает.
func (r *DocumentRepository) Update(ctx context.Context, collection, id string, patch models.Patch) error {
	data, err := json.Marshal(patch)
	if err != nil {
		return apperr.Validation("", "patch is not serializable: %v", err)
	}
	query := `
		UPDATE documents SET
			data = data || $3::jsonb,
			updated_at = NOW()
		WHERE collection = $1 AND id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, collection, id, data)
	if err != nil {
		return classify("update", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperr.Store(apperr.StoreNotFound, "update", fmt.Errorf("%s/%s not found", collection, id))
	}
	r.notify(ctx, collection, id, feed.OpUpdate)
	return nil
}

// Delete удаляет документ
func (r *DocumentRepository) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, collection, id)
	if err != nil {
		return classify("delete", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperr.Store(apperr.StoreNotFound, "delete", fmt.Errorf("%s/%s not found", collection, id))
	}
	r.notify(ctx, collection, id, feed.OpDelete)
	return nil
}

// Subscribe отдает полный снимок коллекции сразу и после каждого изменения
func (r *DocumentRepository) Subscribe(ctx context.Context, collection string) (*feed.Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)

	stream, err := r.listener.Listen(subCtx, collection)
	if err != nil {
		cancel()
		return nil, apperr.Store(apperr.StoreUnavailable, "subscribe", err)
	}

	initial, err := r.list(subCtx, collection)
	if err != nil {
		_ = stream.Close()
		cancel()
		return nil, err
	}

	out := make(chan feed.Snapshot, 1)
	out <- feed.Snapshot{Collection: collection, Documents: initial}

	go func() {
		defer close(out)
		defer stream.Close()
		for range stream.Events() {
			docs, err := r.list(subCtx, collection)
			if subCtx.Err() != nil {
				return
			}
			snap := feed.Snapshot{Collection: collection, Documents: docs, Err: err}
			// старый непрочитанный снимок заменяется свежим
			select {
			case <-out:
			default:
			}
			select {
			case out <- snap:
			case <-subCtx.Done():
				return
			}
		}
	}()

	return feed.NewSubscription(out, cancel), nil
}

func (r *DocumentRepository) notify(ctx context.Context, collection, id string, op feed.Op) {
	event := feed.ChangeEvent{Collection: collection, ID: id, Op: op, At: time.Now().UTC()}
	if err := r.publisher.Publish(ctx, event); err != nil {
		// запись уже зафиксирована, подписчики увидят ее со следующим событием
		r.logger.WithError(err).WithFields(logrus.Fields{
			"collection": collection,
			"id":         id,
			"op":         op,
		}).Warn("Failed to publish change event")
	}
}

// classify переводит ошибки pgx в StoreError
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42501":
			return apperr.Store(apperr.StorePermissionDenied, op, err)
		case "57P01", "57P02", "57P03", "53300":
			return apperr.Store(apperr.StoreUnavailable, op, err)
		}
		return apperr.Store(apperr.StoreInternal, op, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.Store(apperr.StoreUnavailable, op, err)
	}
	return apperr.Store(apperr.StoreInternal, op, err)
}
