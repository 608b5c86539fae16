package repository

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/feed"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLister отдает текущий набор документов и считает вызовы
type fakeLister struct {
	mu    sync.Mutex
	docs  []models.Document
	calls int
	err   error
}

func (f *fakeLister) set(ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs = make([]models.Document, 0, len(ids))
	for _, id := range ids {
		f.docs = append(f.docs, models.Document{ID: id, Data: []byte(`{}`)})
	}
}

func (f *fakeLister) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeLister) list(_ context.Context, _ string) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return append([]models.Document(nil), f.docs...), f.err
}

type failingListener struct{}

func (failingListener) Listen(context.Context, ...string) (*feed.Stream, error) {
	return nil, errors.New("connection refused")
}

func newTestRepository(t *testing.T) (*DocumentRepository, *feed.RedisPublisher, *fakeLister) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	lister := &fakeLister{}
	publisher := feed.NewRedisPublisher(client)
	repo := &DocumentRepository{
		publisher: publisher,
		listener:  feed.NewListener(client, logger),
		logger:    logger,
		list:      lister.list,
	}
	return repo, publisher, lister
}

func nextSnapshot(t *testing.T, sub *feed.Subscription) feed.Snapshot {
	t.Helper()
	select {
	case snap, ok := <-sub.C:
		require.True(t, ok, "subscription closed unexpectedly")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot was not delivered")
	}
	return feed.Snapshot{}
}

func waitClosed(t *testing.T, sub *feed.Subscription) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-sub.C:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscription channel was not closed")
		}
	}
}

func docIDs(snap feed.Snapshot) []string {
	ids := make([]string, 0, len(snap.Documents))
	for _, d := range snap.Documents {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestSubscribe_InitialAndChangeSnapshots(t *testing.T) {
	repo, publisher, lister := newTestRepository(t)
	ctx := context.Background()
	lister.set("i1")

	sub, err := repo.Subscribe(ctx, models.CollectionIssues)
	require.NoError(t, err)
	defer sub.Close()

	initial := nextSnapshot(t, sub)
	assert.Equal(t, models.CollectionIssues, initial.Collection)
	assert.Equal(t, []string{"i1"}, docIDs(initial))

	lister.set("i1", "i2")
	require.NoError(t, publisher.Publish(ctx, feed.ChangeEvent{Collection: models.CollectionIssues, ID: "i2", Op: feed.OpCreate}))

	changed := nextSnapshot(t, sub)
	assert.NoError(t, changed.Err)
	assert.Equal(t, []string{"i1", "i2"}, docIDs(changed))

	sub.Close()
	waitClosed(t, sub)
}

func TestSubscribe_IgnoresOtherCollections(t *testing.T) {
	repo, publisher, lister := newTestRepository(t)
	ctx := context.Background()
	lister.set("t1")

	sub, err := repo.Subscribe(ctx, models.CollectionTasks)
	require.NoError(t, err)
	defer sub.Close()
	nextSnapshot(t, sub)

	require.NoError(t, publisher.Publish(ctx, feed.ChangeEvent{Collection: models.CollectionIssues, ID: "i1", Op: feed.OpCreate}))
	require.NoError(t, publisher.Publish(ctx, feed.ChangeEvent{Collection: models.CollectionTasks, ID: "t1", Op: feed.OpUpdate}))

	nextSnapshot(t, sub)
	assert.Equal(t, 2, lister.count())
}

func TestSubscribe_ReplacesUnreadSnapshot(t *testing.T) {
	repo, publisher, lister := newTestRepository(t)
	ctx := context.Background()
	lister.set("i1")

	sub, err := repo.Subscribe(ctx, models.CollectionIssues)
	require.NoError(t, err)
	defer sub.Close()

	// Начальный снимок не читаем, пока не пройдут два изменения
	lister.set("i1", "i2")
	require.NoError(t, publisher.Publish(ctx, feed.ChangeEvent{Collection: models.CollectionIssues, ID: "i2", Op: feed.OpCreate}))
	require.Eventually(t, func() bool { return lister.count() >= 2 }, 2*time.Second, 10*time.Millisecond)

	lister.set("i1", "i2", "i3")
	require.NoError(t, publisher.Publish(ctx, feed.ChangeEvent{Collection: models.CollectionIssues, ID: "i3", Op: feed.OpCreate}))
	// Третий вызов начинается только после отправки второго снимка
	require.Eventually(t, func() bool { return lister.count() >= 3 }, 2*time.Second, 10*time.Millisecond)

	first := nextSnapshot(t, sub)
	assert.NotEqual(t, []string{"i1"}, docIDs(first), "stale initial snapshot must be replaced")
	if len(first.Documents) == 2 {
		first = nextSnapshot(t, sub)
	}
	assert.Equal(t, []string{"i1", "i2", "i3"}, docIDs(first))
}

func TestSubscribe_ContextCancelClosesChannel(t *testing.T) {
	repo, _, lister := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	lister.set("i1")

	sub, err := repo.Subscribe(ctx, models.CollectionIssues)
	require.NoError(t, err)
	defer sub.Close()
	nextSnapshot(t, sub)

	cancel()
	waitClosed(t, sub)
}

func TestSubscribe_ListFailure(t *testing.T) {
	repo, _, lister := newTestRepository(t)
	lister.err = apperr.Store(apperr.StorePermissionDenied, "list", errors.New("denied"))

	sub, err := repo.Subscribe(context.Background(), models.CollectionIssues)

	assert.Nil(t, sub)
	assert.Equal(t, apperr.StorePermissionDenied, storeKind(t, err))
}

func TestSubscribe_ListenerUnavailable(t *testing.T) {
	repo, _, lister := newTestRepository(t)
	repo.listener = failingListener{}

	sub, err := repo.Subscribe(context.Background(), models.CollectionIssues)

	assert.Nil(t, sub)
	assert.Equal(t, apperr.StoreUnavailable, storeKind(t, err))
	assert.Zero(t, lister.count(), "snapshot must not be read before listening")
}
