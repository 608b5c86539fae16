package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/event_ops_system/internal/feed"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	mu   sync.Mutex
	msgs [][]byte
}

func (b *recordingBroadcaster) Broadcast(msg []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, msg)
}

func (b *recordingBroadcaster) messages() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]byte(nil), b.msgs...)
}

func TestBannerWatcher_BroadcastsOnChange(t *testing.T) {
	store, logger := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan feed.Snapshot)
	closed := make(chan struct{})
	sub := feed.NewSubscription(snapshots, func() { close(closed) })
	store.EXPECT().Subscribe(ctx, models.CollectionIssues).Return(sub, nil)

	broadcaster := &recordingBroadcaster{}
	watcher := NewBannerWatcher(store, broadcaster, logger)
	require.NoError(t, watcher.Start(ctx))

	emergency := doc(t, "1", models.Issue{Severity: models.SeverityEmergency, Status: models.IssueOpen})
	low := doc(t, "2", models.Issue{Severity: models.SeverityLow, Status: models.IssueOpen})

	snapshots <- feed.Snapshot{Collection: models.CollectionIssues, Documents: []models.Document{emergency}}
	snapshots <- feed.Snapshot{Collection: models.CollectionIssues, Documents: []models.Document{emergency, low}}
	snapshots <- feed.Snapshot{Collection: models.CollectionIssues, Documents: []models.Document{low}}

	assert.Eventually(t, func() bool { return len(broadcaster.messages()) == 2 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, watcher.Count())

	var first BannerMessage
	require.NoError(t, json.Unmarshal(broadcaster.messages()[0], &first))
	assert.Equal(t, BannerMessage{Type: "emergency_banner", Count: 1}, first)

	cancel()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("subscription was not released on shutdown")
	}
	<-watcher.Done()
}

func TestBannerWatcher_Greeting(t *testing.T) {
	store, logger := newTestStore(t)
	w := NewBannerWatcher(store, &recordingBroadcaster{}, logger)
	assert.Nil(t, w.Greeting())

	w.process([]models.Document{doc(t, "i1", models.Issue{Severity: models.SeverityEmergency, Status: models.IssueOpen})})

	assert.JSONEq(t, `{"type":"emergency_banner","count":1}`, string(w.Greeting()))
}
