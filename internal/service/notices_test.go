package service

import (
	"context"
	"testing"
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateAd_Unpublished(t *testing.T) {
	store, logger := newTestStore(t)
	svc := NewAdService(store, logger).(*adService)
	svc.now = func() time.Time { return fixedNow }

	store.EXPECT().
		Create(gomock.Any(), models.CollectionAds, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, v any) (string, error) {
			ad := v.(*models.Ad)
			assert.Equal(t, models.AdUnpublished, ad.Status)
			assert.Equal(t, "Lost and found", ad.Title)
			return "ad-1", nil
		})

	ad := &models.Ad{
		Title:       "  Lost and found ",
		Description: "Desk near gate B",
		Type:        "announcement",
		Contact:     "+100",
		ValidFrom:   fixedNow,
		ValidTo:     fixedNow.Add(48 * time.Hour),
		Status:      models.AdPublished,
	}
	require.NoError(t, svc.CreateAd(context.Background(), ad))
	assert.Equal(t, "ad-1", ad.ID)
	assert.Equal(t, fixedNow, ad.CreatedAt)
}

func TestCreateAd_Validation(t *testing.T) {
	base := models.Ad{
		Title:       "Food court",
		Description: "Open till late",
		Type:        "ad",
		Contact:     "+100",
		ValidFrom:   fixedNow,
		ValidTo:     fixedNow.Add(time.Hour),
	}
	tests := []struct {
		name   string
		mutate func(a *models.Ad)
		field  string
	}{
		{"missing title", func(a *models.Ad) { a.Title = " " }, "title"},
		{"missing contact", func(a *models.Ad) { a.Contact = "" }, "contact"},
		{"no period", func(a *models.Ad) { a.ValidTo = time.Time{} }, "validFrom"},
		{"reversed period", func(a *models.Ad) { a.ValidTo = fixedNow.Add(-time.Minute) }, "validTo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, logger := newTestStore(t)
			svc := NewAdService(store, logger)
			store.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			ad := base
			tt.mutate(&ad)
			err := svc.CreateAd(context.Background(), &ad)

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestPublishAd(t *testing.T) {
	store, logger := newTestStore(t)
	svc := NewAdService(store, logger)

	store.EXPECT().Update(gomock.Any(), models.CollectionAds, "ad-1", models.Patch{"status": models.AdPublished}).Return(nil)

	assert.NoError(t, svc.PublishAd(context.Background(), "ad-1"))
}

func TestListAds_ByStatus(t *testing.T) {
	store, logger := newTestStore(t)
	svc := NewAdService(store, logger)

	store.EXPECT().List(gomock.Any(), models.CollectionAds).Return([]models.Document{
		doc(t, "a1", models.Ad{Title: "one", Status: models.AdPublished}),
		doc(t, "a2", models.Ad{Title: "two", Status: models.AdUnpublished}),
	}, nil)

	ads, err := svc.ListAds(context.Background(), models.AdPublished)
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, "a1", ads[0].ID)
}

func TestSendNotification(t *testing.T) {
	store, logger := newTestStore(t)
	svc := NewNotificationService(store, logger).(*notificationService)
	svc.now = func() time.Time { return fixedNow }

	store.EXPECT().Create(gomock.Any(), models.CollectionNotifications, gomock.Any()).Return("n1", nil)

	n := &models.Notification{Name: "Ops", Number: "+100", Message: "Gate C closed"}
	require.NoError(t, svc.SendNotification(context.Background(), n))
	assert.Equal(t, "n1", n.ID)
	assert.Equal(t, fixedNow, n.SentAt)
}

func TestSendNotification_MissingMessage(t *testing.T) {
	store, logger := newTestStore(t)
	svc := NewNotificationService(store, logger)
	store.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := svc.SendNotification(context.Background(), &models.Notification{Name: "Ops", Number: "+100", Message: "  "})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "message", verr.Field)
}

func TestListNotifications_NewestFirst(t *testing.T) {
	store, logger := newTestStore(t)
	svc := NewNotificationService(store, logger)

	store.EXPECT().List(gomock.Any(), models.CollectionNotifications).Return([]models.Document{
		doc(t, "old", models.Notification{SentAt: fixedNow.Add(-time.Hour)}),
		doc(t, "new", models.Notification{SentAt: fixedNow}),
	}, nil)

	items, err := svc.ListNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)
}

func TestEmergencyReports(t *testing.T) {
	store, logger := newTestStore(t)
	svc := NewEmergencyService(store, logger)
	ctx := context.Background()

	store.EXPECT().List(ctx, models.CollectionEmergencies).Return([]models.Document{
		{ID: "e1", Data: []byte(`{"desc":"smoke","location":"Hall 2","timestamp":"2024-06-01T10:00:00Z"}`)},
		{ID: "e2", Data: []byte(`{"desc":"injury","location":{"address":"Gate A","lat":1.5,"lng":2.5},"timestamp":"2024-06-01T11:00:00Z"}`)},
	}, nil)

	reports, err := svc.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "e2", reports[0].ID)
	assert.Equal(t, "Gate A", reports[0].Location.String())
	assert.Equal(t, "Hall 2", reports[1].Location.String())

	store.EXPECT().Get(ctx, models.CollectionEmergencies, "missing").Return(models.Document{}, apperr.Store(apperr.StoreNotFound, "get", nil))
	_, err = svc.GetReport(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err))
}
