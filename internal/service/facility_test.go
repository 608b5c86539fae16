package service

import (
	"context"
	"testing"
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestFacilityService(t *testing.T) (*facilityService, *mocks.MockDocumentStore) {
	store, logger := newTestStore(t)
	svc := NewFacilityService(store, logger).(*facilityService)
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func TestParseFacilityType(t *testing.T) {
	tests := []struct {
		raw     string
		want    models.FacilityType
		wantErr bool
	}{
		{"Toilet", models.FacilityToilet, false},
		{"dustbin", models.FacilityDustbin, false},
		{"Water Supply", models.FacilityWaterSupply, false},
		{"fountain", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseFacilityType(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateFacility_StatusVocabulary(t *testing.T) {
	svc, store := newTestFacilityService(t)
	store.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := svc.CreateFacility(context.Background(), &models.Facility{
		Code:   "D-1",
		Type:   models.FacilityDustbin,
		ZoneID: "z1",
		Status: "dirty",
	})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}

func TestUpdateStatus_Success(t *testing.T) {
	svc, store := newTestFacilityService(t)
	ctx := context.Background()

	store.EXPECT().
		Update(ctx, "watersupply", "w1", models.Patch{"status": "faulty", "lastUpdated": fixedNow}).
		Return(nil)

	require.NoError(t, svc.UpdateStatus(ctx, models.FacilityWaterSupply, "w1", "faulty"))
}

func TestListFacilities_AllTypes(t *testing.T) {
	svc, store := newTestFacilityService(t)
	ctx := context.Background()

	store.EXPECT().List(ctx, "toilets").Return([]models.Document{
		doc(t, "t1", map[string]string{"code": "T-1", "status": "clean"}),
	}, nil)
	store.EXPECT().List(ctx, "dustbins").Return(nil, nil)
	store.EXPECT().List(ctx, "watersupply").Return([]models.Document{
		doc(t, "w1", map[string]string{"code": "W-1", "status": "working"}),
	}, nil)

	items, err := svc.ListFacilities(ctx, "")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.FacilityToilet, items[0].Type)
	assert.Equal(t, models.FacilityWaterSupply, items[1].Type)
}

func TestImportFacilities_BadRows(t *testing.T) {
	svc, store := newTestFacilityService(t)
	ctx := context.Background()

	store.EXPECT().Create(ctx, "toilets", gomock.Any()).Return("t1", nil)

	result, err := svc.ImportFacilities(ctx, []ImportRow{
		{"code": "T-1", "type": "Toilet", "zoneId": "z1", "lat": "12.9", "lng": "77.6", "status": "Clean"},
		{"code": "T-2", "type": "Toilet", "zoneId": "z1", "lat": "NaN", "lng": "77.6", "status": "clean"},
		{"code": "X-1", "type": "Kiosk", "zoneId": "z1", "lat": "1", "lng": "1", "status": "open"},
		{"code": "D-1", "type": "Dustbin", "zoneId": "z1", "lat": "1", "lng": "1", "status": "dirty"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"T-1"}, result.Succeeded)
	require.Len(t, result.Failures, 3)
	assert.Equal(t, "T-2", result.Failures[0].Key)
	assert.Equal(t, "X-1", result.Failures[1].Key)
	assert.Equal(t, "D-1", result.Failures[2].Key)
}
