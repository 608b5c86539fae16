package service

import (
	"context"
	"testing"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/coverage"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestShiftService(t *testing.T) (ShiftService, *mocks.MockDocumentStore) {
	store, logger := newTestStore(t)
	return NewShiftService(store, logger, testConfig()), store
}

func TestCreateDefaultShifts_OnlyMissing(t *testing.T) {
	svc, store := newTestShiftService(t)
	ctx := context.Background()

	store.EXPECT().List(ctx, models.CollectionZones).Return([]models.Document{
		doc(t, "z1", models.Zone{Name: "North"}),
	}, nil)
	store.EXPECT().List(ctx, models.CollectionShifts).Return([]models.Document{
		doc(t, "s1", models.ShiftAssignment{ZoneID: "z1", Type: models.ShiftRed}),
	}, nil)
	store.EXPECT().
		Create(ctx, models.CollectionShifts, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, d any) (string, error) {
			shift := d.(models.ShiftAssignment)
			assert.NotEqual(t, models.ShiftRed, shift.Type)
			assert.Equal(t, "09:00", shift.StartTime)
			assert.Equal(t, "17:00", shift.EndTime)
			return "new", nil
		}).Times(2)

	result, err := svc.CreateDefaultShifts(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"z1|orange", "z1|green"}, result.Succeeded)
	assert.Empty(t, result.Failures)
}

func TestUpdateShiftTimes_Invalid(t *testing.T) {
	svc, store := newTestShiftService(t)
	store.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := svc.UpdateShiftTimes(context.Background(), "s1", "25:00", "")

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "startTime", verr.Field)
}

func TestUpdateShiftTimes_KeepsEmptyField(t *testing.T) {
	svc, store := newTestShiftService(t)
	ctx := context.Background()

	store.EXPECT().Update(ctx, models.CollectionShifts, "s1", models.Patch{"endTime": "18:30"}).Return(nil)

	require.NoError(t, svc.UpdateShiftTimes(ctx, "s1", "", "18:30"))
}

func TestAssignStaff_AlreadyAssigned(t *testing.T) {
	svc, store := newTestShiftService(t)
	ctx := context.Background()

	store.EXPECT().
		Get(ctx, models.CollectionShifts, "s1").
		Return(doc(t, "s1", models.ShiftAssignment{AssignedStaffIDs: []string{"st1"}}), nil)
	store.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	require.NoError(t, svc.AssignStaff(ctx, "s1", "st1"))
}

func TestAssignStaff_Success(t *testing.T) {
	svc, store := newTestShiftService(t)
	ctx := context.Background()

	store.EXPECT().
		Get(ctx, models.CollectionShifts, "s1").
		Return(doc(t, "s1", models.ShiftAssignment{AssignedStaffIDs: []string{"st1"}}), nil)
	store.EXPECT().Get(ctx, models.CollectionStaff, "st2").Return(doc(t, "st2", models.Staff{Name: "Ravi"}), nil)
	store.EXPECT().
		Update(ctx, models.CollectionShifts, "s1", models.Patch{"assignedStaffIds": []string{"st1", "st2"}}).
		Return(nil)

	require.NoError(t, svc.AssignStaff(ctx, "s1", "st2"))
}

func TestSetHeadcount_Negative(t *testing.T) {
	svc, store := newTestShiftService(t)
	store.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := svc.SetHeadcount(context.Background(), "z1", -1)

	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCoverageReport(t *testing.T) {
	svc, store := newTestShiftService(t)
	ctx := context.Background()

	store.EXPECT().List(ctx, models.CollectionZones).Return([]models.Document{
		doc(t, "z1", models.Zone{Name: "North"}),
	}, nil)
	store.EXPECT().List(ctx, models.CollectionShifts).Return([]models.Document{
		doc(t, "s1", models.ShiftAssignment{ZoneID: "z1", Type: models.ShiftRed, AssignedStaffIDs: []string{"a", "b"}}),
	}, nil)
	store.EXPECT().List(ctx, models.CollectionHeadcounts).Return([]models.Document{
		doc(t, "z1", models.Headcount{ZoneID: "z1", Count: 40}),
	}, nil)

	rows, err := svc.CoverageReport(ctx)

	require.NoError(t, err)
	require.NotEmpty(t, rows)
	var red coverage.Row
	for _, r := range rows {
		if r.ShiftType == models.ShiftRed {
			red = r
		}
	}
	assert.Equal(t, 5, red.Required)
	assert.Equal(t, 2, red.Assigned)
	assert.Equal(t, coverage.Red, red.Level)
}
