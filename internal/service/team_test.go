package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestTeamService(t *testing.T) (*teamService, *mocks.MockDocumentStore) {
	store, logger := newTestStore(t)
	svc := NewTeamService(store, logger).(*teamService)
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func TestCreateTeam_DedupMembers(t *testing.T) {
	svc, store := newTestTeamService(t)
	ctx := context.Background()

	store.EXPECT().Get(ctx, models.CollectionStaff, "lead").Return(doc(t, "lead", models.Staff{Name: "Lead"}), nil)
	store.EXPECT().List(ctx, models.CollectionStaff).Return([]models.Document{
		doc(t, "a", models.Staff{}),
		doc(t, "b", models.Staff{}),
	}, nil)
	store.EXPECT().Create(ctx, models.CollectionTeams, gomock.Any()).Return("team-1", nil)

	team := &models.Team{Name: "Cleaning", LeaderID: "lead", MemberIDs: []string{"a", "b", "a", ""}}
	require.NoError(t, svc.CreateTeam(ctx, team))

	assert.Equal(t, "team-1", team.ID)
	assert.Equal(t, []string{"a", "b"}, team.MemberIDs)
}

func TestCreateTeam_UnknownMember(t *testing.T) {
	svc, store := newTestTeamService(t)
	ctx := context.Background()

	store.EXPECT().Get(ctx, models.CollectionStaff, "lead").Return(doc(t, "lead", models.Staff{Name: "Lead"}), nil)
	store.EXPECT().List(ctx, models.CollectionStaff).Return([]models.Document{doc(t, "a", models.Staff{})}, nil)
	store.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := svc.CreateTeam(ctx, &models.Team{Name: "Cleaning", LeaderID: "lead", MemberIDs: []string{"a", "ghost"}})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "memberIds", verr.Field)
	assert.Contains(t, verr.Reason, "ghost")
}

func TestCreateTeam_MissingLeader(t *testing.T) {
	svc, store := newTestTeamService(t)
	store.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := svc.CreateTeam(context.Background(), &models.Team{Name: "Cleaning"})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "leaderId", verr.Field)
}

func TestUpdateMembers_PartialSync(t *testing.T) {
	svc, store := newTestTeamService(t)
	ctx := context.Background()

	store.EXPECT().
		Get(ctx, models.CollectionTeams, "team-1").
		Return(doc(t, "team-1", models.Team{Name: "Cleaning"}), nil)
	store.EXPECT().
		Update(ctx, models.CollectionTeams, "team-1", models.Patch{"memberIds": []string{"a", "b"}, "updatedAt": fixedNow}).
		Return(nil)
	store.EXPECT().List(ctx, models.CollectionStaff).Return([]models.Document{
		doc(t, "a", models.Staff{Teams: []string{}}),
		doc(t, "b", models.Staff{Teams: []string{"Security"}}),
		doc(t, "c", models.Staff{Teams: []string{"Cleaning"}}),
		doc(t, "d", models.Staff{Teams: []string{"Security"}}),
	}, nil)
	store.EXPECT().Update(ctx, models.CollectionStaff, "a", models.Patch{"teams": []string{"Cleaning"}}).Return(nil)
	store.EXPECT().
		Update(ctx, models.CollectionStaff, "b", models.Patch{"teams": []string{"Security", "Cleaning"}}).
		Return(apperr.Store(apperr.StorePermissionDenied, "update", errors.New("denied")))
	store.EXPECT().Update(ctx, models.CollectionStaff, "c", models.Patch{"teams": []string{}}).Return(nil)

	result, err := svc.UpdateMembers(ctx, "team-1", []string{"a", "b", "a"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, result.Succeeded)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "b", result.Failures[0].Key)
	assert.Error(t, result.PartialFailure())
}

func TestUpdateMembers_TeamMissing(t *testing.T) {
	svc, store := newTestTeamService(t)
	ctx := context.Background()

	store.EXPECT().
		Get(ctx, models.CollectionTeams, "team-1").
		Return(models.Document{}, apperr.Store(apperr.StoreNotFound, "get", nil))

	_, err := svc.UpdateMembers(ctx, "team-1", []string{"a"})

	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateMembers_UnknownMembersReported(t *testing.T) {
	svc, store := newTestTeamService(t)
	ctx := context.Background()

	store.EXPECT().
		Get(ctx, models.CollectionTeams, "team-1").
		Return(doc(t, "team-1", models.Team{Name: "Cleaning"}), nil)
	store.EXPECT().List(ctx, models.CollectionStaff).Return([]models.Document{
		doc(t, "a", models.Staff{Teams: []string{}}),
	}, nil)
	store.EXPECT().
		Update(ctx, models.CollectionTeams, "team-1", models.Patch{"memberIds": []string{"a"}, "updatedAt": fixedNow}).
		Return(nil)
	store.EXPECT().Update(ctx, models.CollectionStaff, "a", models.Patch{"teams": []string{"Cleaning"}}).Return(nil)

	result, err := svc.UpdateMembers(ctx, "team-1", []string{"ghost", "a"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, result.Succeeded)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "ghost", result.Failures[0].Key)
	assert.Contains(t, result.Failures[0].Error, "does not exist")
}

func TestUpdateMembers_StaffListFailsBeforeWrite(t *testing.T) {
	svc, store := newTestTeamService(t)
	ctx := context.Background()

	store.EXPECT().
		Get(ctx, models.CollectionTeams, "team-1").
		Return(doc(t, "team-1", models.Team{Name: "Cleaning"}), nil)
	store.EXPECT().List(ctx, models.CollectionStaff).Return(nil, apperr.Store(apperr.StoreUnavailable, "list", errors.New("down")))
	store.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.UpdateMembers(ctx, "team-1", []string{"a"})

	var serr *apperr.StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, apperr.StoreUnavailable, serr.Kind)
}
