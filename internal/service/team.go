package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/sirupsen/logrus"
)

// TeamService определяет контракт управления командами
type TeamService interface {
	CreateTeam(ctx context.Context, team *models.Team) error
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	UpdateTeam(ctx context.Context, team *models.Team) error
	DeleteTeam(ctx context.Context, id string) error
	UpdateMembers(ctx context.Context, teamID string, memberIDs []string) (apperr.BatchResult, error)
}

type teamService struct {
	store  DocumentStore
	logger *logrus.Logger
	now    func() time.Time
}

func NewTeamService(store DocumentStore, logger *logrus.Logger) TeamService {
	return &teamService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *teamService) validate(ctx context.Context, team *models.Team) error {
	team.Name = strings.TrimSpace(team.Name)
	if err := required("name", team.Name); err != nil {
		return err
	}
	if err := required("leaderId", team.LeaderID); err != nil {
		return err
	}
	if _, err := s.store.Get(ctx, models.CollectionStaff, team.LeaderID); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.Validation("leaderId", "staff %s does not exist", team.LeaderID)
		}
		return err
	}
	team.MemberIDs = unique(team.MemberIDs)
	team.ZoneIDs = unique(team.ZoneIDs)
	if len(team.MemberIDs) == 0 {
		return nil
	}
	known, err := s.staffIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range team.MemberIDs {
		if _, ok := known[id]; !ok {
			return apperr.Validation("memberIds", "staff %s does not exist", id)
		}
	}
	return nil
}

func (s *teamService) staffIDs(ctx context.Context) (map[string]struct{}, error) {
	docs, err := s.store.List(ctx, models.CollectionStaff)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		ids[d.ID] = struct{}{}
	}
	return ids, nil
}

// CreateTeam создает команду. Лидер обязан существовать, но не обязан быть участником.
func (s *teamService) CreateTeam(ctx context.Context, team *models.Team) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "team",
		"method":  "CreateTeam",
		"name":    team.Name,
	})
	if err := s.validate(ctx, team); err != nil {
		log.WithError(err).Warn("Team validation failed")
		return err
	}

	now := s.now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now
	id, err := s.store.Create(ctx, models.CollectionTeams, team)
	if err != nil {
		log.WithError(err).Error("Failed to create team in store")
		return fmt.Errorf("service: could not create team: %w", err)
	}
	team.ID = id
	log.WithField("team_id", id).Info("Team created successfully")
	return nil
}

func (s *teamService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	team, err := load[models.Team](ctx, s.store, models.CollectionTeams, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get team: %w", err)
	}
	return &team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "team", "method": "ListTeams"})
	teams, err := loadAll[models.Team](ctx, s.store, models.CollectionTeams, log)
	if err != nil {
		log.WithError(err).Error("Failed to list teams from store")
		return nil, fmt.Errorf("service: could not list teams: %w", err)
	}
	return teams, nil
}

// UpdateTeam обновляет описание команды без синхронизации тегов у сотрудников
func (s *teamService) UpdateTeam(ctx context.Context, team *models.Team) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "team",
		"method":  "UpdateTeam",
		"team_id": team.ID,
	})
	if err := s.validate(ctx, team); err != nil {
		log.WithError(err).Warn("Team validation failed")
		return err
	}

	patch := models.Patch{
		"name":         team.Name,
		"description":  team.Description,
		"leaderId":     team.LeaderID,
		"memberIds":    team.MemberIDs,
		"zoneIds":      team.ZoneIDs,
		"defaultShift": team.DefaultShift,
		"updatedAt":    s.now().UTC(),
	}
	if err := s.store.Update(ctx, models.CollectionTeams, team.ID, patch); err != nil {
		log.WithError(err).Error("Failed to update team in store")
		return fmt.Errorf("service: could not update team: %w", err)
	}
	log.Info("Team updated successfully")
	return nil
}

// DeleteTeam удаляет только команду, сотрудники не затрагиваются
func (s *teamService) DeleteTeam(ctx context.Context, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "team",
		"method":  "DeleteTeam",
		"team_id": id,
	})
	if err := s.store.Delete(ctx, models.CollectionTeams, id); err != nil {
		log.WithError(err).Error("Failed to delete team in store")
		return fmt.Errorf("service: could not delete team: %w", err)
	}
	log.Info("Team deleted successfully")
	return nil
}

// UpdateMembers записывает состав команды и затем по одному обновляет теги команд у сотрудников.
// Операция не атомарна: при сбое на середине уже записанные теги остаются, итог сообщает, какие
// сотрудники обновлены, а какие нет.
func (s *teamService) UpdateMembers(ctx context.Context, teamID string, memberIDs []string) (apperr.BatchResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "team",
		"method":  "UpdateMembers",
		"team_id": teamID,
	})
	var result apperr.BatchResult

	team, err := load[models.Team](ctx, s.store, models.CollectionTeams, teamID)
	if err != nil {
		log.WithError(err).Warn("Failed to load team")
		return result, fmt.Errorf("service: could not update members: %w", err)
	}
	staff, err := loadAll[models.Staff](ctx, s.store, models.CollectionStaff, log)
	if err != nil {
		log.WithError(err).Error("Failed to list staff for team sync")
		return result, fmt.Errorf("service: could not update members: %w", err)
	}

	// неизвестные сотрудники не попадают в состав и отмечаются как неудачные
	known := make(map[string]struct{}, len(staff))
	for _, st := range staff {
		known[st.ID] = struct{}{}
	}
	members := make([]string, 0, len(memberIDs))
	for _, id := range unique(memberIDs) {
		if _, ok := known[id]; !ok {
			result.Fail(id, apperr.Validation("memberIds", "staff %s does not exist", id))
			continue
		}
		members = append(members, id)
	}

	if err := s.store.Update(ctx, models.CollectionTeams, teamID, models.Patch{
		"memberIds": members,
		"updatedAt": s.now().UTC(),
	}); err != nil {
		log.WithError(err).Error("Failed to update team members in store")
		return result, fmt.Errorf("service: could not update members: %w", err)
	}

	for _, st := range staff {
		want := contains(members, st.ID)
		has := contains(st.Teams, team.Name)
		if want == has {
			continue
		}
		teams := without(st.Teams, team.Name)
		if want {
			teams = append(teams, team.Name)
		}
		if err := s.store.Update(ctx, models.CollectionStaff, st.ID, models.Patch{"teams": teams}); err != nil {
			result.Fail(st.ID, err)
			continue
		}
		result.Ok(st.ID)
	}

	entry := log.WithFields(logrus.Fields{
		"members":   len(members),
		"synced":    len(result.Succeeded),
		"sync_fail": len(result.Failures),
	})
	if len(result.Failures) > 0 {
		entry.Warn("Team members updated with partial staff sync")
	} else {
		entry.Info("Team members updated successfully")
	}
	return result, nil
}
