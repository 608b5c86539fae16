package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/config"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/sla"
	"github.com/shenikar/event_ops_system/internal/triage"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=issue.go -destination=../handler/http/v1/mocks/mock_issue.go -package=mocks

// IssueView - обращение с вычисленным обратным отсчетом SLA
type IssueView struct {
	models.Issue
	SLA         string `json:"sla"`
	Expired     bool   `json:"slaExpired"`
	IsEmergency bool   `json:"isEmergency"`
}

// IssueFilter: пустое поле не фильтрует, HighOnly оставляет high и emergency
type IssueFilter struct {
	Status   models.IssueStatus
	Severity models.Severity
	ZoneID   string
	HighOnly bool
}

func (f IssueFilter) match(i models.Issue) bool {
	if f.Status != "" && i.Status != f.Status {
		return false
	}
	if f.Severity != "" && i.Severity != f.Severity {
		return false
	}
	if f.ZoneID != "" && i.ZoneID != f.ZoneID {
		return false
	}
	if f.HighOnly && i.Severity != models.SeverityHigh && i.Severity != models.SeverityEmergency {
		return false
	}
	return true
}

// IssueService определяет контракт разбора обращений
type IssueService interface {
	ReportIssue(ctx context.Context, issue *models.Issue) error
	GetIssue(ctx context.Context, id string) (*IssueView, error)
	ListIssues(ctx context.Context, filter IssueFilter) ([]IssueView, error)
	AssignIssue(ctx context.Context, id, assignee string) (*models.Issue, error)
	MergeIssue(ctx context.Context, id string) (*models.Issue, error)
	CloseIssue(ctx context.Context, id string) (*models.Issue, error)
	EmergencyCount(ctx context.Context) (int, error)
}

type issueService struct {
	store  DocumentStore
	logger *logrus.Logger
	window time.Duration
	now    func() time.Time
}

func NewIssueService(store DocumentStore, logger *logrus.Logger, cfg *config.Config) IssueService {
	return &issueService{
		store:  store,
		logger: logger,
		window: sla.HoursWindow(cfg.IssueSLAHours),
		now:    time.Now,
	}
}

func (s *issueService) view(issue models.Issue, now time.Time) IssueView {
	remaining := triage.Countdown(issue, s.window, now)
	return IssueView{
		Issue:       issue,
		SLA:         remaining.String(),
		Expired:     remaining.Expired,
		IsEmergency: triage.IsActiveEmergency(issue),
	}
}

// ReportIssue регистрирует обращение в статусе open
func (s *issueService) ReportIssue(ctx context.Context, issue *models.Issue) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "issue",
		"method":   "ReportIssue",
		"severity": issue.Severity,
	})

	issue.Category = strings.TrimSpace(issue.Category)
	if err := required("category", issue.Category); err != nil {
		log.WithError(err).Warn("Issue validation failed")
		return err
	}
	issue.Severity = models.Severity(strings.ToLower(string(issue.Severity)))
	if !issue.Severity.Valid() {
		return apperr.Validation("severity", "unknown severity %q", issue.Severity)
	}
	if issue.FacilityID == "" && issue.ZoneID == "" {
		return apperr.Validation("", "facilityId or zoneId is required")
	}

	issue.Status = models.IssueOpen
	issue.AssignedTo = ""
	if issue.ReportedAt.IsZero() {
		issue.ReportedAt = s.now().UTC()
	}

	id, err := s.store.Create(ctx, models.CollectionIssues, issue)
	if err != nil {
		log.WithError(err).Error("Failed to create issue in store")
		return fmt.Errorf("service: could not report issue: %w", err)
	}
	issue.ID = id
	log.WithField("issue_id", id).Info("Issue reported successfully")
	return nil
}

func (s *issueService) GetIssue(ctx context.Context, id string) (*IssueView, error) {
	issue, err := load[models.Issue](ctx, s.store, models.CollectionIssues, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get issue: %w", err)
	}
	v := s.view(issue, s.now())
	return &v, nil
}

// ListIssues возвращает обращения, новые первыми. Все остатки SLA считаются от одного момента now.
func (s *issueService) ListIssues(ctx context.Context, filter IssueFilter) ([]IssueView, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "issue", "method": "ListIssues"})
	issues, err := loadAll[models.Issue](ctx, s.store, models.CollectionIssues, log)
	if err != nil {
		log.WithError(err).Error("Failed to list issues from store")
		return nil, fmt.Errorf("service: could not list issues: %w", err)
	}

	now := s.now()
	out := make([]IssueView, 0, len(issues))
	for _, i := range issues {
		if filter.match(i) {
			out = append(out, s.view(i, now))
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].ReportedAt.After(out[b].ReportedAt) })
	return out, nil
}

func (s *issueService) change(ctx context.Context, id, action string, apply func(*models.Issue) error) (*models.Issue, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "issue",
		"method":   "change",
		"issue_id": id,
		"action":   action,
	})

	issue, err := load[models.Issue](ctx, s.store, models.CollectionIssues, id)
	if err != nil {
		log.WithError(err).Warn("Failed to load issue")
		return nil, fmt.Errorf("service: could not %s issue: %w", action, err)
	}
	from := issue.Status
	if err := apply(&issue); err != nil {
		log.WithError(err).WithField("status", from).Warn("Issue change rejected")
		return nil, err
	}

	patch := models.Patch{"status": issue.Status, "assignedTo": issue.AssignedTo}
	if err := s.store.Update(ctx, models.CollectionIssues, id, patch); err != nil {
		log.WithError(err).Error("Failed to update issue in store")
		return nil, fmt.Errorf("service: could not %s issue: %w", action, err)
	}
	log.WithFields(logrus.Fields{"from": from, "to": issue.Status}).Info("Issue updated")
	return &issue, nil
}

func (s *issueService) AssignIssue(ctx context.Context, id, assignee string) (*models.Issue, error) {
	// пустое имя отклоняется до чтения из хранилища
	if strings.TrimSpace(assignee) == "" {
		return nil, apperr.Validation("assignedTo", "assignee name is required")
	}
	return s.change(ctx, id, "assign", func(i *models.Issue) error {
		return triage.Assign(i, assignee)
	})
}

func (s *issueService) MergeIssue(ctx context.Context, id string) (*models.Issue, error) {
	return s.change(ctx, id, "merge", triage.Merge)
}

func (s *issueService) CloseIssue(ctx context.Context, id string) (*models.Issue, error) {
	return s.change(ctx, id, "close", triage.Close)
}

// EmergencyCount - значение баннера экстренных обращений
func (s *issueService) EmergencyCount(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{"service": "issue", "method": "EmergencyCount"})
	issues, err := loadAll[models.Issue](ctx, s.store, models.CollectionIssues, log)
	if err != nil {
		log.WithError(err).Error("Failed to list issues from store")
		return 0, fmt.Errorf("service: could not count emergencies: %w", err)
	}
	return triage.BannerCount(issues), nil
}
