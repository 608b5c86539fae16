package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/config"
	"github.com/shenikar/event_ops_system/internal/handler/http/v1/mocks"
	"github.com/shenikar/event_ops_system/internal/lifecycle"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var authHeader = map[string]string{"X-API-Key": "test-api-key"}

type testMocks struct {
	tasks  *mocks.MockTaskService
	issues *mocks.MockIssueService
	zones  *mocks.MockZoneService
	staff  *mocks.MockStaffService
}

// newTestHandler создает роутер с мокированными сервисами
func newTestHandler(t *testing.T) (*testMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := &testMocks{
		tasks:  mocks.NewMockTaskService(ctrl),
		issues: mocks.NewMockIssueService(ctrl),
		zones:  mocks.NewMockZoneService(ctrl),
		staff:  mocks.NewMockStaffService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{APIKeys: []string{"test-api-key"}}
	handler := NewHandler(Services{Tasks: m.tasks, Issues: m.issues, Zones: m.zones, Staff: m.staff}, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func TestAuth_MissingKey(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/tasks", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAuth_BearerToken(t *testing.T) {
	m, router := newTestHandler(t)
	m.tasks.EXPECT().ListTasks(gomock.Any(), service.TaskFilter{}).Return([]models.Task{}, nil)

	w := makeRequest(router, "GET", "/api/v1/tasks", nil, map[string]string{"Authorization": "Bearer test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_InvalidKey(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/tasks", nil, map[string]string{"X-API-Key": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthCheck_NoAuth(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateTask_Success(t *testing.T) {
	m, router := newTestHandler(t)
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	m.tasks.EXPECT().
		CreateTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task *models.Task) error {
			assert.Equal(t, "Clean T1", task.Title)
			assert.Equal(t, models.Ref{Kind: models.RefStaff, ID: "st1"}, task.AssignedTo)
			task.ID = "task-1"
			task.Status = models.TaskPending
			task.CreatedAt = created
			return nil
		}).Times(1)

	body := `{"title":"Clean T1","assignedTo":{"type":"staff","id":"st1"}}`
	w := makeRequest(router, "POST", "/api/v1/tasks", bytes.NewBufferString(body), authHeader)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "task-1", resp.ID)
	assert.Equal(t, []lifecycle.Action{lifecycle.ActionStart}, resp.AllowedActions)
}

func TestCreateTask_UnknownRefKind(t *testing.T) {
	m, router := newTestHandler(t)
	m.tasks.EXPECT().CreateTask(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	body := `{"title":"Clean T1","assignedTo":{"type":"vendor","id":"v1"}}`
	w := makeRequest(router, "POST", "/api/v1/tasks", bytes.NewBufferString(body), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateTask_ValidationError(t *testing.T) {
	m, router := newTestHandler(t)
	m.tasks.EXPECT().CreateTask(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/tasks", jsonBody(t, CreateTaskRequest{Priority: "Urgent"}), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskTransitions_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid transition", apperr.Transition("task", "Pending", "verify"), http.StatusConflict},
		{"not found", apperr.Store(apperr.StoreNotFound, "get", nil), http.StatusNotFound},
		{"permission denied", apperr.Store(apperr.StorePermissionDenied, "update", nil), http.StatusForbidden},
		{"unavailable", apperr.Store(apperr.StoreUnavailable, "get", errors.New("down")), http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("service: could not verify task: %w", apperr.Store(apperr.StoreNotFound, "get", nil)), http.StatusNotFound},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, router := newTestHandler(t)
			m.tasks.EXPECT().VerifyTask(gomock.Any(), "task-1").Return(nil, tt.err)

			w := makeRequest(router, "POST", "/api/v1/tasks/task-1/verify", nil, authHeader)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestMarkTaskDone_NoEvidence(t *testing.T) {
	m, router := newTestHandler(t)
	m.tasks.EXPECT().
		MarkDone(gomock.Any(), "task-1", []string{}).
		Return(nil, apperr.Validation("photosAfter", "at least one after photo is required"))

	w := makeRequest(router, "POST", "/api/v1/tasks/task-1/done", bytes.NewBufferString(`{"photosAfter":[]}`), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "photosAfter")
}

func TestTaskStats(t *testing.T) {
	m, router := newTestHandler(t)
	m.tasks.EXPECT().Stats(gomock.Any()).Return(lifecycle.Stats{Total: 4, CompletionPercent: 25, SLAPercent: 100}, nil)

	w := makeRequest(router, "GET", "/api/v1/tasks/stats", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var stats lifecycle.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 25, stats.CompletionPercent)
}

func TestListIssues_Filter(t *testing.T) {
	m, router := newTestHandler(t)
	m.issues.EXPECT().
		ListIssues(gomock.Any(), service.IssueFilter{Status: models.IssueOpen, HighOnly: true}).
		Return([]service.IssueView{{Issue: models.Issue{ID: "i1"}, SLA: "3h 0m 0s"}}, nil)

	w := makeRequest(router, "GET", "/api/v1/issues?status=open&highOnly=true", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sla":"3h 0m 0s"`)
}

func TestCloseIssue_AlreadyClosed(t *testing.T) {
	m, router := newTestHandler(t)
	m.issues.EXPECT().CloseIssue(gomock.Any(), "i1").Return(nil, apperr.Transition("issue", "closed", "close"))

	w := makeRequest(router, "POST", "/api/v1/issues/i1/close", nil, authHeader)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAssignIssue_MissingName(t *testing.T) {
	m, router := newTestHandler(t)
	m.issues.EXPECT().AssignIssue(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/issues/i1/assign", bytes.NewBufferString(`{}`), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmergencyCount(t *testing.T) {
	m, router := newTestHandler(t)
	m.issues.EXPECT().EmergencyCount(gomock.Any()).Return(3, nil)

	w := makeRequest(router, "GET", "/api/v1/issues/emergencies/count", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}

func TestImportZones_PartialFailure(t *testing.T) {
	m, router := newTestHandler(t)
	result := apperr.BatchResult{}
	result.Ok("North")
	result.Fail("South", apperr.Validation("lat", "not a number"))
	m.zones.EXPECT().ImportZones(gomock.Any(), gomock.Len(2)).Return(result, nil)

	body := ImportRequest{Rows: []map[string]string{
		{"name": "North", "lat": "1", "lng": "2"},
		{"name": "South", "lat": "x", "lng": "2"},
	}}
	w := makeRequest(router, "POST", "/api/v1/zones/import", jsonBody(t, body), authHeader)

	assert.Equal(t, http.StatusMultiStatus, w.Code)
	var resp BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, "South", resp.Failures[0].Key)
}

func TestDeleteZone_Referenced(t *testing.T) {
	m, router := newTestHandler(t)
	m.zones.EXPECT().DeleteZone(gomock.Any(), "z1").Return(apperr.Validation("zoneId", "zone is referenced by 2 records"))

	w := makeRequest(router, "DELETE", "/api/v1/zones/z1", nil, authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportStaff_PartialFailure(t *testing.T) {
	m, router := newTestHandler(t)
	result := apperr.BatchResult{}
	result.Ok("Asha")
	result.Fail("row 2", apperr.Validation("name", "is required"))
	m.staff.EXPECT().
		ImportStaff(gomock.Any(), []service.ImportRow{
			{"Full Name": "Asha", "Mobile": "1", "Email": "asha@example.com"},
			{"Mobile": "2"},
		}).
		Return(result, nil)

	body := ImportRequest{Rows: []map[string]string{
		{"Full Name": "Asha", "Mobile": "1", "Email": "asha@example.com"},
		{"Mobile": "2"},
	}}
	w := makeRequest(router, "POST", "/api/v1/staff/import", jsonBody(t, body), authHeader)

	assert.Equal(t, http.StatusMultiStatus, w.Code)
	var resp BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Asha"}, resp.SucceededKeys)
	assert.Equal(t, "row 2", resp.Failures[0].Key)
}

func TestImportStaff_AllSucceeded(t *testing.T) {
	m, router := newTestHandler(t)
	result := apperr.BatchResult{}
	result.Ok("Asha")
	m.staff.EXPECT().ImportStaff(gomock.Any(), gomock.Len(1)).Return(result, nil)

	body := ImportRequest{Rows: []map[string]string{{"name": "Asha", "phone": "1", "email": "asha@example.com"}}}
	w := makeRequest(router, "POST", "/api/v1/staff/import", jsonBody(t, body), authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestImportStaff_EmptyRows(t *testing.T) {
	m, router := newTestHandler(t)
	m.staff.EXPECT().ImportStaff(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/staff/import", bytes.NewBufferString(`{"rows":[]}`), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
