package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/event_ops_system/internal/apperr"
	"github.com/shenikar/event_ops_system/internal/config"
	"github.com/shenikar/event_ops_system/internal/service"
	"github.com/sirupsen/logrus"
)

// Services - набор сервисов, обслуживаемых API
type Services struct {
	Zones         service.ZoneService
	Shifts        service.ShiftService
	Staff         service.StaffService
	Teams         service.TeamService
	Facilities    service.FacilityService
	Tasks         service.TaskService
	Issues        service.IssueService
	Emergencies   service.EmergencyService
	Notifications service.NotificationService
	Ads           service.AdService
}

type Handler struct {
	services Services
	logger   *logrus.Logger
	validate *validator.Validate
	cfg      *config.Config
}

func NewHandler(services Services, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// statusFor сопоставляет ошибку сервиса HTTP-статусу
func statusFor(err error) int {
	var verr *apperr.ValidationError
	var terr *apperr.InvalidTransitionError
	var serr *apperr.StoreError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &terr):
		return http.StatusConflict
	case errors.As(err, &serr):
		switch serr.Kind {
		case apperr.StoreNotFound:
			return http.StatusNotFound
		case apperr.StorePermissionDenied:
			return http.StatusForbidden
		case apperr.StoreUnavailable:
			return http.StatusServiceUnavailable
		}
	}
	return http.StatusInternalServerError
}

// respondError пишет ответ об ошибке. Внутренние детали хранилища клиенту не отдаются.
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusBadRequest, http.StatusConflict:
		log.WithError(err).Warn("Request rejected")
		c.JSON(status, ErrorResponse{Error: err.Error()})
	case http.StatusNotFound:
		log.WithError(err).Warn("Resource not found")
		c.JSON(status, ErrorResponse{Error: "not found"})
	case http.StatusForbidden:
		log.WithError(err).Warn("Store permission denied")
		c.JSON(status, ErrorResponse{Error: "permission denied"})
	case http.StatusServiceUnavailable:
		log.WithError(err).Error("Store unavailable")
		c.JSON(status, ErrorResponse{Error: "service unavailable"})
	default:
		log.WithError(err).Error("Internal error")
		c.JSON(status, ErrorResponse{Error: "internal server error"})
	}
}

// bind разбирает и валидирует тело запроса, при ошибке отвечает 400
func (h *Handler) bind(c *gin.Context, log *logrus.Entry, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

func (h *Handler) log(method string) *logrus.Entry {
	return h.logger.WithField("method", method)
}

// respondBatch отвечает итогом пакетной операции: 200 без ошибок, 207 при частичном сбое
func respondBatch(c *gin.Context, result apperr.BatchResult) {
	status := http.StatusOK
	if result.PartialFailure() != nil {
		status = http.StatusMultiStatus
	}
	c.JSON(status, BatchResultToResponse(result))
}

// @Summary Health check
// @Description Check if the service is running.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Service is healthy"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
