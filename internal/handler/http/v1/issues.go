package v1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/service"
)

// @Summary Report an issue
// @Tags Issues
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param issue body ReportIssueRequest true "Issue"
// @Success 201 {object} models.Issue
// @Failure 400 {object} ErrorResponse
// @Router /issues [post]
func (h *Handler) reportIssue(c *gin.Context) {
	log := h.log("reportIssue")
	var input ReportIssueRequest
	if !h.bind(c, log, &input) {
		return
	}

	issue := ReportIssueRequestToModel(input)
	if err := h.services.Issues.ReportIssue(c.Request.Context(), issue); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, issue)
}

// @Summary List issues
// @Description Each issue carries its SLA countdown computed at request time.
// @Tags Issues
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "open, assigned, merged or closed"
// @Param severity query string false "low, medium, high or emergency"
// @Param zoneId query string false "Zone ID"
// @Param highOnly query bool false "Only high and emergency"
// @Success 200 {array} service.IssueView
// @Router /issues [get]
func (h *Handler) listIssues(c *gin.Context) {
	highOnly, _ := strconv.ParseBool(c.DefaultQuery("highOnly", "false"))
	filter := service.IssueFilter{
		Status:   models.IssueStatus(c.Query("status")),
		Severity: models.Severity(c.Query("severity")),
		ZoneID:   c.Query("zoneId"),
		HighOnly: highOnly,
	}
	issues, err := h.services.Issues.ListIssues(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, h.log("listIssues"), err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

func (h *Handler) getIssue(c *gin.Context) {
	issue, err := h.services.Issues.GetIssue(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, h.log("getIssue").WithField("issue_id", c.Param("id")), err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

func (h *Handler) changeIssue(c *gin.Context, method string, do func(ctx context.Context, id string) (*models.Issue, error)) {
	issue, err := do(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, h.log(method).WithField("issue_id", c.Param("id")), err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// @Summary Assign an issue
// @Tags Issues
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Issue ID"
// @Param assignee body AssignIssueRequest true "Assignee"
// @Success 200 {object} models.Issue
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Issue is closed"
// @Router /issues/{id}/assign [post]
func (h *Handler) assignIssue(c *gin.Context) {
	log := h.log("assignIssue").WithField("issue_id", c.Param("id"))
	var input AssignIssueRequest
	if !h.bind(c, log, &input) {
		return
	}
	h.changeIssue(c, "assignIssue", func(ctx context.Context, id string) (*models.Issue, error) {
		return h.services.Issues.AssignIssue(ctx, id, input.AssignedTo)
	})
}

// @Summary Merge an issue
// @Tags Issues
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Issue ID"
// @Success 200 {object} models.Issue
// @Failure 409 {object} ErrorResponse "Issue is closed"
// @Router /issues/{id}/merge [post]
func (h *Handler) mergeIssue(c *gin.Context) {
	h.changeIssue(c, "mergeIssue", h.services.Issues.MergeIssue)
}

// @Summary Close an issue
// @Tags Issues
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Issue ID"
// @Success 200 {object} models.Issue
// @Failure 409 {object} ErrorResponse "Issue is closed"
// @Router /issues/{id}/close [post]
func (h *Handler) closeIssue(c *gin.Context) {
	h.changeIssue(c, "closeIssue", h.services.Issues.CloseIssue)
}

// @Summary Emergency banner count
// @Description Number of issues with severity emergency that are not closed.
// @Tags Issues
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} EmergencyCountResponse
// @Router /issues/emergencies/count [get]
func (h *Handler) emergencyCount(c *gin.Context) {
	count, err := h.services.Issues.EmergencyCount(c.Request.Context())
	if err != nil {
		h.respondError(c, h.log("emergencyCount"), err)
		return
	}
	c.JSON(http.StatusOK, EmergencyCountResponse{Count: count})
}

// @Summary List emergency reports
// @Tags Emergency
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.EmergencyReport
// @Router /emergency-reports [get]
func (h *Handler) listEmergencyReports(c *gin.Context) {
	reports, err := h.services.Emergencies.ListReports(c.Request.Context())
	if err != nil {
		h.respondError(c, h.log("listEmergencyReports"), err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *Handler) getEmergencyReport(c *gin.Context) {
	report, err := h.services.Emergencies.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, h.log("getEmergencyReport").WithField("report_id", c.Param("id")), err)
		return
	}
	c.JSON(http.StatusOK, report)
}
