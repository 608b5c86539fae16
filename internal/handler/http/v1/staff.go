package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/event_ops_system/internal/service"
)

// @Summary Add staff
// @Tags Staff
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param staff body StaffRequest true "Staff"
// @Success 201 {object} models.Staff
// @Failure 400 {object} ErrorResponse
// @Router /staff [post]
func (h *Handler) addStaff(c *gin.Context) {
	log := h.log("addStaff")
	var input StaffRequest
	if !h.bind(c, log, &input) {
		return
	}

	staff := StaffRequestToModel(input)
	if err := h.services.Staff.AddStaff(c.Request.Context(), staff); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// @Summary List staff
// @Description Filter by role, zone, status, department ("all" disables status/department), search by name or email.
// @Tags Staff
// @Produce json
// @Security ApiKeyAuth
// @Param role query string false "Role"
// @Param zone query string false "Zone"
// @Param status query string false "Status"
// @Param department query string false "Department"
// @Param search query string false "Search"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {object} map[string]any
// @Router /staff [get]
func (h *Handler) listStaff(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	filter := service.StaffFilter{
		Role:       c.Query("role"),
		Zone:       c.Query("zone"),
		Status:     c.Query("status"),
		Department: c.Query("department"),
		Search:     c.Query("search"),
	}

	result, err := h.services.Staff.ListStaff(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.respondError(c, h.log("listStaff"), err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getStaff(c *gin.Context) {
	staff, err := h.services.Staff.GetStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, h.log("getStaff").WithField("staff_id", c.Param("id")), err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *Handler) updateStaff(c *gin.Context) {
	log := h.log("updateStaff").WithField("staff_id", c.Param("id"))
	var input StaffRequest
	if !h.bind(c, log, &input) {
		return
	}

	staff := StaffRequestToModel(input)
	staff.ID = c.Param("id")
	if err := h.services.Staff.UpdateStaff(c.Request.Context(), staff); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Deactivate staff
// @Description Soft deactivation: the record stays with status inactive.
// @Tags Staff
// @Security ApiKeyAuth
// @Param id path string true "Staff ID"
// @Success 200
// @Router /staff/{id}/deactivate [post]
func (h *Handler) deactivateStaff(c *gin.Context) {
	if err := h.services.Staff.DeactivateStaff(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, h.log("deactivateStaff").WithField("staff_id", c.Param("id")), err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Group staff
// @Tags Staff
// @Produce json
// @Security ApiKeyAuth
// @Param by query string true "role, department or zone"
// @Success 200 {object} map[string][]models.Staff
// @Router /staff/groups [get]
func (h *Handler) groupStaff(c *gin.Context) {
	groups, err := h.services.Staff.GroupStaff(c.Request.Context(), c.DefaultQuery("by", "role"))
	if err != nil {
		h.respondError(c, h.log("groupStaff"), err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// @Summary Import staff
// @Description Bulk create staff from parsed spreadsheet rows. Headers are case-insensitive; name, phone and email accept common aliases. Rows missing any of them are skipped and reported.
// @Tags Staff
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param rows body ImportRequest true "Rows"
// @Success 200 {object} BatchResponse
// @Success 207 {object} BatchResponse
// @Router /staff/import [post]
func (h *Handler) importStaff(c *gin.Context) {
	log := h.log("importStaff")
	var input ImportRequest
	if !h.bind(c, log, &input) {
		return
	}

	result, err := h.services.Staff.ImportStaff(c.Request.Context(), ImportRequestToRows(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	respondBatch(c, result)
}
