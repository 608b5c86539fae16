package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary List shifts
// @Tags Shifts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.ShiftAssignment
// @Router /shifts [get]
func (h *Handler) listShifts(c *gin.Context) {
	shifts, err := h.services.Shifts.ListShifts(c.Request.Context())
	if err != nil {
		h.respondError(c, h.log("listShifts"), err)
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// @Summary Create default shifts
// @Description Create every missing zone x shift type combination with 09:00-17:00 times.
// @Tags Shifts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} BatchResponse
// @Success 207 {object} BatchResponse
// @Router /shifts/defaults [post]
func (h *Handler) createDefaultShifts(c *gin.Context) {
	result, err := h.services.Shifts.CreateDefaultShifts(c.Request.Context())
	if err != nil {
		h.respondError(c, h.log("createDefaultShifts"), err)
		return
	}
	respondBatch(c, result)
}

// @Summary Update shift times
// @Tags Shifts
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Shift ID"
// @Param times body ShiftTimesRequest true "HH:MM times, empty keeps the value"
// @Success 200
// @Failure 400 {object} ErrorResponse
// @Router /shifts/{id}/times [patch]
func (h *Handler) updateShiftTimes(c *gin.Context) {
	log := h.log("updateShiftTimes").WithField("shift_id", c.Param("id"))
	var input ShiftTimesRequest
	if !h.bind(c, log, &input) {
		return
	}
	if err := h.services.Shifts.UpdateShiftTimes(c.Request.Context(), c.Param("id"), input.StartTime, input.EndTime); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Assign staff to a shift
// @Tags Shifts
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Shift ID"
// @Param staff body AssignStaffRequest true "Staff"
// @Success 200
// @Router /shifts/{id}/staff [post]
func (h *Handler) assignShiftStaff(c *gin.Context) {
	log := h.log("assignShiftStaff").WithField("shift_id", c.Param("id"))
	var input AssignStaffRequest
	if !h.bind(c, log, &input) {
		return
	}
	if err := h.services.Shifts.AssignStaff(c.Request.Context(), c.Param("id"), input.StaffID); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Remove staff from a shift
// @Tags Shifts
// @Security ApiKeyAuth
// @Param id path string true "Shift ID"
// @Param staffId path string true "Staff ID"
// @Success 204
// @Router /shifts/{id}/staff/{staffId} [delete]
func (h *Handler) removeShiftStaff(c *gin.Context) {
	if err := h.services.Shifts.RemoveStaff(c.Request.Context(), c.Param("id"), c.Param("staffId")); err != nil {
		h.respondError(c, h.log("removeShiftStaff"), err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Set zone headcount
// @Tags Coverage
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Zone ID"
// @Param headcount body HeadcountRequest true "Headcount"
// @Success 200
// @Router /zones/{id}/headcount [put]
func (h *Handler) setHeadcount(c *gin.Context) {
	log := h.log("setHeadcount").WithField("zone_id", c.Param("id"))
	var input HeadcountRequest
	if !h.bind(c, log, &input) {
		return
	}
	if err := h.services.Shifts.SetHeadcount(c.Request.Context(), c.Param("id"), *input.Count); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Coverage report
// @Description Required vs assigned staff for every zone and shift type, optionally for one zone.
// @Tags Coverage
// @Produce json
// @Security ApiKeyAuth
// @Param zoneId query string false "Zone ID"
// @Success 200 {array} coverage.Row
// @Router /coverage [get]
func (h *Handler) coverageReport(c *gin.Context) {
	ctx := c.Request.Context()
	if zoneID := c.Query("zoneId"); zoneID != "" {
		rows, err := h.services.Shifts.ZoneCoverage(ctx, zoneID)
		if err != nil {
			h.respondError(c, h.log("coverageReport").WithField("zone_id", zoneID), err)
			return
		}
		c.JSON(http.StatusOK, rows)
		return
	}

	rows, err := h.services.Shifts.CoverageReport(ctx)
	if err != nil {
		h.respondError(c, h.log("coverageReport"), err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
