package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/service"
)

// facilityType разбирает тип объекта из пути, при ошибке отвечает 400
func (h *Handler) facilityType(c *gin.Context, raw string) (models.FacilityType, bool) {
	t, err := service.ParseFacilityType(raw)
	if err != nil {
		h.respondError(c, h.log("facilityType"), err)
		return "", false
	}
	return t, true
}

// @Summary Create a facility
// @Description Status must belong to the type vocabulary: Toilet {clean,dirty,empty,full}, Dustbin {empty,full}, WaterSupply {working,faulty}.
// @Tags Facilities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param facility body FacilityRequest true "Facility"
// @Success 201 {object} models.Facility
// @Failure 400 {object} ErrorResponse
// @Router /facilities [post]
func (h *Handler) createFacility(c *gin.Context) {
	log := h.log("createFacility")
	var input FacilityRequest
	if !h.bind(c, log, &input) {
		return
	}

	facility, err := FacilityRequestToModel(input)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	if err := h.services.Facilities.CreateFacility(c.Request.Context(), facility); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, facility)
}

// @Summary List facilities
// @Tags Facilities
// @Produce json
// @Security ApiKeyAuth
// @Param type query string false "Toilet, Dustbin or WaterSupply; all types when empty"
// @Success 200 {array} models.Facility
// @Router /facilities [get]
func (h *Handler) listFacilities(c *gin.Context) {
	var facilityType models.FacilityType
	if raw := c.Query("type"); raw != "" {
		t, ok := h.facilityType(c, raw)
		if !ok {
			return
		}
		facilityType = t
	}

	items, err := h.services.Facilities.ListFacilities(c.Request.Context(), facilityType)
	if err != nil {
		h.respondError(c, h.log("listFacilities"), err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Update facility status
// @Tags Facilities
// @Accept json
// @Security ApiKeyAuth
// @Param type path string true "Facility type"
// @Param id path string true "Facility ID"
// @Param status body FacilityStatusRequest true "Status"
// @Success 200
// @Failure 400 {object} ErrorResponse
// @Router /facilities/{type}/{id}/status [patch]
func (h *Handler) updateFacilityStatus(c *gin.Context) {
	log := h.log("updateFacilityStatus").WithField("facility_id", c.Param("id"))
	facilityType, ok := h.facilityType(c, c.Param("type"))
	if !ok {
		return
	}
	var input FacilityStatusRequest
	if !h.bind(c, log, &input) {
		return
	}
	if err := h.services.Facilities.UpdateStatus(c.Request.Context(), facilityType, c.Param("id"), input.Status); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) assignFacilityTask(c *gin.Context) {
	log := h.log("assignFacilityTask").WithField("facility_id", c.Param("id"))
	facilityType, ok := h.facilityType(c, c.Param("type"))
	if !ok {
		return
	}
	var input FacilityTaskRequest
	if !h.bind(c, log, &input) {
		return
	}
	if err := h.services.Facilities.AssignTask(c.Request.Context(), facilityType, c.Param("id"), input.Task); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) deleteFacility(c *gin.Context) {
	facilityType, ok := h.facilityType(c, c.Param("type"))
	if !ok {
		return
	}
	if err := h.services.Facilities.DeleteFacility(c.Request.Context(), facilityType, c.Param("id")); err != nil {
		h.respondError(c, h.log("deleteFacility").WithField("facility_id", c.Param("id")), err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Import facilities
// @Description Bulk create facilities from rows {code, type, zoneId, lat, lng, status}. Rows with non-numeric coordinates or unknown types are skipped and reported.
// @Tags Facilities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param rows body ImportRequest true "Rows"
// @Success 200 {object} BatchResponse
// @Success 207 {object} BatchResponse
// @Router /facilities/import [post]
func (h *Handler) importFacilities(c *gin.Context) {
	log := h.log("importFacilities")
	var input ImportRequest
	if !h.bind(c, log, &input) {
		return
	}

	result, err := h.services.Facilities.ImportFacilities(c.Request.Context(), ImportRequestToRows(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	respondBatch(c, result)
}
