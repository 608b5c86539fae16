package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Create a zone
// @Description Create an operational zone. Requires API key.
// @Tags Zones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param zone body ZoneRequest true "Zone"
// @Success 201 {object} models.Zone
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /zones [post]
func (h *Handler) createZone(c *gin.Context) {
	log := h.log("createZone")
	var input ZoneRequest
	if !h.bind(c, log, &input) {
		return
	}

	zone := ZoneRequestToModel(input)
	if err := h.services.Zones.CreateZone(c.Request.Context(), zone); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, zone)
}

// @Summary List zones
// @Tags Zones
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Zone
// @Router /zones [get]
func (h *Handler) listZones(c *gin.Context) {
	zones, err := h.services.Zones.ListZones(c.Request.Context())
	if err != nil {
		h.respondError(c, h.log("listZones"), err)
		return
	}
	c.JSON(http.StatusOK, zones)
}

// @Summary Get a zone
// @Tags Zones
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Zone ID"
// @Success 200 {object} models.Zone
// @Failure 404 {object} ErrorResponse
// @Router /zones/{id} [get]
func (h *Handler) getZone(c *gin.Context) {
	zone, err := h.services.Zones.GetZone(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, h.log("getZone").WithField("zone_id", c.Param("id")), err)
		return
	}
	c.JSON(http.StatusOK, zone)
}

// @Summary Update a zone
// @Tags Zones
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Zone ID"
// @Param zone body ZoneRequest true "Zone"
// @Success 200
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /zones/{id} [put]
func (h *Handler) updateZone(c *gin.Context) {
	log := h.log("updateZone").WithField("zone_id", c.Param("id"))
	var input ZoneRequest
	if !h.bind(c, log, &input) {
		return
	}

	zone := ZoneRequestToModel(input)
	zone.ID = c.Param("id")
	if err := h.services.Zones.UpdateZone(c.Request.Context(), zone); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Delete a zone
// @Description Rejected with 400 while shifts, facilities or tasks reference the zone.
// @Tags Zones
// @Security ApiKeyAuth
// @Param id path string true "Zone ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /zones/{id} [delete]
func (h *Handler) deleteZone(c *gin.Context) {
	if err := h.services.Zones.DeleteZone(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, h.log("deleteZone").WithField("zone_id", c.Param("id")), err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Import zones
// @Description Bulk create zones from parsed rows {name, description, lat, lng}. Invalid rows are skipped and reported.
// @Tags Zones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param rows body ImportRequest true "Rows"
// @Success 200 {object} BatchResponse
// @Success 207 {object} BatchResponse
// @Router /zones/import [post]
func (h *Handler) importZones(c *gin.Context) {
	log := h.log("importZones")
	var input ImportRequest
	if !h.bind(c, log, &input) {
		return
	}

	result, err := h.services.Zones.ImportZones(c.Request.Context(), ImportRequestToRows(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	respondBatch(c, result)
}
