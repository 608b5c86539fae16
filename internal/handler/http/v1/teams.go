package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Create a team
// @Tags Teams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param team body TeamRequest true "Team"
// @Success 201 {object} models.Team
// @Failure 400 {object} ErrorResponse
// @Router /teams [post]
func (h *Handler) createTeam(c *gin.Context) {
	log := h.log("createTeam")
	var input TeamRequest
	if !h.bind(c, log, &input) {
		return
	}

	team := TeamRequestToModel(input)
	if err := h.services.Teams.CreateTeam(c.Request.Context(), team); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

func (h *Handler) listTeams(c *gin.Context) {
	teams, err := h.services.Teams.ListTeams(c.Request.Context())
	if err != nil {
		h.respondError(c, h.log("listTeams"), err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *Handler) getTeam(c *gin.Context) {
	team, err := h.services.Teams.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, h.log("getTeam").WithField("team_id", c.Param("id")), err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *Handler) updateTeam(c *gin.Context) {
	log := h.log("updateTeam").WithField("team_id", c.Param("id"))
	var input TeamRequest
	if !h.bind(c, log, &input) {
		return
	}

	team := TeamRequestToModel(input)
	team.ID = c.Param("id")
	if err := h.services.Teams.UpdateTeam(c.Request.Context(), team); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Delete a team
// @Description Staff records are not touched.
// @Tags Teams
// @Security ApiKeyAuth
// @Param id path string true "Team ID"
// @Success 204
// @Router /teams/{id} [delete]
func (h *Handler) deleteTeam(c *gin.Context) {
	if err := h.services.Teams.DeleteTeam(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, h.log("deleteTeam").WithField("team_id", c.Param("id")), err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Update team members
// @Description Saves the member list, then updates each staff member's team tags one by one. Not atomic: the response reports per-staff outcome.
// @Tags Teams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Team ID"
// @Param members body TeamMembersRequest true "Members"
// @Success 200 {object} BatchResponse
// @Success 207 {object} BatchResponse
// @Router /teams/{id}/members [put]
func (h *Handler) updateTeamMembers(c *gin.Context) {
	log := h.log("updateTeamMembers").WithField("team_id", c.Param("id"))
	var input TeamMembersRequest
	if !h.bind(c, log, &input) {
		return
	}

	result, err := h.services.Teams.UpdateMembers(c.Request.Context(), c.Param("id"), input.MemberIDs)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	respondBatch(c, result)
}
