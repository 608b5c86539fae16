package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1. Все, кроме health-check, требуют API-ключ.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)

	secured := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))

	zones := secured.Group("/zones")
	{
		zones.POST("", h.createZone)
		zones.GET("", h.listZones)
		zones.POST("/import", h.importZones)
		zones.GET("/:id", h.getZone)
		zones.PUT("/:id", h.updateZone)
		zones.DELETE("/:id", h.deleteZone)
		zones.PUT("/:id/headcount", h.setHeadcount)
	}

	shifts := secured.Group("/shifts")
	{
		shifts.GET("", h.listShifts)
		shifts.POST("/defaults", h.createDefaultShifts)
		shifts.PATCH("/:id/times", h.updateShiftTimes)
		shifts.POST("/:id/staff", h.assignShiftStaff)
		shifts.DELETE("/:id/staff/:staffId", h.removeShiftStaff)
	}
	secured.GET("/coverage", h.coverageReport)

	staff := secured.Group("/staff")
	{
		staff.POST("", h.addStaff)
		staff.GET("", h.listStaff)
		staff.POST("/import", h.importStaff)
		staff.GET("/groups", h.groupStaff)
		staff.GET("/:id", h.getStaff)
		staff.PUT("/:id", h.updateStaff)
		staff.POST("/:id/deactivate", h.deactivateStaff)
	}

	teams := secured.Group("/teams")
	{
		teams.POST("", h.createTeam)
		teams.GET("", h.listTeams)
		teams.GET("/:id", h.getTeam)
		teams.PUT("/:id", h.updateTeam)
		teams.DELETE("/:id", h.deleteTeam)
		teams.PUT("/:id/members", h.updateTeamMembers)
	}

	facilities := secured.Group("/facilities")
	{
		facilities.POST("", h.createFacility)
		facilities.GET("", h.listFacilities)
		facilities.POST("/import", h.importFacilities)
		facilities.PATCH("/:type/:id/status", h.updateFacilityStatus)
		facilities.PUT("/:type/:id/task", h.assignFacilityTask)
		facilities.DELETE("/:type/:id", h.deleteFacility)
	}

	tasks := secured.Group("/tasks")
	{
		tasks.POST("", h.createTask)
		tasks.GET("", h.listTasks)
		tasks.GET("/stats", h.taskStats)
		tasks.GET("/:id", h.getTask)
		tasks.POST("/:id/start", h.startTask)
		tasks.POST("/:id/done", h.markTaskDone)
		tasks.POST("/:id/verify", h.verifyTask)
		tasks.POST("/:id/reject", h.rejectTask)
	}

	issues := secured.Group("/issues")
	{
		issues.POST("", h.reportIssue)
		issues.GET("", h.listIssues)
		issues.GET("/emergencies/count", h.emergencyCount)
		issues.GET("/:id", h.getIssue)
		issues.POST("/:id/assign", h.assignIssue)
		issues.POST("/:id/merge", h.mergeIssue)
		issues.POST("/:id/close", h.closeIssue)
	}

	secured.GET("/emergency-reports", h.listEmergencyReports)
	secured.GET("/emergency-reports/:id", h.getEmergencyReport)

	secured.POST("/notifications", h.sendNotification)
	secured.GET("/notifications", h.listNotifications)

	ads := secured.Group("/ads")
	{
		ads.POST("", h.createAd)
		ads.GET("", h.listAds)
		ads.POST("/:id/publish", h.publishAd)
		ads.POST("/:id/unpublish", h.unpublishAd)
		ads.DELETE("/:id", h.deleteAd)
	}
}
