package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/event_ops_system/internal/models"
)

// @Summary Record a notification
// @Description Stores the notification; delivery is handled by an external gateway.
// @Tags Notifications
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param notification body NotificationRequest true "Notification"
// @Success 201 {object} models.Notification
// @Failure 400 {object} ErrorResponse
// @Router /notifications [post]
func (h *Handler) sendNotification(c *gin.Context) {
	log := h.log("sendNotification")
	var input NotificationRequest
	if !h.bind(c, log, &input) {
		return
	}

	n := NotificationRequestToModel(input)
	if err := h.services.Notifications.SendNotification(c.Request.Context(), n); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *Handler) listNotifications(c *gin.Context) {
	items, err := h.services.Notifications.ListNotifications(c.Request.Context())
	if err != nil {
		h.respondError(c, h.log("listNotifications"), err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Create an ad
// @Description New ads are unpublished until published explicitly.
// @Tags Ads
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param ad body AdRequest true "Ad"
// @Success 201 {object} models.Ad
// @Failure 400 {object} ErrorResponse
// @Router /ads [post]
func (h *Handler) createAd(c *gin.Context) {
	log := h.log("createAd")
	var input AdRequest
	if !h.bind(c, log, &input) {
		return
	}

	ad := AdRequestToModel(input)
	if err := h.services.Ads.CreateAd(c.Request.Context(), ad); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ad)
}

func (h *Handler) listAds(c *gin.Context) {
	ads, err := h.services.Ads.ListAds(c.Request.Context(), models.AdStatus(c.Query("status")))
	if err != nil {
		h.respondError(c, h.log("listAds"), err)
		return
	}
	c.JSON(http.StatusOK, ads)
}

func (h *Handler) publishAd(c *gin.Context) {
	if err := h.services.Ads.PublishAd(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, h.log("publishAd").WithField("ad_id", c.Param("id")), err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) unpublishAd(c *gin.Context) {
	if err := h.services.Ads.UnpublishAd(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, h.log("unpublishAd").WithField("ad_id", c.Param("id")), err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) deleteAd(c *gin.Context) {
	if err := h.services.Ads.DeleteAd(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, h.log("deleteAd").WithField("ad_id", c.Param("id")), err)
		return
	}
	c.Status(http.StatusNoContent)
}
