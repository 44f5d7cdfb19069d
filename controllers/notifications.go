package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prathameshp107/ClinLabOps-sub003/models"
	"github.com/prathameshp107/ClinLabOps-sub003/services/reminder"
)

type NotificationController struct {
	store *reminder.Store
}

func NewNotificationController(store *reminder.Store) *NotificationController {
	return &NotificationController{store: store}
}

// @Summary List notifications
// @Description List the authenticated user's notifications, newest first
// @Tags notifications
// @Produce json
// @Param limit query int false "Max results" default(50)
// @Param offset query int false "Result offset"
// @Success 200 {array} models.Notification
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /notifications [get]
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	u, ok := c.Get("user")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := nc.store.ListByRecipient(c.Request.Context(), u.(models.User).ID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, list)
}
