package handlers

import (
	"net/http"

	"mindwell/services/notification"
	"mindwell/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the caller's in-app notifications.
type NotificationHandler struct {
	Service notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	callerID, _, ok := callerFromContext(c)
	if !ok {
		return
	}
	notifications, err := h.Service.ListForUser(c.Request.Context(), callerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	callerID, _, ok := callerFromContext(c)
	if !ok {
		return
	}
	if err := h.Service.MarkRead(c.Request.Context(), c.Param("id"), callerID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
