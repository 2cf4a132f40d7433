package handlers

import (
	"net/http"
	"strconv"

	"mindwell/models"
	"mindwell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// providerFromContext retrieves the authenticated psychiatrist's ID, set by
// JWTAuthProviderMiddleware.
func providerFromContext(c *gin.Context) (string, bool) {
	idValue, exists := c.Get("callerID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Provider not authenticated"})
		return "", false
	}
	id, ok := idValue.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid provider ID in context"})
		return "", false
	}
	return id, true
}

func (h *ProviderHandler) AddSlotHandler(c *gin.Context) {
	logger := utils.GetLogger()

	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}

	var req models.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid slot request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	slot, err := h.Availability.AddSlot(c.Request.Context(), providerID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Availability slot added", "slot": slot})
}

func (h *ProviderHandler) UpdateSlotHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot index in path"})
		return
	}

	var req models.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	slot, err := h.Availability.UpdateSlot(c.Request.Context(), providerID, index, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability slot updated", "slot": slot})
}

func (h *ProviderHandler) RemoveSlotHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot index in path"})
		return
	}

	if err := h.Availability.RemoveSlot(c.Request.Context(), providerID, index); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability slot removed"})
}

// GetAvailabilityHandler lists a psychiatrist's open slots. Students call
// this before booking.
func (h *ProviderHandler) GetAvailabilityHandler(c *gin.Context) {
	providerID := c.Param("id")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider ID in path"})
		return
	}

	slots, err := h.Availability.ListSlots(c.Request.Context(), providerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": slots})
}
