package handlers

import (
	"net/http"

	"mindwell/models"
	availabilitySvc "mindwell/services/availability"
	"mindwell/services/provider"
	"mindwell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler bundles psychiatrist account and availability endpoints.
type ProviderHandler struct {
	Service      provider.ProviderService
	Availability availabilitySvc.AvailabilityService
}

func NewProviderHandler(svc provider.ProviderService, avail availabilitySvc.AvailabilityService) *ProviderHandler {
	return &ProviderHandler{Service: svc, Availability: avail}
}

func (h *ProviderHandler) RegisterProviderHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ProviderRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid provider registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProviderHandler) AuthenticateProviderHandler(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProviderHandler) GetProviderByIDHandler(c *gin.Context) {
	id := c.Param("id")
	p, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProviderHandler) ListProvidersHandler(c *gin.Context) {
	providers, err := h.Service.GetAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}
