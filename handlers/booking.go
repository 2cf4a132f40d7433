package handlers

import (
	"net/http"

	"mindwell/models"
	"mindwell/services/booking"
	"mindwell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler bundles appointment booking and lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

func callerFromContext(c *gin.Context) (id, role string, ok bool) {
	idValue, exists := c.Get("callerID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return "", "", false
	}
	id, _ = idValue.(string)
	roleValue, _ := c.Get("callerRole")
	role, _ = roleValue.(string)
	if id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid caller identity in context"})
		return "", "", false
	}
	return id, role, true
}

// BookAppointmentHandler books a sub-interval of a psychiatrist's open slot
// for the authenticated student.
func (h *BookingHandler) BookAppointmentHandler(c *gin.Context) {
	callerID, _, ok := callerFromContext(c)
	if !ok {
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Error("Invalid booking request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	appt, err := h.Service.BookInterval(c.Request.Context(), req.ProviderID, callerID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Appointment requested", "appointment": appt})
}

// SetStatusHandler applies a lifecycle transition to an appointment.
func (h *BookingHandler) SetStatusHandler(c *gin.Context) {
	callerID, callerRole, ok := callerFromContext(c)
	if !ok {
		return
	}
	appointmentID := c.Param("id")

	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	appt, err := h.Service.SetStatus(c.Request.Context(), appointmentID, callerID, callerRole, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment status updated", "appointment": appt})
}

func (h *BookingHandler) GetAppointmentHandler(c *gin.Context) {
	callerID, callerRole, ok := callerFromContext(c)
	if !ok {
		return
	}
	appt, err := h.Service.GetAppointment(c.Request.Context(), c.Param("id"), callerID, callerRole)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListMyAppointmentsHandler returns the caller's appointments: bookings they
// requested for students, bookings they received for psychiatrists.
func (h *BookingHandler) ListMyAppointmentsHandler(c *gin.Context) {
	callerID, callerRole, ok := callerFromContext(c)
	if !ok {
		return
	}

	var (
		appointments []models.Appointment
		err          error
	)
	if callerRole == models.RolePsychiatrist {
		appointments, err = h.Service.ListForProvider(c.Request.Context(), callerID)
	} else {
		appointments, err = h.Service.ListForRequester(c.Request.Context(), callerID)
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

func (h *BookingHandler) DeleteAppointmentHandler(c *gin.Context) {
	callerID, callerRole, ok := callerFromContext(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteAppointment(c.Request.Context(), c.Param("id"), callerID, callerRole); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
