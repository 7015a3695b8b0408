package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quitmate/quitmate-backend/internal/services"
)

type AppointmentHandler struct {
	appointmentService services.AppointmentService
}

func NewAppointmentHandler(appointmentService services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func (ah *AppointmentHandler) Book(c *gin.Context) {
	var input services.BookAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	appointment, err := ah.appointmentService.Book(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appointment})
}

func (ah *AppointmentHandler) ListForMember(c *gin.Context) {
	memberID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	appointments, err := ah.appointmentService.ListForMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

func (ah *AppointmentHandler) ListForCoach(c *gin.Context) {
	coachID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	appointments, err := ah.appointmentService.ListForCoach(c.Request.Context(), coachID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

func (ah *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	appointment, err := ah.appointmentService.Confirm(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

func (ah *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	appointment, err := ah.appointmentService.Complete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

func (ah *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	appointment, err := ah.appointmentService.Cancel(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}
