package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quitmate/quitmate-backend/internal/services"
)

type ProgressHandler struct {
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (ph *ProgressHandler) RecordEntry(c *gin.Context) {
	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var input services.RecordEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, justUnlocked, err := ph.progressService.RecordEntry(c.Request.Context(), userID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry, "just_unlocked": justUnlocked})
}

func (ph *ProgressHandler) ListEntries(c *gin.Context) {
	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	entries, err := ph.progressService.ListEntries(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (ph *ProgressHandler) GetSummary(c *gin.Context) {
	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	summary, err := ph.progressService.GetSummary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
