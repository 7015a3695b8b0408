package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quitmate/quitmate-backend/internal/services"
)

type FeedbackHandler struct {
	feedbackService services.FeedbackService
}

func NewFeedbackHandler(feedbackService services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (fh *FeedbackHandler) LeaveFeedback(c *gin.Context) {
	var body struct {
		MemberID uuid.UUID `json:"member_id"`
		CoachID  uuid.UUID `json:"coach_id"`
		Rating   int       `json:"rating"`
		Comment  string    `json:"comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	feedback, err := fh.feedbackService.LeaveFeedback(c.Request.Context(), body.MemberID, body.CoachID, body.Rating, body.Comment)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedback": feedback})
}

func (fh *FeedbackHandler) ListForCoach(c *gin.Context) {
	coachID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	feedback, err := fh.feedbackService.ListForCoach(c.Request.Context(), coachID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}

func (fh *FeedbackHandler) ListByMember(c *gin.Context) {
	memberID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	feedback, err := fh.feedbackService.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}
