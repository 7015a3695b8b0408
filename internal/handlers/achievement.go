package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quitmate/quitmate-backend/internal/services"
	"github.com/quitmate/quitmate-backend/internal/types"
)

type AchievementHandler struct {
	achievementService services.AchievementService
}

func NewAchievementHandler(achievementService services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

func (ah *AchievementHandler) CheckAndUnlock(c *gin.Context) {
	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	justUnlocked, err := ah.achievementService.CheckAndUnlock(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not check achievements right now, try again"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"just_unlocked": justUnlocked})
}

func (ah *AchievementHandler) ListUnlocked(c *gin.Context) {
	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	unlocked, err := ah.achievementService.ListUnlocked(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": unlocked})
}

func (ah *AchievementHandler) ListCatalog(c *gin.Context) {
	catalog, err := ah.achievementService.ListCatalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": catalog})
}

func (ah *AchievementHandler) CreateAchievement(c *gin.Context) {
	var body struct {
		Name                string `json:"name"`
		Description         string `json:"description"`
		MilestoneDays       *int   `json:"milestone_days"`
		SavedMoneyThreshold *int64 `json:"saved_money_threshold"`
		Category            string `json:"category"`
		Difficulty          string `json:"difficulty"`
		Points              int    `json:"points"`
		IsActive            *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row := types.Achievement{
		Name:                body.Name,
		Description:         body.Description,
		MilestoneDays:       body.MilestoneDays,
		SavedMoneyThreshold: body.SavedMoneyThreshold,
		Category:            body.Category,
		Difficulty:          body.Difficulty,
		Points:              body.Points,
		// New definitions are active unless the caller says otherwise.
		IsActive: body.IsActive == nil || *body.IsActive,
	}
	created, err := ah.achievementService.CreateAchievement(c.Request.Context(), &row)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"achievement": created})
}

func (ah *AchievementHandler) UpdateAchievement(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var row types.Achievement
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row.ID = id
	updated, err := ah.achievementService.UpdateAchievement(c.Request.Context(), &row)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievement": updated})
}

func (ah *AchievementHandler) SetAchievementActive(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var body struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ah.achievementService.SetAchievementActive(c.Request.Context(), id, body.IsActive); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievement_id": id, "is_active": body.IsActive})
}

func (ah *AchievementHandler) ResetUserAchievements(c *gin.Context) {
	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := ah.achievementService.ResetUserAchievements(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true, "user_id": userID})
}
