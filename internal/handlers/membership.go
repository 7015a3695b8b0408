package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/quitmate/quitmate-backend/internal/services"
	"github.com/quitmate/quitmate-backend/internal/types"
)

type MembershipHandler struct {
	membershipService services.MembershipService
}

func NewMembershipHandler(membershipService services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

func (mh *MembershipHandler) ListActivePlans(c *gin.Context) {
	plans, err := mh.membershipService.ListActivePlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (mh *MembershipHandler) ListAllPlans(c *gin.Context) {
	plans, err := mh.membershipService.ListAllPlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (mh *MembershipHandler) CreatePlan(c *gin.Context) {
	var body struct {
		Name         string         `json:"name"`
		Description  string         `json:"description"`
		Price        int64          `json:"price"`
		DurationDays int            `json:"duration_days"`
		Features     datatypes.JSON `json:"features"`
		IsActive     *bool          `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row := types.MembershipPlan{
		Name:         body.Name,
		Description:  body.Description,
		Price:        body.Price,
		DurationDays: body.DurationDays,
		Features:     body.Features,
		// New plans are active unless the caller says otherwise.
		IsActive: body.IsActive == nil || *body.IsActive,
	}
	created, err := mh.membershipService.CreatePlan(c.Request.Context(), &row)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"plan": created})
}

func (mh *MembershipHandler) UpdatePlan(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var row types.MembershipPlan
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row.ID = id
	updated, err := mh.membershipService.UpdatePlan(c.Request.Context(), &row)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": updated})
}

func (mh *MembershipHandler) DeletePlan(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := mh.membershipService.DeletePlan(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (mh *MembershipHandler) AssignPlan(c *gin.Context) {
	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var body struct {
		PlanID uuid.UUID `json:"plan_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := mh.membershipService.AssignPlan(c.Request.Context(), userID, body.PlanID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assigned": true})
}
