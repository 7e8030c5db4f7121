package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberfell/campaign-api/internal/entities"
	"github.com/emberfell/campaign-api/internal/errors"
	"github.com/emberfell/campaign-api/internal/repositories/campaigns"
)

type createCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	System      string `json:"system"`
}

type updateCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	System      string `json:"system"`
}

func (h *Handler) createCampaign(c *gin.Context) {
	var req createCampaignRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.Name == "" {
		h.respondError(c, errors.InvalidArgument("name is required"))
		return
	}

	now := h.clock.Now()
	campaign := &entities.Campaign{
		ID:          h.campaignIDs.Generate(),
		OwnerID:     userID(c),
		Name:        req.Name,
		Description: req.Description,
		System:      req.System,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := h.campaigns.Create(c.Request.Context(), &campaigns.CreateInput{Campaign: campaign}); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"campaign": campaign})
}

func (h *Handler) listCampaigns(c *gin.Context) {
	out, err := h.campaigns.ListByOwner(c.Request.Context(), &campaigns.ListByOwnerInput{OwnerID: userID(c)})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": out.Campaigns})
}

func (h *Handler) getCampaign(c *gin.Context) {
	campaign, ok := h.ownedCampaign(c, c.Param("campaignID"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaign": campaign})
}

func (h *Handler) updateCampaign(c *gin.Context) {
	var req updateCampaignRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.Name == "" {
		h.respondError(c, errors.InvalidArgument("name is required"))
		return
	}

	campaign, ok := h.ownedCampaign(c, c.Param("campaignID"))
	if !ok {
		return
	}

	campaign.Name = req.Name
	campaign.Description = req.Description
	campaign.System = req.System
	campaign.UpdatedAt = h.clock.Now()

	if _, err := h.campaigns.Update(c.Request.Context(), &campaigns.UpdateInput{Campaign: campaign}); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaign": campaign})
}

func (h *Handler) deleteCampaign(c *gin.Context) {
	campaign, ok := h.ownedCampaign(c, c.Param("campaignID"))
	if !ok {
		return
	}

	if _, err := h.campaigns.Delete(c.Request.Context(), &campaigns.DeleteInput{ID: campaign.ID}); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ownedCampaign loads a campaign and checks the caller owns it. On failure
// it writes the error response and returns ok=false.
func (h *Handler) ownedCampaign(c *gin.Context, campaignID string) (*entities.Campaign, bool) {
	out, err := h.campaigns.Get(c.Request.Context(), &campaigns.GetInput{ID: campaignID})
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	if out.Campaign.OwnerID != userID(c) {
		h.respondError(c, errors.PermissionDenied("campaign belongs to another user"))
		return nil, false
	}
	return out.Campaign, true
}
