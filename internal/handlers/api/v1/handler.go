// Package v1 exposes the REST API. Handlers translate HTTP requests into
// orchestrator calls and map service errors onto status codes; no combat
// logic lives here.
package v1

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/emberfell/campaign-api/internal/errors"
	"github.com/emberfell/campaign-api/internal/orchestrators/encounter"
	"github.com/emberfell/campaign-api/internal/pkg/clock"
	"github.com/emberfell/campaign-api/internal/pkg/idgen"
	"github.com/emberfell/campaign-api/internal/repositories/campaigns"
	"github.com/emberfell/campaign-api/internal/rules"
)

// identityHeader carries the caller's user ID. Authentication proper is a
// gateway concern; this service trusts the header.
const identityHeader = "X-User-ID"

const ctxUserID = "user_id"

// Config holds the dependencies for the API handler
type Config struct {
	Encounters  encounter.Service
	Campaigns   campaigns.Repository
	CampaignIDs idgen.Generator
	Clock       clock.Clock
	Logger      *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Encounters == nil {
		vb.RequiredField("Encounters")
	}
	if c.Campaigns == nil {
		vb.RequiredField("Campaigns")
	}
	if c.CampaignIDs == nil {
		vb.RequiredField("CampaignIDs")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// Handler wires the REST routes to the encounter service and campaign store
type Handler struct {
	encounters  encounter.Service
	campaigns   campaigns.Repository
	campaignIDs idgen.Generator
	clock       clock.Clock
	log         *slog.Logger
}

// NewHandler creates the API handler with the provided dependencies
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Handler{
		encounters:  cfg.Encounters,
		campaigns:   cfg.Campaigns,
		campaignIDs: cfg.CampaignIDs,
		clock:       cfg.Clock,
		log:         log,
	}, nil
}

// RegisterRoutes mounts all v1 routes on the router
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	// Reference data needs no identity
	api.GET("/rules/effect-presets", func(c *gin.Context) {
		c.JSON(200, gin.H{"presets": rules.EffectPresets()})
	})

	authed := api.Group("")
	authed.Use(h.requireUser())

	authed.POST("/campaigns", h.createCampaign)
	authed.GET("/campaigns", h.listCampaigns)
	authed.GET("/campaigns/:campaignID", h.getCampaign)
	authed.PUT("/campaigns/:campaignID", h.updateCampaign)
	authed.DELETE("/campaigns/:campaignID", h.deleteCampaign)

	authed.POST("/campaigns/:campaignID/encounters", h.createEncounter)
	authed.GET("/campaigns/:campaignID/encounters", h.listEncounters)

	authed.GET("/encounters/:encounterID", h.getEncounter)
	authed.PATCH("/encounters/:encounterID", h.updateEncounter)
	authed.DELETE("/encounters/:encounterID", h.deleteEncounter)
	authed.GET("/encounters/:encounterID/summary", h.getSummary)

	authed.POST("/encounters/:encounterID/start", h.startEncounter)
	authed.POST("/encounters/:encounterID/end", h.endEncounter)
	authed.POST("/encounters/:encounterID/next-turn", h.nextTurn)

	authed.POST("/encounters/:encounterID/combatants", h.addCombatant)
	authed.PATCH("/encounters/:encounterID/combatants/:combatantID", h.updateCombatant)
	authed.DELETE("/encounters/:encounterID/combatants/:combatantID", h.removeCombatant)

	authed.POST("/encounters/:encounterID/combatants/:combatantID/damage", h.applyDamage)
	authed.POST("/encounters/:encounterID/combatants/:combatantID/heal", h.applyHealing)

	authed.POST("/encounters/:encounterID/combatants/:combatantID/effects", h.addStatusEffect)
	authed.DELETE("/encounters/:encounterID/combatants/:combatantID/effects/:effectID", h.removeStatusEffect)
}

func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(identityHeader)
		if userID == "" {
			h.respondError(c, errors.Unauthenticated(identityHeader+" header is required"))
			c.Abort()
			return
		}
		c.Set(ctxUserID, userID)
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()

	if errors.IsInternal(err) {
		// Internal details stay in the logs
		h.log.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(status, gin.H{"code": code, "message": "internal error"})
		return
	}

	c.JSON(status, gin.H{"code": code, "message": errors.GetMessage(err)})
}

func (h *Handler) bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		h.respondError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return false
	}
	return true
}
