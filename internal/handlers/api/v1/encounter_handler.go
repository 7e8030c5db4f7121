package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberfell/campaign-api/internal/entities"
	"github.com/emberfell/campaign-api/internal/errors"
	"github.com/emberfell/campaign-api/internal/orchestrators/encounter"
	"github.com/emberfell/campaign-api/internal/rules"
)

type createEncounterRequest struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Notes              string   `json:"notes"`
	EnvironmentEffects []string `json:"environment_effects"`
}

type updateEncounterRequest struct {
	Name               *string  `json:"name"`
	Description        *string  `json:"description"`
	Notes              *string  `json:"notes"`
	EnvironmentEffects []string `json:"environment_effects"`
}

type addCombatantRequest struct {
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Initiative int            `json:"initiative"`
	HP         int            `json:"hp"`
	MaxHP      int            `json:"max_hp"`
	Extra      map[string]any `json:"extra"`
}

type updateCombatantRequest struct {
	Name       *string        `json:"name"`
	Type       *string        `json:"type"`
	Initiative *int           `json:"initiative"`
	HP         *int           `json:"hp"`
	MaxHP      *int           `json:"max_hp"`
	Extra      map[string]any `json:"extra"`
}

type hpChangeRequest struct {
	Amount int `json:"amount"`
}

// addStatusEffectRequest applies either a preset by key or an ad-hoc effect.
// When Preset is set the remaining fields are ignored.
type addStatusEffectRequest struct {
	Preset         string `json:"preset"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	DurationRounds *int   `json:"duration_rounds"`
}

func (h *Handler) createEncounter(c *gin.Context) {
	var req createEncounterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	campaign, ok := h.ownedCampaign(c, c.Param("campaignID"))
	if !ok {
		return
	}

	out, err := h.encounters.CreateEncounter(c.Request.Context(), &encounter.CreateEncounterInput{
		CampaignID:         campaign.ID,
		OwnerID:            campaign.OwnerID,
		Name:               req.Name,
		Description:        req.Description,
		Notes:              req.Notes,
		EnvironmentEffects: req.EnvironmentEffects,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"encounter": out.Encounter})
}

func (h *Handler) listEncounters(c *gin.Context) {
	campaign, ok := h.ownedCampaign(c, c.Param("campaignID"))
	if !ok {
		return
	}

	out, err := h.encounters.ListEncounters(c.Request.Context(), &encounter.ListEncountersInput{CampaignID: campaign.ID})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"encounters": out.Encounters})
}

func (h *Handler) getEncounter(c *gin.Context) {
	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"encounter": enc})
}

func (h *Handler) updateEncounter(c *gin.Context) {
	var req updateEncounterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	out, err := h.encounters.UpdateEncounter(c.Request.Context(), &encounter.UpdateEncounterInput{
		EncounterID:        enc.ID,
		Name:               req.Name,
		Description:        req.Description,
		Notes:              req.Notes,
		EnvironmentEffects: req.EnvironmentEffects,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"encounter": out.Encounter})
}

func (h *Handler) deleteEncounter(c *gin.Context) {
	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	if _, err := h.encounters.DeleteEncounter(c.Request.Context(), &encounter.DeleteEncounterInput{EncounterID: enc.ID}); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) getSummary(c *gin.Context) {
	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	out, err := h.encounters.GetSummary(c.Request.Context(), &encounter.GetSummaryInput{EncounterID: enc.ID})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": out.Summary})
}

func (h *Handler) startEncounter(c *gin.Context) {
	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	out, err := h.encounters.StartEncounter(c.Request.Context(), &encounter.StartEncounterInput{EncounterID: enc.ID})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"encounter": out.Encounter})
}

func (h *Handler) endEncounter(c *gin.Context) {
	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	out, err := h.encounters.EndEncounter(c.Request.Context(), &encounter.EndEncounterInput{EncounterID: enc.ID})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"encounter": out.Encounter})
}

func (h *Handler) nextTurn(c *gin.Context) {
	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	out, err := h.encounters.NextTurn(c.Request.Context(), &encounter.NextTurnInput{EncounterID: enc.ID})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active":          out.Active,
		"round":           out.Round,
		"wrapped_round":   out.WrappedRound,
		"expired_effects": out.Expired,
	})
}

func (h *Handler) addCombatant(c *gin.Context) {
	var req addCombatantRequest
	if !h.bindJSON(c, &req) {
		return
	}

	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	out, err := h.encounters.AddCombatant(c.Request.Context(), &encounter.AddCombatantInput{
		EncounterID: enc.ID,
		Name:        req.Name,
		Type:        req.Type,
		Initiative:  req.Initiative,
		HP:          req.HP,
		MaxHP:       req.MaxHP,
		Extra:       req.Extra,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"combatant": out.Combatant, "encounter": out.Encounter})
}

func (h *Handler) updateCombatant(c *gin.Context) {
	var req updateCombatantRequest
	if !h.bindJSON(c, &req) {
		return
	}

	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	out, err := h.encounters.UpdateCombatant(c.Request.Context(), &encounter.UpdateCombatantInput{
		EncounterID: enc.ID,
		CombatantID: c.Param("combatantID"),
		Name:        req.Name,
		Type:        req.Type,
		Initiative:  req.Initiative,
		HP:          req.HP,
		MaxHP:       req.MaxHP,
		Extra:       req.Extra,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"combatant": out.Combatant, "encounter": out.Encounter})
}

func (h *Handler) removeCombatant(c *gin.Context) {
	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	out, err := h.encounters.RemoveCombatant(c.Request.Context(), &encounter.RemoveCombatantInput{
		EncounterID: enc.ID,
		CombatantID: c.Param("combatantID"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"encounter": out.Encounter})
}

func (h *Handler) applyDamage(c *gin.Context) {
	var req hpChangeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	out, err := h.encounters.ApplyDamage(c.Request.Context(), &encounter.ApplyDamageInput{
		EncounterID: enc.ID,
		CombatantID: c.Param("combatantID"),
		Amount:      req.Amount,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"combatant": out.Combatant})
}

func (h *Handler) applyHealing(c *gin.Context) {
	var req hpChangeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	out, err := h.encounters.ApplyHealing(c.Request.Context(), &encounter.ApplyHealingInput{
		EncounterID: enc.ID,
		CombatantID: c.Param("combatantID"),
		Amount:      req.Amount,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"combatant": out.Combatant})
}

func (h *Handler) addStatusEffect(c *gin.Context) {
	var req addStatusEffectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	name, description, duration := req.Name, req.Description, req.DurationRounds
	if req.Preset != "" {
		preset, ok := rules.EffectPresetByKey(req.Preset)
		if !ok {
			h.respondError(c, errors.InvalidArgumentf("unknown effect preset %q", req.Preset))
			return
		}
		name, description, duration = preset.Name, preset.Description, preset.DurationRounds
	}

	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	out, err := h.encounters.AddStatusEffect(c.Request.Context(), &encounter.AddStatusEffectInput{
		EncounterID:    enc.ID,
		CombatantID:    c.Param("combatantID"),
		Name:           name,
		Description:    description,
		DurationRounds: duration,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"effect": out.Effect})
}

func (h *Handler) removeStatusEffect(c *gin.Context) {
	enc, ok := h.ownedEncounter(c)
	if !ok {
		return
	}

	out, err := h.encounters.RemoveStatusEffect(c.Request.Context(), &encounter.RemoveStatusEffectInput{
		EncounterID: enc.ID,
		CombatantID: c.Param("combatantID"),
		EffectID:    c.Param("effectID"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": out.Removed})
}

// ownedEncounter loads the encounter from the path and checks the caller
// owns it. On failure it writes the error response and returns ok=false.
func (h *Handler) ownedEncounter(c *gin.Context) (*entities.Encounter, bool) {
	out, err := h.encounters.GetEncounter(c.Request.Context(), &encounter.GetEncounterInput{
		EncounterID: c.Param("encounterID"),
	})
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	if out.Encounter.OwnerID != userID(c) {
		h.respondError(c, errors.PermissionDenied("encounter belongs to another user"))
		return nil, false
	}
	return out.Encounter, true
}
