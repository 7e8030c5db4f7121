package encounter

import (
	"github.com/emberfell/campaign-api/internal/engine/combat"
	"github.com/emberfell/campaign-api/internal/entities"
)

// CreateEncounterInput defines the request for creating an encounter
type CreateEncounterInput struct {
	CampaignID         string
	OwnerID            string
	Name               string
	Description        string
	Notes              string
	EnvironmentEffects []string
}

// CreateEncounterOutput defines the response for creating an encounter
type CreateEncounterOutput struct {
	Encounter *entities.Encounter
}

// GetEncounterInput defines the request for retrieving an encounter
type GetEncounterInput struct {
	EncounterID string
}

// GetEncounterOutput defines the response for retrieving an encounter
type GetEncounterOutput struct {
	Encounter *entities.Encounter
}

// ListEncountersInput defines the request for listing a campaign's encounters
type ListEncountersInput struct {
	CampaignID string
}

// ListEncountersOutput defines the response for listing a campaign's encounters
type ListEncountersOutput struct {
	Encounters []*entities.Encounter
}

// UpdateEncounterInput patches an encounter's narration fields; nil fields
// are left unchanged. EnvironmentEffects, when non-nil, replaces the list.
type UpdateEncounterInput struct {
	EncounterID        string
	Name               *string
	Description        *string
	Notes              *string
	EnvironmentEffects []string
}

// UpdateEncounterOutput defines the response for patching an encounter
type UpdateEncounterOutput struct {
	Encounter *entities.Encounter
}

// DeleteEncounterInput defines the request for deleting an encounter
type DeleteEncounterInput struct {
	EncounterID string
}

// DeleteEncounterOutput defines the response for deleting an encounter
type DeleteEncounterOutput struct{}

// AddCombatantInput defines the request for adding a combatant
type AddCombatantInput struct {
	EncounterID string
	Name        string
	Type        string
	Initiative  int
	HP          int
	MaxHP       int
	Extra       map[string]any
}

// AddCombatantOutput defines the response for adding a combatant
type AddCombatantOutput struct {
	Combatant *entities.Combatant
	Encounter *entities.Encounter
}

// UpdateCombatantInput defines the request for patching a combatant
type UpdateCombatantInput struct {
	EncounterID string
	CombatantID string
	Name        *string
	Type        *string
	Initiative  *int
	HP          *int
	MaxHP       *int
	Extra       map[string]any
}

// UpdateCombatantOutput defines the response for patching a combatant
type UpdateCombatantOutput struct {
	Combatant *entities.Combatant
	Encounter *entities.Encounter
}

// RemoveCombatantInput defines the request for removing a combatant
type RemoveCombatantInput struct {
	EncounterID string
	CombatantID string
}

// RemoveCombatantOutput defines the response for removing a combatant
type RemoveCombatantOutput struct {
	Encounter *entities.Encounter
}

// StartEncounterInput defines the request for starting an encounter
type StartEncounterInput struct {
	EncounterID string
}

// StartEncounterOutput defines the response for starting an encounter
type StartEncounterOutput struct {
	Encounter *entities.Encounter
}

// EndEncounterInput defines the request for ending an encounter
type EndEncounterInput struct {
	EncounterID string
}

// EndEncounterOutput defines the response for ending an encounter
type EndEncounterOutput struct {
	Encounter *entities.Encounter
}

// NextTurnInput defines the request for advancing a turn
type NextTurnInput struct {
	EncounterID string
}

// NextTurnOutput reports who acts now, the round in progress, and any
// effects that expired at a round wrap.
type NextTurnOutput struct {
	Active       *entities.Combatant
	Round        int
	WrappedRound bool
	Expired      []combat.ExpiredEffect
	Encounter    *entities.Encounter
}

// AddStatusEffectInput defines the request for adding a status effect
type AddStatusEffectInput struct {
	EncounterID    string
	CombatantID    string
	Name           string
	Description    string
	DurationRounds *int
}

// AddStatusEffectOutput defines the response for adding a status effect
type AddStatusEffectOutput struct {
	Effect *entities.StatusEffect
}

// RemoveStatusEffectInput defines the request for removing a status effect
type RemoveStatusEffectInput struct {
	EncounterID string
	CombatantID string
	EffectID    string
}

// RemoveStatusEffectOutput reports whether the effect was present. Removed
// is false, not an error, when the effect already expired or was never
// there.
type RemoveStatusEffectOutput struct {
	Removed bool
}

// ApplyDamageInput defines the request for applying damage
type ApplyDamageInput struct {
	EncounterID string
	CombatantID string
	Amount      int
}

// ApplyDamageOutput defines the response for applying damage
type ApplyDamageOutput struct {
	Combatant *entities.Combatant
}

// ApplyHealingInput defines the request for applying healing
type ApplyHealingInput struct {
	EncounterID string
	CombatantID string
	Amount      int
}

// ApplyHealingOutput defines the response for applying healing
type ApplyHealingOutput struct {
	Combatant *entities.Combatant
}

// GetSummaryInput defines the request for the derived encounter view
type GetSummaryInput struct {
	EncounterID string
}

// GetSummaryOutput defines the response for the derived encounter view
type GetSummaryOutput struct {
	Summary *combat.Summary
}
