package combat

import "github.com/emberfell/campaign-api/internal/entities"

// AddCombatantInput carries the fields for a new roster entry
type AddCombatantInput struct {
	Name       string
	Type       string
	Initiative int
	HP         int
	MaxHP      int
	Extra      map[string]any
}

// UpdateCombatantInput is a partial update; nil fields are left unchanged.
// Extra, when non-nil, replaces the combatant's display fields wholesale.
type UpdateCombatantInput struct {
	Name       *string
	Type       *string
	Initiative *int
	HP         *int
	MaxHP      *int
	Extra      map[string]any
}

// AddStatusEffectInput carries the fields for a new status effect. A nil
// DurationRounds means the effect is indefinite.
type AddStatusEffectInput struct {
	Name           string
	Description    string
	DurationRounds *int
}

// TurnAdvance reports the outcome of advancing a turn: who acts now, the
// round in progress, and any effects that expired at the round wrap so the
// caller can narrate them.
type TurnAdvance struct {
	Active       *entities.Combatant
	Round        int
	WrappedRound bool
	Expired      []ExpiredEffect
}

// ExpiredEffect names an effect that was removed at a round wrap
type ExpiredEffect struct {
	CombatantID   string                `json:"combatant_id"`
	CombatantName string                `json:"combatant_name"`
	Effect        entities.StatusEffect `json:"effect"`
}

// Summary is a read-only derived view of an encounter: turn position, the
// roster in turn order with effective status, and conscious/down counts.
type Summary struct {
	EncounterID        string             `json:"encounter_id"`
	Status             entities.EncounterStatus `json:"status"`
	Round              int                `json:"round"`
	TurnIndex          int                `json:"turn_index"`
	Active             *CombatantSummary  `json:"active,omitempty"`
	Combatants         []CombatantSummary `json:"combatants"`
	Conscious          int                `json:"conscious"`
	Down               int                `json:"down"`
	EnvironmentEffects []string           `json:"environment_effects,omitempty"`
}

// CombatantSummary is one roster entry's effective status
type CombatantSummary struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type,omitempty"`
	Initiative int             `json:"initiative"`
	HP         int             `json:"hp"`
	MaxHP      int             `json:"max_hp"`
	HPPercent  int             `json:"hp_percent"`
	Conscious  bool            `json:"conscious"`
	Effects    []EffectSummary `json:"effects,omitempty"`
	Extra      map[string]any  `json:"extra,omitempty"`
}

// EffectSummary is an active effect with its remaining duration, nil when
// the effect is indefinite
type EffectSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	RemainingRounds *int   `json:"remaining_rounds,omitempty"`
}
