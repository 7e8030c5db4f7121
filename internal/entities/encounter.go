// Package entities defines the domain types shared across orchestrators,
// repositories, and the combat engine.
package entities

import "time"

// EncounterStatus describes where an encounter is in its lifecycle
type EncounterStatus string

// Encounter lifecycle states. An encounter starts preparing, becomes active
// when started, and ends completed. Completed is terminal.
const (
	EncounterStatusPreparing EncounterStatus = "preparing"
	EncounterStatusActive    EncounterStatus = "active"
	EncounterStatusCompleted EncounterStatus = "completed"
)

// Encounter is a single tracked combat session within a campaign.
//
// Combatants holds the roster in insertion order, which doubles as the
// tiebreak when initiative values collide. InitiativeOrder is the turn
// sequence for the current round: recomputed on roster changes while
// preparing, and frozen in place (aside from removals and mid-round
// insertions) once active.
type Encounter struct {
	ID          string `json:"id"`
	CampaignID  string `json:"campaign_id"`
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`

	Status           EncounterStatus `json:"status"`
	CurrentRound     int             `json:"current_round"`
	CurrentTurnIndex int             `json:"current_turn_index"`

	Combatants      []*Combatant `json:"combatants"`
	InitiativeOrder []string     `json:"initiative_order"`

	// EnvironmentEffects are encounter-wide display-only modifiers the
	// engine passes through untouched.
	EnvironmentEffects []string `json:"environment_effects,omitempty"`

	// ReorderPending is set when a combatant's initiative changes while the
	// encounter is active. The order is re-sorted at the next round wrap so
	// the current round is never reshuffled mid-round.
	ReorderPending bool `json:"reorder_pending,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Combatant returns the roster entry with the given ID, if present
func (e *Encounter) Combatant(id string) *Combatant {
	for _, c := range e.Combatants {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// IsCompleted reports whether the encounter reached its terminal state
func (e *Encounter) IsCompleted() bool {
	return e.Status == EncounterStatusCompleted
}

// Combatant is a participant (player, ally, or enemy) tracked within an
// encounter. Type is an opaque tag the engine never interprets.
type Combatant struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	Initiative int    `json:"initiative"`
	HP         int    `json:"hp"`
	MaxHP      int    `json:"max_hp"`

	StatusEffects []*StatusEffect `json:"status_effects,omitempty"`

	// Extra carries arbitrary display-only fields (AC, portrait, player
	// name, ...) the front end wants round-tripped.
	Extra map[string]any `json:"extra,omitempty"`
}

// Effect returns the active effect with the given ID, if present
func (c *Combatant) Effect(id string) *StatusEffect {
	for _, se := range c.StatusEffects {
		if se.ID == id {
			return se
		}
	}
	return nil
}

// StatusEffect is a named, optionally time-limited modifier attached to a
// combatant. A nil DurationRounds means the effect persists until removed
// explicitly; a finite duration is decremented once per round wrap and the
// effect is dropped when it reaches zero.
type StatusEffect struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	DurationRounds *int   `json:"duration_rounds,omitempty"`
}
