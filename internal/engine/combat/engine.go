// Package combat implements the encounter state machine: roster mutation,
// initiative ordering, round and turn progression, HP clamping, and
// time-limited status effects.
//
// The engine is a pure synchronous state transformer. Every operation
// either fully applies to the given encounter or rejects it unchanged;
// nothing here persists, blocks, or runs in the background. Serializing
// concurrent calls against the same encounter is the caller's job.
package combat

import (
	"sort"

	"github.com/emberfell/campaign-api/internal/entities"
	"github.com/emberfell/campaign-api/internal/errors"
	"github.com/emberfell/campaign-api/internal/pkg/idgen"
)

// Config holds the dependencies for the combat engine
type Config struct {
	CombatantIDs idgen.Generator
	EffectIDs    idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CombatantIDs == nil {
		vb.RequiredField("CombatantIDs")
	}
	if c.EffectIDs == nil {
		vb.RequiredField("EffectIDs")
	}

	return vb.Build()
}

// Engine applies encounter operations. It holds no encounter state of its
// own; encounters are passed in and mutated in place.
type Engine struct {
	combatantIDs idgen.Generator
	effectIDs    idgen.Generator
}

// New creates a combat engine with the provided dependencies
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Engine{
		combatantIDs: cfg.CombatantIDs,
		effectIDs:    cfg.EffectIDs,
	}, nil
}

// AddCombatant validates and appends a new combatant to the roster.
//
// While preparing, the initiative order is recomputed from scratch. While
// active, the newcomer is slotted immediately after the current actor so
// combatants who already acted this round are not reordered behind it.
func (e *Engine) AddCombatant(enc *entities.Encounter, input *AddCombatantInput) (*entities.Combatant, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if enc.IsCompleted() {
		return nil, errors.FailedPrecondition("encounter is completed")
	}

	vb := errors.NewValidationBuilder()
	if input.Name == "" {
		vb.RequiredField("Name")
	}
	if input.HP < 0 {
		vb.NonNegativeField("HP", input.HP)
	}
	if input.MaxHP < 0 {
		vb.NonNegativeField("MaxHP", input.MaxHP)
	}
	if input.HP >= 0 && input.MaxHP >= 0 && input.HP > input.MaxHP {
		vb.Fieldf("HP", "must be <= MaxHP (%d > %d)", input.HP, input.MaxHP)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	combatant := &entities.Combatant{
		ID:         e.combatantIDs.Generate(),
		Name:       input.Name,
		Type:       input.Type,
		Initiative: input.Initiative,
		HP:         input.HP,
		MaxHP:      input.MaxHP,
		Extra:      input.Extra,
	}
	enc.Combatants = append(enc.Combatants, combatant)

	switch enc.Status {
	case entities.EncounterStatusPreparing:
		resortInitiative(enc)
	case entities.EncounterStatusActive:
		insertAfterCurrent(enc, combatant.ID)
	}

	return combatant, nil
}

// UpdateCombatant applies a partial field update. An initiative change
// recomputes the order while preparing; while active it only takes effect
// at the next round wrap, so nobody's turn moves mid-round.
func (e *Engine) UpdateCombatant(enc *entities.Encounter, combatantID string, input *UpdateCombatantInput) (*entities.Combatant, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if enc.IsCompleted() {
		return nil, errors.FailedPrecondition("encounter is completed")
	}

	combatant := enc.Combatant(combatantID)
	if combatant == nil {
		return nil, errors.NotFoundf("combatant %s not found", combatantID)
	}

	// Validate the patched result before touching anything
	hp, maxHP := combatant.HP, combatant.MaxHP
	if input.HP != nil {
		hp = *input.HP
	}
	if input.MaxHP != nil {
		maxHP = *input.MaxHP
	}
	vb := errors.NewValidationBuilder()
	if input.Name != nil && *input.Name == "" {
		vb.RequiredField("Name")
	}
	if hp < 0 {
		vb.NonNegativeField("HP", hp)
	}
	if maxHP < 0 {
		vb.NonNegativeField("MaxHP", maxHP)
	}
	if hp >= 0 && maxHP >= 0 && hp > maxHP {
		vb.Fieldf("HP", "must be <= MaxHP (%d > %d)", hp, maxHP)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if input.Name != nil {
		combatant.Name = *input.Name
	}
	if input.Type != nil {
		combatant.Type = *input.Type
	}
	combatant.HP = hp
	combatant.MaxHP = maxHP
	if input.Extra != nil {
		combatant.Extra = input.Extra
	}

	if input.Initiative != nil && *input.Initiative != combatant.Initiative {
		combatant.Initiative = *input.Initiative
		switch enc.Status {
		case entities.EncounterStatusPreparing:
			resortInitiative(enc)
		case entities.EncounterStatusActive:
			enc.ReorderPending = true
		}
	}

	return combatant, nil
}

// RemoveCombatant deletes a combatant, its status effects, and its slot in
// the initiative order. When the removed combatant was the one currently
// acting, the turn index lands on the next still-present combatant without
// consuming an extra slot.
func (e *Engine) RemoveCombatant(enc *entities.Encounter, combatantID string) error {
	if enc.IsCompleted() {
		return errors.FailedPrecondition("encounter is completed")
	}

	rosterIdx := -1
	for i, c := range enc.Combatants {
		if c.ID == combatantID {
			rosterIdx = i
			break
		}
	}
	if rosterIdx == -1 {
		return errors.NotFoundf("combatant %s not found", combatantID)
	}

	// An active encounter with nobody left to act would break the
	// turn-index invariant, so the last combatant cannot be removed.
	if enc.Status == entities.EncounterStatusActive && len(enc.Combatants) == 1 {
		return errors.FailedPrecondition("cannot remove the last combatant from an active encounter")
	}

	enc.Combatants = append(enc.Combatants[:rosterIdx], enc.Combatants[rosterIdx+1:]...)

	orderIdx := -1
	for i, id := range enc.InitiativeOrder {
		if id == combatantID {
			orderIdx = i
			break
		}
	}
	if orderIdx >= 0 {
		enc.InitiativeOrder = append(enc.InitiativeOrder[:orderIdx], enc.InitiativeOrder[orderIdx+1:]...)

		if enc.Status == entities.EncounterStatusActive {
			if orderIdx < enc.CurrentTurnIndex {
				enc.CurrentTurnIndex--
			}
			// Removing the acting combatant at the tail lands on the top of
			// the order; the round counter only moves via NextTurn.
			if enc.CurrentTurnIndex >= len(enc.InitiativeOrder) {
				enc.CurrentTurnIndex = 0
			}
		}
	}

	return nil
}

// Start freezes the initiative order from the current roster and begins
// round 1. Valid only from preparing, and only with at least one combatant.
func (e *Engine) Start(enc *entities.Encounter) error {
	if enc.Status != entities.EncounterStatusPreparing {
		return errors.FailedPreconditionf("encounter is %s, only a preparing encounter can start", enc.Status)
	}
	if len(enc.Combatants) == 0 {
		return errors.FailedPrecondition("encounter needs at least one combatant to start")
	}

	resortInitiative(enc)
	enc.Status = entities.EncounterStatusActive
	enc.CurrentRound = 1
	enc.CurrentTurnIndex = 0
	enc.ReorderPending = false

	return nil
}

// End moves the encounter to completed. Valid from active, or from
// preparing as a cancel. Completed is terminal: every mutating operation
// afterward fails.
func (e *Engine) End(enc *entities.Encounter) error {
	if enc.IsCompleted() {
		return errors.FailedPrecondition("encounter is already completed")
	}

	enc.Status = entities.EncounterStatusCompleted
	return nil
}

// NextTurn advances to the next combatant in the order. Wrapping past the
// last combatant increments the round, applies any deferred re-sort, and
// runs round-advance processing: finite status-effect durations tick down
// and effects reaching zero are removed and reported as expired.
func (e *Engine) NextTurn(enc *entities.Encounter) (*TurnAdvance, error) {
	if enc.Status != entities.EncounterStatusActive {
		return nil, errors.FailedPreconditionf("encounter is %s, not active", enc.Status)
	}

	advance := &TurnAdvance{}

	next := enc.CurrentTurnIndex + 1
	if next >= len(enc.InitiativeOrder) {
		next = 0
		enc.CurrentRound++
		advance.WrappedRound = true

		if enc.ReorderPending {
			resortInitiative(enc)
			enc.ReorderPending = false
		}

		advance.Expired = expireEffects(enc)
	}
	enc.CurrentTurnIndex = next

	advance.Round = enc.CurrentRound
	advance.Active = enc.Combatant(enc.InitiativeOrder[next])

	return advance, nil
}

// AddStatusEffect appends a named effect to a combatant. DurationRounds,
// when given, must be positive; omitted means the effect lasts until
// removed explicitly.
func (e *Engine) AddStatusEffect(enc *entities.Encounter, combatantID string, input *AddStatusEffectInput) (*entities.StatusEffect, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if enc.IsCompleted() {
		return nil, errors.FailedPrecondition("encounter is completed")
	}

	combatant := enc.Combatant(combatantID)
	if combatant == nil {
		return nil, errors.NotFoundf("combatant %s not found", combatantID)
	}

	vb := errors.NewValidationBuilder()
	if input.Name == "" {
		vb.RequiredField("Name")
	}
	if input.DurationRounds != nil && *input.DurationRounds <= 0 {
		vb.Fieldf("DurationRounds", "must be a positive integer, got %d", *input.DurationRounds)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	effect := &entities.StatusEffect{
		ID:          e.effectIDs.Generate(),
		Name:        input.Name,
		Description: input.Description,
	}
	if input.DurationRounds != nil {
		d := *input.DurationRounds
		effect.DurationRounds = &d
	}
	combatant.StatusEffects = append(combatant.StatusEffects, effect)

	return effect, nil
}

// RemoveStatusEffect removes an effect by ID. A missing combatant or effect
// is the normal "already gone" case, reported as false rather than an
// error, since effects expire concurrently with manual removal attempts.
func (e *Engine) RemoveStatusEffect(enc *entities.Encounter, combatantID, effectID string) (bool, error) {
	if enc.IsCompleted() {
		return false, errors.FailedPrecondition("encounter is completed")
	}

	combatant := enc.Combatant(combatantID)
	if combatant == nil {
		return false, nil
	}

	for i, se := range combatant.StatusEffects {
		if se.ID == effectID {
			combatant.StatusEffects = append(combatant.StatusEffects[:i], combatant.StatusEffects[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

// ApplyDamage lowers a combatant's HP, clamped at zero. Negative amounts
// are rejected rather than treated as healing. Reaching zero does not
// remove the combatant or end the encounter; what death means is the
// caller's narrative call.
func (e *Engine) ApplyDamage(enc *entities.Encounter, combatantID string, amount int) (*entities.Combatant, error) {
	if enc.IsCompleted() {
		return nil, errors.FailedPrecondition("encounter is completed")
	}
	if amount < 0 {
		return nil, errors.InvalidArgumentf("damage amount must be >= 0, got %d", amount)
	}

	combatant := enc.Combatant(combatantID)
	if combatant == nil {
		return nil, errors.NotFoundf("combatant %s not found", combatantID)
	}

	combatant.HP -= amount
	if combatant.HP < 0 {
		combatant.HP = 0
	}

	return combatant, nil
}

// ApplyHealing raises a combatant's HP, clamped at MaxHP
func (e *Engine) ApplyHealing(enc *entities.Encounter, combatantID string, amount int) (*entities.Combatant, error) {
	if enc.IsCompleted() {
		return nil, errors.FailedPrecondition("encounter is completed")
	}
	if amount < 0 {
		return nil, errors.InvalidArgumentf("healing amount must be >= 0, got %d", amount)
	}

	combatant := enc.Combatant(combatantID)
	if combatant == nil {
		return nil, errors.NotFoundf("combatant %s not found", combatantID)
	}

	combatant.HP += amount
	if combatant.HP > combatant.MaxHP {
		combatant.HP = combatant.MaxHP
	}

	return combatant, nil
}

// resortInitiative rebuilds the full order from the roster: initiative
// descending, ties broken by insertion order. The stable sort over the
// roster slice is what makes the tiebreak deterministic.
func resortInitiative(enc *entities.Encounter) {
	order := make([]string, len(enc.Combatants))
	byID := make(map[string]int, len(enc.Combatants))
	for i, c := range enc.Combatants {
		order[i] = c.ID
		byID[c.ID] = c.Initiative
	}

	sort.SliceStable(order, func(i, j int) bool {
		return byID[order[i]] > byID[order[j]]
	})

	enc.InitiativeOrder = order
}

// insertAfterCurrent slots a newly added combatant into the remaining part
// of the current round, directly after the acting combatant.
func insertAfterCurrent(enc *entities.Encounter, id string) {
	pos := enc.CurrentTurnIndex + 1
	if pos > len(enc.InitiativeOrder) {
		pos = len(enc.InitiativeOrder)
	}

	order := make([]string, 0, len(enc.InitiativeOrder)+1)
	order = append(order, enc.InitiativeOrder[:pos]...)
	order = append(order, id)
	order = append(order, enc.InitiativeOrder[pos:]...)
	enc.InitiativeOrder = order
}

// expireEffects ticks every finite effect duration down by one and removes
// effects that reach zero, reporting them so callers can narrate expiry.
func expireEffects(enc *entities.Encounter) []ExpiredEffect {
	var expired []ExpiredEffect

	for _, c := range enc.Combatants {
		kept := c.StatusEffects[:0]
		for _, se := range c.StatusEffects {
			if se.DurationRounds == nil {
				kept = append(kept, se)
				continue
			}
			*se.DurationRounds--
			if *se.DurationRounds <= 0 {
				expired = append(expired, ExpiredEffect{
					CombatantID:   c.ID,
					CombatantName: c.Name,
					Effect:        *se,
				})
				continue
			}
			kept = append(kept, se)
		}
		c.StatusEffects = kept
	}

	return expired
}
