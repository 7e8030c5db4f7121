package combat

import "github.com/emberfell/campaign-api/internal/entities"

// Summarize computes the derived view of an encounter: the roster in turn
// order with effective status, the acting combatant, and conscious/down
// counts. It is a pure function of the encounter and never mutates it.
func (e *Engine) Summarize(enc *entities.Encounter) *Summary {
	s := &Summary{
		EncounterID:        enc.ID,
		Status:             enc.Status,
		Round:              enc.CurrentRound,
		TurnIndex:          enc.CurrentTurnIndex,
		Combatants:         make([]CombatantSummary, 0, len(enc.Combatants)),
		EnvironmentEffects: enc.EnvironmentEffects,
	}

	// Walk the initiative order so the view matches turn sequence. While
	// preparing the order may lag roster edits, so stragglers are appended
	// in insertion order.
	seen := make(map[string]bool, len(enc.Combatants))
	for _, id := range enc.InitiativeOrder {
		if c := enc.Combatant(id); c != nil {
			s.Combatants = append(s.Combatants, summarizeCombatant(c))
			seen[id] = true
		}
	}
	for _, c := range enc.Combatants {
		if !seen[c.ID] {
			s.Combatants = append(s.Combatants, summarizeCombatant(c))
		}
	}

	for _, cs := range s.Combatants {
		if cs.Conscious {
			s.Conscious++
		} else {
			s.Down++
		}
	}

	if enc.Status == entities.EncounterStatusActive &&
		enc.CurrentTurnIndex >= 0 && enc.CurrentTurnIndex < len(enc.InitiativeOrder) {
		if c := enc.Combatant(enc.InitiativeOrder[enc.CurrentTurnIndex]); c != nil {
			active := summarizeCombatant(c)
			s.Active = &active
		}
	}

	return s
}

func summarizeCombatant(c *entities.Combatant) CombatantSummary {
	cs := CombatantSummary{
		ID:         c.ID,
		Name:       c.Name,
		Type:       c.Type,
		Initiative: c.Initiative,
		HP:         c.HP,
		MaxHP:      c.MaxHP,
		Conscious:  c.HP > 0,
		Extra:      c.Extra,
	}

	if c.MaxHP > 0 {
		cs.HPPercent = c.HP * 100 / c.MaxHP
	}

	for _, se := range c.StatusEffects {
		es := EffectSummary{
			ID:          se.ID,
			Name:        se.Name,
			Description: se.Description,
		}
		if se.DurationRounds != nil {
			remaining := *se.DurationRounds
			es.RemainingRounds = &remaining
		}
		cs.Effects = append(cs.Effects, es)
	}

	return cs
}
