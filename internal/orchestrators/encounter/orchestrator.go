// Package encounter orchestrates encounter operations: it serializes access
// per encounter, loads state from the repository, applies the combat engine,
// and persists the result.
package encounter

import (
	"context"
	"log/slog"
	"sync"

	"github.com/emberfell/campaign-api/internal/engine/combat"
	"github.com/emberfell/campaign-api/internal/entities"
	"github.com/emberfell/campaign-api/internal/errors"
	"github.com/emberfell/campaign-api/internal/pkg/clock"
	"github.com/emberfell/campaign-api/internal/pkg/idgen"
	"github.com/emberfell/campaign-api/internal/repositories/encounters"
)

//go:generate mockgen -destination=mock/mock_service.go -package=encountermock github.com/emberfell/campaign-api/internal/orchestrators/encounter Service

// Service defines the encounter orchestration interface
type Service interface {
	CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*CreateEncounterOutput, error)
	GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error)
	ListEncounters(ctx context.Context, input *ListEncountersInput) (*ListEncountersOutput, error)
	UpdateEncounter(ctx context.Context, input *UpdateEncounterInput) (*UpdateEncounterOutput, error)
	DeleteEncounter(ctx context.Context, input *DeleteEncounterInput) (*DeleteEncounterOutput, error)

	AddCombatant(ctx context.Context, input *AddCombatantInput) (*AddCombatantOutput, error)
	UpdateCombatant(ctx context.Context, input *UpdateCombatantInput) (*UpdateCombatantOutput, error)
	RemoveCombatant(ctx context.Context, input *RemoveCombatantInput) (*RemoveCombatantOutput, error)

	StartEncounter(ctx context.Context, input *StartEncounterInput) (*StartEncounterOutput, error)
	EndEncounter(ctx context.Context, input *EndEncounterInput) (*EndEncounterOutput, error)
	NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error)

	AddStatusEffect(ctx context.Context, input *AddStatusEffectInput) (*AddStatusEffectOutput, error)
	RemoveStatusEffect(ctx context.Context, input *RemoveStatusEffectInput) (*RemoveStatusEffectOutput, error)

	ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error)
	ApplyHealing(ctx context.Context, input *ApplyHealingInput) (*ApplyHealingOutput, error)

	GetSummary(ctx context.Context, input *GetSummaryInput) (*GetSummaryOutput, error)
}

// Config holds the dependencies for the encounter orchestrator
type Config struct {
	Repository   encounters.Repository
	Engine       *combat.Engine
	EncounterIDs idgen.Generator
	Clock        clock.Clock
	Logger       *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.EncounterIDs == nil {
		vb.RequiredField("EncounterIDs")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	repo   encounters.Repository
	engine *combat.Engine
	ids    idgen.Generator
	clock  clock.Clock
	log    *slog.Logger

	// locks serializes mutations per encounter ID. The combat engine is a
	// plain state transformer; this is the single-writer guarantee around it.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an encounter orchestrator with the provided dependencies
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &orchestrator{
		repo:   cfg.Repository,
		engine: cfg.Engine,
		ids:    cfg.EncounterIDs,
		clock:  cfg.Clock,
		log:    log,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

func (o *orchestrator) lockEncounter(id string) func() {
	o.mu.Lock()
	l, ok := o.locks[id]
	if !ok {
		l = &sync.Mutex{}
		o.locks[id] = l
	}
	o.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// mutate runs fn against the stored encounter under its lock and persists
// the result. When fn fails nothing is written, so the stored state is
// exactly what it was before the call.
func (o *orchestrator) mutate(ctx context.Context, encounterID string, fn func(*entities.Encounter) error) (*entities.Encounter, error) {
	if encounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	unlock := o.lockEncounter(encounterID)
	defer unlock()

	getOut, err := o.repo.Get(ctx, &encounters.GetInput{ID: encounterID})
	if err != nil {
		return nil, err
	}
	enc := getOut.Encounter

	if err := fn(enc); err != nil {
		return nil, err
	}

	enc.UpdatedAt = o.clock.Now()
	if _, err := o.repo.Update(ctx, &encounters.UpdateInput{Encounter: enc}); err != nil {
		return nil, errors.Wrap(err, "failed to persist encounter")
	}

	return enc, nil
}

func (o *orchestrator) CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*CreateEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.CampaignID == "" {
		vb.RequiredField("CampaignID")
	}
	if input.OwnerID == "" {
		vb.RequiredField("OwnerID")
	}
	if input.Name == "" {
		vb.RequiredField("Name")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	now := o.clock.Now()
	enc := &entities.Encounter{
		ID:                 o.ids.Generate(),
		CampaignID:         input.CampaignID,
		OwnerID:            input.OwnerID,
		Name:               input.Name,
		Description:        input.Description,
		Notes:              input.Notes,
		Status:             entities.EncounterStatusPreparing,
		EnvironmentEffects: input.EnvironmentEffects,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := o.repo.Create(ctx, &encounters.CreateInput{Encounter: enc}); err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "encounter created",
		"encounter_id", enc.ID,
		"campaign_id", enc.CampaignID,
	)

	return &CreateEncounterOutput{Encounter: enc}, nil
}

func (o *orchestrator) GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error) {
	if input == nil || input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	getOut, err := o.repo.Get(ctx, &encounters.GetInput{ID: input.EncounterID})
	if err != nil {
		return nil, err
	}

	return &GetEncounterOutput{Encounter: getOut.Encounter}, nil
}

func (o *orchestrator) ListEncounters(ctx context.Context, input *ListEncountersInput) (*ListEncountersOutput, error) {
	if input == nil || input.CampaignID == "" {
		return nil, errors.InvalidArgument("campaign ID is required")
	}

	listOut, err := o.repo.ListByCampaign(ctx, &encounters.ListByCampaignInput{CampaignID: input.CampaignID})
	if err != nil {
		return nil, err
	}

	return &ListEncountersOutput{Encounters: listOut.Encounters}, nil
}

func (o *orchestrator) UpdateEncounter(ctx context.Context, input *UpdateEncounterInput) (*UpdateEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Name != nil && *input.Name == "" {
		return nil, errors.InvalidArgument("Name cannot be empty")
	}

	enc, err := o.mutate(ctx, input.EncounterID, func(enc *entities.Encounter) error {
		if input.Name != nil {
			enc.Name = *input.Name
		}
		if input.Description != nil {
			enc.Description = *input.Description
		}
		if input.Notes != nil {
			enc.Notes = *input.Notes
		}
		if input.EnvironmentEffects != nil {
			enc.EnvironmentEffects = input.EnvironmentEffects
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateEncounterOutput{Encounter: enc}, nil
}

func (o *orchestrator) DeleteEncounter(ctx context.Context, input *DeleteEncounterInput) (*DeleteEncounterOutput, error) {
	if input == nil || input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	unlock := o.lockEncounter(input.EncounterID)
	defer unlock()

	if _, err := o.repo.Delete(ctx, &encounters.DeleteInput{ID: input.EncounterID}); err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "encounter deleted", "encounter_id", input.EncounterID)

	return &DeleteEncounterOutput{}, nil
}

func (o *orchestrator) AddCombatant(ctx context.Context, input *AddCombatantInput) (*AddCombatantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var combatant *entities.Combatant
	enc, err := o.mutate(ctx, input.EncounterID, func(enc *entities.Encounter) error {
		var err error
		combatant, err = o.engine.AddCombatant(enc, &combat.AddCombatantInput{
			Name:       input.Name,
			Type:       input.Type,
			Initiative: input.Initiative,
			HP:         input.HP,
			MaxHP:      input.MaxHP,
			Extra:      input.Extra,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "combatant added",
		"encounter_id", enc.ID,
		"combatant_id", combatant.ID,
		"initiative", combatant.Initiative,
	)

	return &AddCombatantOutput{Combatant: combatant, Encounter: enc}, nil
}

func (o *orchestrator) UpdateCombatant(ctx context.Context, input *UpdateCombatantInput) (*UpdateCombatantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CombatantID == "" {
		return nil, errors.InvalidArgument("combatant ID is required")
	}

	var combatant *entities.Combatant
	enc, err := o.mutate(ctx, input.EncounterID, func(enc *entities.Encounter) error {
		var err error
		combatant, err = o.engine.UpdateCombatant(enc, input.CombatantID, &combat.UpdateCombatantInput{
			Name:       input.Name,
			Type:       input.Type,
			Initiative: input.Initiative,
			HP:         input.HP,
			MaxHP:      input.MaxHP,
			Extra:      input.Extra,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &UpdateCombatantOutput{Combatant: combatant, Encounter: enc}, nil
}

func (o *orchestrator) RemoveCombatant(ctx context.Context, input *RemoveCombatantInput) (*RemoveCombatantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CombatantID == "" {
		return nil, errors.InvalidArgument("combatant ID is required")
	}

	enc, err := o.mutate(ctx, input.EncounterID, func(enc *entities.Encounter) error {
		return o.engine.RemoveCombatant(enc, input.CombatantID)
	})
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "combatant removed",
		"encounter_id", enc.ID,
		"combatant_id", input.CombatantID,
	)

	return &RemoveCombatantOutput{Encounter: enc}, nil
}

func (o *orchestrator) StartEncounter(ctx context.Context, input *StartEncounterInput) (*StartEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	enc, err := o.mutate(ctx, input.EncounterID, func(enc *entities.Encounter) error {
		return o.engine.Start(enc)
	})
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "encounter started",
		"encounter_id", enc.ID,
		"combatants", len(enc.Combatants),
	)

	return &StartEncounterOutput{Encounter: enc}, nil
}

func (o *orchestrator) EndEncounter(ctx context.Context, input *EndEncounterInput) (*EndEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	enc, err := o.mutate(ctx, input.EncounterID, func(enc *entities.Encounter) error {
		return o.engine.End(enc)
	})
	if err != nil {
		return nil, err
	}

	o.log.InfoContext(ctx, "encounter ended",
		"encounter_id", enc.ID,
		"rounds", enc.CurrentRound,
	)

	return &EndEncounterOutput{Encounter: enc}, nil
}

func (o *orchestrator) NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var advance *combat.TurnAdvance
	enc, err := o.mutate(ctx, input.EncounterID, func(enc *entities.Encounter) error {
		var err error
		advance, err = o.engine.NextTurn(enc)
		return err
	})
	if err != nil {
		return nil, err
	}

	if advance.WrappedRound {
		o.log.InfoContext(ctx, "round advanced",
			"encounter_id", enc.ID,
			"round", advance.Round,
			"expired_effects", len(advance.Expired),
		)
	}

	return &NextTurnOutput{
		Active:       advance.Active,
		Round:        advance.Round,
		WrappedRound: advance.WrappedRound,
		Expired:      advance.Expired,
		Encounter:    enc,
	}, nil
}

func (o *orchestrator) AddStatusEffect(ctx context.Context, input *AddStatusEffectInput) (*AddStatusEffectOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CombatantID == "" {
		return nil, errors.InvalidArgument("combatant ID is required")
	}

	var effect *entities.StatusEffect
	_, err := o.mutate(ctx, input.EncounterID, func(enc *entities.Encounter) error {
		var err error
		effect, err = o.engine.AddStatusEffect(enc, input.CombatantID, &combat.AddStatusEffectInput{
			Name:           input.Name,
			Description:    input.Description,
			DurationRounds: input.DurationRounds,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &AddStatusEffectOutput{Effect: effect}, nil
}

func (o *orchestrator) RemoveStatusEffect(ctx context.Context, input *RemoveStatusEffectInput) (*RemoveStatusEffectOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CombatantID == "" {
		return nil, errors.InvalidArgument("combatant ID is required")
	}
	if input.EffectID == "" {
		return nil, errors.InvalidArgument("effect ID is required")
	}

	var removed bool
	_, err := o.mutate(ctx, input.EncounterID, func(enc *entities.Encounter) error {
		var err error
		removed, err = o.engine.RemoveStatusEffect(enc, input.CombatantID, input.EffectID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &RemoveStatusEffectOutput{Removed: removed}, nil
}

func (o *orchestrator) ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CombatantID == "" {
		return nil, errors.InvalidArgument("combatant ID is required")
	}

	var combatant *entities.Combatant
	_, err := o.mutate(ctx, input.EncounterID, func(enc *entities.Encounter) error {
		var err error
		combatant, err = o.engine.ApplyDamage(enc, input.CombatantID, input.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ApplyDamageOutput{Combatant: combatant}, nil
}

func (o *orchestrator) ApplyHealing(ctx context.Context, input *ApplyHealingInput) (*ApplyHealingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CombatantID == "" {
		return nil, errors.InvalidArgument("combatant ID is required")
	}

	var combatant *entities.Combatant
	_, err := o.mutate(ctx, input.EncounterID, func(enc *entities.Encounter) error {
		var err error
		combatant, err = o.engine.ApplyHealing(enc, input.CombatantID, input.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ApplyHealingOutput{Combatant: combatant}, nil
}

func (o *orchestrator) GetSummary(ctx context.Context, input *GetSummaryInput) (*GetSummaryOutput, error) {
	if input == nil || input.EncounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	getOut, err := o.repo.Get(ctx, &encounters.GetInput{ID: input.EncounterID})
	if err != nil {
		return nil, err
	}

	return &GetSummaryOutput{Summary: o.engine.Summarize(getOut.Encounter)}, nil
}
