package encounters

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/emberfell/campaign-api/internal/entities"
	"github.com/emberfell/campaign-api/internal/errors"
)

// InMemoryRepository implements Repository with in-process storage, for
// tests and local development without Redis.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*entities.Encounter
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*entities.Encounter),
	}
}

// Encounters contain pointer-heavy state, so hand out deep copies to keep
// callers from mutating the store without going through Update.
func cloneEncounter(enc *entities.Encounter) *entities.Encounter {
	data, err := json.Marshal(enc)
	if err != nil {
		panic("encounters: encounter not serializable: " + err.Error())
	}
	var out entities.Encounter
	if err := json.Unmarshal(data, &out); err != nil {
		panic("encounters: encounter not deserializable: " + err.Error())
	}
	return &out
}

// Create stores a new encounter
func (r *InMemoryRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil || input.Encounter == nil {
		return nil, errors.InvalidArgument(errEncounterNil)
	}
	if input.Encounter.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Encounter.ID]; exists {
		return nil, errors.AlreadyExistsf("encounter with ID %s already exists", input.Encounter.ID)
	}

	r.store[input.Encounter.ID] = cloneEncounter(input.Encounter)
	return &CreateOutput{Encounter: input.Encounter}, nil
}

// Get retrieves an encounter by ID
func (r *InMemoryRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	enc, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("encounter with ID %s not found", input.ID)
	}

	return &GetOutput{Encounter: cloneEncounter(enc)}, nil
}

// Update overwrites an existing encounter
func (r *InMemoryRepository) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil || input.Encounter == nil {
		return nil, errors.InvalidArgument(errEncounterNil)
	}
	if input.Encounter.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Encounter.ID]; !exists {
		return nil, errors.NotFoundf("encounter with ID %s not found", input.Encounter.ID)
	}

	r.store[input.Encounter.ID] = cloneEncounter(input.Encounter)
	return &UpdateOutput{Encounter: input.Encounter}, nil
}

// Delete removes an encounter
func (r *InMemoryRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("encounter with ID %s not found", input.ID)
	}

	delete(r.store, input.ID)
	return &DeleteOutput{}, nil
}

// ListByCampaign returns all encounters belonging to a campaign
func (r *InMemoryRepository) ListByCampaign(ctx context.Context, input *ListByCampaignInput) (*ListByCampaignOutput, error) {
	if input == nil || input.CampaignID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Encounter, 0)
	for _, enc := range r.store {
		if enc.CampaignID == input.CampaignID {
			out = append(out, cloneEncounter(enc))
		}
	}

	return &ListByCampaignOutput{Encounters: out}, nil
}
