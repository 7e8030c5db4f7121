// Package encounters defines the storage interface for encounter state and
// its Redis and in-memory implementations.
package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=encountersmock github.com/emberfell/campaign-api/internal/repositories/encounters Repository

import (
	"context"

	"github.com/emberfell/campaign-api/internal/entities"
)

// Repository defines the storage interface for encounters. The orchestrator
// loads an encounter, runs the combat engine on it, and writes it back; the
// repository never interprets encounter state.
type Repository interface {
	// Create stores a new encounter; fails if the ID already exists
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get retrieves an encounter by ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Update overwrites an existing encounter
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)

	// Delete removes an encounter
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// ListByCampaign returns all encounters belonging to a campaign
	ListByCampaign(ctx context.Context, input *ListByCampaignInput) (*ListByCampaignOutput, error)
}

// CreateInput defines the request for storing a new encounter
type CreateInput struct {
	Encounter *entities.Encounter
}

// CreateOutput defines the response for storing a new encounter
type CreateOutput struct {
	Encounter *entities.Encounter
}

// GetInput defines the request for retrieving an encounter
type GetInput struct {
	ID string
}

// GetOutput defines the response for retrieving an encounter
type GetOutput struct {
	Encounter *entities.Encounter
}

// UpdateInput defines the request for overwriting an encounter
type UpdateInput struct {
	Encounter *entities.Encounter
}

// UpdateOutput defines the response for overwriting an encounter
type UpdateOutput struct {
	Encounter *entities.Encounter
}

// DeleteInput defines the request for deleting an encounter
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the response for deleting an encounter
type DeleteOutput struct{}

// ListByCampaignInput defines the request for listing a campaign's encounters
type ListByCampaignInput struct {
	CampaignID string
}

// ListByCampaignOutput defines the response for listing a campaign's encounters
type ListByCampaignOutput struct {
	Encounters []*entities.Encounter
}
