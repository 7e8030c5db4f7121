// Package campaigns stores campaign records in SQLite. Campaigns are the
// ownership root: encounter handlers check them before touching any
// encounter state.
package campaigns

//go:generate mockgen -destination=mock/mock_repository.go -package=campaignsmock github.com/emberfell/campaign-api/internal/repositories/campaigns Repository

import (
	"context"

	"github.com/emberfell/campaign-api/internal/entities"
)

// Repository defines the storage interface for campaigns
type Repository interface {
	// Create stores a new campaign
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get retrieves a campaign by ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// ListByOwner returns all campaigns owned by a user
	ListByOwner(ctx context.Context, input *ListByOwnerInput) (*ListByOwnerOutput, error)

	// Update overwrites an existing campaign
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)

	// Delete removes a campaign
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the request for storing a new campaign
type CreateInput struct {
	Campaign *entities.Campaign
}

// CreateOutput defines the response for storing a new campaign
type CreateOutput struct {
	Campaign *entities.Campaign
}

// GetInput defines the request for retrieving a campaign
type GetInput struct {
	ID string
}

// GetOutput defines the response for retrieving a campaign
type GetOutput struct {
	Campaign *entities.Campaign
}

// ListByOwnerInput defines the request for listing a user's campaigns
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput defines the response for listing a user's campaigns
type ListByOwnerOutput struct {
	Campaigns []*entities.Campaign
}

// UpdateInput defines the request for overwriting a campaign
type UpdateInput struct {
	Campaign *entities.Campaign
}

// UpdateOutput defines the response for overwriting a campaign
type UpdateOutput struct {
	Campaign *entities.Campaign
}

// DeleteInput defines the request for deleting a campaign
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the response for deleting a campaign
type DeleteOutput struct{}
