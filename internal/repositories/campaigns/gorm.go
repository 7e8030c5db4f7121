package campaigns

import (
	"context"
	stderrors "errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emberfell/campaign-api/internal/entities"
	"github.com/emberfell/campaign-api/internal/errors"
)

const (
	errCampaignNil     = "campaign cannot be nil"
	errCampaignIDEmpty = "campaign ID cannot be empty"
	errOwnerIDEmpty    = "owner ID cannot be empty"
)

type gormRepository struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the campaign database at path and keeps
// the schema current via AutoMigrate.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database %s", path)
	}

	if err := db.AutoMigrate(&entities.Campaign{}); err != nil {
		return nil, errors.Wrapf(err, "failed to migrate campaign schema")
	}

	return db, nil
}

// NewGorm creates a gorm-backed campaign repository
func NewGorm(db *gorm.DB) (Repository, error) {
	if db == nil {
		return nil, errors.InvalidArgument("db cannot be nil")
	}
	return &gormRepository{db: db}, nil
}

func (r *gormRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil || input.Campaign == nil {
		return nil, errors.InvalidArgument(errCampaignNil)
	}
	if input.Campaign.ID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}
	if input.Campaign.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	if err := r.db.WithContext(ctx).Create(input.Campaign).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.AlreadyExistsf("campaign with ID %s already exists", input.Campaign.ID)
		}
		return nil, errors.Wrapf(err, "failed to create campaign")
	}

	return &CreateOutput{Campaign: input.Campaign}, nil
}

func (r *gormRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}

	var campaign entities.Campaign
	err := r.db.WithContext(ctx).First(&campaign, "id = ?", input.ID).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFoundf("campaign with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get campaign")
	}

	return &GetOutput{Campaign: &campaign}, nil
}

func (r *gormRepository) ListByOwner(ctx context.Context, input *ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	var campaigns []*entities.Campaign
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", input.OwnerID).
		Order("created_at").
		Find(&campaigns).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list campaigns")
	}

	return &ListByOwnerOutput{Campaigns: campaigns}, nil
}

func (r *gormRepository) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil || input.Campaign == nil {
		return nil, errors.InvalidArgument(errCampaignNil)
	}
	if input.Campaign.ID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}

	result := r.db.WithContext(ctx).
		Model(&entities.Campaign{}).
		Where("id = ?", input.Campaign.ID).
		Updates(map[string]any{
			"owner_id":    input.Campaign.OwnerID,
			"name":        input.Campaign.Name,
			"description": input.Campaign.Description,
			"system":      input.Campaign.System,
			"updated_at":  input.Campaign.UpdatedAt,
		})
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "failed to update campaign")
	}
	if result.RowsAffected == 0 {
		return nil, errors.NotFoundf("campaign with ID %s not found", input.Campaign.ID)
	}

	return &UpdateOutput{Campaign: input.Campaign}, nil
}

func (r *gormRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}

	result := r.db.WithContext(ctx).Delete(&entities.Campaign{}, "id = ?", input.ID)
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "failed to delete campaign")
	}
	if result.RowsAffected == 0 {
		return nil, errors.NotFoundf("campaign with ID %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}
