package encounters

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/emberfell/campaign-api/internal/entities"
	"github.com/emberfell/campaign-api/internal/errors"
	redisclient "github.com/emberfell/campaign-api/internal/redis"
)

const (
	encounterKeyPrefix  = "encounter:"
	campaignIndexPrefix = "encounter:campaign:"

	errEncounterNil     = "encounter cannot be nil"
	errEncounterIDEmpty = "encounter ID cannot be empty"
	errCampaignIDEmpty  = "campaign ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis encounter repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed encounter repository. Encounters are
// stored as JSON documents with a per-campaign index set for listing.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil || input.Encounter == nil {
		return nil, errors.InvalidArgument(errEncounterNil)
	}
	if input.Encounter.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}
	if input.Encounter.CampaignID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}

	key := encounterKeyPrefix + input.Encounter.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("encounter with ID %s already exists", input.Encounter.ID)
	}

	data, err := json.Marshal(input.Encounter)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal encounter")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, campaignIndexPrefix+input.Encounter.CampaignID, input.Encounter.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create encounter")
	}

	return &CreateOutput{Encounter: input.Encounter}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	result, err := r.client.Get(ctx, encounterKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("encounter with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get encounter")
	}

	var enc entities.Encounter
	if err := json.Unmarshal([]byte(result), &enc); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal encounter")
	}

	return &GetOutput{Encounter: &enc}, nil
}

func (r *redisRepository) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil || input.Encounter == nil {
		return nil, errors.InvalidArgument(errEncounterNil)
	}
	if input.Encounter.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	// Fetch first so a missing encounter is NotFound rather than an upsert
	existing, err := r.Get(ctx, &GetInput{ID: input.Encounter.ID})
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Encounter)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal encounter")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, encounterKeyPrefix+input.Encounter.ID, data, 0)

	// Keep the campaign index consistent if the parent ever changes
	if existing.Encounter.CampaignID != input.Encounter.CampaignID {
		if existing.Encounter.CampaignID != "" {
			pipe.SRem(ctx, campaignIndexPrefix+existing.Encounter.CampaignID, input.Encounter.ID)
		}
		if input.Encounter.CampaignID != "" {
			pipe.SAdd(ctx, campaignIndexPrefix+input.Encounter.CampaignID, input.Encounter.ID)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update encounter")
	}

	return &UpdateOutput{Encounter: input.Encounter}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	getOutput, err := r.Get(ctx, &GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, encounterKeyPrefix+input.ID)
	if getOutput.Encounter.CampaignID != "" {
		pipe.SRem(ctx, campaignIndexPrefix+getOutput.Encounter.CampaignID, input.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete encounter")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByCampaign(ctx context.Context, input *ListByCampaignInput) (*ListByCampaignOutput, error) {
	if input == nil || input.CampaignID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}

	indexKey := campaignIndexPrefix + input.CampaignID
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read campaign index %s", indexKey)
	}

	out := make([]*entities.Encounter, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, &GetInput{ID: id})
		if err != nil {
			// Stale index entries are cleaned up rather than failing the list
			if errors.IsNotFound(err) {
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get encounter %s", id)
		}
		out = append(out, getOutput.Encounter)
	}

	return &ListByCampaignOutput{Encounters: out}, nil
}
