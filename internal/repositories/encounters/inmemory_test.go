package encounters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberfell/campaign-api/internal/entities"
	"github.com/emberfell/campaign-api/internal/errors"
	"github.com/emberfell/campaign-api/internal/repositories/encounters"
)

func TestInMemory_IsolatesStoredState(t *testing.T) {
	repo := encounters.NewInMemory()
	ctx := context.Background()

	enc := &entities.Encounter{
		ID:         "enc_1",
		CampaignID: "cam_1",
		Status:     entities.EncounterStatusPreparing,
		Combatants: []*entities.Combatant{
			{ID: "cmb_1", Name: "Thokk", HP: 10, MaxHP: 10},
		},
	}
	_, err := repo.Create(ctx, &encounters.CreateInput{Encounter: enc})
	require.NoError(t, err)

	// Mutating the caller's copy after Create must not leak into the store
	enc.Combatants[0].HP = 1

	got, err := repo.Get(ctx, &encounters.GetInput{ID: "enc_1"})
	require.NoError(t, err)
	assert.Equal(t, 10, got.Encounter.Combatants[0].HP)

	// Nor may mutating a Get result change what the next Get sees
	got.Encounter.Name = "scribbled"
	again, err := repo.Get(ctx, &encounters.GetInput{ID: "enc_1"})
	require.NoError(t, err)
	assert.Empty(t, again.Encounter.Name)
}

func TestInMemory_DeleteAndNotFound(t *testing.T) {
	repo := encounters.NewInMemory()
	ctx := context.Background()

	_, err := repo.Get(ctx, &encounters.GetInput{ID: "enc_missing"})
	assert.True(t, errors.IsNotFound(err))

	_, err = repo.Delete(ctx, &encounters.DeleteInput{ID: "enc_missing"})
	assert.True(t, errors.IsNotFound(err))

	_, err = repo.Create(ctx, &encounters.CreateInput{Encounter: &entities.Encounter{ID: "enc_1", CampaignID: "cam_1"}})
	require.NoError(t, err)

	_, err = repo.Delete(ctx, &encounters.DeleteInput{ID: "enc_1"})
	require.NoError(t, err)

	_, err = repo.Get(ctx, &encounters.GetInput{ID: "enc_1"})
	assert.True(t, errors.IsNotFound(err))
}
