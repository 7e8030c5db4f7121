package encounters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/emberfell/campaign-api/internal/entities"
	"github.com/emberfell/campaign-api/internal/errors"
	"github.com/emberfell/campaign-api/internal/repositories/encounters"
	"github.com/emberfell/campaign-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    encounters.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	var err error
	s.repo, err = encounters.NewRedis(&encounters.RedisConfig{Client: client})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) testEncounter(id, campaignID string) *entities.Encounter {
	poison := 2
	return &entities.Encounter{
		ID:         id,
		CampaignID: campaignID,
		OwnerID:    "user_1",
		Name:       "Bridge Skirmish",
		Status:     entities.EncounterStatusActive,
		CurrentRound: 3,
		Combatants: []*entities.Combatant{
			{
				ID:         "cmb_1",
				Name:       "Thokk",
				Type:       "enemy",
				Initiative: 14,
				HP:         9,
				MaxHP:      22,
				StatusEffects: []*entities.StatusEffect{
					{ID: "eff_1", Name: "Poison", DurationRounds: &poison},
				},
				Extra: map[string]any{"ac": float64(13)},
			},
		},
		InitiativeOrder: []string{"cmb_1"},
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	enc := s.testEncounter("enc_1", "cam_1")

	_, err := s.repo.Create(s.ctx, &encounters.CreateInput{Encounter: enc})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, &encounters.GetInput{ID: "enc_1"})
	s.Require().NoError(err)
	s.Equal("Bridge Skirmish", got.Encounter.Name)
	s.Equal(entities.EncounterStatusActive, got.Encounter.Status)
	s.Equal(3, got.Encounter.CurrentRound)
	s.Require().Len(got.Encounter.Combatants, 1)

	// Combatant state, effects, and display fields round-trip through JSON
	c := got.Encounter.Combatants[0]
	s.Equal("Thokk", c.Name)
	s.Equal(9, c.HP)
	s.Require().Len(c.StatusEffects, 1)
	s.Require().NotNil(c.StatusEffects[0].DurationRounds)
	s.Equal(2, *c.StatusEffects[0].DurationRounds)
	s.Equal(float64(13), c.Extra["ac"])
}

func (s *RedisRepositoryTestSuite) TestCreate_DuplicateRejected() {
	enc := s.testEncounter("enc_1", "cam_1")

	_, err := s.repo.Create(s.ctx, &encounters.CreateInput{Encounter: enc})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, &encounters.CreateInput{Encounter: enc})
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, &encounters.GetInput{ID: "enc_missing"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	enc := s.testEncounter("enc_1", "cam_1")
	_, err := s.repo.Create(s.ctx, &encounters.CreateInput{Encounter: enc})
	s.Require().NoError(err)

	enc.CurrentRound = 4
	enc.Combatants[0].HP = 0
	_, err = s.repo.Update(s.ctx, &encounters.UpdateInput{Encounter: enc})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, &encounters.GetInput{ID: "enc_1"})
	s.Require().NoError(err)
	s.Equal(4, got.Encounter.CurrentRound)
	s.Equal(0, got.Encounter.Combatants[0].HP)
}

func (s *RedisRepositoryTestSuite) TestUpdate_NotFound() {
	enc := s.testEncounter("enc_ghost", "cam_1")
	_, err := s.repo.Update(s.ctx, &encounters.UpdateInput{Encounter: enc})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	enc := s.testEncounter("enc_1", "cam_1")
	_, err := s.repo.Create(s.ctx, &encounters.CreateInput{Encounter: enc})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, &encounters.DeleteInput{ID: "enc_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, &encounters.GetInput{ID: "enc_1"})
	s.True(errors.IsNotFound(err))

	// And the campaign index no longer lists it
	list, err := s.repo.ListByCampaign(s.ctx, &encounters.ListByCampaignInput{CampaignID: "cam_1"})
	s.Require().NoError(err)
	s.Empty(list.Encounters)
}

func (s *RedisRepositoryTestSuite) TestListByCampaign() {
	for _, id := range []string{"enc_1", "enc_2"} {
		_, err := s.repo.Create(s.ctx, &encounters.CreateInput{Encounter: s.testEncounter(id, "cam_1")})
		s.Require().NoError(err)
	}
	_, err := s.repo.Create(s.ctx, &encounters.CreateInput{Encounter: s.testEncounter("enc_3", "cam_2")})
	s.Require().NoError(err)

	list, err := s.repo.ListByCampaign(s.ctx, &encounters.ListByCampaignInput{CampaignID: "cam_1"})
	s.Require().NoError(err)
	s.Len(list.Encounters, 2)

	ids := map[string]bool{}
	for _, e := range list.Encounters {
		ids[e.ID] = true
	}
	s.True(ids["enc_1"])
	s.True(ids["enc_2"])
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
