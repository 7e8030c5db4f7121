package campaigns_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/emberfell/campaign-api/internal/entities"
	"github.com/emberfell/campaign-api/internal/errors"
	"github.com/emberfell/campaign-api/internal/repositories/campaigns"
)

type GormRepositoryTestSuite struct {
	suite.Suite
	repo campaigns.Repository
	ctx  context.Context
}

func (s *GormRepositoryTestSuite) SetupTest() {
	db, err := campaigns.OpenSQLite(":memory:")
	s.Require().NoError(err)

	s.repo, err = campaigns.NewGorm(db)
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *GormRepositoryTestSuite) create(id, ownerID, name string) *entities.Campaign {
	campaign := &entities.Campaign{
		ID:      id,
		OwnerID: ownerID,
		Name:    name,
		System:  "dnd5e",
	}
	_, err := s.repo.Create(s.ctx, &campaigns.CreateInput{Campaign: campaign})
	s.Require().NoError(err)
	return campaign
}

func (s *GormRepositoryTestSuite) TestCreateAndGet() {
	s.create("cam_1", "user_1", "Rime of the Frostmaiden")

	got, err := s.repo.Get(s.ctx, &campaigns.GetInput{ID: "cam_1"})
	s.Require().NoError(err)
	s.Equal("Rime of the Frostmaiden", got.Campaign.Name)
	s.Equal("user_1", got.Campaign.OwnerID)
}

func (s *GormRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, &campaigns.GetInput{ID: "cam_missing"})
	s.True(errors.IsNotFound(err))
}

func (s *GormRepositoryTestSuite) TestCreate_RequiresOwner() {
	_, err := s.repo.Create(s.ctx, &campaigns.CreateInput{
		Campaign: &entities.Campaign{ID: "cam_1", Name: "No Owner"},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *GormRepositoryTestSuite) TestListByOwner() {
	s.create("cam_1", "user_1", "First")
	s.create("cam_2", "user_1", "Second")
	s.create("cam_3", "user_2", "Other GM")

	list, err := s.repo.ListByOwner(s.ctx, &campaigns.ListByOwnerInput{OwnerID: "user_1"})
	s.Require().NoError(err)
	s.Len(list.Campaigns, 2)
}

func (s *GormRepositoryTestSuite) TestUpdate() {
	campaign := s.create("cam_1", "user_1", "Draft Name")

	campaign.Name = "Curse of Strahd"
	_, err := s.repo.Update(s.ctx, &campaigns.UpdateInput{Campaign: campaign})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, &campaigns.GetInput{ID: "cam_1"})
	s.Require().NoError(err)
	s.Equal("Curse of Strahd", got.Campaign.Name)
}

func (s *GormRepositoryTestSuite) TestUpdate_NotFound() {
	_, err := s.repo.Update(s.ctx, &campaigns.UpdateInput{
		Campaign: &entities.Campaign{ID: "cam_ghost", OwnerID: "user_1", Name: "x"},
	})
	s.True(errors.IsNotFound(err))
}

func (s *GormRepositoryTestSuite) TestDelete() {
	s.create("cam_1", "user_1", "Short-lived")

	_, err := s.repo.Delete(s.ctx, &campaigns.DeleteInput{ID: "cam_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, &campaigns.GetInput{ID: "cam_1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, &campaigns.DeleteInput{ID: "cam_1"})
	s.True(errors.IsNotFound(err))
}

func TestGormRepositorySuite(t *testing.T) {
	suite.Run(t, new(GormRepositoryTestSuite))
}
