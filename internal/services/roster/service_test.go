package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scorepad/internal/dependencies/mocks"
	"github.com/mcoot/scorepad/internal/model"
	"github.com/mcoot/scorepad/internal/storage"
	"github.com/mcoot/scorepad/internal/storage/memory"
	"github.com/mcoot/scorepad/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestListEmpty() {
	players, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.NotNil(players)
	s.Empty(players)
}

func (s *ServiceSuite) TestCreate() {
	s.random.QueueID("p1")

	player, err := s.service.Create(s.ctx, "  Alice ")
	s.Require().NoError(err)
	s.Equal(model.Player{ID: "p1", Name: "Alice"}, *player)

	players, _ := s.service.List(s.ctx)
	s.Equal([]model.Player{{ID: "p1", Name: "Alice"}}, players)
}

func (s *ServiceSuite) TestCreateKeepsInsertionOrder() {
	s.random.QueueID("p1", "p2", "p3")
	_, _ = s.service.Create(s.ctx, "Charlie")
	_, _ = s.service.Create(s.ctx, "Alice")
	_, _ = s.service.Create(s.ctx, "Bob")

	players, _ := s.service.List(s.ctx)
	s.Require().Len(players, 3)
	s.Equal("Charlie", players[0].Name)
	s.Equal("Bob", players[2].Name)
}

func (s *ServiceSuite) TestCreateRequiresName() {
	_, err := s.service.Create(s.ctx, "   ")
	s.ErrorIs(err, model.ErrNameRequired)
	s.Empty(s.storage.Keys())
}

func (s *ServiceSuite) TestGet() {
	s.random.QueueID("p1")
	_, _ = s.service.Create(s.ctx, "Alice")

	player, err := s.service.Get(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal("Alice", player.Name)

	_, err = s.service.Get(s.ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestRename() {
	s.random.QueueID("p1")
	_, _ = s.service.Create(s.ctx, "Alice")

	player, err := s.service.Rename(s.ctx, "p1", "Alicia")
	s.Require().NoError(err)
	s.Equal("Alicia", player.Name)

	stored, _ := s.service.Get(s.ctx, "p1")
	s.Equal("Alicia", stored.Name)
}

func (s *ServiceSuite) TestRenameMissingDoesNotWrite() {
	_, err := s.service.Rename(s.ctx, "missing", "X")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	_, err = s.storage.Get(s.ctx, storage.KeyPlayers)
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *ServiceSuite) TestDelete() {
	s.random.QueueID("p1", "p2")
	_, _ = s.service.Create(s.ctx, "Alice")
	_, _ = s.service.Create(s.ctx, "Bob")

	err := s.service.Delete(s.ctx, "p1")
	s.Require().NoError(err)

	players, _ := s.service.List(s.ctx)
	s.Equal([]model.Player{{ID: "p2", Name: "Bob"}}, players)
}

func (s *ServiceSuite) TestDeleteMissing() {
	s.ErrorIs(s.service.Delete(s.ctx, "missing"), model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestReloadReproducesRoster() {
	s.random.QueueID("p1", "p2")
	_, _ = s.service.Create(s.ctx, "Alice")
	_, _ = s.service.Create(s.ctx, "Bob")
	before, _ := s.service.List(s.ctx)

	after, err := New(s.storage, s.random, testutil.NopLogger()).List(s.ctx)
	s.Require().NoError(err)
	s.Equal(before, after)
}
