package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scorepad/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	path    string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "scorepad.db")

	store, err := Open(s.path)
	s.Require().NoError(err)

	s.storage = store
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	_ = s.storage.Close()
}

func (s *StorageSuite) TestOpenRequiresPath() {
	_, err := Open("  ")
	s.Error(err)
}

func (s *StorageSuite) TestSetAndGet() {
	err := s.storage.Set(s.ctx, storage.KeyTemplates, []byte(`[{"id":"1"}]`))
	s.Require().NoError(err)

	data, err := s.storage.Get(s.ctx, storage.KeyTemplates)
	s.Require().NoError(err)
	s.Equal(`[{"id":"1"}]`, string(data))
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.Get(s.ctx, storage.KeyActiveGame)
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *StorageSuite) TestSetOverwrites() {
	_ = s.storage.Set(s.ctx, storage.KeyPlayers, []byte(`[]`))
	_ = s.storage.Set(s.ctx, storage.KeyPlayers, []byte(`[{"id":"p1"}]`))

	data, err := s.storage.Get(s.ctx, storage.KeyPlayers)
	s.Require().NoError(err)
	s.Equal(`[{"id":"p1"}]`, string(data))
}

func (s *StorageSuite) TestDelete() {
	_ = s.storage.Set(s.ctx, storage.KeyActiveGame, []byte(`{}`))

	err := s.storage.Delete(s.ctx, storage.KeyActiveGame)
	s.Require().NoError(err)

	_, err = s.storage.Get(s.ctx, storage.KeyActiveGame)
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *StorageSuite) TestDeleteMissingKey() {
	s.NoError(s.storage.Delete(s.ctx, "nonexistent"))
}

func (s *StorageSuite) TestValuesSurviveReopen() {
	_ = s.storage.Set(s.ctx, storage.KeyHistory, []byte(`[{"id":"g1"}]`))
	s.Require().NoError(s.storage.Close())

	reopened, err := Open(s.path)
	s.Require().NoError(err)
	s.storage = reopened

	data, err := s.storage.Get(s.ctx, storage.KeyHistory)
	s.Require().NoError(err)
	s.Equal(`[{"id":"g1"}]`, string(data))
}
