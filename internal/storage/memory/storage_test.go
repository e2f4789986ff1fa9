package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scorepad/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSetAndGet() {
	err := s.storage.Set(s.ctx, storage.KeyPlayers, []byte(`[]`))
	s.Require().NoError(err)

	data, err := s.storage.Get(s.ctx, storage.KeyPlayers)
	s.Require().NoError(err)
	s.Equal(`[]`, string(data))
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.Get(s.ctx, storage.KeyActiveGame)
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *StorageSuite) TestDelete() {
	_ = s.storage.Set(s.ctx, storage.KeyActiveGame, []byte(`{}`))

	err := s.storage.Delete(s.ctx, storage.KeyActiveGame)
	s.Require().NoError(err)

	_, err = s.storage.Get(s.ctx, storage.KeyActiveGame)
	s.ErrorIs(err, storage.ErrKeyNotFound)
	s.Empty(s.storage.Keys())
}

func (s *StorageSuite) TestStoredValueIsCopied() {
	value := []byte(`abc`)
	_ = s.storage.Set(s.ctx, "k", value)
	value[0] = 'x'

	data, _ := s.storage.Get(s.ctx, "k")
	s.Equal("abc", string(data))

	data[1] = 'y'
	again, _ := s.storage.Get(s.ctx, "k")
	s.Equal("abc", string(again))
}

func (s *StorageSuite) TestLoadJSONMissingKey() {
	var dst []string
	found, err := storage.LoadJSON(s.ctx, s.storage, storage.KeyHistory, &dst)
	s.Require().NoError(err)
	s.False(found)
	s.Nil(dst)
}

func (s *StorageSuite) TestLoadJSONCorruptValue() {
	_ = s.storage.Set(s.ctx, storage.KeyHistory, []byte(`not json`))

	var dst []string
	_, err := storage.LoadJSON(s.ctx, s.storage, storage.KeyHistory, &dst)
	s.Error(err)
}
