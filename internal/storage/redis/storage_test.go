package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scorepad/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.ActiveGameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSetAndGet() {
	err := s.storage.Set(s.ctx, storage.KeyPlayers, []byte(`[{"id":"p1","name":"Alice"}]`))
	s.Require().NoError(err)

	data, err := s.storage.Get(s.ctx, storage.KeyPlayers)
	s.Require().NoError(err)
	s.JSONEq(`[{"id":"p1","name":"Alice"}]`, string(data))
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.Get(s.ctx, storage.KeyActiveGame)
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *StorageSuite) TestSetOverwrites() {
	_ = s.storage.Set(s.ctx, storage.KeyHistory, []byte(`[]`))
	_ = s.storage.Set(s.ctx, storage.KeyHistory, []byte(`[{"id":"g1"}]`))

	data, err := s.storage.Get(s.ctx, storage.KeyHistory)
	s.Require().NoError(err)
	s.Equal(`[{"id":"g1"}]`, string(data))
}

func (s *StorageSuite) TestDelete() {
	_ = s.storage.Set(s.ctx, storage.KeyActiveGame, []byte(`{}`))

	err := s.storage.Delete(s.ctx, storage.KeyActiveGame)
	s.Require().NoError(err)

	_, err = s.storage.Get(s.ctx, storage.KeyActiveGame)
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *StorageSuite) TestDeleteMissingKey() {
	err := s.storage.Delete(s.ctx, "nonexistent")
	s.NoError(err)
}

func (s *StorageSuite) TestKeysArePrefixed() {
	_ = s.storage.Set(s.ctx, storage.KeyPlayers, []byte(`[]`))

	s.True(s.mini.Exists("scorepad:players"))
	s.False(s.mini.Exists("players"))
}

func (s *StorageSuite) TestActiveGameTTL() {
	_ = s.storage.Set(s.ctx, storage.KeyActiveGame, []byte(`{}`))
	_ = s.storage.Set(s.ctx, storage.KeyHistory, []byte(`[]`))

	gameTTL := s.mini.TTL(s.storage.redisKey(storage.KeyActiveGame))
	historyTTL := s.mini.TTL(s.storage.redisKey(storage.KeyHistory))

	s.True(gameTTL > 0, "Active game should have TTL")
	s.Equal(time.Duration(0), historyTTL, "History should not have TTL")
}

func (s *StorageSuite) TestJSONHelpersRoundTrip() {
	type entry struct {
		Scores []*float64 `json:"scores"`
	}
	five := 5.0
	in := entry{Scores: []*float64{&five, nil}}

	err := storage.SaveJSON(s.ctx, s.storage, storage.KeyActiveGame, in)
	s.Require().NoError(err)

	var out entry
	found, err := storage.LoadJSON(s.ctx, s.storage, storage.KeyActiveGame, &out)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(in, out)
}
