//go:build integration

package redisstore_test

import (
	"context"
	"testing"
	"time"

	"emailfinder/pkg/domain"
	"emailfinder/pkg/storage"
	"emailfinder/pkg/storage/redisstore"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type RedisStoreSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	store     *redisstore.Store
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	url, err := container.ConnectionString(ctx)
	s.Require().NoError(err)

	store, err := redisstore.Connect(ctx, url, redisstore.WithKeyPrefix("test:session:"))
	s.Require().NoError(err)
	s.store = store
}

func (s *RedisStoreSuite) TearDownSuite() {
	if s.store != nil {
		s.Require().NoError(s.store.Close())
	}
	if s.container != nil {
		s.Require().NoError(testcontainers.TerminateContainer(s.container))
	}
}

func (s *RedisStoreSuite) TestPutGetDelete() {
	ctx := context.Background()
	want := domain.Session{Token: "tok", User: domain.User{ID: "u1", Email: "jane@example.com", FirstName: "Jane"}}

	s.Require().NoError(s.store.Put(ctx, "k1", want, time.Minute))

	got, err := s.store.Get(ctx, "k1")
	s.Require().NoError(err)
	s.Require().Equal(want.Token, got.Token)
	s.Require().Equal(want.User.Email, got.User.Email)

	s.Require().NoError(s.store.Delete(ctx, "k1"))
	_, err = s.store.Get(ctx, "k1")
	s.Require().ErrorIs(err, storage.ErrSessionNotFound)
}

func (s *RedisStoreSuite) TestExpiry() {
	ctx := context.Background()

	s.Require().NoError(s.store.Put(ctx, "k2", domain.Session{Token: "short"}, time.Second))
	s.Require().Eventually(func() bool {
		_, err := s.store.Get(ctx, "k2")

		return err != nil
	}, 5*time.Second, 100*time.Millisecond)
}

func (s *RedisStoreSuite) TestMissing() {
	_, err := s.store.Get(context.Background(), "missing")
	s.Require().ErrorIs(err, storage.ErrSessionNotFound)
	s.Require().NoError(s.store.Delete(context.Background(), "missing"))
}
