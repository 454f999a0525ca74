package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseSim_Go/internal/database/memory"
	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/repository"
	"github.com/osse101/CaseSim_Go/internal/testing/kvtest"
)

type MockKeyValue struct {
	mock.Mock
}

func (m *MockKeyValue) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKeyValue) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockKeyValue) SetMany(ctx context.Context, values map[string]string) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

func (m *MockKeyValue) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func TestKVRepository_Contract(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) repository.KeyValue {
		return NewKVRepository(memory.NewKVRepository(), 16, time.Minute)
	})
}

func TestKVRepository_GetServedFromCache(t *testing.T) {
	ctx := context.Background()
	backend := new(MockKeyValue)
	backend.On("Get", ctx, "gold").Return("1000", true, nil).Once()

	repo := NewKVRepository(backend, 16, time.Minute)
	for i := 0; i < 3; i++ {
		v, found, err := repo.Get(ctx, "gold")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "1000", v)
	}
	backend.AssertExpectations(t)
}

func TestKVRepository_MissIsCached(t *testing.T) {
	ctx := context.Background()
	backend := new(MockKeyValue)
	backend.On("GetMany", ctx, []string{"silver", "user"}).
		Return(map[string]string{"silver": "5"}, nil).Once()

	repo := NewKVRepository(backend, 16, time.Minute)
	for i := 0; i < 2; i++ {
		got, err := repo.GetMany(ctx, "silver", "user")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"silver": "5"}, got)
	}
	backend.AssertExpectations(t)
}

func TestKVRepository_FailedWriteDoesNotPopulateCache(t *testing.T) {
	ctx := context.Background()
	backend := new(MockKeyValue)
	writeErr := errors.Join(domain.ErrStorageUnavailable, errors.New("disk full"))

	backend.On("Get", ctx, "gold").Return("1000", true, nil).Once()
	backend.On("SetMany", ctx, map[string]string{"gold": "900"}).Return(writeErr).Once()
	backend.On("Get", ctx, "gold").Return("1000", true, nil).Once()

	repo := NewKVRepository(backend, 16, time.Minute)
	_, _, err := repo.Get(ctx, "gold")
	require.NoError(t, err)

	err = repo.SetMany(ctx, map[string]string{"gold": "900"})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	v, _, err := repo.Get(ctx, "gold")
	require.NoError(t, err)
	assert.Equal(t, "1000", v, "cache is re-read from the backend after a failed write")
	backend.AssertExpectations(t)
}

func TestKVRepository_ErrorsNotCached(t *testing.T) {
	ctx := context.Background()
	backend := new(MockKeyValue)
	backend.On("Get", ctx, "gold").Return("", false, domain.ErrStorageUnavailable).Once()
	backend.On("Get", ctx, "gold").Return("7", true, nil).Once()

	repo := NewKVRepository(backend, 16, time.Minute)
	_, _, err := repo.Get(ctx, "gold")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	v, found, err := repo.Get(ctx, "gold")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "7", v)
	assert.Equal(t, 1, repo.Len())
}

func TestKVRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewKVRepository()
	require.NoError(t, backend.SetMany(ctx, map[string]string{"gold": "1"}))

	repo := NewKVRepository(backend, 16, 20*time.Millisecond)
	_, _, err := repo.Get(ctx, "gold")
	require.NoError(t, err)

	// A write that bypasses the cache becomes visible once the entry expires
	require.NoError(t, backend.SetMany(ctx, map[string]string{"gold": "2"}))
	assert.Eventually(t, func() bool {
		v, _, err := repo.Get(ctx, "gold")
		return err == nil && v == "2"
	}, time.Second, 10*time.Millisecond)
}

func TestKVRepository_PingWithoutPinger(t *testing.T) {
	repo := NewKVRepository(memory.NewKVRepository(), 4, time.Minute)
	assert.NoError(t, repo.Ping(context.Background()))
	repo.Purge()
	assert.Equal(t, 0, repo.Len())
}
