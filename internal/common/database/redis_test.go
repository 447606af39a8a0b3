package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-analyzer/internal/common/config"
)

func TestRedisClient_DescriptionRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(config.CacheConfig{Address: mr.Addr(), TTL: 60000})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx))

	_, ok, err := client.GetDescription(ctx, "https://www.acciona.com/p/1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, client.SetDescription(ctx, "https://www.acciona.com/p/1", "Restauración ecológica"))

	got, ok, err := client.GetDescription(ctx, "https://www.acciona.com/p/1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Restauración ecológica", got)

	assert.Equal(t, time.Minute, mr.TTL("desc:https://www.acciona.com/p/1"))
}

func TestRedisClient_GetDescriptionError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	client := NewRedisFromClient(rdb, time.Minute)

	mock.ExpectGet("desc:https://x/p").SetErr(errors.New("READONLY"))

	_, ok, err := client.GetDescription(context.Background(), "https://x/p")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_SetDescriptionUsesTTL(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	client := NewRedisFromClient(rdb, 2*time.Hour)

	mock.ExpectSet("desc:https://x/p", "texto", 2*time.Hour).SetVal("OK")

	require.NoError(t, client.SetDescription(context.Background(), "https://x/p", "texto"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRedis_RequiresAddress(t *testing.T) {
	_, err := NewRedis(config.CacheConfig{})
	assert.Error(t, err)
}
