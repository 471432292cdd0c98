package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/models"

	"github.com/stretchr/testify/require"
)

func TestAccountAuthStateRoundTripAndClose(t *testing.T) {
	mr, client := newTestRedis(t)
	UseClient(client, " ")
	t.Cleanup(func() { UseClient(nil, "") })
	require.Equal(t, defaultPrefix, Prefix())

	ctx := context.Background()
	invalidBefore := time.Unix(1_700_000_000, 0)
	state := BuildAccountAuthState(&models.Account{ID: 5, Status: "active", TokenVersion: 3, TokenInvalidBefore: &invalidBefore})
	require.NoError(t, SetAccountAuthState(ctx, state))
	require.True(t, mr.Exists("fh:auth:account:5"))

	got, hit, err := GetAccountAuthState(ctx, 5)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, uint64(3), got.TokenVersion)
	require.Equal(t, invalidBefore.Unix(), got.TokenInvalidBefore)

	require.NoError(t, DelAccountAuthState(ctx, 5))
	_, hit, err = GetAccountAuthState(ctx, 5)
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, Close())
	require.False(t, Enabled())
	require.Nil(t, Client())
	require.NoError(t, SetJSON(ctx, "noop", 1, time.Minute))
}

func TestInitRedisDisabledAndReachable(t *testing.T) {
	require.NoError(t, InitRedis(&config.RedisConfig{Enabled: false}))
	require.False(t, Enabled())

	mr, _ := newTestRedis(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	require.NoError(t, InitRedis(&config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port, Prefix: "init"}))
	t.Cleanup(func() { _ = Close() })
	require.True(t, Enabled())
	require.Equal(t, "init", Prefix())
}
