package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOTPStoreVerifyAndConsume(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewOTPStore(client, "test", 5*time.Minute, 0, 3)
	ctx := context.Background()

	require.NoError(t, store.Issue(ctx, "reset_password", "A@Example.com", "123456"))
	require.Equal(t, 5*time.Minute, mr.TTL("test:otp:reset_password:a@example.com"))

	require.ErrorIs(t, store.Verify(ctx, "reset_password", "a@example.com", "000000"), ErrOTPInvalid)
	require.NoError(t, store.Verify(ctx, "reset_password", "a@example.com", "123456"))
	require.NoError(t, store.Consume(ctx, "reset_password", "a@example.com", "123456"))
	require.ErrorIs(t, store.Verify(ctx, "reset_password", "a@example.com", "123456"), ErrOTPNotFound)
}

func TestOTPStoreExpires(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewOTPStore(client, "test", time.Minute, 0, 3)
	ctx := context.Background()

	require.NoError(t, store.Issue(ctx, "reset_password", "b@example.com", "654321"))
	mr.FastForward(2 * time.Minute)
	require.ErrorIs(t, store.Verify(ctx, "reset_password", "b@example.com", "654321"), ErrOTPNotFound)
}

func TestOTPStoreLocksAfterMaxAttempts(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewOTPStore(client, "test", time.Minute, 0, 2)
	ctx := context.Background()

	require.NoError(t, store.Issue(ctx, "reset_password", "c@example.com", "111111"))
	require.ErrorIs(t, store.Verify(ctx, "reset_password", "c@example.com", "1"), ErrOTPInvalid)
	require.ErrorIs(t, store.Verify(ctx, "reset_password", "c@example.com", "2"), ErrOTPInvalid)
	require.ErrorIs(t, store.Verify(ctx, "reset_password", "c@example.com", "111111"), ErrOTPTooManyAttempts)
}

func TestOTPStoreSendInterval(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewOTPStore(client, "test", time.Minute, time.Minute, 3)
	ctx := context.Background()

	require.NoError(t, store.Issue(ctx, "reset_password", "d@example.com", "111111"))
	require.ErrorIs(t, store.Issue(ctx, "reset_password", "d@example.com", "222222"), ErrOTPTooFrequent)
}
