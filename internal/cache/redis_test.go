package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/appointment-scheduler/internal/config"
)

type testStruct struct {
	Name string
	Age  int
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	expected := testStruct{Name: "Alice", Age: 30}
	err := cache.Set(ctx, "user:1", expected, time.Minute)
	require.NoError(t, err)

	var actual testStruct
	found, err := cache.Get(ctx, "user:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out testStruct
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "user:1", testStruct{Name: "Bob"}, time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "user:1"))

	var out testStruct
	found, err := cache.Get(ctx, "user:1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOTP_GetDoesNotConsume(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	err := cache.SetOTP(ctx, PurposeRegistration, "user@example.com", "123456", time.Minute)
	require.NoError(t, err)

	code, found, err := cache.GetOTP(ctx, PurposeRegistration, "user@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "123456", code)

	// Чтение не изымает код: после опечатки доступна повторная попытка.
	code, found, err = cache.GetOTP(ctx, PurposeRegistration, "user@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "123456", code)

	// Изъятие после успешного сравнения выполняет ClearOTP.
	require.NoError(t, cache.ClearOTP(ctx, PurposeRegistration, "user@example.com"))
	_, found, err = cache.GetOTP(ctx, PurposeRegistration, "user@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOTP_PurposesAreIndependent(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetOTP(ctx, PurposeRegistration, "user@example.com", "111111", time.Minute))

	_, found, err := cache.GetOTP(ctx, PurposeReset, "user@example.com")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = cache.GetOTP(ctx, PurposeRegistration, "user@example.com")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestOTP_ExpiresAfterTTL(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetOTP(ctx, PurposeReset, "user@example.com", "654321", time.Minute))

	mr.FastForward(2 * time.Minute)

	_, found, err := cache.GetOTP(ctx, PurposeReset, "user@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOTP_Clear(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetOTP(ctx, PurposeReset, "user@example.com", "654321", time.Minute))
	require.NoError(t, cache.ClearOTP(ctx, PurposeReset, "user@example.com"))

	_, found, err := cache.GetOTP(ctx, PurposeReset, "user@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}
