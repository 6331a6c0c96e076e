package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/packfinderz-cart/pkg/config"
	"github.com/angelmondragon/packfinderz-cart/pkg/db"
	"github.com/angelmondragon/packfinderz-cart/pkg/migrate"
	"github.com/angelmondragon/packfinderz-cart/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "products")
	require.NoError(t, err)
	assert.False(t, ok, "fresh store should not contain the key")

	require.NoError(t, store.Set(ctx, "products", `[{"id":"1"}]`))
	v, ok, err := store.Get(ctx, "products")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)

	require.NoError(t, store.Set(ctx, "products", `[]`))
	v, _, err = store.Get(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v, "second write should overwrite the first")
}

func TestMemoryStore(t *testing.T) {
	store := NewMemory()
	exerciseStore(t, store)
	require.NoError(t, store.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, store.Set(ctx, "products", "[]"))
	_, _, err := store.Get(ctx, "products")
	require.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	client := newFakeRedis()
	store := NewRedis(client)
	exerciseStore(t, store)

	_, ok := client.data["pf:cart:products"]
	assert.True(t, ok, "values should live under the cart namespace")
	require.NoError(t, store.Ping(context.Background()))
}

func TestRedisStorePropagatesFailures(t *testing.T) {
	client := newFakeRedis()
	client.err = errors.New("connection reset")
	store := NewRedis(client)

	_, _, err := store.Get(context.Background(), "products")
	require.ErrorIs(t, err, client.err)
	require.ErrorIs(t, store.Set(context.Background(), "products", "[]"), client.err)
}

func TestSQLStore(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	_, err = migrate.Run(context.Background(), sqlDB, config.DBDriverSQLite, "up")
	require.NoError(t, err)

	store := NewSQL(db.NewFromGorm(conn, config.DBDriverSQLite))
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return fixed }
	exerciseStore(t, store)

	var row snapshotRow
	require.NoError(t, conn.Take(&row, "storage_key = ?", "products").Error)
	assert.True(t, row.UpdatedAt.Equal(fixed))

	var count int64
	require.NoError(t, conn.Model(&snapshotRow{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "upsert must keep a single row per key")
	require.NoError(t, store.Ping(context.Background()))
}

type fakeRedis struct {
	data map[string]string
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.data[key]
	if !ok {
		return "", redis.ErrNil
	}
	return v, nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.data[key] = value.(string)
	return nil
}

func (f *fakeRedis) CartKey(name string) string {
	return (&redis.Client{}).CartKey(name)
}

func (f *fakeRedis) Ping(context.Context) error {
	return f.err
}
