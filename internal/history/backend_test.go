package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

func setupRedisBackend(t *testing.T, ttl time.Duration) (*RedisBackend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisBackend(client, ttl), mr
}

func setupSQLiteBackend(t *testing.T) *SQLiteBackend {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func exerciseBackend(t *testing.T, b Backend) {
	ctx := context.Background()

	_, err := b.Read(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Write(ctx, "k", []byte(`["v1"]`)))
	require.NoError(t, b.Write(ctx, "k", []byte(`["v2"]`)))
	data, err := b.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `["v2"]`, string(data))

	_, err = b.Read(ctx, "other")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Delete(ctx, "k"))
	require.NoError(t, b.Delete(ctx, "k"))
	_, err = b.Read(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemoryBackend())
}

func TestRedisBackend(t *testing.T) {
	b, mr := setupRedisBackend(t, 0)
	exerciseBackend(t, b)

	require.NoError(t, b.Write(context.Background(), DefaultKey, []byte(`[]`)))
	assert.True(t, mr.Exists("aura:history:"+DefaultKey))
}

func TestRedisBackend_TTL(t *testing.T) {
	b, mr := setupRedisBackend(t, time.Hour)
	require.NoError(t, b.Write(context.Background(), "k", []byte(`[]`)))

	mr.FastForward(2 * time.Hour)
	_, err := b.Read(context.Background(), "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisBackend_Unavailable(t *testing.T) {
	b, mr := setupRedisBackend(t, 0)
	mr.Close()

	h := New(b)
	_, err := h.Save(context.Background(), blueprint("a"))
	assert.Equal(t, domain.KindPersistenceDegraded, domain.KindOf(err))
	assert.Len(t, h.List(), 1)
}

func TestSQLiteBackend(t *testing.T) {
	exerciseBackend(t, setupSQLiteBackend(t))
}

func TestSQLiteBackend_HistorySurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	h := New(db)
	_, err = h.Save(ctx, blueprint("a"))
	require.NoError(t, err)
	_, err = h.Save(ctx, blueprint("b"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	reloaded := New(db)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, []string{"b", "a"}, ids(reloaded.List()))
}
