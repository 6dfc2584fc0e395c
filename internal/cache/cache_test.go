package cache

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/doc-share-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewRedisStore(Config{Addr: mr.Addr(), DialTimeout: time.Second})
	t.Cleanup(func() { _ = s.Close() })
	return mr, s
}

func TestStores(t *testing.T) {
	_, rs := newRedis(t)
	stores := map[string]Store{
		"redis":  rs,
		"memory": NewMemoryStore(),
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := s.Get(ctx, "DOCUMENT:nope")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.SetWithTTL(ctx, "DOCUMENT:a", []byte("v1"), time.Minute))
			b, ok, err := s.Get(ctx, "DOCUMENT:a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v1", string(b))

			existed, err := s.Delete(ctx, "DOCUMENT:a")
			require.NoError(t, err)
			assert.True(t, existed)

			existed, err = s.Delete(ctx, "DOCUMENT:a")
			require.NoError(t, err)
			assert.False(t, existed)

			assert.NoError(t, s.Ping(ctx))
		})
	}
}

func TestRedisStoreTTL(t *testing.T) {
	mr, s := newRedis(t)
	ctx := context.Background()

	require.NoError(t, s.SetWithTTL(ctx, "DOCUMENT:a", []byte("v"), 300*time.Second))
	assert.Equal(t, 300*time.Second, mr.TTL("DOCUMENT:a"))

	mr.FastForward(301 * time.Second)
	_, ok, err := s.Get(ctx, "DOCUMENT:a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreTTL(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.SetWithTTL(ctx, "k", []byte("v"), time.Minute))
	now = now.Add(59 * time.Second)
	_, ok, _ := s.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr, s := newRedis(t)
	mr.Close()

	ctx := context.Background()
	_, _, err := s.Get(ctx, "DOCUMENT:a")
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, errors.Is(s.SetWithTTL(ctx, "DOCUMENT:a", []byte("v"), time.Second), ErrUnavailable))
	_, err = s.Delete(ctx, "DOCUMENT:a")
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, errors.Is(s.Ping(ctx), ErrUnavailable))
}

func TestDocumentCache(t *testing.T) {
	mr, s := newRedis(t)
	c := NewDocumentCache(s, "")
	ctx := context.Background()

	doc := &domain.Document{
		ID:       3,
		ReadCode: "ABCDEFGH",
		Title:    "hello",
		Tags:     []string{"x"},
		PasswordStatus: domain.PasswordStatus{
			IsPasswordProtected: true,
			PasswordHash:        "$2a$10$hash",
		},
		ExpiryStatus: domain.ExpiryStatus{ExpirationDate: domain.DefaultExpirationDate},
		Active:       true,
	}
	require.NoError(t, c.Set(ctx, doc, 600*time.Second))
	assert.True(t, mr.Exists("DOCUMENT:ABCDEFGH"))

	got, ok, err := c.Get(ctx, "ABCDEFGH")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Tags, got.Tags)
	assert.Equal(t, doc.PasswordStatus, got.PasswordStatus)
	assert.True(t, got.ExpiryStatus.ExpirationDate.Equal(domain.DefaultExpirationDate))

	// garbage snapshots read as a miss
	require.NoError(t, mr.Set("DOCUMENT:BROKEN00", "{not json"))
	_, ok, err = c.Get(ctx, "BROKEN00")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("DOCUMENT:BROKEN00"))

	existed, err := c.Delete(ctx, "ABCDEFGH")
	require.NoError(t, err)
	assert.True(t, existed)
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(Config{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = NewStore(Config{Driver: "memcached"})
	assert.Error(t, err)

	assert.Equal(t, "DOCUMENT:x", Key("", "x"))
	assert.Equal(t, "P:x", Key("P", "x"))
}
