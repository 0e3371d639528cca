package cache

import (
	"testing"
	"time"

	"ranna-banna/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, maxSize int) *Manager {
	t.Helper()
	m := NewManager(config.CacheConfig{Enabled: true, MaxSize: maxSize, TTL: time.Minute})
	require.NotNil(t, m)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestNewManager_Disabled(t *testing.T) {
	assert.Nil(t, NewManager(config.CacheConfig{Enabled: false}))
}

func TestManager_GetSet(t *testing.T) {
	m := newTestManager(t, 10)
	key := Key("search recipes", "gemini-2.5-flash", "Biryani")

	_, err := m.Get(key)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, m.Set(key, `[{"name_en":"Chicken Biryani"}]`))
	value, err := m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, `[{"name_en":"Chicken Biryani"}]`, value)

	stats := m.Stats()
	assert.EqualValues(t, 1, stats["hits"])
	assert.EqualValues(t, 1, stats["misses"])
}

func TestManager_Expiry(t *testing.T) {
	m := newTestManager(t, 10)
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set("k", "v"))
	now = now.Add(2 * time.Minute)

	_, err := m.Get("k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.EqualValues(t, 0, m.Stats()["size"])
}

func TestManager_EvictsLeastUsed(t *testing.T) {
	m := newTestManager(t, 2)

	require.NoError(t, m.Set("a", "1"))
	require.NoError(t, m.Set("b", "2"))
	_, err := m.Get("a")
	require.NoError(t, err)

	require.NoError(t, m.Set("c", "3"))

	_, err = m.Get("b")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = m.Get("a")
	assert.NoError(t, err)
	_, err = m.Get("c")
	assert.NoError(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("ab", ""), Key("a", "b"))
}
