package sizing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opscart/hardware-cost-compare/pkg/models"
)

type countingSource struct {
	calls int
	err   error
}

func (c *countingSource) Name() string { return "counting" }

func (c *countingSource) Specification(_ context.Context, target string, mode Mode) (*Result, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &Result{Target: target, Mode: mode, Specification: models.DefaultSpec()}, nil
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("k", &Result{Target: "a"})
	require.NotNil(t, cache.Get("k"))

	now = now.Add(2 * time.Minute)
	assert.Nil(t, cache.Get("k"))
	assert.Empty(t, cache.data)
}

func TestCachedSourceClear(t *testing.T) {
	inner := &countingSource{}
	cached := NewCachedSource(inner, time.Minute)

	_, err := cached.Specification(context.Background(), "node-a", ModeCapacity)
	require.NoError(t, err)
	cached.Clear()
	assert.Empty(t, cached.cache.data)

	_, err = cached.Specification(context.Background(), "node-a", ModeCapacity)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedSourceReuses(t *testing.T) {
	inner := &countingSource{}
	cached := NewCachedSource(inner, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := cached.Specification(context.Background(), "node-a", ModeCapacity)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.calls)

	_, err := cached.Specification(context.Background(), "node-a", ModeUsage)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "modes are cached separately")
}

func TestCachedSourceZeroTTL(t *testing.T) {
	inner := &countingSource{}
	cached := NewCachedSource(inner, 0)

	_, _ = cached.Specification(context.Background(), "node-a", ModeCapacity)
	_, _ = cached.Specification(context.Background(), "node-a", ModeCapacity)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	inner := &countingSource{err: errors.New("boom")}
	cached := NewCachedSource(inner, time.Minute)

	_, err := cached.Specification(context.Background(), "node-a", ModeCapacity)
	require.Error(t, err)
	_, err = cached.Specification(context.Background(), "node-a", ModeCapacity)
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeCapacity, mode)

	mode, err = ParseMode("usage")
	require.NoError(t, err)
	assert.Equal(t, ModeUsage, mode)

	_, err = ParseMode("peak")
	assert.Error(t, err)
}

func TestMeasurementToSpec(t *testing.T) {
	m := measurement{cores: 0, memoryBytes: 512 * 1024 * 1024, storageBytes: 0}
	assert.Equal(t, models.HardwareSpec{CPUCores: 1, MemoryGB: 1, StorageGB: 1}, m.toSpec(1.0))

	m = measurement{cores: 4, memoryBytes: 16 * bytesPerGiB, storageBytes: 100 * bytesPerGiB}
	assert.Equal(t, models.HardwareSpec{CPUCores: 4, MemoryGB: 16, StorageGB: 100}, m.toSpec(0.5), "headroom below 1 is ignored")
}
