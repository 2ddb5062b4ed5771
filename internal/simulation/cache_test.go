package simulation

import (
	"testing"
	"time"

	"solar-proposal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCacheRun(t *testing.T) {
	c := NewResultCache(time.Minute, 10)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	e := New()
	in := flatFactory(model.ModelRE100)

	first, err := c.Run(e, in)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	// Callers may reassign fields without touching the cached copy.
	first.Schedule = nil
	second, err := c.Run(e, in)
	require.NoError(t, err)
	assert.Len(t, second.Schedule, 20)
	assert.Equal(t, first.GrossRevenue, second.GrossRevenue)

	in.Settings.CapacityKW = 600
	_, err = c.Run(e, in)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestResultCacheExpiry(t *testing.T) {
	c := NewResultCache(time.Minute, 10)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("a", &Result{GrossRevenue: 1})
	_, ok := c.Get("a")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)

	c.Set("b", &Result{})
	assert.Equal(t, 1, c.Len(), "expired entries are swept on write")
}

func TestResultCacheCapacity(t *testing.T) {
	c := NewResultCache(time.Hour, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("a", &Result{})
	now = now.Add(time.Second)
	c.Set("b", &Result{})
	now = now.Add(time.Second)
	c.Set("c", &Result{})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok, "the entry closest to expiry is dropped")
}

func TestResultCacheNilAndErrors(t *testing.T) {
	var c *ResultCache
	assert.Nil(t, NewResultCache(0, 10))

	res, err := c.Run(New(), flatFactory(model.ModelRE100))
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, 0, c.Len())

	c = NewResultCache(time.Minute, 0)
	in := flatFactory(model.ModelRE100)
	in.Pricing.Irradiance = 0
	_, err = c.Run(New(), in)
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len(), "failed runs are not cached")
}

func TestCacheKeyDependsOnInput(t *testing.T) {
	a, err := CacheKey(flatFactory(model.ModelRE100))
	require.NoError(t, err)
	b, err := CacheKey(flatFactory(model.ModelKEPCO))
	require.NoError(t, err)
	again, err := CacheKey(flatFactory(model.ModelRE100))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, again)
	assert.Len(t, a, 64)
}
