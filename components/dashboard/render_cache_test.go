package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheMemoizes(t *testing.T) {
	t.Parallel()

	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "<div/>", nil
	}

	html, err := cache.GetOrRender("k", render)
	require.NoError(t, err)
	assert.Equal(t, "<div/>", html)

	_, err = cache.GetOrRender("k", render)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	cache.Purge()
	_, err = cache.GetOrRender("k", render)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestChartCacheExpires(t *testing.T) {
	t.Parallel()

	now := testNow
	cache := NewChartCache(time.Minute)
	cache.clock = func() time.Time { return now }

	calls := 0
	render := func() (string, error) {
		calls++
		return "x", nil
	}
	_, err := cache.GetOrRender("k", render)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = cache.GetOrRender("k", render)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	now = now.Add(2 * time.Minute)
	_, err = cache.GetOrRender("k", render)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestChartCacheDisabled(t *testing.T) {
	t.Parallel()

	var nilCache *ChartCache
	calls := 0
	render := func() (string, error) {
		calls++
		return "x", nil
	}
	_, err := nilCache.GetOrRender("k", render)
	require.NoError(t, err)
	_, err = nilCache.GetOrRender("k", render)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	zero := NewChartCache(0)
	_, err = zero.GetOrRender("k", render)
	require.NoError(t, err)
	_, err = zero.GetOrRender("k", render)
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}

func TestChartCachePropagatesRenderErrors(t *testing.T) {
	t.Parallel()

	cache := NewChartCache(time.Minute)
	boom := errors.New("boom")
	_, err := cache.GetOrRender("k", func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)

	// Failures are not cached.
	html, err := cache.GetOrRender("k", func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", html)
}

func TestRenderKeySensitivity(t *testing.T) {
	t.Parallel()

	labels := []string{"01.10", "02.10"}
	base := renderKey("chart-2", NewMetricSelection(MetricSpend), labels)

	assert.Equal(t, base, renderKey("chart-2", NewMetricSelection(MetricSpend), []string{"01.10", "02.10"}))
	assert.NotEqual(t, base, renderKey("chart-3", NewMetricSelection(MetricSpend), labels))
	assert.NotEqual(t, base, renderKey("chart-2", NewMetricSelection(MetricSpend, MetricUnits), labels))
	assert.NotEqual(t, base, renderKey("chart-2", NewMetricSelection(MetricSpend), []string{"01.10"}))
}
