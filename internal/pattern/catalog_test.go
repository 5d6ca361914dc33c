package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/fieldroute/internal/pattern"
)

func TestCatalog_Idempotent(t *testing.T) {
	a := pattern.Catalog(5, 2)
	b := pattern.Catalog(5, 2)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Key(), b[i].Key())
	}
}

func TestCatalog_FrequencyOne(t *testing.T) {
	catalog := pattern.Catalog(5, 1)
	require.Len(t, catalog, 5)
	for _, s := range catalog {
		assert.Len(t, s.Weekdays, 1)
	}
}

func TestCatalog_TwoVisitsMinimumGap(t *testing.T) {
	catalog := pattern.Catalog(5, 2)
	require.NotEmpty(t, catalog)
	for _, s := range catalog {
		require.Len(t, s.Weekdays, 2)
		gapForward := s.Weekdays[1] - s.Weekdays[0]
		gapWrap := 5 - gapForward
		minGap := gapForward
		if gapWrap < minGap {
			minGap = gapWrap
		}
		assert.GreaterOrEqual(t, minGap, 2)
	}
}

func TestCatalog_InvalidFrequency(t *testing.T) {
	assert.Nil(t, pattern.Catalog(5, 0))
	assert.Nil(t, pattern.Catalog(5, 6))
}

func TestWithoutSaturday(t *testing.T) {
	catalog := pattern.Catalog(6, 6)
	filtered := pattern.WithoutSaturday(catalog)
	assert.Empty(t, filtered, "a frequency-6 pattern on a 6-day week must always include Saturday")
}

func TestCatalog_DedupBySetIdentity(t *testing.T) {
	catalog := pattern.Catalog(6, 3)
	seen := make(map[string]bool)
	for _, s := range catalog {
		key := s.Key()
		assert.False(t, seen[key], "duplicate pattern %v", s.Weekdays)
		seen[key] = true
	}
}
