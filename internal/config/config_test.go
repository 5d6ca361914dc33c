package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/fieldroute/internal/config"
)

const sampleYAML = `
branches:
  - name: SP
    weekly_days: 5
    max_time_h: 8
    max_dist_km: 120
    traffic_factor: 1.05
    allow_saturday: false
scale_tiers:
  - name: full-time
    hours: 8
  - name: 2h
    hours: 2
  - name: 3h
    hours: 3
modality_margin: 0.1
weekly_budget_h: 44
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPlanningConfig_Defaults(t *testing.T) {
	path := writeTemp(t, sampleYAML)

	cfg, err := config.LoadPlanningConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.01, cfg.SchedulerMIPGap)
	assert.Equal(t, 5.0, cfg.WalkingSpeedKmh)
	assert.Equal(t, 10, cfg.MaxRetryIterations)
	assert.Equal(t, 1_000_000.0, cfg.RouteCostPenalty)

	branch, ok := cfg.BranchByName("SP")
	require.True(t, ok)
	assert.Equal(t, 28800, branch.MaxTimeSeconds())
	assert.Equal(t, 120000.0, branch.MaxDistanceMeters())
	assert.Equal(t, branch.MaxTimeSeconds(), branch.SaturdayCapSeconds())
}

func TestSortedTiers(t *testing.T) {
	path := writeTemp(t, sampleYAML)
	cfg, err := config.LoadPlanningConfig(path)
	require.NoError(t, err)

	tiers := cfg.SortedTiers()
	require.Len(t, tiers, 3)
	assert.Equal(t, "2h", tiers[0].Name)
	assert.Equal(t, "3h", tiers[1].Name)
	assert.Equal(t, "full-time", tiers[2].Name)
}

func TestLoadPlanningConfig_MissingFile(t *testing.T) {
	_, err := config.LoadPlanningConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
