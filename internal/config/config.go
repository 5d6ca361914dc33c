// Package config provides configuration loading and validation for the route
// planner. Scalar runtime knobs (environment, log level, worker pool size,
// config file path, travel-matrix API base URL) come from environment
// variables, the way impactj90-terp's config package loads them; the nested
// per-branch/scale-tier structure and the solver knobs that the planning
// engine needs come from a YAML document (spec.md §6).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/tolga/fieldroute/internal/model"
)

// BranchConfig holds the per-branch operational parameters named in
// spec.md §3 (Branch) and §6 (Config inputs).
type BranchConfig struct {
	Name           string  `yaml:"name"`
	WeeklyDays     int     `yaml:"weekly_days"`      // Dw ∈ {5,6}
	MaxTimeHours   float64 `yaml:"max_time_h"`       // Tmax, hours
	MaxDistanceKm  float64 `yaml:"max_dist_km"`      // Dmax, km
	TrafficFactor  float64 `yaml:"traffic_factor"`   // α ≥ 1
	AllowSaturday  bool    `yaml:"allow_saturday"`
	SaturdayCapH   float64 `yaml:"saturday_cap_h"` // override for Tmax on d=5, 0 = use MaxTimeHours
}

// MaxTimeSeconds returns Tmax in seconds.
func (b BranchConfig) MaxTimeSeconds() int { return int(b.MaxTimeHours * 3600) }

// MaxDistanceMeters returns Dmax in meters.
func (b BranchConfig) MaxDistanceMeters() float64 { return b.MaxDistanceKm * 1000 }

// SaturdayCapSeconds returns the Saturday-specific daily cap, falling back to
// the branch's regular Tmax when unset.
func (b BranchConfig) SaturdayCapSeconds() int {
	if b.SaturdayCapH <= 0 {
		return b.MaxTimeSeconds()
	}
	return int(b.SaturdayCapH * 3600)
}

// ScaleTier names a workday-length bucket (spec.md §4.3 Step 6).
type ScaleTier struct {
	Name  string  `yaml:"name"`
	Hours float64 `yaml:"hours"`
}

// Seconds returns the tier's duration in seconds.
func (t ScaleTier) Seconds() int { return int(t.Hours * 3600) }

// PlanningConfig is the nested document loaded from YAML: solver knobs and
// branch/scale-tier catalogs that aren't naturally environment variables.
type PlanningConfig struct {
	Branches             []BranchConfig `yaml:"branches"`
	ScaleTiers           []ScaleTier    `yaml:"scale_tiers"`
	SolverTimeLimit       time.Duration  `yaml:"solver_time_limit"`
	SchedulerTimeLimit    time.Duration  `yaml:"scheduler_time_limit"`
	SchedulerMIPGap       float64        `yaml:"scheduler_mip_gap"`
	ModalityMargin        float64        `yaml:"modality_margin"`         // 0.05-0.15
	RepasseGapHours        float64        `yaml:"repasse_gap_h"`
	WeeklyBudgetHours      float64        `yaml:"weekly_budget_h"`
	ReplacementPercentile  float64        `yaml:"replacement_percentile"` // 0-100, retry inflation
	GlobalRepositionLevel  *float64       `yaml:"global_reposition_level,omitempty"`
	Flexibility            *int           `yaml:"flexibility,omitempty"` // visits/week, optional
	RouteCostPenalty       float64        `yaml:"route_cost_penalty"`
	WalkingSpeedKmh        float64        `yaml:"walking_speed_kmh"`
	OneToOneMode           bool           `yaml:"one_to_one_mode"`
	StandardizeByPartner   bool           `yaml:"standardize_by_partner"` // spec.md §4.1 step 7
	SplitEnabled           bool           `yaml:"split_enabled"`          // spec.md §4.1 step 8
	MaxRetryIterations     int            `yaml:"max_retry_iterations"`
	BaseDistanceOnBaseArcsForWalking bool `yaml:"zero_base_distance_for_walking"` // REDESIGN FLAG open question, spec.md §9
}

// BranchByName looks up a branch's config by name.
func (p PlanningConfig) BranchByName(name string) (BranchConfig, bool) {
	for _, b := range p.Branches {
		if b.Name == name {
			return b, true
		}
	}
	return BranchConfig{}, false
}

// SortedTiers returns the scale-tier catalog in ascending seconds order,
// matching spec.md §4.3 Step 6's "smallest tier with tier >= T_total" rule.
func (p PlanningConfig) SortedTiers() []ScaleTier {
	tiers := make([]ScaleTier, len(p.ScaleTiers))
	copy(tiers, p.ScaleTiers)
	for i := 1; i < len(tiers); i++ {
		for j := i; j > 0 && tiers[j].Seconds() < tiers[j-1].Seconds(); j-- {
			tiers[j], tiers[j-1] = tiers[j-1], tiers[j]
		}
	}
	return tiers
}

// RouterTiers converts the configured scale-tier catalog into the router's
// model.ScaleTier values for a branch whose regular daily cap is tmaxSec,
// computing each tier's FTE fraction as tier/Tmax (spec.md §4.3 Step 6).
func (p PlanningConfig) RouterTiers(tmaxSec int) []model.ScaleTier {
	tiers := p.SortedTiers()
	out := make([]model.ScaleTier, len(tiers))
	for i, t := range tiers {
		var fte float64
		if tmaxSec > 0 {
			fte = float64(t.Seconds()) / float64(tmaxSec)
		}
		out[i] = model.ScaleTier{Name: t.Name, Seconds: t.Seconds(), FTEFraction: fte}
	}
	return out
}

// Config holds all application configuration: environment scalars plus the
// nested PlanningConfig.
type Config struct {
	Env              string
	LogLevel         string
	WorkerPoolSize   int
	ConfigFile       string
	TravelAPIBaseURL string
	Planning         PlanningConfig
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads scalar configuration from environment variables and the nested
// planning configuration from the YAML file named by CONFIG_FILE (default
// "config.yaml"). A missing config file is a hard error: the caller cannot
// run any stage without branch parameters.
func Load() (*Config, error) {
	cfg := &Config{
		Env:              getEnv("ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		WorkerPoolSize:   getEnvInt("WORKER_POOL_SIZE", 0), // 0 = GOMAXPROCS
		ConfigFile:       getEnv("CONFIG_FILE", "config.yaml"),
		TravelAPIBaseURL: getEnv("TRAVEL_API_BASE_URL", ""),
	}

	planning, err := LoadPlanningConfig(cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("loading planning config %q: %w", cfg.ConfigFile, err)
	}
	cfg.Planning = planning
	return cfg, nil
}

// LoadPlanningConfig parses a YAML planning configuration file and applies
// defaults for any solver knob left unset.
func LoadPlanningConfig(path string) (PlanningConfig, error) {
	var p PlanningConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing yaml: %w", err)
	}
	applyDefaults(&p)
	return p, nil
}

func applyDefaults(p *PlanningConfig) {
	if p.SolverTimeLimit <= 0 {
		p.SolverTimeLimit = 180 * time.Second
	}
	if p.SchedulerTimeLimit <= 0 {
		p.SchedulerTimeLimit = 180 * time.Second
	}
	if p.SchedulerMIPGap <= 0 {
		p.SchedulerMIPGap = 0.01
	}
	if p.ModalityMargin <= 0 {
		p.ModalityMargin = 0.10
	}
	if p.RepasseGapHours <= 0 {
		p.RepasseGapHours = 3
	}
	if p.WeeklyBudgetHours <= 0 {
		p.WeeklyBudgetHours = 44
	}
	if p.ReplacementPercentile <= 0 {
		p.ReplacementPercentile = 50
	}
	if p.RouteCostPenalty <= 0 {
		p.RouteCostPenalty = 1_000_000
	}
	if p.WalkingSpeedKmh <= 0 {
		p.WalkingSpeedKmh = 5
	}
	if p.MaxRetryIterations <= 0 {
		p.MaxRetryIterations = 10
	}
	for i := range p.Branches {
		if p.Branches[i].WeeklyDays == 0 {
			p.Branches[i].WeeklyDays = 5
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("invalid integer env var, using default")
		return defaultValue
	}
	return n
}
