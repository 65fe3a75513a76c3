// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Traits     TraitsConfig     `yaml:"traits"`
	Vitals     VitalsConfig     `yaml:"vitals"`
	Status     StatusConfig     `yaml:"status"`
	Actions    ActionsConfig    `yaml:"actions"`
	Decision   DecisionConfig   `yaml:"decision"`
	Effects    EffectsConfig    `yaml:"effects"`
	Combat     CombatConfig     `yaml:"combat"`
	Fitness    FitnessConfig    `yaml:"fitness"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Population PopulationConfig `yaml:"population"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds world dimensions and generation parameters.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Terrain noise
	NoiseScale    float64 `yaml:"noise_scale"`    // Base noise frequency
	WaterLevel    float64 `yaml:"water_level"`    // Noise below this becomes Water
	MountainLevel float64 `yaml:"mountain_level"` // Noise above this becomes Mountains

	// Resource scattering (per-tile probabilities on eligible terrain)
	PlantDensity float64 `yaml:"plant_density"`
	WaterDensity float64 `yaml:"water_density"`
	PreyDensity  float64 `yaml:"prey_density"`

	ResourceUses     int     `yaml:"resource_uses"`     // Uses before depletion
	ResourceQuantity float64 `yaml:"resource_quantity"` // Vital points gained per use
}

// TraitsConfig holds trait generation ranges.
// The primary trait of a category rolls in the primary range and is
// floored at PrimaryFloor; the other four roll in the standard range.
type TraitsConfig struct {
	StandardMin  int `yaml:"standard_min"`
	StandardMax  int `yaml:"standard_max"`
	PrimaryMin   int `yaml:"primary_min"`
	PrimaryMax   int `yaml:"primary_max"`
	PrimaryFloor int `yaml:"primary_floor"`
}

// VitalsConfig holds vital caps and starting values.
type VitalsConfig struct {
	BaseHealth         float64 `yaml:"base_health"`
	HealthPerEndurance float64 `yaml:"health_per_endurance"` // MaxHealth = base + endurance * this
	MaxHunger          float64 `yaml:"max_hunger"`
	MaxThirst          float64 `yaml:"max_thirst"`
	MaxEnergy          float64 `yaml:"max_energy"`
}

// StatusConfig holds per-tick passive status change rates.
type StatusConfig struct {
	HungerDecay       float64 `yaml:"hunger_decay"`
	ThirstDecay       float64 `yaml:"thirst_decay"`
	EnergyDecay       float64 `yaml:"energy_decay"`       // When below the fed threshold
	EnergyRegen       float64 `yaml:"energy_regen"`       // When fed
	FedThreshold      float64 `yaml:"fed_threshold"`      // Hunger and Thirst must both exceed this to regen
	StarvationDamage  float64 `yaml:"starvation_damage"`  // Health loss per tick at Hunger == 0
	DehydrationDamage float64 `yaml:"dehydration_damage"` // Health loss per tick at Thirst == 0
}

// ActionsConfig holds the per-action-type energy cost table.
// Costs are non-negative; Rest grants RestGain instead of costing.
type ActionsConfig struct {
	MoveCost   float64 `yaml:"move_cost"` // Multiplied by destination terrain cost
	AttackCost float64 `yaml:"attack_cost"`
	EatCost    float64 `yaml:"eat_cost"`
	DrinkCost  float64 `yaml:"drink_cost"`
	RestGain   float64 `yaml:"rest_gain"`
}

// DecisionConfig holds decision phase parameters.
type DecisionConfig struct {
	// Sample selects actions by weighted draw from the softmax
	// distribution; false means deterministic argmax.
	Sample bool `yaml:"sample"`
}

// EffectsConfig holds the condition -> effect rule thresholds.
type EffectsConfig struct {
	WellFed    EffectRuleConfig `yaml:"well_fed"`
	Exhausted  EffectRuleConfig `yaml:"exhausted"`
	Adrenaline EffectRuleConfig `yaml:"adrenaline"`
}

// EffectRuleConfig holds one effect rule's threshold, duration and strength.
type EffectRuleConfig struct {
	Threshold float64 `yaml:"threshold"`
	Duration  int     `yaml:"duration"`
	Modifier  int     `yaml:"modifier"`
}

// CombatConfig holds attack resolution parameters.
type CombatConfig struct {
	EvasionDivisor float64 `yaml:"evasion_divisor"` // Damage = strength - agility/divisor
}

// FitnessConfig holds the fitness component weight table.
type FitnessConfig struct {
	TimeWeight      float64 `yaml:"time_weight"`
	ResourceWeight  float64 `yaml:"resource_weight"`
	KillWeight      float64 `yaml:"kill_weight"`
	DistanceWeight  float64 `yaml:"distance_weight"`
	EventWeight     float64 `yaml:"event_weight"`
	ResourceDivisor float64 `yaml:"resource_divisor"` // Resource component is divided by this before weighting
}

// EvolutionConfig holds genetic operator parameters.
type EvolutionConfig struct {
	EliteFraction  float64 `yaml:"elite_fraction"`
	TournamentSize int     `yaml:"tournament_size"`
	MutationRate   float64 `yaml:"mutation_rate"`
	MutationSigma  float64 `yaml:"mutation_sigma"`
}

// PopulationConfig holds population and generation parameters.
type PopulationConfig struct {
	Size               int     `yaml:"size"`
	WeeksPerGeneration int     `yaml:"weeks_per_generation"`
	CarnivoreFraction  float64 `yaml:"carnivore_fraction"`
	OmnivoreFraction   float64 `yaml:"omnivore_fraction"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MaxHealthCeil float32 // Upper bound on MaxHealth, used to normalize sensor inputs
	EliteCount    int     // ceil(population.size * evolution.elite_fraction)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the engines cannot run with.
func (c *Config) validate() error {
	if c.World.Width < 1 || c.World.Height < 1 {
		return fmt.Errorf("config: world dimensions must be positive, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.Traits.StandardMin > c.Traits.StandardMax {
		return fmt.Errorf("config: standard trait range inverted: [%d, %d]", c.Traits.StandardMin, c.Traits.StandardMax)
	}
	if c.Traits.PrimaryMin > c.Traits.PrimaryMax {
		return fmt.Errorf("config: primary trait range inverted: [%d, %d]", c.Traits.PrimaryMin, c.Traits.PrimaryMax)
	}
	if c.Evolution.EliteFraction < 0 || c.Evolution.EliteFraction > 1 {
		return fmt.Errorf("config: elite_fraction must be in [0, 1], got %f", c.Evolution.EliteFraction)
	}
	if c.Evolution.TournamentSize < 1 {
		return fmt.Errorf("config: tournament_size must be at least 1, got %d", c.Evolution.TournamentSize)
	}
	if c.Fitness.ResourceDivisor <= 0 {
		return fmt.Errorf("config: resource_divisor must be positive, got %f", c.Fitness.ResourceDivisor)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.MaxHealthCeil = float32(c.Vitals.BaseHealth + float64(c.Traits.PrimaryMax)*c.Vitals.HealthPerEndurance)

	elite := int(float64(c.Population.Size) * c.Evolution.EliteFraction)
	if float64(elite) < float64(c.Population.Size)*c.Evolution.EliteFraction {
		elite++ // ceil
	}
	c.Derived.EliteCount = elite
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
