package ga

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Config stores the configuration parameters for a training run.
type Config struct {
	Population   PopulationConfig   `yaml:"population"`
	Network      NetworkConfig      `yaml:"network"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Fitness      FitnessConfig      `yaml:"fitness"`
	Environment  EnvironmentConfig  `yaml:"environment"`
	Run          RunConfig          `yaml:"run"`
}

// PopulationConfig holds the generational model parameters.
type PopulationConfig struct {
	PopSize              int     `ini:"pop_size" yaml:"pop_size"`
	NumOffspring         int     `ini:"num_offspring" yaml:"num_offspring"` // Children per generation; the rest survive culling
	Generations          int     `ini:"generations" yaml:"generations"`
	Seed                 int64   `ini:"seed" yaml:"seed"`                           // 0 picks a time-based seed
	FitnessThreshold     float64 `ini:"fitness_threshold" yaml:"fitness_threshold"` // Best score that ends the run; 0 disables
	NoFitnessTermination bool    `ini:"no_fitness_termination" yaml:"no_fitness_termination"`
}

// NetworkConfig describes the fixed layer layout shared by every agent.
type NetworkConfig struct {
	Neurons     []int    `ini:"neurons" delim:" " yaml:"neurons"`         // e.g. "18 16 4"
	Activations []string `ini:"activations" delim:" " yaml:"activations"` // one per layer transition
}

// ReproductionConfig holds the crossover and mutation parameters.
type ReproductionConfig struct {
	Crossover     string  `ini:"crossover" yaml:"crossover"` // "uniform" or "layer"
	MutationRate  float64 `ini:"mutation_rate" yaml:"mutation_rate"`
	MutationPower float64 `ini:"mutation_power" yaml:"mutation_power"`
}

// FitnessConfig selects and tunes the Scorer.
type FitnessConfig struct {
	Type            string  `ini:"fitness_type" yaml:"fitness_type"` // "raw" or "shaped"
	ScoreWeight     float64 `ini:"score_weight" yaml:"score_weight"`
	TimeAliveWeight float64 `ini:"time_alive_weight" yaml:"time_alive_weight"`
	StallWeight     float64 `ini:"stall_weight" yaml:"stall_weight"`
	StallLimit      int     `ini:"stall_limit" yaml:"stall_limit"` // 0 follows environment.max_steps_without_food
}

// EnvironmentConfig holds the grid game parameters.
type EnvironmentConfig struct {
	Rows                int `ini:"rows" yaml:"rows"`
	Cols                int `ini:"cols" yaml:"cols"`
	MaxFood             int `ini:"max_food" yaml:"max_food"`
	MaxStepsWithoutFood int `ini:"max_steps_without_food" yaml:"max_steps_without_food"`
	WinScore            int `ini:"win_score" yaml:"win_score"` // 0 means every free cell eaten
	MaxTicks            int `ini:"max_ticks" yaml:"max_ticks"` // per-episode cap
}

// RunConfig holds I/O and observability settings used by the driver.
type RunConfig struct {
	CheckpointPath     string `ini:"checkpoint_path" yaml:"checkpoint_path"`
	CheckpointInterval int    `ini:"checkpoint_interval" yaml:"checkpoint_interval"`
	Store              string `ini:"store" yaml:"store"` // "memory" or "sqlite"
	SQLitePath         string `ini:"sqlite_path" yaml:"sqlite_path"`
	LogLevel           string `ini:"log_level" yaml:"log_level"`
	LogFormat          string `ini:"log_format" yaml:"log_format"`
	MetricsAddr        string `ini:"metrics_addr" yaml:"metrics_addr"`
	RenderFPS          int    `ini:"render_fps" yaml:"render_fps"`
}

// DefaultConfig returns the values used for keys a config file leaves out.
func DefaultConfig() *Config {
	return &Config{
		Population: PopulationConfig{
			PopSize:      100,
			NumOffspring: 80,
			Generations:  100,
		},
		Network: NetworkConfig{
			Neurons:     []int{18, 16, 4},
			Activations: []string{"relu", "softmax"},
		},
		Reproduction: ReproductionConfig{
			Crossover:     "uniform",
			MutationRate:  0.1,
			MutationPower: 0.05,
		},
		Fitness: FitnessConfig{
			Type:            "raw",
			ScoreWeight:     100,
			TimeAliveWeight: 1,
			StallWeight:     0.5,
		},
		Environment: EnvironmentConfig{
			Rows:                15,
			Cols:                15,
			MaxFood:             1,
			MaxStepsWithoutFood: 100,
			MaxTicks:            10000,
		},
		Run: RunConfig{
			CheckpointPath:     "snake_champion.gz",
			CheckpointInterval: 10,
			Store:              "memory",
			SQLitePath:         "snake-ga.db",
			LogLevel:           "info",
			LogFormat:          "console",
			RenderFPS:          5,
		},
	}
}

// LoadConfig loads configuration from an INI file, or from YAML when the
// extension is .yaml or .yml. Missing keys keep their DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config '%s': %w", filePath, err)
		}
	default:
		if err := loadIni(filePath, config); err != nil {
			return nil, err
		}
	}

	config.applyDerived()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadIni(filePath string, config *Config) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	sections := []struct {
		name   string
		target interface{}
	}{
		{"Population", &config.Population},
		{"Network", &config.Network},
		{"Reproduction", &config.Reproduction},
		{"Fitness", &config.Fitness},
		{"Environment", &config.Environment},
		{"Run", &config.Run},
	}
	for _, s := range sections {
		if !cfg.HasSection(s.name) {
			continue
		}
		if err := cfg.Section(s.name).MapTo(s.target); err != nil {
			return fmt.Errorf("failed to map [%s] section: %w", s.name, err)
		}
	}

	// IgnoreInlineComment keeps "# ..." in values, strip it from strings we switch on
	config.Reproduction.Crossover = cleanIniString(config.Reproduction.Crossover)
	config.Fitness.Type = cleanIniString(config.Fitness.Type)
	config.Run.Store = cleanIniString(config.Run.Store)
	config.Run.LogLevel = cleanIniString(config.Run.LogLevel)
	config.Run.LogFormat = cleanIniString(config.Run.LogFormat)
	for i, act := range config.Network.Activations {
		config.Network.Activations[i] = strings.TrimSpace(act)
	}
	return nil
}

// applyDerived fills values that default to another setting.
func (c *Config) applyDerived() {
	if c.Fitness.StallLimit == 0 {
		c.Fitness.StallLimit = c.Environment.MaxStepsWithoutFood
	}
	if c.Environment.WinScore == 0 {
		c.Environment.WinScore = (c.Environment.Rows-2)*(c.Environment.Cols-2) - 1
	}
}

// Validate checks every parameter and returns an ErrConfiguration-wrapped error
// for the first invalid one.
func (c *Config) Validate() error {
	p := c.Population
	if p.PopSize <= 0 {
		return fmt.Errorf("%w: pop_size must be positive", ErrConfiguration)
	}
	if p.NumOffspring < 0 {
		return fmt.Errorf("%w: num_offspring cannot be negative", ErrConfiguration)
	}
	if p.NumOffspring > p.PopSize {
		return fmt.Errorf("%w: num_offspring (%d) cannot exceed pop_size (%d)", ErrConfiguration, p.NumOffspring, p.PopSize)
	}
	if p.Generations < 0 {
		return fmt.Errorf("%w: generations cannot be negative", ErrConfiguration)
	}

	n := c.Network
	if len(n.Neurons) < 2 {
		return fmt.Errorf("%w: neurons needs at least an input and an output layer", ErrConfiguration)
	}
	for _, size := range n.Neurons {
		if size <= 0 {
			return fmt.Errorf("%w: neurons must all be positive, got %v", ErrConfiguration, n.Neurons)
		}
	}
	if len(n.Activations) != len(n.Neurons)-1 {
		return fmt.Errorf("%w: need %d activations for %d layers, got %d", ErrConfiguration, len(n.Neurons)-1, len(n.Neurons), len(n.Activations))
	}

	r := c.Reproduction
	if r.MutationRate < 0 || r.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate must be between 0 and 1", ErrConfiguration)
	}
	if r.MutationPower < 0 {
		return fmt.Errorf("%w: mutation_power cannot be negative", ErrConfiguration)
	}
	if _, err := NewCrossover(r.Crossover); err != nil {
		return err
	}
	if _, err := NewScorer(c.Fitness); err != nil {
		return err
	}
	if c.Fitness.StallLimit <= 0 {
		return fmt.Errorf("%w: stall_limit must be positive", ErrConfiguration)
	}

	e := c.Environment
	if e.Rows < 5 || e.Cols < 5 {
		return fmt.Errorf("%w: grid must be at least 5x5, got %dx%d", ErrConfiguration, e.Rows, e.Cols)
	}
	if e.MaxFood < 1 {
		return fmt.Errorf("%w: max_food must be at least 1", ErrConfiguration)
	}
	if e.MaxStepsWithoutFood <= 0 {
		return fmt.Errorf("%w: max_steps_without_food must be positive", ErrConfiguration)
	}
	if e.WinScore <= 0 {
		return fmt.Errorf("%w: win_score must be positive", ErrConfiguration)
	}
	if e.MaxTicks < 0 {
		return fmt.Errorf("%w: max_ticks cannot be negative", ErrConfiguration)
	}

	switch c.Run.Store {
	case "", "memory", "sqlite":
	default:
		return fmt.Errorf("%w: unknown store %q", ErrConfiguration, c.Run.Store)
	}
	if c.Run.CheckpointInterval < 0 {
		return fmt.Errorf("%w: checkpoint_interval cannot be negative", ErrConfiguration)
	}
	return nil
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
