package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"evolve/internal/ga"
)

// Config is the root configuration structure
type Config struct {
	Seed    int64         `yaml:"seed"`
	Problem ProblemConfig `yaml:"problem"`
	GA      GAConfig      `yaml:"ga"`
	Run     RunConfig     `yaml:"run"`
	Logging LogConfig     `yaml:"logging"`
}

// ProblemConfig selects the objective to evolve against
type ProblemConfig struct {
	Name   string `yaml:"name"`   // equality|word|function|tour
	Target string `yaml:"target"` // word
	Cities int    `yaml:"cities"` // tour
	Bits   int    `yaml:"bits"`   // equality
}

// GAConfig defines genetic algorithm parameters
type GAConfig struct {
	Population             int     `yaml:"population"`
	Selection              string  `yaml:"selection"` // roulette|tournament
	Invert                 bool    `yaml:"invert"`
	TournamentSize         int     `yaml:"tournament_size"`
	Elitism                bool    `yaml:"elitism"`
	EliteCount             int     `yaml:"elite_count"`
	Crossover              string  `yaml:"crossover"` // onepointcrossover|shuffleonepoint|twopointcrossover
	CrossoverRate          float64 `yaml:"crossover_rate"`
	Mutation               string  `yaml:"mutation"` // binary|charrandom|dblrandom|shuffle
	PopulationMutationRate float64 `yaml:"population_mutation_rate"`
	ChromosomeMutationRate float64 `yaml:"chromosome_mutation_rate"`
}

// RunConfig bounds the driver loop
type RunConfig struct {
	Generations int `yaml:"generations"`
	Runs        int `yaml:"runs"`
	Workers     int `yaml:"workers"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	Level           string `yaml:"level"` // debug|info|warn|error
	EveryGenSummary bool   `yaml:"every_gen_summary"`
	CSVPath         string `yaml:"csv_path"`
	JSONPath        string `yaml:"json_path"`
	TracePath       string `yaml:"trace_path"`
	ChampionPath    string `yaml:"champion_path"`
}

// Load reads a YAML config file and returns a Config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML, applies defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := newConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := newConfig()
	applyDefaults(cfg)
	return cfg
}

// newConfig presets the fields where zero is a meaningful value. YAML only
// overwrites keys present in the document, so an explicit 0 survives.
func newConfig() *Config {
	return &Config{
		GA: GAConfig{
			CrossoverRate:          0.75,
			PopulationMutationRate: 0.1,
			ChromosomeMutationRate: 0.01,
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 1337
	}
	if cfg.Problem.Name == "" {
		cfg.Problem.Name = "word"
	}
	if cfg.Problem.Target == "" {
		cfg.Problem.Target = "pneumonoultramicroscopicsilicovolcanoconiosis"
	}
	if cfg.Problem.Cities == 0 {
		cfg.Problem.Cities = 8
	}
	if cfg.Problem.Bits == 0 {
		cfg.Problem.Bits = 15
	}
	if cfg.GA.Population == 0 {
		cfg.GA.Population = 200
	}
	if cfg.GA.Selection == "" {
		cfg.GA.Selection = "roulette"
	}
	if cfg.GA.TournamentSize == 0 {
		cfg.GA.TournamentSize = 3
	}
	if cfg.GA.EliteCount == 0 {
		cfg.GA.EliteCount = 1
	}
	if cfg.GA.Crossover == "" {
		cfg.GA.Crossover = "onepointcrossover"
	}
	if cfg.GA.Mutation == "" {
		cfg.GA.Mutation = defaultMutation(cfg.Problem.Name)
	}
	if cfg.Run.Generations == 0 {
		cfg.Run.Generations = 1000
	}
	if cfg.Run.Runs == 0 {
		cfg.Run.Runs = 1
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.CSVPath == "" {
		cfg.Logging.CSVPath = "runs/run.csv"
	}
	if cfg.Logging.JSONPath == "" {
		cfg.Logging.JSONPath = "runs/run.jsonl"
	}
	if cfg.Logging.TracePath == "" {
		cfg.Logging.TracePath = "artifacts/trace.json"
	}
	if cfg.Logging.ChampionPath == "" {
		cfg.Logging.ChampionPath = "artifacts/champion.json"
	}
}

func defaultMutation(problem string) string {
	switch problem {
	case "equality":
		return "binary"
	case "function":
		return "dblrandom"
	case "tour":
		return "shuffle"
	default:
		return "charrandom"
	}
}

// Validate checks names and numeric ranges
func (c *Config) Validate() error {
	switch c.Problem.Name {
	case "equality", "word", "function", "tour":
	default:
		return fmt.Errorf("problem %q: %w", c.Problem.Name, ga.ErrUnsupportedMethod)
	}
	if _, err := c.SelectionOptions(); err != nil {
		return err
	}
	if _, err := ga.ParseCrossoverMethod(c.GA.Crossover); err != nil {
		return err
	}
	if _, err := ga.ParseMutationMethod(c.GA.Mutation); err != nil {
		return err
	}
	if c.GA.Population < 2 {
		return fmt.Errorf("population %d must be at least 2: %w", c.GA.Population, ga.ErrInvalidArgument)
	}
	if c.GA.Elitism && c.GA.EliteCount >= c.GA.Population {
		return fmt.Errorf("elite count %d must be below population %d: %w", c.GA.EliteCount, c.GA.Population, ga.ErrInvalidArgument)
	}
	for name, rate := range map[string]float64{
		"crossover_rate":           c.GA.CrossoverRate,
		"population_mutation_rate": c.GA.PopulationMutationRate,
		"chromosome_mutation_rate": c.GA.ChromosomeMutationRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%s %v outside [0, 1]: %w", name, rate, ga.ErrInvalidArgument)
		}
	}
	if c.Run.Generations < 1 || c.Run.Runs < 1 {
		return fmt.Errorf("generations and runs must be positive: %w", ga.ErrInvalidArgument)
	}
	if c.Problem.Name == "tour" && c.Problem.Cities < 3 {
		return fmt.Errorf("tour needs at least 3 cities, got %d: %w", c.Problem.Cities, ga.ErrInvalidArgument)
	}
	return nil
}

// SelectionOptions converts the GA section into population selection options
func (c *Config) SelectionOptions() (ga.SelectionOptions, error) {
	method, err := ga.ParseSelectionMethod(c.GA.Selection)
	if err != nil {
		return ga.SelectionOptions{}, err
	}
	return ga.SelectionOptions{
		Method:         method,
		Invert:         c.GA.Invert,
		TournamentSize: c.GA.TournamentSize,
		Elitism:        c.GA.Elitism,
		EliteCount:     c.GA.EliteCount,
	}, nil
}

// CrossoverMethod returns the parsed crossover method
func (c *Config) CrossoverMethod() ga.CrossoverMethod {
	m, _ := ga.ParseCrossoverMethod(c.GA.Crossover)
	return m
}

// MutationMethod returns the parsed mutation method
func (c *Config) MutationMethod() ga.MutationMethod {
	m, _ := ga.ParseMutationMethod(c.GA.Mutation)
	return m
}
