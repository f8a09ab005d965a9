// Package config carga la configuración de neighborfit desde YAML, con
// valores por defecto, archivo .env y overrides por variables de entorno.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"neighborfit/internal/dataset"
)

// Config reúne todos los parámetros de una corrida.
type Config struct {
	Name string `yaml:"name"`
	Seed uint64 `yaml:"seed"`

	Users       UsersConfig       `yaml:"users"`
	Validation  ValidationConfig  `yaml:"validation"`
	Correlation CorrelationConfig `yaml:"correlation"`
	Clustering  ClusteringConfig  `yaml:"clustering"`
	Plots       PlotsConfig       `yaml:"plots"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// UsersConfig describe la población sintética de usuarios.
type UsersConfig struct {
	Count       int                `yaml:"count"`
	Preferences []dataset.PrefDist `yaml:"preferences"`
	Budget      dataset.BudgetDist `yaml:"budget"`
}

type ValidationConfig struct {
	SampleSize int `yaml:"sample_size"`
}

type CorrelationConfig struct {
	Threshold       float64 `yaml:"threshold"`        // pares que imprime la etapa de correlación
	ReportThreshold float64 `yaml:"report_threshold"` // pares listados como hallazgos en el reporte
}

type ClusteringConfig struct {
	KMin      int     `yaml:"k_min"`
	KMax      int     `yaml:"k_max"`
	NInit     int     `yaml:"n_init"`
	MaxIter   int     `yaml:"max_iter"`
	Tolerance float64 `yaml:"tolerance"`
	Workers   int     `yaml:"workers"`
}

type PlotsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Bins    int    `yaml:"bins"`
}

type LoggingConfig struct {
	Level     string `yaml:"level"`  // debug, info, warn, error
	Format    string `yaml:"format"` // console, json
	Timestamp bool   `yaml:"timestamp"`
}

// DefaultConfig devuelve la configuración por defecto (semilla 42, 1000 usuarios, muestra de 100).
func DefaultConfig() *Config {
	return &Config{
		Name: "neighborfit",
		Seed: 42,
		Users: UsersConfig{
			Count:       1000,
			Preferences: dataset.DefaultPrefDists(),
			Budget:      dataset.DefaultBudgetDist(),
		},
		Validation: ValidationConfig{SampleSize: 100},
		Correlation: CorrelationConfig{
			Threshold:       0.5,
			ReportThreshold: 0.6,
		},
		Clustering: ClusteringConfig{
			KMin:      2,
			KMax:      5,
			NInit:     10,
			MaxIter:   300,
			Tolerance: 1e-4,
			Workers:   4,
		},
		Plots: PlotsConfig{
			Enabled: true,
			Dir:     "plots",
			Bins:    20,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "console",
			Timestamp: true,
		},
	}
}

// Load lee path en YAML; si no existe usa los valores por defecto.
// Al final aplica .env (del directorio de trabajo) y las variables NEIGHBORFIT_*.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// valores por defecto
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv carga pares KEY=VALUE al entorno sin pisar variables ya
// definidas. Que el archivo no exista no es error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Save escribe la configuración en YAML, creando el directorio si hace falta.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("NEIGHBORFIT_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("NEIGHBORFIT_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("NEIGHBORFIT_USERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NEIGHBORFIT_USERS: %w", err)
		}
		c.Users.Count = n
	}
	if v := os.Getenv("NEIGHBORFIT_SAMPLE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NEIGHBORFIT_SAMPLE_SIZE: %w", err)
		}
		c.Validation.SampleSize = n
	}
	if v := os.Getenv("NEIGHBORFIT_PLOTS_DIR"); v != "" {
		c.Plots.Dir = v
	}
	if v := os.Getenv("NEIGHBORFIT_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	return nil
}

// Validate rechaza valores con los que el pipeline no puede correr.
func (c *Config) Validate() error {
	if c.Users.Count <= 0 {
		return fmt.Errorf("users.count must be positive, got %d", c.Users.Count)
	}
	if len(c.Users.Preferences) != len(dataset.ScoreFeatures) {
		return fmt.Errorf("users.preferences must list %d features, got %d", len(dataset.ScoreFeatures), len(c.Users.Preferences))
	}
	for i, p := range c.Users.Preferences {
		if p.Feature != dataset.ScoreFeatures[i] {
			return fmt.Errorf("users.preferences[%d] must be %q, got %q", i, dataset.ScoreFeatures[i], p.Feature)
		}
		if p.Std <= 0 {
			return fmt.Errorf("users.preferences[%d].std must be positive", i)
		}
	}
	if c.Users.Budget.Min > c.Users.Budget.Max || c.Users.Budget.Std <= 0 {
		return fmt.Errorf("users.budget is invalid: %+v", c.Users.Budget)
	}
	if c.Validation.SampleSize <= 0 || c.Validation.SampleSize > c.Users.Count {
		return fmt.Errorf("validation.sample_size must be in [1,%d], got %d", c.Users.Count, c.Validation.SampleSize)
	}
	if c.Correlation.Threshold < 0 || c.Correlation.Threshold >= 1 ||
		c.Correlation.ReportThreshold < 0 || c.Correlation.ReportThreshold >= 1 {
		return fmt.Errorf("correlation thresholds must be in [0,1)")
	}
	if c.Clustering.KMin < 2 || c.Clustering.KMax < c.Clustering.KMin {
		return fmt.Errorf("clustering k range [%d,%d] is invalid", c.Clustering.KMin, c.Clustering.KMax)
	}
	if c.Clustering.NInit <= 0 || c.Clustering.MaxIter <= 0 || c.Clustering.Tolerance < 0 {
		return fmt.Errorf("clustering n_init, max_iter and tolerance must be positive")
	}
	if c.Plots.Enabled && (c.Plots.Dir == "" || c.Plots.Bins <= 0) {
		return fmt.Errorf("plots.dir and plots.bins are required when plots are enabled")
	}
	return nil
}
