package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// CONFIG TESTS
// =============================================================================

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"NEIGHBORFIT_SEED", "NEIGHBORFIT_USERS", "NEIGHBORFIT_SAMPLE_SIZE", "NEIGHBORFIT_PLOTS_DIR", "NEIGHBORFIT_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 1000, cfg.Users.Count)
	assert.Equal(t, 100, cfg.Validation.SampleSize)
	assert.Equal(t, 2, cfg.Clustering.KMin)
	assert.Equal(t, 5, cfg.Clustering.KMax)
	assert.Len(t, cfg.Users.Preferences, 6)
	require.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "neighborfit.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.Clustering.Workers = 2
	cfg.Plots.Enabled = false
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), loaded.Seed)
	assert.Equal(t, 2, loaded.Clustering.Workers)
	assert.False(t, loaded.Plots.Enabled)
	assert.Equal(t, cfg.Users.Preferences, loaded.Users.Preferences)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 9\nclustering:\n  k_max: 4\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, 4, cfg.Clustering.KMax)
	assert.Equal(t, 2, cfg.Clustering.KMin)
	assert.Equal(t, 1000, cfg.Users.Count)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: [oops"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEIGHBORFIT_SEED", "123")
	t.Setenv("NEIGHBORFIT_USERS", "500")
	t.Setenv("NEIGHBORFIT_SAMPLE_SIZE", "50")
	t.Setenv("NEIGHBORFIT_PLOTS_DIR", "/tmp/charts")
	t.Setenv("NEIGHBORFIT_LOG_LEVEL", "DEBUG")

	cfg := DefaultConfig()
	require.NoError(t, cfg.applyEnvOverrides())
	assert.Equal(t, uint64(123), cfg.Seed)
	assert.Equal(t, 500, cfg.Users.Count)
	assert.Equal(t, 50, cfg.Validation.SampleSize)
	assert.Equal(t, "/tmp/charts", cfg.Plots.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)

	t.Setenv("NEIGHBORFIT_SEED", "-1")
	assert.Error(t, DefaultConfig().applyEnvOverrides())
}

func TestLoadDotEnv(t *testing.T) {
	const key = "NEIGHBORFIT_DOTENV_PROBE"
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-dotenv\n"), 0644))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv(key))
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]func(c *Config){
		"no users":           func(c *Config) { c.Users.Count = 0 },
		"sample too big":     func(c *Config) { c.Validation.SampleSize = 2000 },
		"k min":              func(c *Config) { c.Clustering.KMin = 1 },
		"k range":            func(c *Config) { c.Clustering.KMax = 1 },
		"threshold":          func(c *Config) { c.Correlation.Threshold = 1.5 },
		"prefs order":        func(c *Config) { c.Users.Preferences[0].Feature = "safety" },
		"prefs count":        func(c *Config) { c.Users.Preferences = c.Users.Preferences[:2] },
		"budget":             func(c *Config) { c.Users.Budget.Min = 9000 },
		"plots without dir":  func(c *Config) { c.Plots.Dir = "" },
		"zero n_init":        func(c *Config) { c.Clustering.NInit = 0 },
		"negative tolerance": func(c *Config) { c.Clustering.Tolerance = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.Plots.Enabled = false
	cfg.Plots.Dir = ""
	assert.NoError(t, cfg.Validate())
}
