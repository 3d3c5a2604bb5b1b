package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/njchilds90/symplot/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symplot.yaml")
	yamlDoc := `
server:
  port: 9090
  read_timeout: 3s
logging:
  level: debug
sampling:
  curve_points: 64
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))
	t.Setenv("SYMPLOT_SAMPLING_CURVE_POINTS", "32")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 32, cfg.Sampling.CurvePoints)
	// untouched by file and environment
	assert.Equal(t, 100, cfg.Sampling.SurfacePoints)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = 0
	cfg.Logging.Level = "loud"
	cfg.Sampling.CurvePoints = 1
	cfg.Sampling.Workers = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
}

func TestValidate_ServerLimits(t *testing.T) {
	cfg := config.Default()
	cfg.Server.AllowOrigins = []string{"*", "https://plots.example.com"}
	require.NoError(t, cfg.Validate())

	cfg.Server.AllowOrigins = []string{"plots.example.com"}
	cfg.Server.Burst = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), "bad origin")
}

func TestLoad_OriginsFromEnv(t *testing.T) {
	t.Setenv("SYMPLOT_SERVER_ALLOW_ORIGINS", "http://localhost:3000,https://plots.example.com")
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://plots.example.com"}, cfg.Server.AllowOrigins)
}
