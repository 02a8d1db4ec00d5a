package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestLoadFallsBackToDefaultsWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Scheduler, cfg.Scheduler)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcpscheduler.yaml")
	contents := `
scheduler:
  memory_limit: 8
  communication_penalty: 2
  queue_size: 64
availability:
  thresholds:
    - threshold: 0
      low: [0, 1]
      high: [2]
    - threshold: 100
      low: [0]
      high: [2]
logging:
  level: debug
  format: json
api:
  listen: ":9090"
  rate_limit_per_second: 5
  rate_limit_burst: 10
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Scheduler.MemoryLimit)
	assert.Equal(t, 2, cfg.Scheduler.CommunicationPenalty)
	assert.Equal(t, 64, cfg.Scheduler.QueueSize)
	require.Len(t, cfg.Availability.Thresholds, 2)
	assert.Equal(t, 100, cfg.Availability.Thresholds[1].Threshold)
	assert.Equal(t, []int{0}, cfg.Availability.Thresholds[1].Low)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":9090", cfg.API.Listen)
	assert.Equal(t, 5.0, cfg.API.RateLimitPerSecond)
}

func TestValidateRejectsNonPositiveMemoryLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scheduler.MemoryLimit = 0
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsEmptyThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Availability.Thresholds = nil
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsNonZeroFirstThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Availability.Thresholds = []AvailabilityThreshold{{Threshold: 5, Low: []int{0}}}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsNonIncreasingThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Availability.Thresholds = []AvailabilityThreshold{
		{Threshold: 0, Low: []int{0}},
		{Threshold: 0, Low: []int{1}},
	}
	require.Error(t, cfg.Validate())
}
