package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "America/Denver", cfg.ClinicTimezone)
	assert.Equal(t, "08:00", cfg.WorkDayStart)
	assert.Equal(t, "17:30", cfg.WorkDayEnd)
	assert.Equal(t, 15, cfg.ScanStepMinutes)
	assert.Equal(t, 30, cfg.GranularityMinutes)
	assert.Equal(t, 10, cfg.MaxSlotsPerDay)
	assert.Equal(t, 30, cfg.MaxRangeDays)
	assert.InDelta(t, 0.72, cfg.ProcedureMatchThreshold, 1e-9)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCAN_STEP_MINUTES", "5")
	t.Setenv("PROCEDURE_MATCH_THRESHOLD", "0.9")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://upfh.org, https://www.upfh.org")

	cfg := Load()
	assert.Equal(t, 5, cfg.ScanStepMinutes)
	assert.InDelta(t, 0.9, cfg.ProcedureMatchThreshold, 1e-9)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"https://upfh.org", "https://www.upfh.org"}, cfg.CORSOrigins)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MAX_RANGE_DAYS", "not-a-number")
	t.Setenv("SESSION_TTL", "soon")

	cfg := Load()
	assert.Equal(t, 30, cfg.MaxRangeDays)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
}
