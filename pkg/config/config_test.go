package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "0.0.0.0:3001", cfg.Addr())
	assert.Equal(t, "./data/lms.sqlite", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.Equal(t, []string{"http://localhost:9000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "admin@lms.local", cfg.Admin.Email)
	assert.True(t, cfg.Seed.DemoData)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("PORT", 8080)
	v.Set("ALLOWED_ORIGINS", " http://a.test ,, http://b.test")
	v.Set("ADMIN_EMAIL", "  Boss@Institute.ORG ")
	v.Set("DB_BUSY_TIMEOUT", "not-a-duration")
	v.Set("SEED_DEMO_DATA", false)

	cfg := fromViper(v)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "boss@institute.org", cfg.Admin.Email)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.False(t, cfg.Seed.DemoData)
}

func TestSplitAndTrimEmpty(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
}
