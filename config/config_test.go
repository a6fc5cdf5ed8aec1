package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ROUTES_BLUE_URL", "")
	t.Setenv("RECOMPUTE_RATE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "data/cmd_kiki_none.yaml", cfg.Sources.BlueRoutes)
	assert.Equal(t, 30*time.Second, cfg.Sources.Timeout)
	assert.Equal(t, 10.0, cfg.Recompute.Rate)
	assert.Empty(t, cfg.Sources.RefreshCron)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("ROUTES_RED_URL", "s3://netdocs/red.yaml")
	t.Setenv("SOURCE_TIMEOUT", "5s")
	t.Setenv("ROUTES_REFRESH_CRON", "0 */5 * * * *")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("RECOMPUTE_RATE", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "s3://netdocs/red.yaml", cfg.Sources.RedRoutes)
	assert.Equal(t, 5*time.Second, cfg.Sources.Timeout)
	assert.Equal(t, "0 */5 * * * *", cfg.Sources.RefreshCron)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 2.5, cfg.Recompute.Rate)
}

func TestValidate(t *testing.T) {
	t.Setenv("RECOMPUTE_RATE", "-1")
	_, err := Load()
	assert.EqualError(t, err, "RECOMPUTE_RATE must not be negative")

	cfg := &Config{Server: ServerConfig{Port: "1"}, Redis: RedisConfig{Addr: "x"}}
	assert.EqualError(t, cfg.Validate(), "ROUTES_BLUE_URL and ROUTES_RED_URL are required")
}
