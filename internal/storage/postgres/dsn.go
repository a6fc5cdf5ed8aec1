package postgres

import (
	"strconv"
	"strings"

	"github.com/netroute-lab/routeview/config"
)

// DSN renders the preset database settings as a lib/pq keyword/value string.
// Empty values are left out so lib/pq falls back to its PG* defaults.
func DSN(cfg *config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+"="+quoteDSNValue(v))
		}
	}
	add("host", cfg.Host)
	if cfg.Port > 0 {
		add("port", strconv.Itoa(cfg.Port))
	}
	add("user", cfg.User)
	add("password", cfg.Password)
	add("dbname", cfg.Name)
	add("sslmode", sslMode)
	return strings.Join(parts, " ")
}

// quoteDSNValue single-quotes values holding spaces, quotes or backslashes.
func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
