package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 10, cfg.GroupConfirmAttempts)
	assert.Equal(t, 2*time.Second, cfg.GroupConfirmInterval)
	assert.Equal(t, "120-M", cfg.RateLimit)
	assert.Empty(t, cfg.BalanceExcludedAccounts)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_DRIVER", "SQLite")
	v.Set("GROUP_CONFIRM_ATTEMPTS", 0)
	v.Set("GROUP_CONFIRM_INTERVAL", "not-a-duration")
	v.Set("BALANCE_EXCLUDED_ACCOUNTS", " 0xAB , ,0xcd")
	v.Set("LOG_LEVEL", "DEBUG")

	cfg := fromViper(v)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 10, cfg.GroupConfirmAttempts)
	assert.Equal(t, 2*time.Second, cfg.GroupConfirmInterval)
	assert.Equal(t, []string{"0xab", "0xcd"}, cfg.BalanceExcludedAccounts)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromViper_UnknownDriverFallsBack(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_DRIVER", "mongo")

	assert.Equal(t, DriverPostgres, fromViper(v).DBDriver)
}
