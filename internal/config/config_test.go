package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/flexprice/rvpark/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Configuration {
	return Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
		Postgres: PostgresConfig{
			Host:   "localhost",
			Port:   5432,
			User:   "rvpark",
			DBName: "rvpark",
		},
		Auth:    AuthConfig{Secret: "secret", TokenTTL: time.Hour},
		Billing: BillingConfig{MonthlyRate: decimal.NewFromInt(1200)},
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	cfg.Billing.MonthlyRate = decimal.NewFromInt(-1)
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Auth.Secret = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Billing.Timezone = "Mars/Olympus_Mons"
	assert.Error(t, cfg.Validate())
}

func TestBillingToday(t *testing.T) {
	// 03:00 UTC on the 31st is still the evening of the 30th in Denver
	now := time.Date(2024, 3, 31, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		timezone string
		want     time.Time
	}{
		{name: "unset is utc", timezone: "", want: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
		{name: "utc", timezone: "UTC", want: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
		{name: "west of utc", timezone: "America/Denver", want: time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC)},
		{name: "east of utc", timezone: "Asia/Tokyo", want: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := BillingConfig{Timezone: tt.timezone}
			assert.Equal(t, tt.want, cfg.Today(now))
		})
	}
}

func TestDecimalHook(t *testing.T) {
	hook := decimalHook()
	to := reflect.TypeOf(decimal.Decimal{})

	for _, in := range []any{"1200", 1200, float64(1200)} {
		out, err := hook(nil, to, in)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1200).Equal(out.(decimal.Decimal)), "input %v", in)
	}

	_, err := hook(nil, to, "twelve hundred")
	assert.Error(t, err)
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()
	assert.True(t, cfg.Billing.MonthlyRate.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, types.ModeLocal, cfg.Deployment.Mode)
}
