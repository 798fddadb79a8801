package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "estoque-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8000", cfg.HTTP.Addr())
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "per_item", cfg.Stock.CheckMode)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.Docs.Enabled)
	assert.False(t, cfg.JWT.Enabled())
	assert.Equal(t, "postgres://postgres:@localhost:5432/estoque?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("STORE_DRIVER", "Memory")
	v.Set("STOCK_CHECK_MODE", "running_total")
	v.Set("DB_AUTO_MIGRATE", "false")
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "running_total", cfg.Stock.CheckMode)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.JWT.Enabled())
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mongo")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "h", Port: 5432, User: "u", Password: "p@ss/w", DBName: "d", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p%40ss%2Fw@h:5432/d?sslmode=require", c.DSN())
}

func TestFromViper_PuertoNoNumerico(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "ocho mil")

	_, err := fromViper(v)
	assert.Error(t, err)
}
