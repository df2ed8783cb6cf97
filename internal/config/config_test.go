package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"etalase/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "public", cfg.StaticDir)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.RequestLogging)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "warn", cfg.Database.LogLevel)

	assert.Equal(t, bcrypt.DefaultCost, cfg.Auth.BcryptCost)
	assert.Zero(t, cfg.Auth.MinPasswordLength)

	assert.Empty(t, cfg.RabbitMQ.URL)
	assert.Equal(t, "catalog", cfg.RabbitMQ.Exchange)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("DB_USER", "shop_user")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("AUTH_BCRYPT_COST", "4")
	t.Setenv("REQUEST_LOGGING", "false")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr())
	assert.False(t, cfg.RequestLogging)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, "host=db.internal user=shop_user dbname=shop port=5432 sslmode=disable password=s3cret", cfg.Database.DSN())
}

func TestDatabaseConfig_DSNQuotesSpecialValues(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver:   "postgres",
		Host:     "localhost",
		Port:     "5432",
		Name:     "shop",
		User:     "shop user",
		Password: `p a'ss\word`,
		SSLMode:  "disable",
	}
	assert.Equal(t, `host=localhost user='shop user' dbname=shop port=5432 sslmode=disable password='p a\'ss\\word'`, cfg.DSN())

	// A password that is only a quote must not end the value early.
	cfg.User = "shop_user"
	cfg.Password = "'"
	assert.Equal(t, `host=localhost user=shop_user dbname=shop port=5432 sslmode=disable password='\''`, cfg.DSN())

	cfg.Password = "pass=word"
	assert.Equal(t, `host=localhost user=shop_user dbname=shop port=5432 sslmode=disable password=pass=word`, cfg.DSN())
}

func TestLoad_DatabaseURLWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@remote:6543/catalog")
	t.Setenv("DB_HOST", "ignored")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@remote:6543/catalog", cfg.Database.DSN())
}

func TestLoad_SQLiteDSN(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_NAME", "local.db")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "local.db", cfg.Database.DSN())
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("UnknownDriver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		_, err := config.Load("")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
	})

	t.Run("BcryptCostOutOfRange", func(t *testing.T) {
		t.Setenv("AUTH_BCRYPT_COST", "99")
		_, err := config.Load("")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "AUTH_BCRYPT_COST")
	})

	t.Run("NegativeMinPasswordLength", func(t *testing.T) {
		t.Setenv("AUTH_MIN_PASSWORD_LENGTH", "-1")
		_, err := config.Load("")
		assert.Error(t, err)
	})
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.env")
	content := "PORT=9090\nSTATIC_DIR=/srv/www\nRABBITMQ_URL=amqp://guest:guest@mq:5672/\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "/srv/www", cfg.StaticDir)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.RabbitMQ.URL)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
