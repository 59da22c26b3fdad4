package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.AppPort)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, "http://localhost:5173", cfg.CORSOrigin)
	assert.False(t, cfg.IsProd())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Postgres(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "pw")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "host=db port=5432 user=progress password=pw dbname=progress sslmode=disable TimeZone=UTC", cfg.DSN())
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DB_DRIVER")
}

func TestDSN_MySQL(t *testing.T) {
	cfg := &Config{DBDriver: DriverMySQL, DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "3306", DBName: "n"}
	assert.Equal(t, "u:p@tcp(h:3306)/n?parseTime=true&loc=UTC", cfg.DSN())
}

func TestIsAdminEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_EMAILS", " Root@Example.com ,ops@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsAdminEmail("root@example.com"))
	assert.True(t, cfg.IsAdminEmail("OPS@example.com"))
	assert.False(t, cfg.IsAdminEmail("user@example.com"))
}
