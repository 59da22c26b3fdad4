package config

import (
	"fmt"     // Error formatting
	"slices"  // Membership checks
	"strings" // String normalization
	"time"    // Durations

	"github.com/joho/godotenv"             // For loading .env files
	"github.com/kelseyhightower/envconfig" // Environment to struct mapping
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"    // gorm.io/driver/mysql
	DriverPostgres = "postgres" // gorm.io/driver/postgres
)

// Config holds the application configuration
type Config struct {
	AppPort        string        `envconfig:"APP_PORT" default:"3001"`                     // Application port
	AppEnv         string        `envconfig:"APP_ENV" default:"development"`               // development or production
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`                    // Logrus level name
	CORSOrigin     string        `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"` // Allowed browser origin
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5s"`                // Deadline for storage I/O per request
	JWTSecret      string        `envconfig:"JWT_SECRET" required:"true"`                  // JWT secret key
	JWTTTL         time.Duration `envconfig:"JWT_TTL" default:"168h"`                      // Token lifetime
	DBDriver       string        `envconfig:"DB_DRIVER" default:"mysql"`                   // mysql or postgres
	DBHost         string        `envconfig:"DB_HOST" default:"localhost"`                 // Database host
	DBPort         string        `envconfig:"DB_PORT"`                                     // Database port, driver default when empty
	DBUser         string        `envconfig:"DB_USER" default:"progress"`                  // Database user
	DBPassword     string        `envconfig:"DB_PASSWORD"`                                 // Database password
	DBName         string        `envconfig:"DB_NAME" default:"progress"`                  // Database name
	DBSSLMode      string        `envconfig:"DB_SSLMODE" default:"disable"`                // PostgreSQL sslmode
	RedisAddr      string        `envconfig:"REDIS_ADDR"`                                  // Redis server address, empty disables caching
	RedisPass      string        `envconfig:"REDIS_PASS"`                                  // Redis password
	RedisDB        int           `envconfig:"REDIS_DB" default:"0"`                        // Redis database number
	CacheTTL       time.Duration `envconfig:"CACHE_TTL" default:"60s"`                     // Lifetime of cached reads
	AdminEmails    []string      `envconfig:"ADMIN_EMAILS"`                                // Emails registered with the admin role
}

// LoadConfig loads configuration from the environment, reading .env first if present
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	if c.DBPort == "" {
		c.DBPort = "3306" // MySQL default
		if c.DBDriver == DriverPostgres {
			c.DBPort = "5432"
		}
	}
	emails := make([]string, 0, len(c.AdminEmails))
	for _, e := range c.AdminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			emails = append(emails, e)
		}
	}
	c.AdminEmails = emails
}

// Validate checks values envconfig cannot express
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.DBDriver != DriverMySQL && c.DBDriver != DriverPostgres {
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMySQL, DriverPostgres, c.DBDriver)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// IsProd reports whether the service runs in production
func (c *Config) IsProd() bool {
	return c.AppEnv == "production"
}

// IsAdminEmail reports whether email is granted the admin role on registration
func (c *Config) IsAdminEmail(email string) bool {
	return slices.Contains(c.AdminEmails, strings.ToLower(email))
}

// DSN returns the connection string for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
		)
	}
	// Data Source Name for MySQL, times parsed and stored as UTC
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&loc=UTC"
}
