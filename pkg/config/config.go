package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is intentionally empty: every field spells out its full variable name.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "USERDESK_APP_ENV"
	EnvDBDSN  = "USERDESK_DB_DSN"
	EnvDBHost = "USERDESK_DB_HOST"
	EnvDBUser = "USERDESK_DB_USER"
	EnvDBName = "USERDESK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"USERDESK_APP_ENV" required:"true"`
	Port         string   `envconfig:"USERDESK_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"USERDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"USERDESK_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"USERDESK_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"USERDESK_DB_DSN"`
	Driver string `envconfig:"USERDESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"USERDESK_DB_HOST"`
	LegacyPort     int    `envconfig:"USERDESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"USERDESK_DB_USER"`
	LegacyPassword string `envconfig:"USERDESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"USERDESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"USERDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"USERDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"USERDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"USERDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"USERDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"USERDESK_DB_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"USERDESK_REDIS_URL"`
	Address      string        `envconfig:"USERDESK_REDIS_ADDR"`
	Password     string        `envconfig:"USERDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"USERDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"USERDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"USERDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"USERDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"USERDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"USERDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis connection is configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type RateLimitConfig struct {
	MutationWindow  time.Duration `envconfig:"USERDESK_RATE_LIMIT_MUTATION_WINDOW" default:"1m"`
	MutationIPLimit int           `envconfig:"USERDESK_RATE_LIMIT_MUTATION_IP_LIMIT" default:"60"`
}

type SeedConfig struct {
	Count int `envconfig:"USERDESK_SEED_COUNT" default:"25"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:     "/" + db.LegacyName,
		RawQuery: "sslmode=" + db.LegacySSLMode,
	}
	db.DSN = u.String()
	return nil
}
