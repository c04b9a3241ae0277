package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Inventory    InventoryConfig
	Events       EventsConfig
	Activity     ActivityConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Inventory.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VELOUR_APP_ENV" required:"true"`
	Port         string `envconfig:"VELOUR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VELOUR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VELOUR_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"VELOUR_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"VELOUR_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"VELOUR_DB_DSN"`
	Driver string `envconfig:"VELOUR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VELOUR_DB_HOST"`
	LegacyPort     int    `envconfig:"VELOUR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VELOUR_DB_USER"`
	LegacyPassword string `envconfig:"VELOUR_DB_PASSWORD"`
	LegacyName     string `envconfig:"VELOUR_DB_NAME"`
	LegacySSLMode  string `envconfig:"VELOUR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VELOUR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VELOUR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VELOUR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VELOUR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded SQLite one.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"VELOUR_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VELOUR_REDIS_ADDR"`
	Password     string        `envconfig:"VELOUR_REDIS_PASSWORD"`
	DB           int           `envconfig:"VELOUR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VELOUR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VELOUR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VELOUR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VELOUR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VELOUR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"VELOUR_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"VELOUR_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"VELOUR_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"VELOUR_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VELOUR_AUTO_MIGRATE" default:"false"`
}

// InventoryConfig tunes the restock planner and the background alert scan.
type InventoryConfig struct {
	UnitCostRatio     float64       `envconfig:"VELOUR_INVENTORY_UNIT_COST_RATIO" default:"0.6"`
	AlertScanInterval time.Duration `envconfig:"VELOUR_INVENTORY_ALERT_SCAN_INTERVAL" default:"6h"`
}

func (i InventoryConfig) validate() error {
	if i.UnitCostRatio <= 0 || i.UnitCostRatio > 1 {
		return fmt.Errorf("%s must be in (0, 1], got %v", EnvInventoryUnitCostRatio, i.UnitCostRatio)
	}
	return nil
}

type EventsConfig struct {
	Channel string `envconfig:"VELOUR_EVENTS_CHANNEL" default:"velour:events"`
}

type ActivityConfig struct {
	RetentionDays int `envconfig:"VELOUR_ACTIVITY_RETENTION_DAYS" default:"180"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
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

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
