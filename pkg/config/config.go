package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "fireworks"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "FIREWORKS_DB_DSN"
	EnvDBHost = "FIREWORKS_DB_HOST"
	EnvDBUser = "FIREWORKS_DB_USER"
	EnvDBName = "FIREWORKS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Shop     ShopConfig
	Catalog  CatalogConfig
	Invoices InvoicesConfig
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
	Env          string `envconfig:"FIREWORKS_APP_ENV" required:"true"`
	Port         string `envconfig:"FIREWORKS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FIREWORKS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FIREWORKS_LOG_WARN_STACK" default:"false"`

	AllowedOrigins []string `envconfig:"FIREWORKS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FIREWORKS_DB_DSN"`
	Driver string `envconfig:"FIREWORKS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FIREWORKS_DB_HOST"`
	LegacyPort     int    `envconfig:"FIREWORKS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FIREWORKS_DB_USER"`
	LegacyPassword string `envconfig:"FIREWORKS_DB_PASSWORD"`
	LegacyName     string `envconfig:"FIREWORKS_DB_NAME"`
	LegacySSLMode  string `envconfig:"FIREWORKS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FIREWORKS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FIREWORKS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FIREWORKS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FIREWORKS_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"FIREWORKS_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FIREWORKS_REDIS_URL"`
	Address      string        `envconfig:"FIREWORKS_REDIS_ADDR"`
	Password     string        `envconfig:"FIREWORKS_REDIS_PASSWORD"`
	DB           int           `envconfig:"FIREWORKS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FIREWORKS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FIREWORKS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FIREWORKS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FIREWORKS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FIREWORKS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// ShopConfig carries the ordering business rules.
type ShopConfig struct {
	// MinimumOrderValue is the smallest subtotal (in rupees) accepted at checkout.
	MinimumOrderValue  int    `envconfig:"FIREWORKS_SHOP_MINIMUM_ORDER_VALUE" default:"2500"`
	CountryCallingCode string `envconfig:"FIREWORKS_SHOP_COUNTRY_CALLING_CODE" default:"91"`
	// ShopWhatsApp receives the order notification message built for each new order.
	ShopWhatsApp string `envconfig:"FIREWORKS_SHOP_WHATSAPP"`
}

// CatalogConfig points at the legacy spreadsheet-backed catalog feed.
type CatalogConfig struct {
	UpstreamURL  string        `envconfig:"FIREWORKS_CATALOG_UPSTREAM_URL"`
	FetchTimeout time.Duration `envconfig:"FIREWORKS_CATALOG_FETCH_TIMEOUT" default:"15s"`
	CacheTTL     time.Duration `envconfig:"FIREWORKS_CATALOG_CACHE_TTL" default:"15m"`
}

type InvoicesConfig struct {
	Dir         string `envconfig:"FIREWORKS_INVOICES_DIR" default:"data/invoices"`
	MaxUploadMB int    `envconfig:"FIREWORKS_INVOICES_MAX_UPLOAD_MB" default:"10"`
	// PublicBaseURL prefixes stored invoice names to build the link saved on the order.
	PublicBaseURL string `envconfig:"FIREWORKS_INVOICES_PUBLIC_BASE_URL" default:"/invoices"`
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
