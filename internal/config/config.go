package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/duel"
	"github.com/osse101/CaseSim_Go/internal/harvest"
)

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds the application configuration
type Config struct {
	Port           int      `env:"PORT" envDefault:"8080"`
	APIKey         string   `env:"API_KEY"` // empty disables authentication
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"5m"`
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"1000"`
	AuthFailureAlert  int           `env:"AUTH_FAILURE_ALERT" envDefault:"5"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"casesim"`
	Version     string `env:"VERSION" envDefault:"dev"`

	StorageDriver string        `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath    string        `env:"SQLITE_PATH" envDefault:"data/casesim.db"`
	DBUser        string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword    string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost        string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string        `env:"DB_PORT" envDefault:"5432"`
	DBName        string        `env:"DB_NAME" envDefault:"casesim"`
	DBMaxConns    int32         `env:"DB_MAX_CONNS" envDefault:"5"`
	CacheSize     int           `env:"CACHE_SIZE" envDefault:"64"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	CatalogPath       string        `env:"CATALOG_PATH"` // empty uses the embedded catalog
	CaseRevealDelay   time.Duration `env:"CASE_REVEAL_DELAY" envDefault:"3s"`
	BattleRevealDelay time.Duration `env:"BATTLE_REVEAL_DELAY" envDefault:"2s"`
	StartingSilver    int64         `env:"STARTING_SILVER" envDefault:"5000"`
	StartingGold      int64         `env:"STARTING_GOLD" envDefault:"1000"`

	BattleWinSilverMin  int64 `env:"BATTLE_WIN_SILVER_MIN" envDefault:"500"`
	BattleWinSilverMax  int64 `env:"BATTLE_WIN_SILVER_MAX" envDefault:"1500"`
	BattleWinGold       int64 `env:"BATTLE_WIN_GOLD" envDefault:"400"`
	BattleLoseSilverMin int64 `env:"BATTLE_LOSE_SILVER_MIN" envDefault:"100"`
	BattleLoseSilverMax int64 `env:"BATTLE_LOSE_SILVER_MAX" envDefault:"400"`

	HarvestSilverMin int64 `env:"HARVEST_SILVER_MIN" envDefault:"200"`
	HarvestSilverMax int64 `env:"HARVEST_SILVER_MAX" envDefault:"1999"`
	HarvestGoldMin   int64 `env:"HARVEST_GOLD_MIN" envDefault:"10"`
	HarvestGoldMax   int64 `env:"HARVEST_GOLD_MAX" envDefault:"59"`

	// RNGSeed makes draws reproducible. Zero uses the global source.
	RNGSeed uint64 `env:"RNG_SEED" envDefault:"0"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf(ErrMsgParseEnv, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that parse correctly but make no sense
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf(ErrMsgInvalidPortFmt, c.Port)
	}

	switch c.StorageDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf(ErrMsgMissingValueFmt, "SQLITE_PATH")
		}
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return fmt.Errorf(ErrMsgMissingValueFmt, "DB_HOST and DB_NAME")
		}
		if c.DBMaxConns <= 0 {
			return fmt.Errorf(ErrMsgNotPositiveFmt, "DB_MAX_CONNS")
		}
	case DriverMemory:
	default:
		return fmt.Errorf(ErrMsgUnknownDriverFmt, c.StorageDriver)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf(ErrMsgNegativeFmt, "CACHE_SIZE")
	}
	if c.MaxBodyBytes < 0 || c.RateLimitRequests < 0 || c.AuthFailureAlert < 0 || c.RateLimitWindow < 0 {
		return fmt.Errorf(ErrMsgNegativeFmt, "request limit")
	}
	if c.CaseRevealDelay < 0 || c.BattleRevealDelay < 0 {
		return fmt.Errorf(ErrMsgNegativeFmt, "reveal delay")
	}
	if c.StartingSilver < 0 || c.StartingGold < 0 {
		return fmt.Errorf(ErrMsgNegativeFmt, "starting balance")
	}
	if err := c.BattleConfig().Validate(); err != nil {
		return fmt.Errorf(ErrMsgSectionFmt, "battle", err)
	}
	if err := c.HarvestConfig().Validate(); err != nil {
		return fmt.Errorf(ErrMsgSectionFmt, "harvest", err)
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// StartingState is the economy used when nothing is persisted yet
func (c *Config) StartingState() domain.EconomyState {
	return domain.EconomyState{
		Silver:    c.StartingSilver,
		Gold:      c.StartingGold,
		Inventory: []domain.Item{},
	}
}

// BattleConfig returns the battle reward ranges
func (c *Config) BattleConfig() duel.Config {
	return duel.Config{
		WinSilverMin:  c.BattleWinSilverMin,
		WinSilverMax:  c.BattleWinSilverMax,
		WinGold:       c.BattleWinGold,
		LoseSilverMin: c.BattleLoseSilverMin,
		LoseSilverMax: c.BattleLoseSilverMax,
	}
}

// HarvestConfig returns the harvest reward ranges
func (c *Config) HarvestConfig() harvest.Config {
	return harvest.Config{
		SilverMin: c.HarvestSilverMin,
		SilverMax: c.HarvestSilverMax,
		GoldMin:   c.HarvestGoldMin,
		GoldMax:   c.HarvestGoldMax,
	}
}
