// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	ServerPort    int    `env:"SERVER_PORT" envDefault:"4800"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	Database   DatabaseConfig
	Tree       TreeConfig
	Layout     LayoutConfig
	Research   ResearchConfig
	Pagination PaginationConfig
	CacheSweep CacheSweepConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host         string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port         int           `env:"POSTGRES_PORT" envDefault:"5432"`
	User         string        `env:"POSTGRES_USER" envDefault:"kingraph"`
	Password     string        `env:"POSTGRES_PASSWORD" envDefault:""`
	Database     string        `env:"POSTGRES_DB" envDefault:"kingraph"`
	SSLMode      string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxIdleTime  time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	QueryDebug   bool          `env:"DB_QUERY_DEBUG" envDefault:"false"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// TreeConfig bounds tree traversals.
type TreeConfig struct {
	// Default and maximum generations for a single ancestors/descendants
	// request. Branch expansion requests are bounded the same way.
	DefaultGenerations int `env:"TREE_DEFAULT_GENERATIONS" envDefault:"3"`
	MaxGenerations     int `env:"TREE_MAX_GENERATIONS" envDefault:"10"`

	// Bounds for the collateral notable-relative scan.
	NotableAncestorGenerations   int `env:"TREE_NOTABLE_ANCESTOR_GENERATIONS" envDefault:"15"`
	NotableDescendantGenerations int `env:"TREE_NOTABLE_DESCENDANT_GENERATIONS" envDefault:"6"`
}

// ClampGenerations resolves a requested generation count against the bounds.
func (t *TreeConfig) ClampGenerations(requested *int) int {
	if requested == nil || *requested < 0 {
		return t.DefaultGenerations
	}
	if *requested > t.MaxGenerations {
		return t.MaxGenerations
	}
	return *requested
}

// LayoutConfig holds tree layout units. Values are abstract layout units the
// renderer converts to pixels.
type LayoutConfig struct {
	NodeWidth  float64 `env:"LAYOUT_NODE_WIDTH" envDefault:"120"`
	NodeHeight float64 `env:"LAYOUT_NODE_HEIGHT" envDefault:"60"`
	HGap       float64 `env:"LAYOUT_H_GAP" envDefault:"24"`
	LevelGap   float64 `env:"LAYOUT_LEVEL_GAP" envDefault:"48"`
	SpouseGap  float64 `env:"LAYOUT_SPOUSE_GAP" envDefault:"16"`
	SiblingGap float64 `env:"LAYOUT_SIBLING_GAP" envDefault:"8"`
}

// ResearchConfig holds the weighted scoring knobs for the research queue.
// Each weight multiplies a 0/1 indicator except PriorityWeight, which
// multiplies the user-set 0-10 priority value.
type ResearchConfig struct {
	WeightMissingDates      float64 `env:"RESEARCH_WEIGHT_MISSING_DATES" envDefault:"20" yaml:"missing_dates"`
	WeightMissingPlaces     float64 `env:"RESEARCH_WEIGHT_MISSING_PLACES" envDefault:"10" yaml:"missing_places"`
	WeightEstimatedDates    float64 `env:"RESEARCH_WEIGHT_ESTIMATED_DATES" envDefault:"10" yaml:"estimated_dates"`
	WeightPlaceholderParent float64 `env:"RESEARCH_WEIGHT_PLACEHOLDER_PARENT" envDefault:"25" yaml:"placeholder_parent"`
	WeightLowSources        float64 `env:"RESEARCH_WEIGHT_LOW_SOURCES" envDefault:"15" yaml:"low_sources"`
	WeightPriority          float64 `env:"RESEARCH_WEIGHT_PRIORITY" envDefault:"2" yaml:"priority"`

	// A person with fewer sources than this counts as under-sourced.
	LowSourceThreshold int `env:"RESEARCH_LOW_SOURCE_THRESHOLD" envDefault:"2" yaml:"low_source_threshold"`

	// Optional YAML file overriding the weights above, so curators can tune
	// scoring without redeploying.
	WeightsFile string `env:"RESEARCH_WEIGHTS_FILE" envDefault:"" yaml:"-"`
}

// PaginationConfig holds page size bounds shared by all cursor-paginated
// endpoints.
type PaginationConfig struct {
	DefaultPageSize int `env:"PAGE_SIZE_DEFAULT" envDefault:"20"`
	MaxPageSize     int `env:"PAGE_SIZE_MAX" envDefault:"100"`
}

// CacheSweepConfig schedules periodic full result-cache clears. The cache has
// no TTL, so long-running deployments sweep it on a cron schedule to bound
// staleness. Empty spec disables the sweep.
type CacheSweepConfig struct {
	Spec string `env:"CACHE_SWEEP_CRON" envDefault:""`
}

// NewConfig loads configuration from environment variables, then applies the
// optional research weights file.
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Research.WeightsFile != "" {
		if err := loadWeightsFile(&cfg.Research); err != nil {
			return nil, fmt.Errorf("failed to load research weights file: %w", err)
		}
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.ServerPort),
		slog.String("db_host", cfg.Database.Host),
		slog.Int("tree_max_generations", cfg.Tree.MaxGenerations),
	)

	return cfg, nil
}

func loadWeightsFile(rc *ResearchConfig) error {
	data, err := os.ReadFile(rc.WeightsFile)
	if err != nil {
		return err
	}
	// Unmarshal over the env-loaded struct: keys present in the file override,
	// the rest keep their env values.
	return yaml.Unmarshal(data, rc)
}
