// Package config loads application configuration and wires the logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Collector CollectorConfig `yaml:"collector" mapstructure:"collector"`
	Reddit    RedditConfig    `yaml:"reddit" mapstructure:"reddit"`
	Storage   StorageConfig   `yaml:"storage" mapstructure:"storage"`
	Minio     MinioConfig     `yaml:"minio" mapstructure:"minio"`
	Catalog   CatalogConfig   `yaml:"catalog" mapstructure:"catalog"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// CollectorConfig selects the data-fetching implementation.
type CollectorConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"`
}

// RedditConfig holds API credentials and the client identity string.
type RedditConfig struct {
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	Username     string `yaml:"username" mapstructure:"username"`
	Password     string `yaml:"password" mapstructure:"password"`
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
}

// StorageConfig selects the default storage backend and the local data root.
type StorageConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
}

// MinioConfig holds object-store connection settings. The access and secret
// keys also bind to MINIO_ROOT_USER / MINIO_ROOT_PASSWORD so a stock
// docker-compose MinIO works without extra variables.
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	Secure    bool   `yaml:"secure" mapstructure:"secure"`
}

// CatalogConfig locates the scrape catalog database.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the dashboard server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SUBTRENDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed variables shared with the usual reddit/minio .env contract.
	aliases := [][2]string{
		{"collector.mode", "COLLECTOR_MODE"},
		{"reddit.client_id", "REDDIT_CLIENT_ID"},
		{"reddit.client_secret", "REDDIT_CLIENT_SECRET"},
		{"reddit.username", "REDDIT_USERNAME"},
		{"reddit.password", "REDDIT_PASSWORD"},
		{"reddit.user_agent", "REDDIT_USER_AGENT"},
		{"minio.access_key", "MINIO_ROOT_USER"},
		{"minio.secret_key", "MINIO_ROOT_PASSWORD"},
	}
	for _, a := range aliases {
		if err := v.BindEnv(a[0], a[1]); err != nil {
			return nil, eris.Wrapf(err, "config: bind %s", a[1])
		}
	}

	// Defaults
	v.SetDefault("collector.mode", "public")
	v.SetDefault("reddit.user_agent", "subtrends/1.0")
	v.SetDefault("storage.backend", "minio")
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.secure", false)
	v.SetDefault("catalog.path", "data/subtrends.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields a command mode actually needs. Modes: "scrape"
// for the fetch commands, "serve" for the dashboard.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "scrape":
		if c.Collector.Mode == "api" {
			if c.Reddit.ClientID == "" {
				errs = append(errs, "reddit.client_id is required for the api collector")
			}
			if c.Reddit.ClientSecret == "" {
				errs = append(errs, "reddit.client_secret is required for the api collector")
			}
			if c.Reddit.Username == "" {
				errs = append(errs, "reddit.username is required for the api collector")
			}
			if c.Reddit.Password == "" {
				errs = append(errs, "reddit.password is required for the api collector")
			}
		}
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.New("config: " + strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
