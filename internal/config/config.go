package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/michaelbrown/codeproxy/internal/judge0"
)

// DefaultMaxBodyBytes caps an inbound compile request at 100 KiB.
const DefaultMaxBodyBytes = 100 << 10

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	StaticDir    string `mapstructure:"static_dir"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

type Judge0Config struct {
	BaseURL string        `mapstructure:"base_url"`
	Host    string        `mapstructure:"host"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig controls submission history. History is off unless DBPath
// is set.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type LanguagesConfig struct {
	File string `mapstructure:"file"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Judge0    Judge0Config    `mapstructure:"judge0"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Languages LanguagesConfig `mapstructure:"languages"`
	Log       LogConfig       `mapstructure:"log"`
}

// Options controls where Load looks for settings.
type Options struct {
	// ConfigFile is an explicit config path. When empty, codeproxy.yaml is
	// searched in the working directory and $HOME/.codeproxy, and may be absent.
	ConfigFile string
	// EnvFile is loaded into the process environment before anything else.
	// Missing files are ignored.
	EnvFile string
}

// Load reads configuration from .env, an optional YAML file and the environment.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CODEPROXY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unprefixed names used by existing deployments.
	v.BindEnv("judge0.api_key", "CODEPROXY_JUDGE0_API_KEY", "RAPIDAPI_KEY")
	v.BindEnv("server.port", "CODEPROXY_SERVER_PORT", "PORT")

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		v.SetConfigName("codeproxy")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.codeproxy")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Expand environment variables in the API key
	cfg.Judge0.APIKey = expandEnv(cfg.Judge0.APIKey)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.max_body_bytes", DefaultMaxBodyBytes)
	v.SetDefault("judge0.base_url", judge0.DefaultBaseURL)
	v.SetDefault("judge0.host", judge0.DefaultHost)
	v.SetDefault("judge0.api_key", "")
	v.SetDefault("judge0.timeout", time.Duration(0))
	v.SetDefault("storage.db_path", "")
	v.SetDefault("languages.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	return s
}

// Judge0Client returns the client settings for the remote service.
func (c *Config) Judge0Client() judge0.Config {
	return judge0.Config{
		BaseURL: c.Judge0.BaseURL,
		Host:    c.Judge0.Host,
		APIKey:  c.Judge0.APIKey,
		Timeout: c.Judge0.Timeout,
	}
}

// HistoryEnabled reports whether submissions should be recorded.
func (c *Config) HistoryEnabled() bool {
	return c.Storage.DBPath != ""
}
