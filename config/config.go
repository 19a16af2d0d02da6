package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config/config.yaml"

	DayBoundaryLocation = "location"
	DayBoundaryUTC      = "utc"

	// MaxForecastDays is the longest forecast the provider's 5 day / 3 hour feed can fill.
	MaxForecastDays = 5
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Provider ProviderConfig `yaml:"provider" envconfig:"OWM"`
	Forecast ForecastConfig `yaml:"forecast"`
	Observe  ObserveConfig  `yaml:"observe"`
}

type AppConfig struct {
	Name    string `yaml:"name" split_words:"true"`
	Version string `yaml:"version" split_words:"true"`
	Env     string `yaml:"env" split_words:"true"`
}

type ServerConfig struct {
	Port         string        `yaml:"port" split_words:"true"`
	ReadTimeout  time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout time.Duration `yaml:"write_timeout" split_words:"true"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" split_words:"true"`
}

type LogConfig struct {
	Level string `yaml:"level" split_words:"true"`
}

// ProviderConfig holds the OpenWeatherMap credential and endpoint roots.
type ProviderConfig struct {
	APIKey  string        `yaml:"api_key,omitempty" split_words:"true"`
	BaseURL string        `yaml:"base_url" split_words:"true"`
	GeoURL  string        `yaml:"geo_url" split_words:"true"`
	Timeout time.Duration `yaml:"timeout" split_words:"true"`
	// BreakerTimeout is how long an endpoint's circuit stays open after tripping.
	BreakerTimeout time.Duration `yaml:"breaker_timeout" split_words:"true"`
}

type ForecastConfig struct {
	Days         int    `yaml:"days" split_words:"true"`
	DayBoundary  string `yaml:"day_boundary" split_words:"true"`
	DefaultPlace string `yaml:"default_place" split_words:"true"`
}

type ObserveConfig struct {
	SentryDSN    string `yaml:"sentry_dsn,omitempty" split_words:"true"`
	OTLPEndpoint string `yaml:"otlp_endpoint,omitempty" split_words:"true"`
	OTLPInsecure bool   `yaml:"otlp_insecure" split_words:"true"`
}

// ConfigProvider loads and checks a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider layers an optional YAML file, an optional .env file and
// the process environment over the built-in defaults.
type FileConfigProvider struct {
	path    string
	envFile string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path, envFile: ".env"}
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-lookup",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Provider: ProviderConfig{
			BaseURL:        "https://api.openweathermap.org/data/2.5",
			GeoURL:         "https://api.openweathermap.org/geo/1.0",
			Timeout:        10 * time.Second,
			BreakerTimeout: 30 * time.Second,
		},
		Forecast: ForecastConfig{
			Days:         MaxForecastDays,
			DayBoundary:  DayBoundaryLocation,
			DefaultPlace: "London",
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := Defaults()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// A missing .env file is normal outside local development.
	_ = godotenv.Load(p.envFile)

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config %s: %w", p.path, err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	var problems []string

	if strings.TrimSpace(config.App.Name) == "" {
		problems = append(problems, "app.name is required")
	}
	if strings.TrimSpace(config.Server.Port) == "" {
		problems = append(problems, "server.port is required")
	}
	if strings.TrimSpace(config.Provider.APIKey) == "" {
		problems = append(problems, "provider.api_key is required")
	}
	if err := checkURL(config.Provider.BaseURL); err != nil {
		problems = append(problems, "provider.base_url "+err.Error())
	}
	if err := checkURL(config.Provider.GeoURL); err != nil {
		problems = append(problems, "provider.geo_url "+err.Error())
	}
	if config.Provider.Timeout <= 0 {
		problems = append(problems, "provider.timeout must be positive")
	}
	if config.Forecast.Days < 1 || config.Forecast.Days > MaxForecastDays {
		problems = append(problems, fmt.Sprintf("forecast.days must be between 1 and %d", MaxForecastDays))
	}
	switch config.Forecast.DayBoundary {
	case DayBoundaryLocation, DayBoundaryUTC:
	default:
		problems = append(problems, fmt.Sprintf("forecast.day_boundary must be %q or %q", DayBoundaryLocation, DayBoundaryUTC))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("is not a valid URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.New("must be an absolute URL")
	}
	return nil
}

// NewConfig loads the default config file and environment.
func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(DefaultConfigPath))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, err
	}

	return cnf, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production" || c.App.Env == "prod"
}
