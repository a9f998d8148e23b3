package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

const (
	LocationModeIP     = "ip"
	LocationModeStatic = "static"
	LocationModeNone   = "none"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Weather  WeatherConfig  `yaml:"weather"`
	Location LocationConfig `yaml:"location"`
	Log      LogConfig      `yaml:"log"`
	Sentry   SentryConfig   `yaml:"sentry"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"APP_NAME"`
	Version string `yaml:"version" envconfig:"APP_VERSION"`
	Env     string `yaml:"env" envconfig:"APP_ENV"`
	// Timezone used to format forecast hours; empty means the host zone.
	Timezone string `yaml:"timezone" envconfig:"APP_TIMEZONE"`
}

type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"SERVER_PORT"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"SERVER_IDLE_TIMEOUT"`
}

type WeatherConfig struct {
	APIKey        string `yaml:"api_key" envconfig:"OPENWEATHER_API_KEY"`
	BaseURL       string `yaml:"base_url" envconfig:"OPENWEATHER_BASE_URL"`
	GeoURL        string `yaml:"geo_url" envconfig:"OPENWEATHER_GEO_URL"`
	Units         string `yaml:"units" envconfig:"WEATHER_UNITS"`
	Lang          string `yaml:"lang" envconfig:"WEATHER_LANG"`
	GeocodeSearch bool   `yaml:"geocode_search" envconfig:"WEATHER_GEOCODE_SEARCH"`
}

type LocationConfig struct {
	Mode        string   `yaml:"mode" envconfig:"LOCATION_MODE"`
	Latitude    *float64 `yaml:"latitude" envconfig:"LOCATION_LATITUDE"`
	Longitude   *float64 `yaml:"longitude" envconfig:"LOCATION_LONGITUDE"`
	IPLookupURL string   `yaml:"ip_lookup_url" envconfig:"LOCATION_IP_LOOKUP_URL"`
}

type LogConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" envconfig:"SENTRY_DSN"`
	Debug bool   `yaml:"debug" envconfig:"SENTRY_DEBUG"`
}

// ConfigProvider loads and validates a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// Default returns the configuration used before the YAML file and the environment apply.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-widget",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5",
			GeoURL:  "https://api.openweathermap.org/geo/1.0",
			Units:   "metric",
			Lang:    "fr",
		},
		Location: LocationConfig{
			Mode:        LocationModeIP,
			IPLookupURL: "http://ip-api.com/json/",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// FileConfigProvider layers defaults, an optional YAML file, an optional .env file and
// the process environment, in that order of increasing priority.
type FileConfigProvider struct {
	path     string
	envFiles []string
}

func NewFileConfigProvider(path string, envFiles ...string) *FileConfigProvider {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	return &FileConfigProvider{path: path, envFiles: envFiles}
}

func NewConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return NewConfigWithProvider(NewFileConfigProvider(path))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cfg, err := provider.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := provider.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cfg := Default()

	if err := p.loadFromFile(cfg); err != nil {
		return nil, err
	}

	// godotenv never overrides variables that are already set.
	for _, f := range p.envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cfg, nil
}

func (p *FileConfigProvider) loadFromFile(cfg *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML config %s: %w", p.path, err)
	}
	return nil
}

func (p *FileConfigProvider) Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.App.Name) == "" {
		errs = append(errs, errors.New("app.name is required"))
	}
	if cfg.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if strings.TrimSpace(cfg.Weather.APIKey) == "" {
		errs = append(errs, errors.New("weather.api_key is required"))
	}
	if cfg.Weather.BaseURL == "" {
		errs = append(errs, errors.New("weather.base_url is required"))
	}
	// Temperatures are displayed in °C.
	if cfg.Weather.Units != "metric" {
		errs = append(errs, fmt.Errorf("weather.units %q is not supported, only metric", cfg.Weather.Units))
	}
	if cfg.Weather.GeocodeSearch && cfg.Weather.GeoURL == "" {
		errs = append(errs, errors.New("weather.geo_url is required when geocode_search is enabled"))
	}

	switch cfg.Location.Mode {
	case LocationModeNone:
	case LocationModeIP:
		if cfg.Location.IPLookupURL == "" {
			errs = append(errs, errors.New("location.ip_lookup_url is required in ip mode"))
		}
	case LocationModeStatic:
		if cfg.Location.Latitude == nil || cfg.Location.Longitude == nil {
			errs = append(errs, errors.New("location.latitude and location.longitude are required in static mode"))
		} else if !inRange(*cfg.Location.Latitude, 90) || !inRange(*cfg.Location.Longitude, 180) {
			errs = append(errs, errors.New("location coordinates are out of range"))
		}
	default:
		errs = append(errs, fmt.Errorf("location.mode %q is not supported", cfg.Location.Mode))
	}

	if _, err := cfg.TimeLocation(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func inRange(v, limit float64) bool {
	return !math.IsNaN(v) && v >= -limit && v <= limit
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func (c *Config) TimeLocation() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("app.timezone %q: %w", c.App.Timezone, err)
	}
	return loc, nil
}

func (s ServerConfig) Timeouts() (read, write, idle time.Duration) {
	return time.Duration(s.ReadTimeout) * time.Second,
		time.Duration(s.WriteTimeout) * time.Second,
		time.Duration(s.IdleTimeout) * time.Second
}
