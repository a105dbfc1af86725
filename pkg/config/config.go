package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the follow-the-sun sky agent
type Config struct {
	// MQTT configuration
	MQTTBroker   string `yaml:"mqtt_broker"`
	MQTTPort     int    `yaml:"mqtt_port"`
	MQTTUser     string `yaml:"mqtt_user"`
	MQTTPassword string `yaml:"mqtt_password"`
	MQTTClientID string `yaml:"mqtt_client_id"`

	// Redis configuration
	RedisHost     string `yaml:"redis_host"`
	RedisPort     int    `yaml:"redis_port"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// Service configuration
	ServiceName string `yaml:"service_name"`
	HealthPort  int    `yaml:"health_port"`
	LogLevel    string `yaml:"log_level"`

	// Observer location for the sun-events schedule
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`

	// Sky agent configuration
	TickIntervalSec        int     `yaml:"tick_interval_sec"`
	ScheduleRefreshSec     int     `yaml:"schedule_refresh_sec"`
	StateTTLSec            int     `yaml:"state_ttl_sec"`
	ContrastSmoothingAlpha float64 `yaml:"contrast_smoothing_alpha"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		MQTTBroker:    "localhost",
		MQTTPort:      1883,
		MQTTUser:      "",
		MQTTPassword:  "",
		MQTTClientID:  "",
		RedisHost:     "localhost",
		RedisPort:     6379,
		RedisPassword: "",
		RedisDB:       0,
		ServiceName:   "sky-agent",
		HealthPort:    8080,
		LogLevel:      "info",
		// Observer defaults (Bucharest coordinates)
		Latitude:  44.4268,
		Longitude: 26.1025,
		// Sky agent defaults
		TickIntervalSec:        1,
		ScheduleRefreshSec:     60,
		StateTTLSec:            300,
		ContrastSmoothingAlpha: 0.25,
	}
}

// LoadFromFile loads configuration from an optional YAML file.
// A missing file is not an error; env and flags still apply on top.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables with FTS_ prefix
func (c *Config) LoadFromEnv() {
	// MQTT configuration
	if v := os.Getenv("FTS_MQTT_BROKER"); v != "" {
		c.MQTTBroker = v
	}
	if v := os.Getenv("FTS_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.MQTTPort = port
		}
	}
	if v := os.Getenv("FTS_MQTT_USER"); v != "" {
		c.MQTTUser = v
	}
	if v := os.Getenv("FTS_MQTT_PASSWORD"); v != "" {
		c.MQTTPassword = v
	}
	if v := os.Getenv("FTS_MQTT_CLIENT_ID"); v != "" {
		c.MQTTClientID = v
	}

	// Redis configuration
	if v := os.Getenv("FTS_REDIS_HOST"); v != "" {
		c.RedisHost = v
	}
	if v := os.Getenv("FTS_REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.RedisPort = port
		}
	}
	if v := os.Getenv("FTS_REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("FTS_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.RedisDB = db
		}
	}

	// Service configuration
	if v := os.Getenv("FTS_SERVICE_NAME"); v != "" {
		c.ServiceName = v
	}
	if v := os.Getenv("FTS_HEALTH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.HealthPort = port
		}
	}
	if v := os.Getenv("FTS_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	// Observer location
	if v := os.Getenv("FTS_LATITUDE"); v != "" {
		if lat, err := strconv.ParseFloat(v, 64); err == nil {
			c.Latitude = lat
		}
	}
	if v := os.Getenv("FTS_LONGITUDE"); v != "" {
		if lon, err := strconv.ParseFloat(v, 64); err == nil {
			c.Longitude = lon
		}
	}

	// Sky agent configuration
	if v := os.Getenv("FTS_TICK_INTERVAL_SEC"); v != "" {
		if interval, err := strconv.Atoi(v); err == nil {
			c.TickIntervalSec = interval
		}
	}
	if v := os.Getenv("FTS_SCHEDULE_REFRESH_SEC"); v != "" {
		if interval, err := strconv.Atoi(v); err == nil {
			c.ScheduleRefreshSec = interval
		}
	}
	if v := os.Getenv("FTS_STATE_TTL_SEC"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			c.StateTTLSec = ttl
		}
	}
	if v := os.Getenv("FTS_CONTRAST_SMOOTHING_ALPHA"); v != "" {
		if alpha, err := strconv.ParseFloat(v, 64); err == nil {
			c.ContrastSmoothingAlpha = alpha
		}
	}
}

// LoadFromFlags parses command-line flags and overrides config values
func (c *Config) LoadFromFlags() {
	// MQTT flags
	pflag.StringVar(&c.MQTTBroker, "mqtt-broker", c.MQTTBroker, "MQTT broker hostname")
	pflag.IntVar(&c.MQTTPort, "mqtt-port", c.MQTTPort, "MQTT broker port")
	pflag.StringVar(&c.MQTTUser, "mqtt-user", c.MQTTUser, "MQTT username")
	pflag.StringVar(&c.MQTTPassword, "mqtt-password", c.MQTTPassword, "MQTT password")
	pflag.StringVar(&c.MQTTClientID, "mqtt-client-id", c.MQTTClientID, "MQTT client ID")

	// Redis flags
	pflag.StringVar(&c.RedisHost, "redis-host", c.RedisHost, "Redis hostname")
	pflag.IntVar(&c.RedisPort, "redis-port", c.RedisPort, "Redis port")
	pflag.StringVar(&c.RedisPassword, "redis-password", c.RedisPassword, "Redis password")
	pflag.IntVar(&c.RedisDB, "redis-db", c.RedisDB, "Redis database number")

	// Service flags
	pflag.StringVar(&c.ServiceName, "service-name", c.ServiceName, "Service name")
	pflag.IntVar(&c.HealthPort, "health-port", c.HealthPort, "Health check HTTP port")
	pflag.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")

	// Observer location flags
	pflag.Float64Var(&c.Latitude, "latitude", c.Latitude, "Geographic latitude for the sun-events schedule")
	pflag.Float64Var(&c.Longitude, "longitude", c.Longitude, "Geographic longitude for the sun-events schedule")

	// Sky agent flags
	pflag.IntVar(&c.TickIntervalSec, "tick-interval", c.TickIntervalSec, "Appearance evaluation interval in seconds")
	pflag.IntVar(&c.ScheduleRefreshSec, "schedule-refresh", c.ScheduleRefreshSec, "Schedule refresh interval in seconds")
	pflag.IntVar(&c.StateTTLSec, "state-ttl", c.StateTTLSec, "TTL for the cached sky state in seconds")
	pflag.Float64Var(&c.ContrastSmoothingAlpha, "contrast-smoothing-alpha", c.ContrastSmoothingAlpha, "Exponential smoothing factor for text lightness (0-1]")

	pflag.Parse()
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT broker is required")
	}
	if c.MQTTPort <= 0 || c.MQTTPort > 65535 {
		return fmt.Errorf("MQTT port must be between 1 and 65535")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("Redis host is required")
	}
	if c.RedisPort <= 0 || c.RedisPort > 65535 {
		return fmt.Errorf("Redis port must be between 1 and 65535")
	}
	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("Health port must be between 1 and 65535")
	}
	if c.ServiceName == "" {
		return fmt.Errorf("Service name is required")
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	if c.TickIntervalSec <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}
	if c.ScheduleRefreshSec <= 0 {
		return fmt.Errorf("schedule refresh interval must be positive")
	}
	if c.ContrastSmoothingAlpha <= 0 || c.ContrastSmoothingAlpha > 1 {
		return fmt.Errorf("contrast smoothing alpha must be in (0, 1]")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// MQTTAddress returns the full MQTT broker address
func (c *Config) MQTTAddress() string {
	return fmt.Sprintf("tcp://%s:%d", c.MQTTBroker, c.MQTTPort)
}

// RedisAddress returns the full Redis address
func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}
