package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Redis      RedisConfig      `yaml:"redis"`
	Booking    BookingConfig    `yaml:"booking"`
	Feedback   FeedbackConfig   `yaml:"feedback"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
	Reminders  RemindersConfig  `yaml:"reminders"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port         int    `yaml:"port"`
	AllowOrigins string `yaml:"allow_origins"`
	BodyLimit    int    `yaml:"body_limit"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver             string `yaml:"driver"`
	DSN                string `yaml:"dsn"`
	UniqueBookingSlots bool   `yaml:"unique_booking_slots"`
	AutoMigrate        bool   `yaml:"auto_migrate"`
}

type AuthConfig struct {
	JWTSecret      string          `yaml:"jwt_secret"`
	TokenTTL       time.Duration   `yaml:"token_ttl"`
	RefreshTTL     time.Duration   `yaml:"refresh_ttl"`
	LoginRateLimit RateLimitConfig `yaml:"login_rate_limit"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type BookingConfig struct {
	Timezone        string `yaml:"timezone"`
	EnforceSlotGrid *bool  `yaml:"enforce_slot_grid"`
}

type FeedbackConfig struct {
	RequireCompleted bool `yaml:"require_completed"`
}

type ScheduleConfig struct {
	HorizonDays int `yaml:"horizon_days"`
}

type SMTPConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type CloudinaryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	CloudName    string `yaml:"cloud_name"`
	APIKey       string `yaml:"api_key"`
	APISecret    string `yaml:"api_secret"`
	UploadPreset string `yaml:"upload_preset"`
	Folder       string `yaml:"folder"`
}

type RemindersConfig struct {
	Enabled bool          `yaml:"enabled"`
	Spec    string        `yaml:"spec"`
	Lead    time.Duration `yaml:"lead"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	MetricsEnabled bool   `yaml:"metrics_enabled"`
	MetricsPath    string `yaml:"metrics_path"`
}

// Load reads the optional .env file and the YAML config at configPath.
// A missing config file is not an error: defaults plus the DATABASE_URL, JWT_SECRET,
// PORT and REDIS_ADDR environment variables are used instead.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	cfg := &Config{}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			expanded := []byte(os.ExpandEnv(string(data)))
			if err := yaml.Unmarshal(expanded, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", configPath, err)
			}
		case errors.Is(err, os.ErrNotExist):
			log.Printf("Warning: config file %s not found, using defaults", configPath)
		default:
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" && c.Database.DSN == "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" && c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" && c.Redis.Address == "" {
		c.Redis.Address = v
		c.Redis.Enabled = true
	}
	if v := os.Getenv("PORT"); v != "" && c.Server.Port == 0 {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "booking-marketplace"
	}
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.AllowOrigins == "" {
		c.Server.AllowOrigins = "*"
	}
	if c.Server.BodyLimit == 0 {
		c.Server.BodyLimit = 8 * 1024 * 1024
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	c.Database.Driver = strings.ToLower(c.Database.Driver)
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Auth.RefreshTTL == 0 {
		c.Auth.RefreshTTL = 7 * 24 * time.Hour
	}
	if c.Auth.LoginRateLimit.RPS == 0 {
		c.Auth.LoginRateLimit.RPS = 1
	}
	if c.Auth.LoginRateLimit.Burst == 0 {
		c.Auth.LoginRateLimit.Burst = 5
	}
	if c.Redis.Address == "" {
		c.Redis.Address = "localhost:6379"
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "UTC"
	}
	if c.Booking.EnforceSlotGrid == nil {
		enforce := true
		c.Booking.EnforceSlotGrid = &enforce
	}
	if c.Schedule.HorizonDays == 0 {
		c.Schedule.HorizonDays = 7
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.From == "" {
		c.SMTP.From = c.SMTP.Username
	}
	if c.Cloudinary.Folder == "" {
		c.Cloudinary.Folder = "providers"
	}
	if c.Reminders.Spec == "" {
		c.Reminders.Spec = "* * * * *"
	}
	if c.Reminders.Lead == 0 {
		c.Reminders.Lead = time.Hour
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Monitoring.MetricsPath == "" {
		c.Monitoring.MetricsPath = "/metrics"
	}
}

func (c *Config) Validate() error {
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required (database.dsn or DATABASE_URL)")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("jwt secret is required (auth.jwt_secret or JWT_SECRET)")
	}
	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("invalid booking timezone %q: %w", c.Booking.Timezone, err)
	}
	if c.Schedule.HorizonDays < 1 {
		return errors.New("schedule.horizon_days must be positive")
	}
	if c.SMTP.Enabled && c.SMTP.Host == "" {
		return errors.New("smtp.host is required when smtp is enabled")
	}
	if c.Cloudinary.Enabled && (c.Cloudinary.CloudName == "" || c.Cloudinary.APIKey == "" || c.Cloudinary.APISecret == "") {
		return errors.New("cloudinary credentials are required when cloudinary is enabled")
	}
	return nil
}

// SlotGridEnforced reports whether bookings must align to the availability slot grid.
func (c BookingConfig) SlotGridEnforced() bool {
	return c.EnforceSlotGrid == nil || *c.EnforceSlotGrid
}
