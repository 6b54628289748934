package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Calendar CalendarConfig `yaml:"calendar"`
	Job      JobConfig      `yaml:"job"`
	Mail     MailConfig     `yaml:"mail"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// CalendarConfig identifies the team attendance calendar.
type CalendarConfig struct {
	ID              string `yaml:"id"`
	Timezone        string `yaml:"timezone"`
	CredentialsFile string `yaml:"credentials_file"`
	// SearchDaysForward bounds the diff window into the future.
	SearchDaysForward int `yaml:"search_days_forward"`
	// SearchDaysBack is the default lookback when no last-run time is stored.
	SearchDaysBack int `yaml:"search_days_back"`
}

// JobConfig controls the periodic diff-and-report job.
type JobConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"` // cron expression, evaluated in the calendar timezone
}

// MailConfig holds the SMTP transport and digest addressing.
type MailConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	From          string `yaml:"from"`
	FromName      string `yaml:"from_name"`
	To            string `yaml:"to"`       // digest distribution list
	AdminTo       string `yaml:"admin_to"` // operator error notifications
	SubjectPrefix string `yaml:"subject_prefix"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// Load reads the configuration from the given path and fills in defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero values with their defaults.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Calendar.Timezone == "" {
		cfg.Calendar.Timezone = "Asia/Tokyo"
	}
	if cfg.Calendar.SearchDaysForward <= 0 {
		cfg.Calendar.SearchDaysForward = 30
	}
	if cfg.Calendar.SearchDaysBack <= 0 {
		cfg.Calendar.SearchDaysBack = 1
	}

	if cfg.Job.Schedule == "" {
		// Morning and evening report runs.
		cfg.Job.Schedule = "0 9,17 * * *"
	}

	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 587
	}
	if cfg.Mail.SubjectPrefix == "" {
		cfg.Mail.SubjectPrefix = "【勤怠連絡】"
	}
}
