package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Discord struct {
		BotToken string `yaml:"bot_token"`
	} `yaml:"discord"`
	Data struct {
		StateFile  string `yaml:"state_file"`
		BackupDir  string `yaml:"backup_dir"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"data"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	RunSummaryOnStart bool `yaml:"run_summary_on_start"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DISCORD_BOT_TOKEN"); v != "" {
		cfg.Discord.BotToken = v
	}
	if v := os.Getenv("DATA_FILE"); v != "" {
		cfg.Data.StateFile = v
	}
	if v := os.Getenv("BACKUP_DIR"); v != "" {
		cfg.Data.BackupDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Data.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if os.Getenv("RUN_SUMMARY_ON_START") == "true" {
		cfg.RunSummaryOnStart = true
	}

	// Defaults
	if cfg.Data.StateFile == "" {
		cfg.Data.StateFile = "fishing_data.json"
	}
	if cfg.Data.BackupDir == "" {
		cfg.Data.BackupDir = "backups"
	}
	if cfg.Schedule.DailyCron == "" {
		// 14:30 UTC, once per day
		cfg.Schedule.DailyCron = "0 30 14 * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Discord.BotToken == "" {
		return fmt.Errorf("discord.bot_token is required")
	}
	return nil
}
