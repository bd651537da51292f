package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
	Repository RepositoryConfig `yaml:"repository"`
	Worker     WorkerConfig     `yaml:"worker"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Host string `yaml:"host"`
}

type DatabaseConfig struct {
	URL            string        `yaml:"url"`
	MaxConnections int           `yaml:"max_connections"`
	MinConnections int           `yaml:"min_connections"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

type RepositoryConfig struct {
	Type string `yaml:"type"` // "postgres" or "inmemory"
}

type WorkerConfig struct {
	ReminderInterval time.Duration `yaml:"reminder_interval"`
	ElapsedInterval  time.Duration `yaml:"elapsed_interval"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.yml"
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Repository.Type == "" {
		cfg.Repository.Type = "inmemory"
	}
	if cfg.Worker.ReminderInterval <= 0 {
		cfg.Worker.ReminderInterval = 30 * time.Second
	}
	if cfg.Worker.ElapsedInterval <= 0 {
		cfg.Worker.ElapsedInterval = time.Second
	}
	return &cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
