package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration. Household settings such as the
// schedule and access code live in the database, not here.
type Config struct {
	Port         int
	DBPath       string
	WorkbookPath string
	BackupDir    string
	Roster       []string
	PollInterval time.Duration
	LogLevel     string
}

// Load reads QUESTBOARD_* variables, from a .env file when one exists.
func Load() (*Config, error) {
	// Real environment variables win over .env.
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:       getEnv("QUESTBOARD_DB_PATH", "questboard.db"),
		WorkbookPath: getEnv("QUESTBOARD_WORKBOOK", "goal_app_data.xlsx"),
		BackupDir:    getEnv("QUESTBOARD_BACKUP_DIR", "backups"),
		LogLevel:     getEnv("QUESTBOARD_LOG_LEVEL", "info"),
	}

	port, err := strconv.Atoi(getEnv("QUESTBOARD_PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid QUESTBOARD_PORT value %q", getEnv("QUESTBOARD_PORT", ""))
	}
	cfg.Port = port

	interval, err := time.ParseDuration(getEnv("QUESTBOARD_POLL_INTERVAL", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUESTBOARD_POLL_INTERVAL value: %w", err)
	}
	if interval <= 0 {
		return nil, errors.New("QUESTBOARD_POLL_INTERVAL must be positive")
	}
	cfg.PollInterval = interval

	cfg.Roster = parseRoster(getEnv("QUESTBOARD_ROSTER", "Jackson,Natalie,Brooke"))
	if len(cfg.Roster) == 0 {
		return nil, errors.New("QUESTBOARD_ROSTER must name at least one participant")
	}

	return cfg, nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func parseRoster(s string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
