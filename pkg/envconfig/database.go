package envconfig

import (
	"strconv"
	"time"

	"github.com/BrandonWrob/ExtendedManager/pkg/database"
)

// applyDatabaseEnv overrides fields of config with the DB_* variables that are set
func applyDatabaseEnv(config database.Config) database.Config {
	if host := GetEnv("DB_HOST", ""); host != "" {
		config.Host = host
	}

	if portStr := GetEnv("DB_PORT", ""); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			config.Port = port
		}
	}

	if user := GetEnv("DB_USER", ""); user != "" {
		config.User = user
	}

	if password := GetEnv("DB_PASSWORD", ""); password != "" {
		config.Password = password
	}

	if dbname := GetEnv("DB_NAME", ""); dbname != "" {
		config.DBName = dbname
	}

	if sslmode := GetEnv("DB_SSL_MODE", ""); sslmode != "" {
		config.SSLMode = sslmode
	}

	// Connection pool settings
	if s := GetEnv("DB_MAX_OPEN_CONNS", ""); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			config.MaxOpenConns = n
		}
	}

	if s := GetEnv("DB_MAX_IDLE_CONNS", ""); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			config.MaxIdleConns = n
		}
	}

	if s := GetEnv("DB_CONN_MAX_LIFETIME", ""); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			config.ConnMaxLifetime = d
		}
	}

	if s := GetEnv("DB_CONN_MAX_IDLE_TIME", ""); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			config.ConnMaxIdleTime = d
		}
	}

	return config
}
