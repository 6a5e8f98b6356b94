package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errors []string

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		errors = append(errors, ValidationError{Field: "SERVER_PORT", Message: "must be numeric"}.Error())
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			errors = append(errors, ValidationError{Field: "DB_HOST", Message: "is required"}.Error())
		}
		if cfg.DBName == "" {
			errors = append(errors, ValidationError{Field: "DB_NAME", Message: "is required"}.Error())
		}
		// Local stacks may run postgres with trust auth; deployed ones may not
		if cfg.DBPassword == "" && (env == Production || env == CI) {
			errors = append(errors, ValidationError{Field: "DB_PASSWORD", Message: "is required in " + string(env)}.Error())
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			errors = append(errors, ValidationError{Field: "SQLITE_PATH", Message: "is required"}.Error())
		}
		if env == Production {
			errors = append(errors, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not supported in production"}.Error())
		}
	default:
		errors = append(errors, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}.Error())
	}

	if _, err := cfg.Location(); err != nil {
		errors = append(errors, ValidationError{Field: "APP_TIMEZONE", Message: err.Error()}.Error())
	}

	if cfg.RateLimitPerMinute <= 0 {
		errors = append(errors, ValidationError{Field: "RATE_LIMIT_PER_MINUTE", Message: "must be positive"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
