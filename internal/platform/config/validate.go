package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Database.validate(),
		c.AI.validate(),
		c.Pagination.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (d *DatabaseConfig) validate() error {
	var errs []error

	if d.DSN == "" {
		errs = append(errs, errors.New("database.dsn must not be empty"))
	}
	if d.MaxOpenConns < 1 {
		errs = append(errs, fmt.Errorf("database.max_open_conns must be >= 1, got %d", d.MaxOpenConns))
	}
	if d.MaxIdleConns < 0 {
		errs = append(errs, fmt.Errorf("database.max_idle_conns must be >= 0, got %d", d.MaxIdleConns))
	}

	return errors.Join(errs...)
}

func (a *AIConfig) validate() error {
	var errs []error

	if a.Model == "" {
		errs = append(errs, errors.New("ai.model must not be empty"))
	}
	if err := a.Client.validate("ai.client"); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (p *PaginationConfig) validate() error {
	var errs []error

	if p.DefaultLimit < 1 {
		errs = append(errs, fmt.Errorf("pagination.default_limit must be >= 1, got %d", p.DefaultLimit))
	}
	if p.MaxLimit < p.DefaultLimit {
		errs = append(errs, fmt.Errorf("pagination.max_limit must be >= default_limit, got %d", p.MaxLimit))
	}

	return errors.Join(errs...)
}

func (cl *ClientConfig) validate(prefix string) error {
	var errs []error

	if cl.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%s.base_url must not be empty", prefix))
	}
	if cl.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s.timeout must be positive", prefix))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%s.retry.max_attempts must be >= 1, got %d", prefix, cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("%s.retry.multiplier must be positive, got %f", prefix, cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("%s.circuit_breaker.max_failures must be >= 1, got %d",
			prefix, cl.CircuitBreaker.MaxFailures))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
