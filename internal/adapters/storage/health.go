package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskfolio/taskfolio/internal/ports"
)

// Compile-time interface check.
var _ ports.HealthChecker = (*HealthChecker)(nil)

// HealthChecker reports database connectivity for the readiness probe.
type HealthChecker struct {
	db *gorm.DB
}

// NewHealthChecker creates a health checker over the given database handle.
func NewHealthChecker(db *gorm.DB) *HealthChecker {
	return &HealthChecker{db: db}
}

// Name identifies the database in health reports.
func (h *HealthChecker) Name() string { return "postgres" }

// HealthCheck pings the database within the context deadline.
func (h *HealthChecker) HealthCheck(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return fmt.Errorf("acquiring database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}
