package postgres

import (
	"context"

	"civic/internal/domain/repository"
	"civic/internal/errors"

	"gorm.io/gorm"
)

type healthChecker struct {
	db *gorm.DB
}

// NewHealthChecker reports database reachability for the health endpoint.
func NewHealthChecker(db *gorm.DB) repository.HealthChecker {
	return &healthChecker{db: db}
}

func (h *healthChecker) Ping(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}

	return errors.Wrap(sqlDB.PingContext(ctx), "ping postgres")
}
