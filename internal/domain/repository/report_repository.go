package repository

import (
	"context"

	"civic/internal/domain/entity"
	"civic/internal/errors"
)

// ErrReportNotFound is returned when a report does not exist.
var ErrReportNotFound = errors.New("report not found")

// ReportRepository defines the persistence operations for citizen reports.
type ReportRepository interface {
	// Create persists a report and fills in its ID and CreatedAt.
	Create(ctx context.Context, report *entity.Report) error

	// FindByID retrieves a single report.
	FindByID(ctx context.Context, id int64) (*entity.Report, error)

	// ListByAccount returns the reports filed by an account, newest first.
	ListByAccount(ctx context.Context, accountID int64, limit int) ([]*entity.Report, error)
}
