package usecase

import (
	"context"
	"io"

	"civic/internal/domain/entity"
)

// AttachmentInput is an uploaded file attached to a report.
type AttachmentInput struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// CreateReportInput defines the data required to file a report.
type CreateReportInput struct {
	AccountID   int64
	Title       string
	Description string
	Category    string
	Latitude    float64
	Longitude   float64
	Attachment  *AttachmentInput
}

// ReportUsecase defines the operations on citizen reports.
type ReportUsecase interface {
	CreateReport(ctx context.Context, input CreateReportInput) (*entity.Report, error)
	GetReport(ctx context.Context, id int64) (*entity.Report, error)
	ListAccountReports(ctx context.Context, accountID int64) ([]*entity.Report, error)
}
