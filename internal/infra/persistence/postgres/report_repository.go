package postgres

import (
	"context"

	"civic/internal/domain/entity"
	domainerrors "civic/internal/domain/errors"
	"civic/internal/domain/repository"
	"civic/internal/errors"
	"civic/internal/infra/persistence/model"

	"github.com/paulmach/orb"
	"gorm.io/gorm"
)

const defaultReportListLimit = 100

// reportRepository implements the repository.ReportRepository interface using GORM.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository is the constructor for reportRepository.
func NewReportRepository(db *gorm.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

// Create persists a report and fills in its ID and CreatedAt.
func (repo *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	reportM := fromReportDomain(report)

	if err := repo.db.WithContext(ctx).Create(reportM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "report references an unknown account")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create report")
	}

	report.ID = reportM.ID
	report.CreatedAt = reportM.CreatedAt

	return nil
}

// FindByID retrieves a single report.
func (repo *reportRepository) FindByID(ctx context.Context, id int64) (*entity.Report, error) {
	var reportM model.ReportModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&reportM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReportNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find report")
	}

	return toReportDomain(&reportM), nil
}

// ListByAccount returns the reports filed by an account, newest first.
func (repo *reportRepository) ListByAccount(ctx context.Context, accountID int64, limit int) ([]*entity.Report, error) {
	if limit <= 0 {
		limit = defaultReportListLimit
	}

	var reportsM []*model.ReportModel
	err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&reportsM).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list reports")
	}

	reports := make([]*entity.Report, 0, len(reportsM))
	for _, reportM := range reportsM {
		reports = append(reports, toReportDomain(reportM))
	}

	return reports, nil
}

func toReportDomain(data *model.ReportModel) *entity.Report {
	if data == nil {
		return nil
	}

	return &entity.Report{
		ID:            data.ID,
		AccountID:     data.AccountID,
		Title:         data.Title,
		Description:   data.Description,
		Category:      data.Category,
		Location:      orb.Point{data.Longitude, data.Latitude},
		AttachmentKey: data.AttachmentKey,
		Status:        entity.ReportStatus(data.Status),
		CreatedAt:     data.CreatedAt,
	}
}

func fromReportDomain(data *entity.Report) *model.ReportModel {
	if data == nil {
		return nil
	}

	status := data.Status
	if status == "" {
		status = entity.ReportStatusOpen
	}

	return &model.ReportModel{
		ID:            data.ID,
		AccountID:     data.AccountID,
		Title:         data.Title,
		Description:   data.Description,
		Category:      data.Category,
		Latitude:      data.Location.Lat(),
		Longitude:     data.Location.Lon(),
		AttachmentKey: data.AttachmentKey,
		Status:        string(status),
	}
}
