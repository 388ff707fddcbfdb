package impl

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"math"
	"mime"
	"net/http"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"civic/config"
	deliverycontext "civic/internal/delivery/context"
	"civic/internal/domain/entity"
	domainerrors "civic/internal/domain/errors"
	"civic/internal/domain/repository"
	"civic/internal/domain/service"
	"civic/internal/errors"
	"civic/internal/usecase"
	"civic/internal/util"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.uber.org/fx"
)

const (
	defaultMaxAttachmentBytes = 10 << 20
	reportListLimit           = 100
	sniffLen                  = 512
)

var defaultAllowedContentTypes = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}

// reportService implements the ReportUsecase interface.
type reportService struct {
	reportRepo   repository.ReportRepository
	storage      service.AttachmentStorage
	maxBytes     int64
	allowedTypes []string
	logger       *slog.Logger
}

// ReportServiceParams holds dependencies for ReportService, injected by Fx.
type ReportServiceParams struct {
	fx.In

	ReportRepo repository.ReportRepository
	Storage    service.AttachmentStorage
	Config     *config.Config
	Logger     *slog.Logger
}

// NewReportService is the constructor for reportService.
func NewReportService(params ReportServiceParams) usecase.ReportUsecase {
	maxBytes := int64(defaultMaxAttachmentBytes)
	allowed := defaultAllowedContentTypes
	if cfg := params.Config.Storage; cfg != nil {
		if cfg.MaxAttachmentBytes > 0 {
			maxBytes = cfg.MaxAttachmentBytes
		}
		if len(cfg.AllowedContentTypes) > 0 {
			allowed = cfg.AllowedContentTypes
		}
	}

	return &reportService{
		reportRepo:   params.ReportRepo,
		storage:      params.Storage,
		maxBytes:     maxBytes,
		allowedTypes: allowed,
		logger:       params.Logger,
	}
}

func (srv *reportService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateReport stores the optional attachment and persists the report. The attachment
// is removed again when the report cannot be saved.
func (srv *reportService) CreateReport(ctx context.Context, input usecase.CreateReportInput) (*entity.Report, error) {
	location, err := newLocation(input.Latitude, input.Longitude)
	if err != nil {
		return nil, err
	}

	report := &entity.Report{
		AccountID:   input.AccountID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    strings.ToLower(strings.TrimSpace(input.Category)),
		Location:    location,
		Status:      entity.ReportStatusOpen,
	}

	if input.Attachment != nil {
		key, err := srv.storeAttachment(ctx, input.AccountID, input.Attachment)
		if err != nil {
			return nil, err
		}
		report.AttachmentKey = key
	}

	if err := srv.reportRepo.Create(ctx, report); err != nil {
		if report.AttachmentKey != "" {
			if delErr := srv.storage.Delete(ctx, report.AttachmentKey); delErr != nil {
				srv.log(ctx).Error("Failed to remove orphaned attachment",
					slog.String("key", report.AttachmentKey),
					slog.Any("error", delErr),
				)
			}
		}

		return nil, errors.WithMessage(err, "failed to create report")
	}

	srv.log(ctx).Info("Report created",
		slog.Int64("reportID", report.ID),
		slog.Int64("accountID", report.AccountID),
		slog.Bool("attachment", report.AttachmentKey != ""),
	)

	return report, nil
}

// GetReport returns a single report or ErrReportNotFound.
func (srv *reportService) GetReport(ctx context.Context, id int64) (*entity.Report, error) {
	report, err := srv.reportRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrReportNotFound) {
		return nil, domainerrors.ErrReportNotFound
	}
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get report")
	}

	return report, nil
}

// ListAccountReports returns the reports filed by an account, newest first.
func (srv *reportService) ListAccountReports(ctx context.Context, accountID int64) ([]*entity.Report, error) {
	reports, err := srv.reportRepo.ListByAccount(ctx, accountID, reportListLimit)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to list reports")
	}

	return reports, nil
}

func (srv *reportService) storeAttachment(ctx context.Context, accountID int64, attachment *usecase.AttachmentInput) (string, error) {
	if attachment.Size > srv.maxBytes {
		return "", srv.tooLarge()
	}

	content := bufio.NewReaderSize(attachment.Content, sniffLen)
	contentType := mediaType(attachment.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		head, _ := content.Peek(sniffLen)
		contentType = mediaType(http.DetectContentType(head))
	}
	if !slices.Contains(srv.allowedTypes, contentType) {
		return "", domainerrors.ErrAttachmentType.WithDetails(contentType)
	}

	key := attachmentKey(accountID, attachment.Filename, contentType)
	limited := &limitedReader{r: content, remaining: srv.maxBytes}

	if err := srv.storage.Put(ctx, key, contentType, limited); err != nil {
		if limited.exceeded {
			return "", srv.tooLarge()
		}
		srv.log(ctx).Error("Failed to store attachment", slog.String("key", key), slog.Any("error", err))

		return "", errors.Join(domainerrors.ErrAttachmentStoreFailed, err)
	}

	return key, nil
}

func (srv *reportService) tooLarge() error {
	return domainerrors.ErrAttachmentTooLarge.WithDetails("limit " + util.FormatBytes(srv.maxBytes))
}

// newLocation validates WGS84 bounds and returns the point as [lon, lat].
func newLocation(lat, lon float64) (orb.Point, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return orb.Point{}, domainerrors.ErrInvalidLocation
	}

	return orb.Point{lon, lat}, nil
}

// attachmentKey builds reports/<accountID>/<uuid><ext>.
func attachmentKey(accountID int64, filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}

	return "reports/" + strconv.FormatInt(accountID, 10) + "/" + uuid.NewString() + ext
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}

	parsed, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}

	return parsed
}

// limitedReader fails once more than remaining bytes have been read.
type limitedReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		l.exceeded = true

		return 0, domainerrors.ErrAttachmentTooLarge
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}

	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		l.exceeded = true

		return n, domainerrors.ErrAttachmentTooLarge
	}

	return n, err
}
