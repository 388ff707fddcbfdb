package impl

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"civic/config"
	"civic/internal/domain/entity"
	domainerrors "civic/internal/domain/errors"
	"civic/internal/domain/repository"
	"civic/internal/infra/storage"
	mockRepo "civic/internal/mocks/repository"
	mockSvc "civic/internal/mocks/service"
	"civic/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
)

type reportServiceFixtures struct {
	service    usecase.ReportUsecase
	reportRepo *mockRepo.MockReportRepository
	bucket     *blob.Bucket
}

func createTestReportService(t *testing.T, storageCfg *config.StorageConfig) reportServiceFixtures {
	reportRepo := mockRepo.NewMockReportRepository(t)
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	svc := NewReportService(ReportServiceParams{
		ReportRepo: reportRepo,
		Storage:    storage.NewBlobStorage(bucket),
		Config:     &config.Config{Storage: storageCfg},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return reportServiceFixtures{service: svc, reportRepo: reportRepo, bucket: bucket}
}

func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
}

func listKeys(t *testing.T, bucket *blob.Bucket) []string {
	t.Helper()

	var keys []string
	iter := bucket.List(nil)
	for {
		obj, err := iter.Next(context.Background())
		if errors.Is(err, io.EOF) {
			return keys
		}
		require.NoError(t, err)
		keys = append(keys, obj.Key)
	}
}

func TestReportService_CreateReport_WithAttachment(t *testing.T) {
	fx := createTestReportService(t, nil)
	ctx := context.Background()

	fx.reportRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Report")).
		Run(func(_ context.Context, report *entity.Report) { report.ID = 11 }).
		Return(nil)

	content := pngBytes()
	report, err := fx.service.CreateReport(ctx, usecase.CreateReportInput{
		AccountID: 5,
		Title:     "  Broken streetlight ",
		Category:  "Lighting",
		Latitude:  52.52,
		Longitude: 13.405,
		Attachment: &usecase.AttachmentInput{
			Filename:    "Photo.PNG",
			ContentType: "image/png",
			Size:        int64(len(content)),
			Content:     bytes.NewReader(content),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), report.ID)
	assert.Equal(t, "Broken streetlight", report.Title)
	assert.Equal(t, "lighting", report.Category)
	assert.Equal(t, entity.ReportStatusOpen, report.Status)
	assert.Equal(t, orb.Point{13.405, 52.52}, report.Location)
	assert.True(t, strings.HasPrefix(report.AttachmentKey, "reports/5/"))
	assert.True(t, strings.HasSuffix(report.AttachmentKey, ".png"))
	assert.Equal(t, []string{report.AttachmentKey}, listKeys(t, fx.bucket))
}

func TestReportService_CreateReport_SniffsMissingContentType(t *testing.T) {
	fx := createTestReportService(t, nil)
	ctx := context.Background()

	fx.reportRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)

	report, err := fx.service.CreateReport(ctx, usecase.CreateReportInput{
		AccountID: 5, Title: "Pothole", Latitude: 1, Longitude: 1,
		Attachment: &usecase.AttachmentInput{Filename: "upload", Content: bytes.NewReader(pngBytes())},
	})

	require.NoError(t, err)
	attrs, err := fx.bucket.Attributes(ctx, report.AttachmentKey)
	require.NoError(t, err)
	assert.Equal(t, "image/png", attrs.ContentType)
}

func TestReportService_CreateReport_InvalidLocation(t *testing.T) {
	fx := createTestReportService(t, nil)

	for _, loc := range [][2]float64{{91, 0}, {-90.5, 0}, {0, 180.1}, {0, -181}} {
		_, err := fx.service.CreateReport(context.Background(), usecase.CreateReportInput{
			AccountID: 1, Title: "x", Latitude: loc[0], Longitude: loc[1],
		})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidLocation, "%v", loc)
	}
}

func TestReportService_CreateReport_AttachmentRejected(t *testing.T) {
	fx := createTestReportService(t, &config.StorageConfig{
		MaxAttachmentBytes:  16,
		AllowedContentTypes: []string{"image/png"},
	})
	ctx := context.Background()

	t.Run("declared size too large", func(t *testing.T) {
		_, err := fx.service.CreateReport(ctx, usecase.CreateReportInput{
			AccountID: 1, Title: "x",
			Attachment: &usecase.AttachmentInput{Filename: "a.png", ContentType: "image/png", Size: 17, Content: bytes.NewReader(pngBytes())},
		})
		assert.ErrorIs(t, err, domainerrors.ErrAttachmentTooLarge)

		var appErr domainerrors.AppError
		if assert.ErrorAs(t, err, &appErr) {
			assert.Equal(t, "limit 16 B", appErr.Details())
		}
	})

	t.Run("actual size too large", func(t *testing.T) {
		_, err := fx.service.CreateReport(ctx, usecase.CreateReportInput{
			AccountID: 1, Title: "x",
			Attachment: &usecase.AttachmentInput{Filename: "a.png", ContentType: "image/png", Size: 4, Content: bytes.NewReader(pngBytes())},
		})
		assert.ErrorIs(t, err, domainerrors.ErrAttachmentTooLarge)
	})

	t.Run("content type", func(t *testing.T) {
		_, err := fx.service.CreateReport(ctx, usecase.CreateReportInput{
			AccountID: 1, Title: "x",
			Attachment: &usecase.AttachmentInput{Filename: "a.exe", ContentType: "application/x-msdownload", Size: 4, Content: strings.NewReader("MZ..")},
		})
		assert.ErrorIs(t, err, domainerrors.ErrAttachmentType)
	})

	assert.Empty(t, listKeys(t, fx.bucket))
}

func TestReportService_CreateReport_PersistFailureRemovesAttachment(t *testing.T) {
	fx := createTestReportService(t, nil)
	ctx := context.Background()
	storeErr := domainerrors.NewDatabaseExecuteError(errors.New("insert failed"), "failed to create report")

	fx.reportRepo.EXPECT().Create(ctx, mock.Anything).Return(storeErr)

	_, err := fx.service.CreateReport(ctx, usecase.CreateReportInput{
		AccountID: 5, Title: "Graffiti", Latitude: 10, Longitude: 10,
		Attachment: &usecase.AttachmentInput{Filename: "a.png", ContentType: "image/png", Content: bytes.NewReader(pngBytes())},
	})

	assert.Same(t, storeErr, errors.Cause(err))
	assert.Empty(t, listKeys(t, fx.bucket))
}

func TestReportService_CreateReport_StorageFailure(t *testing.T) {
	reportRepo := mockRepo.NewMockReportRepository(t)
	attachments := mockSvc.NewMockAttachmentStorage(t)
	svc := NewReportService(ReportServiceParams{
		ReportRepo: reportRepo,
		Storage:    attachments,
		Config:     &config.Config{},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	attachments.EXPECT().Put(mock.Anything, mock.Anything, "image/png", mock.Anything).Return(errors.New("bucket unavailable"))

	_, err := svc.CreateReport(context.Background(), usecase.CreateReportInput{
		AccountID: 5, Title: "Graffiti",
		Attachment: &usecase.AttachmentInput{Filename: "a.png", ContentType: "image/png", Content: bytes.NewReader(pngBytes())},
	})

	assert.ErrorIs(t, err, domainerrors.ErrAttachmentStoreFailed)
	reportRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReportService_GetReport(t *testing.T) {
	fx := createTestReportService(t, nil)
	ctx := context.Background()

	fx.reportRepo.EXPECT().FindByID(ctx, int64(3)).Return(&entity.Report{ID: 3}, nil)
	fx.reportRepo.EXPECT().FindByID(ctx, int64(4)).Return(nil, repository.ErrReportNotFound)

	report, err := fx.service.GetReport(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), report.ID)

	_, err = fx.service.GetReport(ctx, 4)
	assert.ErrorIs(t, err, domainerrors.ErrReportNotFound)
}

func TestReportService_ListAccountReports(t *testing.T) {
	fx := createTestReportService(t, nil)
	ctx := context.Background()

	fx.reportRepo.EXPECT().ListByAccount(ctx, int64(5), reportListLimit).Return([]*entity.Report{{ID: 2}, {ID: 1}}, nil)

	reports, err := fx.service.ListAccountReports(ctx, 5)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, int64(2), reports[0].ID)
}
