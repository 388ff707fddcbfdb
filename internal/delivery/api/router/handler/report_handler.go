package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"civic/internal/delivery/api/middleware"
	"civic/internal/delivery/api/response"
	"civic/internal/domain/entity"
	domainerrors "civic/internal/domain/errors"
	"civic/internal/errors"
	"civic/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/fx"
)

// attachmentField is the multipart field carrying the optional report file.
const attachmentField = "attachment"

// ReportHandlerParams holds dependencies for ReportHandler, injected by Fx.
type ReportHandlerParams struct {
	fx.In

	ReportUC usecase.ReportUsecase
	Logger   *slog.Logger
}

// ReportHandler serves citizen reports to authenticated accounts.
type ReportHandler struct {
	reportUC usecase.ReportUsecase
	logger   *slog.Logger
}

// NewReportHandler is the constructor for ReportHandler.
func NewReportHandler(params ReportHandlerParams) *ReportHandler {
	return &ReportHandler{
		reportUC: params.ReportUC,
		logger:   params.Logger,
	}
}

// CreateReportRequest holds the form fields of a new report.
type CreateReportRequest struct {
	Title       string  `form:"title" validate:"required,max=200"`
	Description string  `form:"description" validate:"max=5000"`
	Category    string  `form:"category" validate:"required,max=64"`
	Latitude    float64 `form:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `form:"longitude" validate:"gte=-180,lte=180"`
}

// ReportResponse is the public shape of a report. Location is a GeoJSON Point.
type ReportResponse struct {
	ID            int64               `json:"id"`
	AccountID     int64               `json:"accountId"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Category      string              `json:"category"`
	Location      *geojson.Geometry   `json:"location"`
	AttachmentKey string              `json:"attachmentKey,omitempty"`
	Status        entity.ReportStatus `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
}

func toReportResponse(r *entity.Report) *ReportResponse {
	return &ReportResponse{
		ID:            r.ID,
		AccountID:     r.AccountID,
		Title:         r.Title,
		Description:   r.Description,
		Category:      r.Category,
		Location:      geojson.NewGeometry(r.Location),
		AttachmentKey: r.AttachmentKey,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
}

// CreateReport handles a multipart report submission with an optional attachment.
func (h *ReportHandler) CreateReport(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var req CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid report input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, domainerrors.ErrValidationFailed.ErrorCode(), err.Error())
	}

	input := usecase.CreateReportInput{
		AccountID:   claims.AccountID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	fileHeader, err := c.FormFile(attachmentField)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		return response.BindingError(c, "INVALID_INPUT", "Invalid attachment")
	default:
		file, err := fileHeader.Open()
		if err != nil {
			return errors.Wrap(err, "open attachment")
		}
		defer file.Close()

		input.Attachment = &usecase.AttachmentInput{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get(echo.HeaderContentType),
			Size:        fileHeader.Size,
			Content:     file,
		}
	}

	report, err := h.reportUC.CreateReport(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toReportResponse(report))
}

// GetReport returns one report by id.
func (h *ReportHandler) GetReport(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return response.BadRequest(c, "INVALID_ID", "Invalid report ID")
	}

	report, err := h.reportUC.GetReport(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toReportResponse(report))
}

// ListReports returns the caller's reports, newest first.
func (h *ReportHandler) ListReports(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	reports, err := h.reportUC.ListAccountReports(c.Request().Context(), claims.AccountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]*ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, toReportResponse(r))
	}

	return response.Success(c, http.StatusOK, out)
}
