package entity

import (
	"time"

	"github.com/paulmach/orb"
)

// ReportStatus is the processing state of a citizen report.
type ReportStatus string

const (
	// ReportStatusOpen is the status of every newly filed report.
	ReportStatusOpen ReportStatus = "open"
	// ReportStatusInProgress marks a report picked up by staff.
	ReportStatusInProgress ReportStatus = "in_progress"
	// ReportStatusResolved marks a closed report.
	ReportStatusResolved ReportStatus = "resolved"
)

// Report is an issue filed by a citizen at a geographic location.
type Report struct {
	ID            int64
	AccountID     int64 // The account that filed the report.
	Title         string
	Description   string
	Category      string
	Location      orb.Point // [longitude, latitude] in WGS84.
	AttachmentKey string    // Blob key of the optional attachment, empty if none.
	Status        ReportStatus
	CreatedAt     time.Time
}
