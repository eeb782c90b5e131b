package services

import (
	"github.com/part-asrama/asrama-report-api/models"
	"gorm.io/gorm"
)

// Report lifecycle events emitted by the workflow. The comment thread is
// one subscriber; the workflow itself knows nothing about comments.
const (
	EventReportReceived  = "report.received"
	EventReportTaken     = "report.taken"
	EventReportCompleted = "report.completed"
)

// ReportEvent describes a workflow transition on a report
type ReportEvent struct {
	Type    string
	Report  *models.Report
	ActorID uint // the user the synthetic comment is attributed to
}

// ReportListener handles a report event inside the emitting transaction
type ReportListener func(tx *gorm.DB, event ReportEvent) error

var reportListeners = []ReportListener{appendSystemComment}

// RegisterReportListener adds a subscriber for report events
func RegisterReportListener(l ReportListener) {
	reportListeners = append(reportListeners, l)
}

// ResetReportListeners restores the default subscribers (for testing)
func ResetReportListeners() {
	reportListeners = []ReportListener{appendSystemComment}
}

// EmitReportEvent notifies all subscribers of a report event
func EmitReportEvent(tx *gorm.DB, event ReportEvent) error {
	for _, l := range reportListeners {
		if err := l(tx, event); err != nil {
			return err
		}
	}
	return nil
}

// appendSystemComment translates workflow events into the synthetic
// system messages shown on the report's discussion thread.
func appendSystemComment(tx *gorm.DB, event ReportEvent) error {
	var message string
	switch event.Type {
	case EventReportReceived:
		message = "Laporan Anda telah diterima dan sedang menunggu untuk ditinjau oleh tim PART."
	case EventReportTaken:
		message = "Laporan Anda sedang ditangani oleh tim PART."
	case EventReportCompleted:
		message = "Perbaikan telah selesai. Terima kasih atas laporan Anda."
	default:
		return nil
	}

	comment := models.Comment{
		Message:  message,
		ReportID: event.Report.ID,
		UserID:   event.ActorID,
	}
	return tx.Create(&comment).Error
}
