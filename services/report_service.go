package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/part-asrama/asrama-report-api/models"
	"gorm.io/gorm"
)

// StatusUpdate carries the fields a staff member may change on a report.
// Only the status is mandatory; everything else is a partial update.
type StatusUpdate struct {
	Status          string
	AssignedTo      *string
	CompletionNotes *string
	RepairCost      *string // raw user input, parsed leniently
}

// ValidStatus reports whether s is a known report status
func ValidStatus(s string) bool {
	switch s {
	case models.StatusPending, models.StatusInProgress, models.StatusCompleted:
		return true
	}
	return false
}

// ParseRepairCost parses a repair cost string as a decimal. Invalid or
// missing input becomes nil rather than an error; the observed product
// behavior is lenient here and callers rely on it.
func ParseRepairCost(raw *string) *float64 {
	if raw == nil || *raw == "" {
		return nil
	}
	cost, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil
	}
	return &cost
}

// ApplyStatusUpdate runs the report workflow transition inside tx: it
// updates the requested fields, applies per-status side effects and emits
// the matching workflow event. actorID is the staff member performing the
// update.
//
// Side effects by target status:
//   - IN_PROGRESS: stores the assignee when given and emits a taken event.
//   - COMPLETED: sets CompletedAt exactly once (repeat completions keep
//     the original timestamp and emit no second event), stores the repair
//     cost and completion notes.
//   - anything else: plain field update, no event.
func ApplyStatusUpdate(tx *gorm.DB, report *models.Report, actorID uint, update StatusUpdate) error {
	if !ValidStatus(update.Status) {
		return fmt.Errorf("unknown status %q", update.Status)
	}

	updates := map[string]interface{}{
		"status": update.Status,
	}

	var event string

	switch update.Status {
	case models.StatusInProgress:
		if update.AssignedTo != nil {
			updates["assigned_to"] = *update.AssignedTo
			report.AssignedTo = update.AssignedTo
		}
		event = EventReportTaken

	case models.StatusCompleted:
		firstCompletion := report.CompletedAt == nil
		if firstCompletion {
			now := time.Now().UTC()
			updates["completed_at"] = now
			report.CompletedAt = &now
			event = EventReportCompleted
		}
		if cost := ParseRepairCost(update.RepairCost); cost != nil {
			updates["repair_cost"] = *cost
			report.RepairCost = cost
		}
		if update.CompletionNotes != nil {
			updates["completion_notes"] = *update.CompletionNotes
			report.CompletionNotes = update.CompletionNotes
		}
	}

	if err := tx.Model(report).Updates(updates).Error; err != nil {
		return err
	}
	report.Status = update.Status

	if event != "" {
		return EmitReportEvent(tx, ReportEvent{Type: event, Report: report, ActorID: actorID})
	}
	return nil
}
