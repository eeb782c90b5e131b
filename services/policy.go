package services

import (
	"github.com/part-asrama/asrama-report-api/models"
)

// CanAccessReport is the single authorization decision for report-scoped
// operations (read single, comment). ADMIN and STAFF may act on any report;
// a resident only on reports they own. Status updates additionally go
// through the staff-only route gate.
func CanAccessReport(role string, subjectID, ownerID uint) bool {
	if role == models.RoleAdmin || role == models.RoleStaff {
		return true
	}
	return subjectID == ownerID
}
