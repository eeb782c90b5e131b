package services

import (
	"fmt"
	"mime/multipart"

	"github.com/part-asrama/asrama-report-api/utils"
)

// MockImageService is an in-memory ImageService for testing. It records
// saved and removed filenames without touching the filesystem.
type MockImageService struct {
	Saved   []string
	Removed []string

	// FailAfter makes SaveImage fail once this many images were saved.
	// Zero means never fail.
	FailAfter int
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{}
}

// SetAsMockForTesting installs this mock as the active image service
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// SaveImage records the upload and returns a deterministic URL
func (m *MockImageService) SaveImage(fileHeader *multipart.FileHeader, reportID uint) (string, string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", "", err
	}

	if m.FailAfter > 0 && len(m.Saved) >= m.FailAfter {
		return "", "", fmt.Errorf("mock image service: simulated storage failure")
	}

	filename := fmt.Sprintf("mock_%d_%s", reportID, fileHeader.Filename)
	m.Saved = append(m.Saved, filename)
	return utils.GetImageURL(filename), filename, nil
}

// RemoveImage records the removal
func (m *MockImageService) RemoveImage(filename string) error {
	m.Removed = append(m.Removed, filename)
	return nil
}
