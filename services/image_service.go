package services

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/part-asrama/asrama-report-api/utils"
)

// ImageService handles report photo storage. Photos live on local disk
// under the configured upload directory and are referenced by relative URL.
type ImageService interface {
	// SaveImage validates and stores a photo for a report, returning the
	// URL recorded on the Image row and the stored filename.
	SaveImage(fileHeader *multipart.FileHeader, reportID uint) (url string, filename string, err error)

	// RemoveImage deletes a stored photo. Used to compensate when the
	// surrounding report transaction fails.
	RemoveImage(filename string) error
}

// LocalImageService implements ImageService on the local filesystem
type LocalImageService struct {
	uploadDir string
}

var imageServiceInstance ImageService

// InitImageService initializes the image service with the local disk backend
func InitImageService(uploadDir string) ImageService {
	imageServiceInstance = &LocalImageService{uploadDir: uploadDir}
	return imageServiceInstance
}

// GetImageService returns the initialized image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// SaveImage validates the photo and writes it under the upload directory
func (s *LocalImageService) SaveImage(fileHeader *multipart.FileHeader, reportID uint) (string, string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", "", err
	}

	filename := utils.UploadFilename(reportID, fileHeader.Filename)
	saved, err := utils.SaveUploadedFile(fileHeader, s.uploadDir, filename)
	if err != nil {
		return "", "", err
	}

	return utils.GetImageURL(saved), saved, nil
}

// RemoveImage deletes a stored photo; a missing file is not an error
func (s *LocalImageService) RemoveImage(filename string) error {
	if filename == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.uploadDir, filename))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
