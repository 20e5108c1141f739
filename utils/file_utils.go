// utils/file_utils.go
package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Maximum file size (10MB)
	maxFileSize = 10 * 1024 * 1024
)

// Default extensions accepted for citizen document uploads when the
// service descriptor does not narrow them down
var defaultDocumentExts = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// cleanFilename strips path components and any character that has no
// business in a stored filename
func cleanFilename(filename string) string {
	filename = filepath.Base(filename)
	return filenameSanitizer.ReplaceAllString(filename, "")
}

// StoredFilename builds the collision-resistant name a file is saved
// under: unix-millis prefix plus the cleaned original name.
func StoredFilename(originalName string) string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), cleanFilename(originalName))
}

// ValidateDocumentType checks the extension against the accepted list,
// falling back to the portal-wide default set.
func ValidateDocumentType(filename string, acceptedFormats []string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return fmt.Errorf("file %q has no extension", filepath.Base(filename))
	}

	if len(acceptedFormats) == 0 {
		if !defaultDocumentExts[ext] {
			return fmt.Errorf("unsupported file format %s. Allowed formats: pdf, jpg, jpeg, png", ext)
		}
		return nil
	}

	for _, allowed := range acceptedFormats {
		if strings.EqualFold(strings.TrimSpace(allowed), ext) {
			return nil
		}
	}
	return fmt.Errorf("unsupported file format %s. Allowed formats: %s", ext, strings.Join(acceptedFormats, ", "))
}

// InitializeStorage creates the uploads directory
func InitializeStorage() error {
	if err := os.MkdirAll(uploadBaseDir, 0755); err != nil {
		return fmt.Errorf("failed to create uploads directory: %v", err)
	}
	return nil
}

// SaveUploadedFile writes one multipart file to the uploads directory
// under a server-generated name and returns that stored filename. The
// maxSizeMB cap comes from the service's document descriptor; zero
// means the portal-wide limit.
func SaveUploadedFile(file *multipart.FileHeader, maxSizeMB int) (string, error) {
	limit := int64(maxFileSize)
	if maxSizeMB > 0 {
		limit = int64(maxSizeMB) * 1024 * 1024
	}
	if file.Size > limit {
		return "", fmt.Errorf("file too large. Maximum size is %d bytes", limit)
	}

	if err := InitializeStorage(); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer src.Close()

	filename := StoredFilename(file.Filename)
	fullPath := filepath.Join(uploadBaseDir, filename)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %v", fullPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file %s: %v", fullPath, err)
	}

	return filename, nil
}

// StoredFilePath returns the on-disk path of a stored filename
func StoredFilePath(filename string) string {
	return filepath.Join(uploadBaseDir, filepath.Base(filename))
}
