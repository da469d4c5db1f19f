package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize is 25MB in bytes; sliced print files can get large
	MaxFileSize = 25 * 1024 * 1024
)

// AllowedDesignFormats are the file extensions a print job may attach
var AllowedDesignFormats = map[string]bool{
	".stl": true,
	".3mf": true,
	".obj": true,
	".pdf": true,
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateDesignFile validates the uploaded file format and size
func ValidateDesignFile(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !AllowedDesignFormats[ext] {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only STL, 3MF, OBJ and PDF files are allowed",
		}
	}

	return nil
}
