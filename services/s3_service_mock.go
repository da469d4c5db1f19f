package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"
)

// MockFileStorage is a mock implementation of FileStorage for testing
type MockFileStorage struct {
	uploadedFiles map[string][]byte // map of S3 key to file content
	mu            sync.RWMutex
}

// NewMockFileStorage creates a new mock file storage
func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{
		uploadedFiles: make(map[string][]byte),
	}
}

// UploadFile simulates uploading a design file
func (m *MockFileStorage) UploadFile(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("designs/mock_%s", fileHeader.Filename)

	m.mu.Lock()
	m.uploadedFiles[key] = content
	m.mu.Unlock()

	return key, nil
}

// GetPresignedURL simulates generating a presigned URL
func (m *MockFileStorage) GetPresignedURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.uploadedFiles[key]; !ok {
		return "", fmt.Errorf("file not found: %s", key)
	}
	return fmt.Sprintf("https://mock-bucket.s3.amazonaws.com/%s?presigned=true", key), nil
}

// DeleteFile simulates removing a file
func (m *MockFileStorage) DeleteFile(key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.uploadedFiles, key)
	return nil
}

// FileContent returns the stored bytes for a key, for assertions
func (m *MockFileStorage) FileContent(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.uploadedFiles[key]
	return content, ok
}
