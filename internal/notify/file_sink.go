package notify

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileSink implements the Sink interface by appending notifications to a file.
type FileSink struct {
	filePath string
}

// NewFileSink creates a new FileSink.
// It ensures the directory for the log file exists.
func NewFileSink(filePath string) (Sink, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, fmt.Errorf("notification log file path cannot be empty")
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for notification log file '%s': %w", dir, err)
	}

	return &FileSink{filePath: filePath}, nil
}

// Notify appends the notification to the configured file.
func (s *FileSink) Notify(ctx context.Context, n Notification) error {
	timestamp := time.Now().Format(time.RFC3339Nano)

	file, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("FileSink: Failed to open log file '%s': %v", s.filePath, err)
		return fmt.Errorf("failed to open notification log file: %w", err)
	}
	defer file.Close()

	entry := fmt.Sprintf("%s [%s] %s: %s\n", timestamp, n.Severity, n.Title, n.Description)
	if _, err := file.WriteString(entry); err != nil {
		log.Printf("FileSink: Failed to write to log file '%s': %v", s.filePath, err)
		return fmt.Errorf("failed to write notification to log file: %w", err)
	}
	return nil
}
