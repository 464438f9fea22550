package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"jobpilot-backend/internal/shared/util"
)

// DirStore implements Store on a real directory.
type DirStore struct {
	baseDir string
}

// NewDirStore acquires the workspace directory, creating it if needed.
// A directory that cannot be created or written yields ErrSecurityRestricted.
func NewDirStore(baseDir string) (*DirStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSecurityRestricted, baseDir)
	}
	probe, err := os.CreateTemp(baseDir, ".probe-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSecurityRestricted, baseDir)
	}
	probe.Close()
	_ = os.Remove(probe.Name())
	return &DirStore{baseDir: baseDir}, nil
}

// Write creates or truncates the named file and writes content.
func (s *DirStore) Write(ctx context.Context, name, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sanitized, err := util.SanitizeFileName(name)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.baseDir, sanitized)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Read returns the decoded text of the named file.
func (s *DirStore) Read(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sanitized, err := util.SanitizeFileName(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, sanitized))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", err
	}
	return string(data), nil
}
