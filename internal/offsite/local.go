package offsite

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	appErrors "wsb/internal/errors"
)

// LocalStorageProvider implements StorageProvider for local file system
// storage. Each archive lives in its own directory under the base path:
// the payload as archive.<ext> and the metadata as metadata.json.
type LocalStorageProvider struct {
	basePath    string
	permissions os.FileMode
}

// NewLocalStorageProvider creates a new LocalStorageProvider instance
func NewLocalStorageProvider(config *LocalConfig) (*LocalStorageProvider, error) {
	if config == nil {
		return nil, appErrors.NewValidationError("local storage configuration is required", nil)
	}

	if err := config.Validate(); err != nil {
		return nil, appErrors.NewValidationError("invalid local storage configuration", err)
	}

	permissions := config.Permissions
	if permissions == 0 {
		permissions = 0o600
	}

	provider := &LocalStorageProvider{
		basePath:    config.BasePath,
		permissions: permissions,
	}

	if err := os.MkdirAll(provider.basePath, 0o755); err != nil {
		return nil, appErrors.NewStorageError("failed to create base directory", err)
	}

	return provider, nil
}

// Store saves an archive to the local file system
func (lsp *LocalStorageProvider) Store(ctx context.Context, archive *Archive) error {
	if archive == nil {
		return appErrors.NewValidationError("archive cannot be nil", nil)
	}
	if err := archive.Metadata.Validate(); err != nil {
		return appErrors.NewValidationError("invalid archive metadata", err)
	}

	archiveDir := lsp.getArchiveDirectory(archive.Metadata.ID)
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return appErrors.NewStorageError("failed to create archive directory", err)
	}

	archivePath := filepath.Join(archiveDir, lsp.archiveFileName(archive.Metadata.Compression))
	archive.Metadata.StorageLocation = archivePath

	if err := os.WriteFile(archivePath, archive.Data, lsp.permissions); err != nil {
		return appErrors.NewStorageError("failed to write archive data", err)
	}

	if err := lsp.saveMetadata(filepath.Join(archiveDir, "metadata.json"), &archive.Metadata); err != nil {
		return err
	}

	return nil
}

// Retrieve loads an archive from the local file system
func (lsp *LocalStorageProvider) Retrieve(ctx context.Context, archiveID string) (*Archive, error) {
	if archiveID == "" {
		return nil, appErrors.NewValidationError("archive ID cannot be empty", nil)
	}

	archiveDir := lsp.getArchiveDirectory(archiveID)
	metadata, err := lsp.loadMetadata(filepath.Join(archiveDir, "metadata.json"))
	if err != nil {
		return nil, appErrors.NewStorageError(fmt.Sprintf("archive %s not found", archiveID), err)
	}

	data, err := os.ReadFile(filepath.Join(archiveDir, lsp.archiveFileName(metadata.Compression)))
	if err != nil {
		return nil, appErrors.NewStorageError("failed to read archive data", err)
	}

	return &Archive{Metadata: *metadata, Data: data}, nil
}

// List returns metadata for all stored archives
func (lsp *LocalStorageProvider) List(ctx context.Context) ([]*ArchiveMetadata, error) {
	var archives []*ArchiveMetadata

	err := filepath.WalkDir(lsp.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() || path == lsp.basePath {
			return nil
		}

		metadataPath := filepath.Join(path, "metadata.json")
		if _, err := os.Stat(metadataPath); os.IsNotExist(err) {
			return nil
		}

		metadata, err := lsp.loadMetadata(metadataPath)
		if err != nil {
			// Skip unreadable entries but keep listing the rest.
			return filepath.SkipDir
		}

		archives = append(archives, metadata)
		return filepath.SkipDir
	})
	if err != nil {
		return nil, appErrors.NewStorageError("failed to list archives", err)
	}

	return archives, nil
}

// Delete removes an archive from the local file system
func (lsp *LocalStorageProvider) Delete(ctx context.Context, archiveID string) error {
	if archiveID == "" {
		return appErrors.NewValidationError("archive ID cannot be empty", nil)
	}

	archiveDir := lsp.getArchiveDirectory(archiveID)

	if _, err := os.Stat(archiveDir); os.IsNotExist(err) {
		return appErrors.NewStorageError(fmt.Sprintf("archive %s not found", archiveID), err)
	}

	if err := os.RemoveAll(archiveDir); err != nil {
		return appErrors.NewStorageError("failed to delete archive directory", err)
	}

	return nil
}

// Close implements StorageProvider. Local storage holds no resources.
func (lsp *LocalStorageProvider) Close() error {
	return nil
}

// GetBasePath returns the base path of the storage
func (lsp *LocalStorageProvider) GetBasePath() string {
	return lsp.basePath
}

func (lsp *LocalStorageProvider) archiveFileName(compression CompressionType) string {
	return "archive." + compression.Extension()
}

// getArchiveDirectory returns the directory path for a specific archive
func (lsp *LocalStorageProvider) getArchiveDirectory(archiveID string) string {
	return filepath.Join(lsp.basePath, sanitizeArchiveID(archiveID))
}

// sanitizeArchiveID removes path separators so an ID can never traverse
// outside the base path.
func sanitizeArchiveID(archiveID string) string {
	sanitized := strings.ReplaceAll(archiveID, "/", "_")
	sanitized = strings.ReplaceAll(sanitized, "\\", "_")
	sanitized = strings.ReplaceAll(sanitized, "..", "_")
	return sanitized
}

func (lsp *LocalStorageProvider) saveMetadata(path string, metadata *ArchiveMetadata) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return appErrors.NewStorageError("failed to serialize archive metadata", err)
	}

	if err := os.WriteFile(path, data, lsp.permissions); err != nil {
		return appErrors.NewStorageError("failed to write archive metadata", err)
	}

	return nil
}

func (lsp *LocalStorageProvider) loadMetadata(path string) (*ArchiveMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var metadata ArchiveMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, appErrors.NewStorageError("failed to parse archive metadata", err)
	}

	return &metadata, nil
}
