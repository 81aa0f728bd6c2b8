package offsite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	appErrors "wsb/internal/errors"
)

// GCSStorageProvider implements StorageProvider for Google Cloud Storage
type GCSStorageProvider struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSStorageProvider creates a new GCSStorageProvider instance
func NewGCSStorageProvider(ctx context.Context, config *GCSConfig) (*GCSStorageProvider, error) {
	if config == nil {
		return nil, appErrors.NewValidationError("GCS storage configuration is required", nil)
	}

	if err := config.Validate(); err != nil {
		return nil, appErrors.NewValidationError("invalid GCS storage configuration", err)
	}

	var client *storage.Client
	var err error

	if config.CredentialsPath != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(config.CredentialsPath))
	} else {
		// Default credentials from the environment or metadata server.
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, appErrors.NewStorageError("failed to create GCS client", err)
	}

	provider := &GCSStorageProvider{
		client: client,
		bucket: config.Bucket,
		prefix: "archives/",
	}

	return provider, nil
}

// Store saves an archive to Google Cloud Storage
func (gcsp *GCSStorageProvider) Store(ctx context.Context, archive *Archive) error {
	if archive == nil {
		return appErrors.NewValidationError("archive cannot be nil", nil)
	}
	if err := archive.Metadata.Validate(); err != nil {
		return appErrors.NewValidationError("invalid archive metadata", err)
	}

	objectName := gcsp.getArchiveObjectName(archive.Metadata.ID)
	archiveObjectName := objectName + "/archive." + archive.Metadata.Compression.Extension()
	archive.Metadata.StorageLocation = fmt.Sprintf("gs://%s/%s", gcsp.bucket, archiveObjectName)

	bucket := gcsp.client.Bucket(gcsp.bucket)

	archiveWriter := bucket.Object(archiveObjectName).NewWriter(ctx)
	archiveWriter.ContentType = "application/octet-stream"
	archiveWriter.Metadata = map[string]string{
		"archive-id":  archive.Metadata.ID,
		"compression": string(archive.Metadata.Compression),
		"checksum":    archive.Metadata.Checksum,
	}
	if _, err := archiveWriter.Write(archive.Data); err != nil {
		archiveWriter.Close()
		return appErrors.NewStorageError("failed to upload archive to GCS", err)
	}
	if err := archiveWriter.Close(); err != nil {
		return appErrors.NewStorageError("failed to finalize archive upload to GCS", err)
	}

	metadataData, err := json.Marshal(&archive.Metadata)
	if err != nil {
		return appErrors.NewStorageError("failed to serialize archive metadata", err)
	}

	metadataWriter := bucket.Object(objectName + "/metadata.json").NewWriter(ctx)
	metadataWriter.ContentType = "application/json"
	if _, err := metadataWriter.Write(metadataData); err != nil {
		metadataWriter.Close()
		return appErrors.NewStorageError("failed to upload archive metadata to GCS", err)
	}
	if err := metadataWriter.Close(); err != nil {
		return appErrors.NewStorageError("failed to finalize metadata upload to GCS", err)
	}

	return nil
}

// Retrieve loads an archive from Google Cloud Storage
func (gcsp *GCSStorageProvider) Retrieve(ctx context.Context, archiveID string) (*Archive, error) {
	metadata, err := gcsp.getMetadata(ctx, archiveID)
	if err != nil {
		return nil, err
	}

	objectName := gcsp.getArchiveObjectName(archiveID) + "/archive." + metadata.Compression.Extension()
	reader, err := gcsp.client.Bucket(gcsp.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, appErrors.NewStorageError("failed to download archive from GCS", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, appErrors.NewStorageError("failed to read archive data from GCS", err)
	}

	return &Archive{Metadata: *metadata, Data: data}, nil
}

// List returns metadata for all stored archives
func (gcsp *GCSStorageProvider) List(ctx context.Context) ([]*ArchiveMetadata, error) {
	var archives []*ArchiveMetadata

	bucket := gcsp.client.Bucket(gcsp.bucket)
	it := bucket.Objects(ctx, &storage.Query{Prefix: gcsp.prefix})

	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, appErrors.NewStorageError("failed to list archives from GCS", err)
		}

		if !strings.HasSuffix(attrs.Name, "/metadata.json") {
			continue
		}

		archiveID := gcsp.extractArchiveIDFromObjectName(attrs.Name)
		if archiveID == "" {
			continue
		}

		metadata, err := gcsp.getMetadata(ctx, archiveID)
		if err != nil {
			// Skip unreadable entries but keep listing the rest.
			continue
		}

		archives = append(archives, metadata)
	}

	return archives, nil
}

// Delete removes an archive and its metadata from Google Cloud Storage
func (gcsp *GCSStorageProvider) Delete(ctx context.Context, archiveID string) error {
	if archiveID == "" {
		return appErrors.NewValidationError("archive ID cannot be empty", nil)
	}

	bucket := gcsp.client.Bucket(gcsp.bucket)
	it := bucket.Objects(ctx, &storage.Query{Prefix: gcsp.getArchiveObjectName(archiveID) + "/"})

	deleted := 0
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return appErrors.NewStorageError("failed to list archive objects for deletion", err)
		}

		if err := bucket.Object(attrs.Name).Delete(ctx); err != nil {
			return appErrors.NewStorageError("failed to delete archive object from GCS", err)
		}
		deleted++
	}

	if deleted == 0 {
		return appErrors.NewStorageError(fmt.Sprintf("archive %s not found", archiveID), nil)
	}

	return nil
}

// Close releases the GCS client
func (gcsp *GCSStorageProvider) Close() error {
	return gcsp.client.Close()
}

func (gcsp *GCSStorageProvider) getMetadata(ctx context.Context, archiveID string) (*ArchiveMetadata, error) {
	if archiveID == "" {
		return nil, appErrors.NewValidationError("archive ID cannot be empty", nil)
	}

	objectName := gcsp.getArchiveObjectName(archiveID) + "/metadata.json"

	reader, err := gcsp.client.Bucket(gcsp.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, appErrors.NewStorageError(fmt.Sprintf("archive %s not found", archiveID), err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, appErrors.NewStorageError("failed to read archive metadata from GCS", err)
	}

	var metadata ArchiveMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, appErrors.NewStorageError("failed to parse archive metadata", err)
	}

	return &metadata, nil
}

// getArchiveObjectName returns the GCS object name prefix for an archive
func (gcsp *GCSStorageProvider) getArchiveObjectName(archiveID string) string {
	return gcsp.prefix + sanitizeArchiveID(archiveID)
}

// extractArchiveIDFromObjectName extracts the archive ID from an object name
func (gcsp *GCSStorageProvider) extractArchiveIDFromObjectName(objectName string) string {
	trimmed := strings.TrimPrefix(objectName, gcsp.prefix)
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}
