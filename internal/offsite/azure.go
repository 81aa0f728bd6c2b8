package offsite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-storage-blob-go/azblob"

	appErrors "wsb/internal/errors"
)

// AzureStorageProvider implements StorageProvider for Azure Blob Storage
type AzureStorageProvider struct {
	serviceURL    azblob.ServiceURL
	containerName string
	prefix        string
}

// NewAzureStorageProvider creates a new AzureStorageProvider instance
func NewAzureStorageProvider(config *AzureConfig) (*AzureStorageProvider, error) {
	if config == nil {
		return nil, appErrors.NewValidationError("Azure storage configuration is required", nil)
	}

	if err := config.Validate(); err != nil {
		return nil, appErrors.NewValidationError("invalid Azure storage configuration", err)
	}

	credential, err := azblob.NewSharedKeyCredential(config.AccountName, config.AccountKey)
	if err != nil {
		return nil, appErrors.NewStorageError("failed to create Azure credentials", err)
	}

	pipeline := azblob.NewPipeline(credential, azblob.PipelineOptions{})

	serviceURL, err := url.Parse(fmt.Sprintf("https://%s.blob.core.windows.net", config.AccountName))
	if err != nil {
		return nil, appErrors.NewStorageError("failed to parse Azure service URL", err)
	}

	provider := &AzureStorageProvider{
		serviceURL:    azblob.NewServiceURL(*serviceURL, pipeline),
		containerName: config.ContainerName,
		prefix:        "archives/",
	}

	return provider, nil
}

// Store saves an archive to Azure Blob Storage
func (azp *AzureStorageProvider) Store(ctx context.Context, archive *Archive) error {
	if archive == nil {
		return appErrors.NewValidationError("archive cannot be nil", nil)
	}
	if err := archive.Metadata.Validate(); err != nil {
		return appErrors.NewValidationError("invalid archive metadata", err)
	}

	blobName := azp.getArchiveBlobName(archive.Metadata.ID)
	archiveBlobName := blobName + "/archive." + archive.Metadata.Compression.Extension()
	archive.Metadata.StorageLocation = fmt.Sprintf("azure://%s/%s", azp.containerName, archiveBlobName)

	containerURL := azp.serviceURL.NewContainerURL(azp.containerName)

	archiveBlobURL := containerURL.NewBlockBlobURL(archiveBlobName)
	_, err := azblob.UploadBufferToBlockBlob(ctx, archive.Data, archiveBlobURL, azblob.UploadToBlockBlobOptions{
		Metadata: azblob.Metadata{
			"archiveid":   archive.Metadata.ID,
			"compression": string(archive.Metadata.Compression),
			"checksum":    archive.Metadata.Checksum,
		},
		BlobHTTPHeaders: azblob.BlobHTTPHeaders{
			ContentType: "application/octet-stream",
		},
	})
	if err != nil {
		return appErrors.NewStorageError("failed to upload archive to Azure", err)
	}

	metadataData, err := json.Marshal(&archive.Metadata)
	if err != nil {
		return appErrors.NewStorageError("failed to serialize archive metadata", err)
	}

	metadataBlobURL := containerURL.NewBlockBlobURL(blobName + "/metadata.json")
	_, err = azblob.UploadBufferToBlockBlob(ctx, metadataData, metadataBlobURL, azblob.UploadToBlockBlobOptions{
		Metadata: azblob.Metadata{
			"archiveid": archive.Metadata.ID,
		},
		BlobHTTPHeaders: azblob.BlobHTTPHeaders{
			ContentType: "application/json",
		},
	})
	if err != nil {
		return appErrors.NewStorageError("failed to upload archive metadata to Azure", err)
	}

	return nil
}

// Retrieve loads an archive from Azure Blob Storage
func (azp *AzureStorageProvider) Retrieve(ctx context.Context, archiveID string) (*Archive, error) {
	metadata, err := azp.getMetadata(ctx, archiveID)
	if err != nil {
		return nil, err
	}

	blobName := azp.getArchiveBlobName(archiveID) + "/archive." + metadata.Compression.Extension()
	blobURL := azp.serviceURL.NewContainerURL(azp.containerName).NewBlockBlobURL(blobName)

	downloadResponse, err := blobURL.Download(ctx, 0, azblob.CountToEnd, azblob.BlobAccessConditions{}, false, azblob.ClientProvidedKeyOptions{})
	if err != nil {
		return nil, appErrors.NewStorageError("failed to download archive from Azure", err)
	}

	bodyStream := downloadResponse.Body(azblob.RetryReaderOptions{MaxRetryRequests: 20})
	defer bodyStream.Close()

	data, err := io.ReadAll(bodyStream)
	if err != nil {
		return nil, appErrors.NewStorageError("failed to read archive data from Azure", err)
	}

	return &Archive{Metadata: *metadata, Data: data}, nil
}

// List returns metadata for all stored archives
func (azp *AzureStorageProvider) List(ctx context.Context) ([]*ArchiveMetadata, error) {
	var archives []*ArchiveMetadata

	containerURL := azp.serviceURL.NewContainerURL(azp.containerName)

	for marker := (azblob.Marker{}); marker.NotDone(); {
		listResponse, err := containerURL.ListBlobsFlatSegment(ctx, marker, azblob.ListBlobsSegmentOptions{
			Prefix: azp.prefix,
		})
		if err != nil {
			return nil, appErrors.NewStorageError("failed to list archives from Azure", err)
		}
		marker = listResponse.NextMarker

		for _, blobInfo := range listResponse.Segment.BlobItems {
			if !strings.HasSuffix(blobInfo.Name, "/metadata.json") {
				continue
			}

			archiveID := azp.extractArchiveIDFromBlobName(blobInfo.Name)
			if archiveID == "" {
				continue
			}

			metadata, err := azp.getMetadata(ctx, archiveID)
			if err != nil {
				// Skip unreadable entries but keep listing the rest.
				continue
			}

			archives = append(archives, metadata)
		}
	}

	return archives, nil
}

// Delete removes an archive and its metadata from Azure Blob Storage
func (azp *AzureStorageProvider) Delete(ctx context.Context, archiveID string) error {
	if archiveID == "" {
		return appErrors.NewValidationError("archive ID cannot be empty", nil)
	}

	containerURL := azp.serviceURL.NewContainerURL(azp.containerName)

	deleted := 0
	for marker := (azblob.Marker{}); marker.NotDone(); {
		listResponse, err := containerURL.ListBlobsFlatSegment(ctx, marker, azblob.ListBlobsSegmentOptions{
			Prefix: azp.getArchiveBlobName(archiveID) + "/",
		})
		if err != nil {
			return appErrors.NewStorageError("failed to list archive blobs for deletion", err)
		}
		marker = listResponse.NextMarker

		for _, blobInfo := range listResponse.Segment.BlobItems {
			blobURL := containerURL.NewBlockBlobURL(blobInfo.Name)
			if _, err := blobURL.Delete(ctx, azblob.DeleteSnapshotsOptionInclude, azblob.BlobAccessConditions{}); err != nil {
				return appErrors.NewStorageError("failed to delete archive blob from Azure", err)
			}
			deleted++
		}
	}

	if deleted == 0 {
		return appErrors.NewStorageError(fmt.Sprintf("archive %s not found", archiveID), nil)
	}

	return nil
}

// Close implements StorageProvider. The Azure pipeline holds no resources.
func (azp *AzureStorageProvider) Close() error {
	return nil
}

func (azp *AzureStorageProvider) getMetadata(ctx context.Context, archiveID string) (*ArchiveMetadata, error) {
	if archiveID == "" {
		return nil, appErrors.NewValidationError("archive ID cannot be empty", nil)
	}

	blobName := azp.getArchiveBlobName(archiveID) + "/metadata.json"
	blobURL := azp.serviceURL.NewContainerURL(azp.containerName).NewBlockBlobURL(blobName)

	downloadResponse, err := blobURL.Download(ctx, 0, azblob.CountToEnd, azblob.BlobAccessConditions{}, false, azblob.ClientProvidedKeyOptions{})
	if err != nil {
		return nil, appErrors.NewStorageError(fmt.Sprintf("archive %s not found", archiveID), err)
	}

	bodyStream := downloadResponse.Body(azblob.RetryReaderOptions{MaxRetryRequests: 20})
	defer bodyStream.Close()

	data, err := io.ReadAll(bodyStream)
	if err != nil {
		return nil, appErrors.NewStorageError("failed to read archive metadata from Azure", err)
	}

	var metadata ArchiveMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, appErrors.NewStorageError("failed to parse archive metadata", err)
	}

	return &metadata, nil
}

// getArchiveBlobName returns the blob name prefix for an archive
func (azp *AzureStorageProvider) getArchiveBlobName(archiveID string) string {
	return azp.prefix + sanitizeArchiveID(archiveID)
}

// extractArchiveIDFromBlobName extracts the archive ID from a blob name
func (azp *AzureStorageProvider) extractArchiveIDFromBlobName(blobName string) string {
	trimmed := strings.TrimPrefix(blobName, azp.prefix)
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}
