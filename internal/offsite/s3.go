package offsite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	appErrors "wsb/internal/errors"
)

// S3StorageProvider implements StorageProvider for Amazon S3
type S3StorageProvider struct {
	client *s3.S3
	bucket string
	prefix string
}

// NewS3StorageProvider creates a new S3StorageProvider instance
func NewS3StorageProvider(config *S3Config) (*S3StorageProvider, error) {
	if config == nil {
		return nil, appErrors.NewValidationError("S3 storage configuration is required", nil)
	}

	if err := config.Validate(); err != nil {
		return nil, appErrors.NewValidationError("invalid S3 storage configuration", err)
	}

	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"", // token
		)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, appErrors.NewStorageError("failed to create AWS session", err)
	}

	provider := &S3StorageProvider{
		client: s3.New(sess),
		bucket: config.Bucket,
		prefix: "archives/",
	}

	return provider, nil
}

// Store saves an archive to S3
func (s3p *S3StorageProvider) Store(ctx context.Context, archive *Archive) error {
	if archive == nil {
		return appErrors.NewValidationError("archive cannot be nil", nil)
	}
	if err := archive.Metadata.Validate(); err != nil {
		return appErrors.NewValidationError("invalid archive metadata", err)
	}

	objectKey := s3p.getArchiveObjectKey(archive.Metadata.ID)
	archiveKey := objectKey + "/archive." + archive.Metadata.Compression.Extension()
	archive.Metadata.StorageLocation = fmt.Sprintf("s3://%s/%s", s3p.bucket, archiveKey)

	_, err := s3p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s3p.bucket),
		Key:         aws.String(archiveKey),
		Body:        bytes.NewReader(archive.Data),
		ContentType: aws.String("application/octet-stream"),
		Metadata: map[string]*string{
			"archive-id":  aws.String(archive.Metadata.ID),
			"compression": aws.String(string(archive.Metadata.Compression)),
			"checksum":    aws.String(archive.Metadata.Checksum),
		},
	})
	if err != nil {
		return appErrors.NewStorageError("failed to upload archive to S3", err)
	}

	metadataData, err := json.Marshal(&archive.Metadata)
	if err != nil {
		return appErrors.NewStorageError("failed to serialize archive metadata", err)
	}

	_, err = s3p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s3p.bucket),
		Key:         aws.String(objectKey + "/metadata.json"),
		Body:        bytes.NewReader(metadataData),
		ContentType: aws.String("application/json"),
		Metadata: map[string]*string{
			"archive-id": aws.String(archive.Metadata.ID),
		},
	})
	if err != nil {
		return appErrors.NewStorageError("failed to upload archive metadata to S3", err)
	}

	return nil
}

// Retrieve loads an archive from S3
func (s3p *S3StorageProvider) Retrieve(ctx context.Context, archiveID string) (*Archive, error) {
	metadata, err := s3p.getMetadata(ctx, archiveID)
	if err != nil {
		return nil, err
	}

	archiveKey := s3p.getArchiveObjectKey(archiveID) + "/archive." + metadata.Compression.Extension()
	result, err := s3p.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s3p.bucket),
		Key:    aws.String(archiveKey),
	})
	if err != nil {
		return nil, appErrors.NewStorageError("failed to download archive from S3", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, appErrors.NewStorageError("failed to read archive data from S3", err)
	}

	return &Archive{Metadata: *metadata, Data: data}, nil
}

// List returns metadata for all stored archives
func (s3p *S3StorageProvider) List(ctx context.Context) ([]*ArchiveMetadata, error) {
	var archives []*ArchiveMetadata

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s3p.bucket),
		Prefix: aws.String(s3p.prefix),
	}

	err := s3p.client.ListObjectsV2PagesWithContext(ctx, input,
		func(page *s3.ListObjectsV2Output, lastPage bool) bool {
			for _, obj := range page.Contents {
				if !strings.HasSuffix(*obj.Key, "/metadata.json") {
					continue
				}

				archiveID := s3p.extractArchiveIDFromKey(*obj.Key)
				if archiveID == "" {
					continue
				}

				metadata, err := s3p.getMetadata(ctx, archiveID)
				if err != nil {
					// Skip unreadable entries but keep listing the rest.
					continue
				}

				archives = append(archives, metadata)
			}
			return true
		})
	if err != nil {
		return nil, appErrors.NewStorageError("failed to list archives from S3", err)
	}

	return archives, nil
}

// Delete removes an archive and its metadata from S3
func (s3p *S3StorageProvider) Delete(ctx context.Context, archiveID string) error {
	if archiveID == "" {
		return appErrors.NewValidationError("archive ID cannot be empty", nil)
	}

	objectPrefix := s3p.getArchiveObjectKey(archiveID)

	listResult, err := s3p.client.ListObjectsV2WithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s3p.bucket),
		Prefix: aws.String(objectPrefix),
	})
	if err != nil {
		return appErrors.NewStorageError("failed to list archive objects for deletion", err)
	}

	if len(listResult.Contents) == 0 {
		return appErrors.NewStorageError(fmt.Sprintf("archive %s not found", archiveID), nil)
	}

	var objectsToDelete []*s3.ObjectIdentifier
	for _, obj := range listResult.Contents {
		objectsToDelete = append(objectsToDelete, &s3.ObjectIdentifier{
			Key: obj.Key,
		})
	}

	_, err = s3p.client.DeleteObjectsWithContext(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s3p.bucket),
		Delete: &s3.Delete{
			Objects: objectsToDelete,
		},
	})
	if err != nil {
		return appErrors.NewStorageError("failed to delete archive from S3", err)
	}

	return nil
}

// Close implements StorageProvider. The S3 client holds no resources.
func (s3p *S3StorageProvider) Close() error {
	return nil
}

func (s3p *S3StorageProvider) getMetadata(ctx context.Context, archiveID string) (*ArchiveMetadata, error) {
	if archiveID == "" {
		return nil, appErrors.NewValidationError("archive ID cannot be empty", nil)
	}

	objectKey := s3p.getArchiveObjectKey(archiveID) + "/metadata.json"

	result, err := s3p.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s3p.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, appErrors.NewStorageError(fmt.Sprintf("archive %s not found", archiveID), err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, appErrors.NewStorageError("failed to read archive metadata from S3", err)
	}

	var metadata ArchiveMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, appErrors.NewStorageError("failed to parse archive metadata", err)
	}

	return &metadata, nil
}

// getArchiveObjectKey returns the S3 object key prefix for an archive
func (s3p *S3StorageProvider) getArchiveObjectKey(archiveID string) string {
	return s3p.prefix + sanitizeArchiveID(archiveID)
}

// extractArchiveIDFromKey extracts the archive ID from an S3 object key
func (s3p *S3StorageProvider) extractArchiveIDFromKey(objectKey string) string {
	trimmed := strings.TrimPrefix(objectKey, s3p.prefix)
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}
