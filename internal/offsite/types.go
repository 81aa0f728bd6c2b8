package offsite

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CompressionType identifies the algorithm used to compress an archive.
type CompressionType string

const (
	CompressionTypeNone CompressionType = "NONE"
	CompressionTypeGzip CompressionType = "GZIP"
	CompressionTypeLZ4  CompressionType = "LZ4"
	CompressionTypeZstd CompressionType = "ZSTD"
)

// ParseCompressionType normalizes a user-supplied compression name.
func ParseCompressionType(s string) (CompressionType, error) {
	switch CompressionType(strings.ToUpper(strings.TrimSpace(s))) {
	case CompressionTypeNone, "":
		return CompressionTypeNone, nil
	case CompressionTypeGzip:
		return CompressionTypeGzip, nil
	case CompressionTypeLZ4:
		return CompressionTypeLZ4, nil
	case CompressionTypeZstd:
		return CompressionTypeZstd, nil
	}
	return "", fmt.Errorf("unknown compression type: %s", s)
}

// Extension returns the archive file extension for the compression type.
func (ct CompressionType) Extension() string {
	switch ct {
	case CompressionTypeGzip:
		return "tar.gz"
	case CompressionTypeLZ4:
		return "tar.lz4"
	case CompressionTypeZstd:
		return "tar.zst"
	default:
		return "tar"
	}
}

// StorageProviderType identifies where replicated archives are kept.
type StorageProviderType string

const (
	StorageProviderLocal StorageProviderType = "LOCAL"
	StorageProviderS3    StorageProviderType = "S3"
	StorageProviderGCS   StorageProviderType = "GCS"
	StorageProviderAzure StorageProviderType = "AZURE"
)

// ParseStorageProviderType normalizes a user-supplied provider name.
func ParseStorageProviderType(s string) (StorageProviderType, error) {
	switch StorageProviderType(strings.ToUpper(strings.TrimSpace(s))) {
	case StorageProviderLocal, "":
		return StorageProviderLocal, nil
	case StorageProviderS3:
		return StorageProviderS3, nil
	case StorageProviderGCS:
		return StorageProviderGCS, nil
	case StorageProviderAzure:
		return StorageProviderAzure, nil
	}
	return "", fmt.Errorf("unknown storage provider: %s", s)
}

// Archive is a compressed tar snapshot of a backup tree, ready to be
// stored by a StorageProvider.
type Archive struct {
	Metadata ArchiveMetadata `json:"metadata"`
	Data     []byte          `json:"-"`
}

// ArchiveMetadata describes a stored archive. It is persisted next to the
// archive payload so listings never have to download the data itself.
type ArchiveMetadata struct {
	ID              string           `json:"id"`
	CreatedAt       time.Time        `json:"created_at"`
	BackupRoot      string           `json:"backup_root"`
	Compression     CompressionType  `json:"compression"`
	OriginalSize    int64            `json:"original_size"`
	CompressedSize  int64            `json:"compressed_size"`
	Checksum        string           `json:"checksum"`
	StorageLocation string           `json:"storage_location,omitempty"`
	Contents        *ArchiveContents `json:"contents,omitempty"`
}

// ArchiveContents summarizes what the archived backup tree declared, so
// listings can tell archives apart without restoring them.
type ArchiveContents struct {
	Accounts       int `json:"accounts"`
	RemoteDirs     int `json:"remote_dirs"`
	MysqlDatabases int `json:"mysql_databases"`
	PgsqlDatabases int `json:"pgsql_databases"`
	NodataTables   int `json:"nodata_tables"`
}

// Validate checks the metadata fields required to store an archive.
func (am *ArchiveMetadata) Validate() error {
	if am.ID == "" {
		return fmt.Errorf("archive ID is required")
	}
	if am.CreatedAt.IsZero() {
		return fmt.Errorf("archive creation time is required")
	}
	return nil
}

// GenerateArchiveID generates a unique archive ID. The timestamp prefix
// keeps lexical and chronological order aligned, which the retention
// logic relies on when creation times collide.
func GenerateArchiveID() string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	short := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("wsb-%s-%s", timestamp, short)
}

// ChecksumData calculates the hex-encoded SHA-256 checksum of data.
func ChecksumData(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
