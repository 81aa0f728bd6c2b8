package offsite

import "context"

// StorageProvider defines the interface for archive storage backends.
// Providers persist the archive payload next to a metadata document so
// List never has to download archive data.
type StorageProvider interface {
	// Store saves an archive and its metadata.
	Store(ctx context.Context, archive *Archive) error

	// Retrieve loads a previously stored archive by ID.
	Retrieve(ctx context.Context, archiveID string) (*Archive, error)

	// List returns metadata for all stored archives.
	List(ctx context.Context) ([]*ArchiveMetadata, error)

	// Delete removes an archive and its metadata.
	Delete(ctx context.Context, archiveID string) error

	// Close releases any resources held by the provider.
	Close() error
}
