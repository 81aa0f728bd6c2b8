package offsite

import (
	"context"
	"sort"
	"time"

	appErrors "wsb/internal/errors"
	"wsb/internal/logging"
)

// Replicator ships a backup tree to offsite storage. A replication run
// packs the tree into a tar archive, compresses it, stores it through
// the configured provider, and finally applies the retention policy.
type Replicator struct {
	config      *ReplicationConfig
	logger      *logging.Logger
	archiver    *Archiver
	compression *CompressionManager
	provider    StorageProvider
}

// NewReplicator creates a Replicator for an enabled replication
// configuration and connects its storage provider.
func NewReplicator(ctx context.Context, config *ReplicationConfig, logger *logging.Logger) (*Replicator, error) {
	if config == nil {
		return nil, appErrors.NewConfigError("replication configuration is required", nil)
	}
	if !config.Enabled {
		return nil, appErrors.NewConfigError("offsite replication is not enabled", nil)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	compression, err := ParseCompressionType(string(config.Compression))
	if err != nil {
		return nil, appErrors.NewConfigError("invalid replication compression", err)
	}
	config.Compression = compression

	provider, err := NewStorageProviderFactory().CreateStorageProvider(ctx, config.Storage)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &Replicator{
		config:      config,
		logger:      logger,
		archiver:    NewArchiver(),
		compression: NewCompressionManager(),
		provider:    provider,
	}, nil
}

// Replicate archives backupRoot and stores it offsite. It returns the
// metadata of the stored archive. contents may be nil when the caller
// has no layout summary for the tree.
func (r *Replicator) Replicate(ctx context.Context, backupRoot string, contents *ArchiveContents) (*ArchiveMetadata, error) {
	start := time.Now()

	raw, err := r.archiver.Pack(backupRoot)
	if err != nil {
		r.logger.LogReplication(string(r.config.Storage.Provider), "", 0, time.Since(start), err)
		return nil, err
	}

	compressed, stats, err := r.compression.Compress(raw, r.config.Compression, r.config.CompressionLevel)
	if err != nil {
		r.logger.LogReplication(string(r.config.Storage.Provider), "", 0, time.Since(start), err)
		return nil, err
	}

	archive := &Archive{
		Metadata: ArchiveMetadata{
			ID:             GenerateArchiveID(),
			CreatedAt:      time.Now().UTC(),
			BackupRoot:     backupRoot,
			Compression:    r.config.Compression,
			OriginalSize:   stats.OriginalSize,
			CompressedSize: stats.CompressedSize,
			Checksum:       ChecksumData(compressed),
			Contents:       contents,
		},
		Data: compressed,
	}

	err = r.provider.Store(ctx, archive)
	r.logger.LogReplication(string(r.config.Storage.Provider), archive.Metadata.ID, stats.CompressedSize, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	// Retention failures leave extra archives behind but never undo a
	// successful replication.
	if err := r.prune(ctx); err != nil {
		r.logger.Warnf("archive retention cleanup failed: %v", err)
	}

	return &archive.Metadata, nil
}

// Restore retrieves an archive by ID and unpacks it into dest.
func (r *Replicator) Restore(ctx context.Context, archiveID, dest string) error {
	archive, err := r.provider.Retrieve(ctx, archiveID)
	if err != nil {
		return err
	}

	if checksum := ChecksumData(archive.Data); checksum != archive.Metadata.Checksum {
		return appErrors.NewStorageError("archive checksum mismatch for "+archiveID, nil)
	}

	raw, err := r.compression.Decompress(archive.Data, archive.Metadata.Compression)
	if err != nil {
		return err
	}

	return r.archiver.Unpack(raw, dest)
}

// List returns the stored archives, newest first.
func (r *Replicator) List(ctx context.Context) ([]*ArchiveMetadata, error) {
	archives, err := r.provider.List(ctx)
	if err != nil {
		return nil, err
	}
	sortArchivesNewestFirst(archives)
	return archives, nil
}

// Close releases the storage provider.
func (r *Replicator) Close() error {
	return r.provider.Close()
}

// prune deletes the oldest archives beyond the keep_last limit.
func (r *Replicator) prune(ctx context.Context) error {
	if r.config.KeepLast <= 0 {
		return nil
	}

	archives, err := r.provider.List(ctx)
	if err != nil {
		return err
	}
	if len(archives) <= r.config.KeepLast {
		return nil
	}

	sortArchivesNewestFirst(archives)

	for _, old := range archives[r.config.KeepLast:] {
		if err := r.provider.Delete(ctx, old.ID); err != nil {
			return err
		}
		r.logger.Debugf("pruned archive %s", old.ID)
	}

	return nil
}

// sortArchivesNewestFirst orders archives by creation time, newest
// first. The ID tie-break keeps the order stable when timestamps
// collide within a second.
func sortArchivesNewestFirst(archives []*ArchiveMetadata) {
	sort.Slice(archives, func(i, j int) bool {
		if !archives[i].CreatedAt.Equal(archives[j].CreatedAt) {
			return archives[i].CreatedAt.After(archives[j].CreatedAt)
		}
		return archives[i].ID > archives[j].ID
	})
}
