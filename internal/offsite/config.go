package offsite

import (
	"os"

	appErrors "wsb/internal/errors"
)

// ReplicationConfig controls the optional offsite replication step that
// runs after a successful backup: the backup tree is packed into a tar
// archive, compressed, and shipped to a storage provider.
type ReplicationConfig struct {
	Enabled          bool            `mapstructure:"enabled" yaml:"enabled"`
	Compression      CompressionType `mapstructure:"compression" yaml:"compression"`
	CompressionLevel int             `mapstructure:"compression_level" yaml:"compression_level"`
	KeepLast         int             `mapstructure:"keep_last" yaml:"keep_last"`
	Storage          StorageConfig   `mapstructure:"storage" yaml:"storage"`
}

// StorageConfig selects and configures the archive storage provider.
type StorageConfig struct {
	Provider StorageProviderType `mapstructure:"provider" yaml:"provider"`
	Local    *LocalConfig        `mapstructure:"local" yaml:"local,omitempty"`
	S3       *S3Config           `mapstructure:"s3" yaml:"s3,omitempty"`
	GCS      *GCSConfig          `mapstructure:"gcs" yaml:"gcs,omitempty"`
	Azure    *AzureConfig        `mapstructure:"azure" yaml:"azure,omitempty"`
}

// LocalConfig for local file system storage
type LocalConfig struct {
	BasePath    string      `mapstructure:"base_path" yaml:"base_path"`
	Permissions os.FileMode `mapstructure:"permissions" yaml:"permissions"`
}

// S3Config for Amazon S3 storage
type S3Config struct {
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	Region    string `mapstructure:"region" yaml:"region"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
}

// GCSConfig for Google Cloud Storage
type GCSConfig struct {
	Bucket          string `mapstructure:"bucket" yaml:"bucket"`
	CredentialsPath string `mapstructure:"credentials_path" yaml:"credentials_path"`
	ProjectID       string `mapstructure:"project_id" yaml:"project_id"`
}

// AzureConfig for Azure Blob Storage
type AzureConfig struct {
	AccountName   string `mapstructure:"account_name" yaml:"account_name"`
	AccountKey    string `mapstructure:"account_key" yaml:"account_key"`
	ContainerName string `mapstructure:"container_name" yaml:"container_name"`
}

// SetDefaults fills in sensible defaults for unset fields.
func (rc *ReplicationConfig) SetDefaults() {
	if rc.Compression == "" {
		rc.Compression = CompressionTypeZstd
	}
	if rc.CompressionLevel == 0 {
		rc.CompressionLevel = 3
	}
	if rc.Storage.Provider == "" {
		rc.Storage.Provider = StorageProviderLocal
	}
	if rc.Storage.Provider == StorageProviderLocal {
		if rc.Storage.Local == nil {
			rc.Storage.Local = &LocalConfig{}
		}
		rc.Storage.Local.SetDefaults()
	}
}

// Validate validates the ReplicationConfig. A disabled configuration is
// always valid so the zero value works out of the box.
func (rc *ReplicationConfig) Validate() error {
	if !rc.Enabled {
		return nil
	}

	errors := &appErrors.ValidationErrors{}

	if _, err := ParseCompressionType(string(rc.Compression)); err != nil {
		errors.Add("compression", err.Error(), string(rc.Compression))
	}
	if rc.CompressionLevel < 0 {
		errors.Add("compression_level", "compression level cannot be negative", rc.CompressionLevel)
	}
	if rc.KeepLast < 0 {
		errors.Add("keep_last", "keep_last cannot be negative", rc.KeepLast)
	}
	if err := rc.Storage.Validate(); err != nil {
		errors.Add("storage", err.Error(), nil)
	}

	if errors.HasErrors() {
		return errors
	}
	return nil
}

// Validate validates the StorageConfig.
func (sc *StorageConfig) Validate() error {
	switch sc.Provider {
	case StorageProviderLocal:
		if sc.Local == nil {
			return appErrors.NewConfigError("local storage configuration is required", nil)
		}
		return sc.Local.Validate()
	case StorageProviderS3:
		if sc.S3 == nil {
			return appErrors.NewConfigError("S3 storage configuration is required", nil)
		}
		return sc.S3.Validate()
	case StorageProviderGCS:
		if sc.GCS == nil {
			return appErrors.NewConfigError("GCS storage configuration is required", nil)
		}
		return sc.GCS.Validate()
	case StorageProviderAzure:
		if sc.Azure == nil {
			return appErrors.NewConfigError("Azure storage configuration is required", nil)
		}
		return sc.Azure.Validate()
	}
	return appErrors.NewConfigError("unknown storage provider: "+string(sc.Provider), nil)
}

// SetDefaults fills in defaults for local storage.
func (lc *LocalConfig) SetDefaults() {
	if lc.BasePath == "" {
		lc.BasePath = "/var/lib/wsb/archives"
	}
	if lc.Permissions == 0 {
		lc.Permissions = 0o600
	}
}

// Validate validates the LocalConfig.
func (lc *LocalConfig) Validate() error {
	if lc.BasePath == "" {
		return appErrors.NewConfigError("local storage base path is required", nil)
	}
	return nil
}

// Validate validates the S3Config.
func (sc *S3Config) Validate() error {
	if sc.Bucket == "" {
		return appErrors.NewConfigError("S3 bucket is required", nil)
	}
	if sc.Region == "" {
		return appErrors.NewConfigError("S3 region is required", nil)
	}
	return nil
}

// Validate validates the GCSConfig.
func (gc *GCSConfig) Validate() error {
	if gc.Bucket == "" {
		return appErrors.NewConfigError("GCS bucket is required", nil)
	}
	return nil
}

// Validate validates the AzureConfig.
func (ac *AzureConfig) Validate() error {
	if ac.AccountName == "" {
		return appErrors.NewConfigError("Azure account name is required", nil)
	}
	if ac.AccountKey == "" {
		return appErrors.NewConfigError("Azure account key is required", nil)
	}
	if ac.ContainerName == "" {
		return appErrors.NewConfigError("Azure container name is required", nil)
	}
	return nil
}
