package offsite

import (
	"context"
	"testing"
)

func TestS3StorageProviderValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  *S3Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &S3Config{
				Bucket:    "test-bucket",
				Region:    "eu-west-1",
				AccessKey: "test-access-key",
				SecretKey: "test-secret-key",
			},
			wantErr: false,
		},
		{
			name:    "nil config",
			config:  nil,
			wantErr: true,
		},
		{
			name: "missing bucket",
			config: &S3Config{
				Region: "eu-west-1",
			},
			wantErr: true,
		},
		{
			name: "missing region",
			config: &S3Config{
				Bucket: "test-bucket",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewS3StorageProvider(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewS3StorageProvider() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if provider == nil {
					t.Fatal("Expected provider to be created, got nil")
				}
				if provider.bucket != tt.config.Bucket {
					t.Errorf("bucket = %s, want %s", provider.bucket, tt.config.Bucket)
				}
			}
		})
	}
}

func TestGCSStorageProviderValidation(t *testing.T) {
	// Valid construction needs application default credentials, so only
	// the rejection paths run here.
	tests := []struct {
		name   string
		config *GCSConfig
	}{
		{name: "nil config", config: nil},
		{name: "missing bucket", config: &GCSConfig{ProjectID: "test-project"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGCSStorageProvider(context.Background(), tt.config); err == nil {
				t.Error("NewGCSStorageProvider() expected error")
			}
		})
	}
}

func TestAzureStorageProviderValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  *AzureConfig
		wantErr bool
	}{
		{
			name: "valid config",
			config: &AzureConfig{
				AccountName:   "wsbaccount",
				AccountKey:    "dGVzdC1hY2NvdW50LWtleQ==",
				ContainerName: "archives",
			},
			wantErr: false,
		},
		{
			name:    "nil config",
			config:  nil,
			wantErr: true,
		},
		{
			name: "missing account name",
			config: &AzureConfig{
				AccountKey:    "dGVzdC1hY2NvdW50LWtleQ==",
				ContainerName: "archives",
			},
			wantErr: true,
		},
		{
			name: "key not base64",
			config: &AzureConfig{
				AccountName:   "wsbaccount",
				AccountKey:    "not base64!",
				ContainerName: "archives",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewAzureStorageProvider(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewAzureStorageProvider() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && provider == nil {
				t.Fatal("Expected provider to be created, got nil")
			}
		})
	}
}
