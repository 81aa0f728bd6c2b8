package offsite

import (
	"regexp"
	"testing"
	"time"
)

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		input   string
		want    CompressionType
		wantErr bool
	}{
		{"zstd", CompressionTypeZstd, false},
		{"ZSTD", CompressionTypeZstd, false},
		{" gzip ", CompressionTypeGzip, false},
		{"lz4", CompressionTypeLZ4, false},
		{"none", CompressionTypeNone, false},
		{"", CompressionTypeNone, false},
		{"brotli", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCompressionType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCompressionType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCompressionType(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseStorageProviderType(t *testing.T) {
	tests := []struct {
		input   string
		want    StorageProviderType
		wantErr bool
	}{
		{"local", StorageProviderLocal, false},
		{"S3", StorageProviderS3, false},
		{"gcs", StorageProviderGCS, false},
		{"Azure", StorageProviderAzure, false},
		{"", StorageProviderLocal, false},
		{"ftp", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStorageProviderType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStorageProviderType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStorageProviderType(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestCompressionTypeExtension(t *testing.T) {
	tests := []struct {
		compression CompressionType
		want        string
	}{
		{CompressionTypeNone, "tar"},
		{CompressionTypeGzip, "tar.gz"},
		{CompressionTypeLZ4, "tar.lz4"},
		{CompressionTypeZstd, "tar.zst"},
	}

	for _, tt := range tests {
		if got := tt.compression.Extension(); got != tt.want {
			t.Errorf("%s.Extension() = %s, want %s", tt.compression, got, tt.want)
		}
	}
}

func TestGenerateArchiveID(t *testing.T) {
	idPattern := regexp.MustCompile(`^wsb-\d{8}-\d{6}-[0-9a-f]{8}$`)

	first := GenerateArchiveID()
	if !idPattern.MatchString(first) {
		t.Errorf("GenerateArchiveID() = %q, want match for %s", first, idPattern)
	}

	second := GenerateArchiveID()
	if first == second {
		t.Errorf("GenerateArchiveID() produced duplicate IDs: %q", first)
	}
}

func TestArchiveMetadataValidate(t *testing.T) {
	metadata := ArchiveMetadata{}
	if err := metadata.Validate(); err == nil {
		t.Error("Validate() on empty metadata expected error")
	}

	metadata.ID = "wsb-20260101-120000-deadbeef"
	if err := metadata.Validate(); err == nil {
		t.Error("Validate() without creation time expected error")
	}

	metadata.CreatedAt = time.Now()
	if err := metadata.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestChecksumData(t *testing.T) {
	// SHA-256 of the empty string.
	if got := ChecksumData(nil); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("ChecksumData(nil) = %s", got)
	}

	if ChecksumData([]byte("a")) == ChecksumData([]byte("b")) {
		t.Error("ChecksumData() collision on distinct inputs")
	}
}

func TestSortArchivesNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	archives := []*ArchiveMetadata{
		{ID: "wsb-20260101-120000-aaaaaaaa", CreatedAt: base},
		{ID: "wsb-20260101-120200-cccccccc", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "wsb-20260101-120100-bbbbbbbb", CreatedAt: base.Add(time.Minute)},
	}

	sortArchivesNewestFirst(archives)

	wantOrder := []string{
		"wsb-20260101-120200-cccccccc",
		"wsb-20260101-120100-bbbbbbbb",
		"wsb-20260101-120000-aaaaaaaa",
	}
	for i, want := range wantOrder {
		if archives[i].ID != want {
			t.Errorf("archives[%d].ID = %s, want %s", i, archives[i].ID, want)
		}
	}
}

func TestSortArchivesNewestFirstTieBreak(t *testing.T) {
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	archives := []*ArchiveMetadata{
		{ID: "wsb-20260101-120000-aaaaaaaa", CreatedAt: at},
		{ID: "wsb-20260101-120000-ffffffff", CreatedAt: at},
	}

	sortArchivesNewestFirst(archives)

	if archives[0].ID != "wsb-20260101-120000-ffffffff" {
		t.Errorf("tie-break order wrong: got %s first", archives[0].ID)
	}
}
