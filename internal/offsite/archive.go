package offsite

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	appErrors "wsb/internal/errors"
)

// Archiver packs a backup tree into a tar archive and unpacks it again.
// Git metadata is included so a restored replica keeps its history.
type Archiver struct{}

// NewArchiver creates a new Archiver.
func NewArchiver() *Archiver {
	return &Archiver{}
}

// Pack walks root and returns the tree as an uncompressed tar archive.
// Entry names are relative to root. Only directories and regular files
// are archived; sockets, devices and symlinks are skipped.
func (a *Archiver) Pack(root string) ([]byte, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, appErrors.NewStorageError("failed to stat backup root", err)
	}
	if !info.IsDir() {
		return nil, appErrors.NewStorageError("backup root is not a directory", nil)
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	walkErr := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		switch {
		case info.IsDir():
			header, err := tar.FileInfoHeader(info, "")
			if err != nil {
				return err
			}
			header.Name = relPath + "/"
			return tw.WriteHeader(header)
		case info.Mode().IsRegular():
			header, err := tar.FileInfoHeader(info, "")
			if err != nil {
				return err
			}
			header.Name = relPath

			if err := tw.WriteHeader(header); err != nil {
				return err
			}

			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			_, err = io.Copy(tw, file)
			return err
		default:
			return nil
		}
	})
	if walkErr != nil {
		return nil, appErrors.NewStorageError("failed to archive backup tree", walkErr)
	}

	if err := tw.Close(); err != nil {
		return nil, appErrors.NewStorageError("failed to finalize tar archive", err)
	}

	return buf.Bytes(), nil
}

// Unpack extracts a tar archive produced by Pack into dest. Entries that
// would escape dest are rejected.
func (a *Archiver) Unpack(data []byte, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return appErrors.NewStorageError("failed to create extraction directory", err)
	}

	tr := tar.NewReader(bytes.NewReader(data))

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return appErrors.NewStorageError("failed to read tar archive", err)
		}

		targetPath, err := securePath(dest, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(targetPath, os.FileMode(header.Mode)); err != nil {
				return appErrors.NewStorageError("failed to create directory", err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
				return appErrors.NewStorageError("failed to create parent directory", err)
			}
			file, err := os.OpenFile(targetPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(header.Mode))
			if err != nil {
				return appErrors.NewStorageError("failed to create file", err)
			}
			if _, err := io.Copy(file, tr); err != nil {
				file.Close()
				return appErrors.NewStorageError("failed to extract file", err)
			}
			if err := file.Close(); err != nil {
				return appErrors.NewStorageError("failed to close extracted file", err)
			}
		}
	}

	return nil
}

// securePath joins name onto dest and rejects entries that resolve
// outside it.
func securePath(dest, name string) (string, error) {
	targetPath := filepath.Join(dest, filepath.Clean(name))

	rel, err := filepath.Rel(dest, targetPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", appErrors.NewStorageError("tar entry escapes extraction directory: "+name, nil)
	}

	return targetPath, nil
}
