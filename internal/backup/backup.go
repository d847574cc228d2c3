// file: internal/backup/backup.go
// version: 2.0.0
// guid: 8f9e0a1b-2c3d-4e5f-6a7b-8c9d0e1f2a3b

package backup

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/jdfalk/library-catalog/internal/fileops"
)

const (
	filePrefix = "catalog_"
	fileSuffix = ".tar.gz"
)

// BackupInfo contains information about a backup
type BackupInfo struct {
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupConfig holds backup configuration
type BackupConfig struct {
	BackupDir        string
	MaxBackups       int
	CompressionLevel int
}

// DefaultBackupConfig returns default backup configuration
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{
		BackupDir:        "backups",
		MaxBackups:       10,
		CompressionLevel: gzip.BestCompression,
	}
}

// CreateBackup writes a compressed snapshot of the catalog file into
// config.BackupDir and prunes the oldest snapshots beyond MaxBackups.
func CreateBackup(catalogPath string, config BackupConfig) (*BackupInfo, error) {
	src, err := os.Stat(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat catalog file: %w", err)
	}
	if src.IsDir() {
		return nil, fmt.Errorf("catalog path %s is a directory", catalogPath)
	}

	if err := os.MkdirAll(config.BackupDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := time.Now()
	backupFilename := fmt.Sprintf("%s%s_%06d%s", filePrefix, now.Format("20060102_150405"), now.Nanosecond()/1000, fileSuffix)
	backupPath := filepath.Join(config.BackupDir, backupFilename)

	if err := writeArchive(backupPath, catalogPath, src, config.CompressionLevel); err != nil {
		os.Remove(backupPath)
		return nil, err
	}

	fileInfo, err := os.Stat(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup file: %w", err)
	}

	checksum, err := fileops.ComputeFileHash(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum: %w", err)
	}

	info := &BackupInfo{
		Filename:  backupFilename,
		Path:      backupPath,
		Size:      fileInfo.Size(),
		Checksum:  checksum,
		CreatedAt: now,
	}

	if config.MaxBackups > 0 {
		if err := cleanupOldBackups(config.BackupDir, config.MaxBackups); err != nil {
			slog.Warn("failed to clean up old backups", "dir", config.BackupDir, "error", err)
		}
	}

	slog.Debug("backup created", "path", backupPath, "size", info.Size)
	return info, nil
}

func writeArchive(backupPath, catalogPath string, src os.FileInfo, level int) error {
	backupFile, err := os.Create(backupPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer backupFile.Close()

	gzipWriter, err := gzip.NewWriterLevel(backupFile, level)
	if err != nil {
		return fmt.Errorf("failed to create gzip writer: %w", err)
	}
	defer gzipWriter.Close()

	tarWriter := tar.NewWriter(gzipWriter)
	defer tarWriter.Close()

	if err := addToArchive(tarWriter, catalogPath, src); err != nil {
		return fmt.Errorf("failed to add catalog to archive: %w", err)
	}

	// Close writers to ensure all data is flushed
	if err := tarWriter.Close(); err != nil {
		return fmt.Errorf("failed to close tar writer: %w", err)
	}
	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	if err := backupFile.Close(); err != nil {
		return fmt.Errorf("failed to close backup file: %w", err)
	}
	return nil
}

// RestoreBackup extracts the catalog file from a backup and writes it to
// targetPath, replacing any existing file.
func RestoreBackup(backupPath, targetPath string) error {
	backupFile, err := os.Open(backupPath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer backupFile.Close()

	gzipReader, err := gzip.NewReader(backupFile)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)
	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("backup %s contains no catalog file", backupPath)
		}
		if err != nil {
			return fmt.Errorf("failed to read tar header: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			slog.Warn("skipping unsupported archive entry", "name", header.Name, "type", header.Typeflag)
			continue
		}

		err = fileops.WriteFileAtomic(targetPath, os.FileMode(header.Mode).Perm(), func(w io.Writer) error {
			_, err := io.Copy(w, tarReader)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to restore %s: %w", targetPath, err)
		}
		slog.Info("catalog restored", "backup", backupPath, "target", targetPath)
		return nil
	}
}

// ListBackups lists all available backups, oldest first
func ListBackups(backupDir string) ([]BackupInfo, error) {
	var backups []BackupInfo

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return backups, nil // No backups directory yet
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		backupPath := filepath.Join(backupDir, name)
		checksum, _ := fileops.ComputeFileHash(backupPath)

		backups = append(backups, BackupInfo{
			Filename:  name,
			Path:      backupPath,
			Size:      info.Size(),
			Checksum:  checksum,
			CreatedAt: info.ModTime(),
		})
	}

	// Names embed the creation timestamp.
	slices.SortFunc(backups, func(a, b BackupInfo) int {
		return strings.Compare(a.Filename, b.Filename)
	})
	return backups, nil
}

// DeleteBackup deletes a specific backup file
func DeleteBackup(backupPath string) error {
	if err := os.Remove(backupPath); err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	return nil
}

// addToArchive writes the catalog file as the single archive entry
func addToArchive(tarWriter *tar.Writer, path string, info os.FileInfo) error {
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = filepath.Base(path)

	if err := tarWriter.WriteHeader(header); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(tarWriter, file)
	return err
}

// cleanupOldBackups removes old backups exceeding the maximum count
func cleanupOldBackups(backupDir string, maxBackups int) error {
	backups, err := ListBackups(backupDir)
	if err != nil {
		return err
	}

	if len(backups) <= maxBackups {
		return nil
	}

	deleteCount := len(backups) - maxBackups
	for _, b := range backups[:deleteCount] {
		if err := os.Remove(b.Path); err != nil {
			slog.Warn("failed to delete old backup", "file", b.Filename, "error", err)
		}
	}

	return nil
}
