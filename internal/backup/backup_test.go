// file: internal/backup/backup_test.go
// version: 2.0.0
// guid: c3d4e5f6-a7b8-9c0d-1e2f-3a4b5c6d7e8f

package backup

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jdfalk/library-catalog/internal/fileops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = "id,title,author,year\n1,Dune,Herbert,1965\n"

func writeCatalog(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "library.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestDefaultBackupConfig tests the default backup configuration
func TestDefaultBackupConfig(t *testing.T) {
	// Arrange-Act
	config := DefaultBackupConfig()

	// Assert
	if config.BackupDir != "backups" {
		t.Errorf("Expected BackupDir to be 'backups', got '%s'", config.BackupDir)
	}

	if config.MaxBackups != 10 {
		t.Errorf("Expected MaxBackups to be 10, got %d", config.MaxBackups)
	}

	if config.CompressionLevel != gzip.BestCompression {
		t.Errorf("Expected CompressionLevel to be %d, got %d", gzip.BestCompression, config.CompressionLevel)
	}
}

// TestCreateBackupSuccess tests creating a backup of a catalog file
func TestCreateBackupSuccess(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	catalogPath := writeCatalog(t, dir, sampleCatalog)
	config := DefaultBackupConfig()
	config.BackupDir = filepath.Join(dir, "nested", "backups")

	// Act
	info, err := CreateBackup(catalogPath, config)

	// Assert
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(info.Filename, "catalog_"))
	assert.True(t, strings.HasSuffix(info.Filename, ".tar.gz"))
	assert.FileExists(t, info.Path)
	assert.Positive(t, info.Size)

	sum, err := fileops.ComputeFileHash(info.Path)
	require.NoError(t, err)
	assert.Equal(t, sum, info.Checksum)
}

// TestCreateBackupMissingCatalog tests that a missing catalog file is an error
func TestCreateBackupMissingCatalog(t *testing.T) {
	dir := t.TempDir()
	config := DefaultBackupConfig()
	config.BackupDir = filepath.Join(dir, "backups")

	_, err := CreateBackup(filepath.Join(dir, "nope.csv"), config)
	if err == nil {
		t.Fatal("Expected error for missing catalog file")
	}
}

// TestCreateBackupDirectoryPath tests that a directory is rejected as catalog
func TestCreateBackupDirectoryPath(t *testing.T) {
	dir := t.TempDir()
	config := DefaultBackupConfig()
	config.BackupDir = filepath.Join(dir, "backups")

	_, err := CreateBackup(dir, config)
	assert.Error(t, err)
}

// TestRestoreBackup tests that restore brings back the snapshot contents
func TestRestoreBackup(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	catalogPath := writeCatalog(t, dir, sampleCatalog)
	config := DefaultBackupConfig()
	config.BackupDir = filepath.Join(dir, "backups")

	info, err := CreateBackup(catalogPath, config)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(catalogPath, []byte("id,title,author,year\n"), 0o644))

	// Act
	err = RestoreBackup(info.Path, catalogPath)

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(catalogPath)
	require.NoError(t, err)
	assert.Equal(t, sampleCatalog, string(data))
}

// TestRestoreBackupToNewPath tests restoring to a file that does not exist yet
func TestRestoreBackupToNewPath(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeCatalog(t, dir, sampleCatalog)
	config := DefaultBackupConfig()
	config.BackupDir = filepath.Join(dir, "backups")

	info, err := CreateBackup(catalogPath, config)
	require.NoError(t, err)

	target := filepath.Join(dir, "restored.csv")
	require.NoError(t, RestoreBackup(info.Path, target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, sampleCatalog, string(data))
}

// TestRestoreBackupInvalidPath tests restoring from a missing or corrupt file
func TestRestoreBackupInvalidPath(t *testing.T) {
	dir := t.TempDir()

	if err := RestoreBackup(filepath.Join(dir, "missing.tar.gz"), filepath.Join(dir, "out.csv")); err == nil {
		t.Error("Expected error for missing backup file")
	}

	corrupt := filepath.Join(dir, "catalog_corrupt.tar.gz")
	require.NoError(t, os.WriteFile(corrupt, []byte("not gzip"), 0o644))
	if err := RestoreBackup(corrupt, filepath.Join(dir, "out.csv")); err == nil {
		t.Error("Expected error for corrupt backup file")
	}
}

// TestListBackups tests listing only catalog backups, oldest first
func TestListBackups(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	catalogPath := writeCatalog(t, dir, sampleCatalog)
	config := DefaultBackupConfig()
	config.BackupDir = filepath.Join(dir, "backups")

	first, err := CreateBackup(catalogPath, config)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := CreateBackup(catalogPath, config)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(config.BackupDir, "notes.txt"), []byte("x"), 0o644))

	// Act
	backups, err := ListBackups(config.BackupDir)

	// Assert
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, first.Filename, backups[0].Filename)
	assert.Equal(t, second.Filename, backups[1].Filename)
	assert.Equal(t, first.Checksum, backups[0].Checksum)
}

// TestListBackupsEmptyDirectory tests listing a directory that does not exist
func TestListBackupsEmptyDirectory(t *testing.T) {
	backups, err := ListBackups(filepath.Join(t.TempDir(), "none"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("Expected 0 backups, got %d", len(backups))
	}
}

// TestDeleteBackup tests deleting a backup file
func TestDeleteBackup(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeCatalog(t, dir, sampleCatalog)
	config := DefaultBackupConfig()
	config.BackupDir = filepath.Join(dir, "backups")

	info, err := CreateBackup(catalogPath, config)
	require.NoError(t, err)

	require.NoError(t, DeleteBackup(info.Path))
	assert.NoFileExists(t, info.Path)
	assert.Error(t, DeleteBackup(info.Path), "second delete should fail")
}

// TestCleanupOldBackups tests that only MaxBackups snapshots are kept
func TestCleanupOldBackups(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	catalogPath := writeCatalog(t, dir, sampleCatalog)
	config := DefaultBackupConfig()
	config.BackupDir = filepath.Join(dir, "backups")
	config.MaxBackups = 2

	// Act
	var created []*BackupInfo
	for i := 0; i < 4; i++ {
		info, err := CreateBackup(catalogPath, config)
		require.NoError(t, err)
		created = append(created, info)
		time.Sleep(2 * time.Millisecond)
	}

	// Assert
	backups, err := ListBackups(config.BackupDir)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, created[2].Filename, backups[0].Filename)
	assert.Equal(t, created[3].Filename, backups[1].Filename)
}

// TestBackupDifferentCompressionLevels tests each gzip level round-trips
func TestBackupDifferentCompressionLevels(t *testing.T) {
	levels := []int{gzip.NoCompression, gzip.BestSpeed, gzip.DefaultCompression, gzip.BestCompression}

	for _, level := range levels {
		dir := t.TempDir()
		catalogPath := writeCatalog(t, dir, sampleCatalog)
		config := BackupConfig{BackupDir: filepath.Join(dir, "backups"), MaxBackups: 5, CompressionLevel: level}

		info, err := CreateBackup(catalogPath, config)
		if err != nil {
			t.Fatalf("level %d: unexpected error: %v", level, err)
		}

		target := filepath.Join(dir, "out.csv")
		require.NoError(t, RestoreBackup(info.Path, target))
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, sampleCatalog, string(data), "level %d", level)
	}
}

// TestBackupInvalidCompressionLevel tests that a bad level leaves no file behind
func TestBackupInvalidCompressionLevel(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeCatalog(t, dir, sampleCatalog)
	config := BackupConfig{BackupDir: filepath.Join(dir, "backups"), MaxBackups: 5, CompressionLevel: 42}

	_, err := CreateBackup(catalogPath, config)
	require.Error(t, err)

	entries, err := os.ReadDir(config.BackupDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
