package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/storage"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// BackupInfo describes one backup file.
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager writes export bundles into a backups directory and keeps the
// newest constants.MaxBackups of them.
type Manager struct {
	backupDir string
	now       func() time.Time
}

// NewManager keeps backups in <dataDir>/backups.
func NewManager(dataDir string) *Manager {
	return &Manager{
		backupDir: filepath.Join(dataDir, constants.BackupDirName),
		now:       time.Now,
	}
}

// WithClock replaces the clock used to name backups.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup stores bundle, an encoded export, as a new backup and rotates
// old ones.
func (m *Manager) CreateBackup(bundle []byte) (string, error) {
	return m.createBackup(bundle, false)
}

// skipRotation keeps the pre-restore snapshot from evicting the backup
// being restored.
func (m *Manager) createBackup(bundle []byte, skipRotation bool) (string, error) {
	if _, err := storage.DecodeBundle(bundle); err != nil {
		return "", fmt.Errorf("refusing to back up an invalid export: %w", err)
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.uniquePath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(backupPath, bundle, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("Backup created", "path", backupPath)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// uniquePath names the backup by minute, falling back to seconds and then a
// counter when several backups land in the same minute.
func (m *Manager) uniquePath() (string, error) {
	now := m.now()
	path := m.pathFor(now.Format(minuteLayout))
	if !exists(path) {
		return path, nil
	}
	stamp := now.Format(secondLayout)
	path = m.pathFor(stamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = m.pathFor(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return path, nil
}

func (m *Manager) pathFor(stamp string) string {
	return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ListBackups returns every recognizable backup, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		timestamp, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseBackupName extracts the timestamp from habitkit-YYYYMMDD-HHMM[SS][-N].json.
func parseBackupName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	// a trailing counter is all digits and never 4 or 6 long like a clock part
	parts := strings.Split(stamp, "-")
	if len(parts) > 2 {
		last := parts[len(parts)-1]
		if len(last) != 4 && len(last) != 6 && isDigits(last) {
			stamp = strings.Join(parts[:len(parts)-1], "-")
		}
	}

	for _, layout := range []string{minuteLayout, secondLayout} {
		if t, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("Removed old backup", "path", backups[i].Path)
	}
	return nil
}

// RestoreBackup reads and validates a backup. When current is non-nil it is
// saved first as a snapshot of the data about to be replaced. The caller
// applies the returned bundle to the store.
func (m *Manager) RestoreBackup(backupPath string, current []byte) (storage.Bundle, error) {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return storage.Bundle{}, fmt.Errorf("backup file does not exist: %s", backupPath)
		}
		return storage.Bundle{}, fmt.Errorf("failed to read backup: %w", err)
	}
	bundle, err := storage.DecodeBundle(data)
	if err != nil {
		return storage.Bundle{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if current != nil {
		snapshot, err := m.createBackup(current, true)
		if err != nil {
			return storage.Bundle{}, fmt.Errorf("failed to back up current data before restore: %w", err)
		}
		logger.Info("Created pre-restore backup", "path", snapshot)
	}
	return bundle, nil
}

// Resolve accepts either a path or the bare file name of a listed backup.
func (m *Manager) Resolve(name string) string {
	if filepath.IsAbs(name) || strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	return filepath.Join(m.backupDir, name)
}
