package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
)

var testNow = time.Date(2026, 10, 15, 21, 30, 0, 0, time.Local)

func encodeBundle(t *testing.T, titles ...string) []byte {
	t.Helper()
	cats := models.DefaultCategories()
	var habits []models.Habit
	for _, title := range titles {
		habits = append(habits, models.NewHabit(title, cats[0].ID))
	}
	data, err := storage.EncodeBundle(storage.Bundle{Habits: habits, Categories: cats, ExportedAt: testNow})
	if err != nil {
		t.Fatalf("EncodeBundle failed: %v", err)
	}
	return data
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(t.TempDir()).WithClock(func() time.Time { return testNow })
}

func TestCreateBackup(t *testing.T) {
	mgr := newTestManager(t)
	path, err := mgr.CreateBackup(encodeBundle(t, "Read"))
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Base(path) != "habitkit-20261015-2130.json" {
		t.Errorf("unexpected backup name %s", filepath.Base(path))
	}
	if filepath.Dir(path) != mgr.GetBackupDir() {
		t.Errorf("backup written outside %s", mgr.GetBackupDir())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("backup unreadable: %v", err)
	}
	if _, err := storage.DecodeBundle(data); err != nil {
		t.Errorf("backup is not a valid bundle: %v", err)
	}
}

func TestCreateBackupRejectsInvalidExport(t *testing.T) {
	mgr := newTestManager(t)
	if _, err := mgr.CreateBackup([]byte("not json")); err == nil {
		t.Error("expected invalid export to be rejected")
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	mgr := newTestManager(t)
	bundle := encodeBundle(t)
	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		path, err := mgr.CreateBackup(bundle)
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 4 {
		t.Errorf("expected 4 backups, got %d", len(backups))
	}
}

func TestBackupRotation(t *testing.T) {
	dir := t.TempDir()
	bundle := encodeBundle(t)
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	for i := 0; i < 20; i++ {
		at := start.AddDate(0, 0, i)
		mgr := NewManager(dir).WithClock(func() time.Time { return at })
		if _, err := mgr.CreateBackup(bundle); err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
	}

	backups, err := NewManager(dir).ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 14 {
		t.Fatalf("expected 14 backups after rotation, got %d", len(backups))
	}
	newest := start.AddDate(0, 0, 19)
	if !backups[0].Timestamp.Equal(newest) {
		t.Errorf("newest backup = %v, want %v", backups[0].Timestamp, newest)
	}
	oldestKept := start.AddDate(0, 0, 6)
	if !backups[13].Timestamp.Equal(oldestKept) {
		t.Errorf("oldest kept = %v, want %v", backups[13].Timestamp, oldestKept)
	}
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	mgr := newTestManager(t)
	if backups, err := mgr.ListBackups(); err != nil || len(backups) != 0 {
		t.Fatalf("ListBackups on a missing dir = %v, %v", backups, err)
	}

	if _, err := mgr.CreateBackup(encodeBundle(t)); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	for _, name := range []string{"notes.txt", "habitkit-garbage.json", "habitkit-20261015-2130.db"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		name string
		want time.Time
		ok   bool
	}{
		{"habitkit-20261015-2130.json", time.Date(2026, 10, 15, 21, 30, 0, 0, time.Local), true},
		{"habitkit-20261015-213045.json", time.Date(2026, 10, 15, 21, 30, 45, 0, time.Local), true},
		{"habitkit-20261015-213045-3.json", time.Date(2026, 10, 15, 21, 30, 45, 0, time.Local), true},
		{"habitkit-2026.json", time.Time{}, false},
		{"other-20261015-2130.json", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := parseBackupName(tt.name)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("parseBackupName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRestoreBackup(t *testing.T) {
	mgr := newTestManager(t)
	path, err := mgr.CreateBackup(encodeBundle(t, "Old habit"))
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	bundle, err := mgr.RestoreBackup(path, encodeBundle(t, "Current habit"))
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if len(bundle.Habits) != 1 || bundle.Habits[0].Title != "Old habit" {
		t.Errorf("restored bundle = %+v", bundle.Habits)
	}

	backups, _ := mgr.ListBackups()
	if len(backups) != 2 {
		t.Errorf("expected a pre-restore backup, got %d backups", len(backups))
	}

	if _, err := mgr.RestoreBackup(mgr.Resolve(filepath.Base(path)), nil); err != nil {
		t.Errorf("RestoreBackup by bare name failed: %v", err)
	}
}

func TestRestoreBackupErrors(t *testing.T) {
	mgr := newTestManager(t)
	if _, err := mgr.RestoreBackup(filepath.Join(mgr.GetBackupDir(), "missing.json"), nil); err == nil ||
		!strings.Contains(err.Error(), "does not exist") {
		t.Errorf("expected missing file error, got %v", err)
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(corrupt, []byte(`{"habits": 3}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(corrupt, nil); err == nil || !strings.Contains(err.Error(), "corrupted") {
		t.Errorf("expected corruption error, got %v", err)
	}
}
