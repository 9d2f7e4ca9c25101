package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitkit/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withConfigDir(t *testing.T, dir string) {
	t.Helper()
	old := userConfigDirFunc
	t.Cleanup(func() { userConfigDirFunc = old })
	userConfigDirFunc = func() (string, error) { return dir, nil }
}

func withProcess(t *testing.T, executable string) {
	t.Helper()
	old := findProcessFunc
	t.Cleanup(func() { findProcessFunc = old })
	findProcessFunc = func(pid int) (ps.Process, error) {
		if executable == "" {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: executable}, nil
	}
}

func TestTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	withConfigDir(t, tempDir)

	want := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := TrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != want {
		t.Errorf("expected %s, got %s", want, dir)
	}

	if err := os.MkdirAll(want, 0755); err != nil {
		t.Fatal(err)
	}
	customDir := "/custom/habitkit/dir"
	settings := fmt.Sprintf(`{"settings": {"lockfile_dir": %q}}`, customDir)
	if err := os.WriteFile(filepath.Join(want, "settings.json"), []byte(settings), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = TrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		executable string
		wantErr    string
	}{
		{name: "valid", content: "8080|1234|s3cret", executable: "habitkit-tray"},
		{name: "malformed", content: "8080|1234", executable: "habitkit-tray", wantErr: "malformed"},
		{name: "empty port", content: "|1234|s3cret", executable: "habitkit-tray", wantErr: "port in lockfile is empty"},
		{name: "port out of range", content: "70000|1234|s3cret", executable: "habitkit-tray", wantErr: "outside valid range"},
		{name: "bad pid", content: "8080|abc|s3cret", executable: "habitkit-tray", wantErr: "invalid process ID"},
		{name: "empty secret", content: "8080|1234| ", executable: "habitkit-tray", wantErr: "secret in lockfile is empty"},
		{name: "process gone", content: "8080|1234|s3cret", executable: "", wantErr: "not running"},
		{name: "wrong process", content: "8080|1234|s3cret", executable: "bash", wantErr: "is not habitkit-tray"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withProcess(t, tt.executable)
			path := filepath.Join(t.TempDir(), constants.NotifierLockfileName)
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			port, secret, err := findAndValidateTrayProcess(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if port != "8080" || secret != "s3cret" {
				t.Errorf("got port=%s secret=%s", port, secret)
			}
		})
	}

	t.Run("missing lockfile", func(t *testing.T) {
		_, _, err := findAndValidateTrayProcess(filepath.Join(t.TempDir(), "nope.lock"))
		if !errors.Is(err, ErrTrayNotRunning) {
			t.Errorf("expected ErrTrayNotRunning, got %v", err)
		}
	})
}

func TestNotifyDeliversPayload(t *testing.T) {
	var got WebhookPayload
	var secret string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret = r.Header.Get("X-Habitkit-Secret")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	configDir := t.TempDir()
	withConfigDir(t, configDir)
	withProcess(t, "habitkit-tray")
	lockDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		t.Fatal(err)
	}
	lock := fmt.Sprintf("%s|4242|topsecret", u.Port())
	if err := os.WriteFile(filepath.Join(lockDir, constants.NotifierLockfileName), []byte(lock), 0600); err != nil {
		t.Fatal(err)
	}

	if err := New().Notify(context.Background(), "Time for Read!"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if secret != "topsecret" {
		t.Errorf("expected secret header topsecret, got %q", secret)
	}
	if got.Text != "Time for Read!" || got.DurationMs != constants.NotificationDurationMs {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestSendRetriesOnFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	configDir := t.TempDir()
	withConfigDir(t, configDir)
	withProcess(t, "habitkit-tray")
	lockDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		t.Fatal(err)
	}
	lock := fmt.Sprintf("%s|4242|s", u.Port())
	if err := os.WriteFile(filepath.Join(lockDir, constants.NotifierLockfileName), []byte(lock), 0600); err != nil {
		t.Fatal(err)
	}

	n := New()
	n.retryDelay = time.Millisecond
	err = n.Notify(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected status 503 error, got %v", err)
	}
	if int(calls.Load()) != constants.NotifyMaxRetries {
		t.Errorf("expected %d attempts, got %d", constants.NotifyMaxRetries, calls.Load())
	}
}
