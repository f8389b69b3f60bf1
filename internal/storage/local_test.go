package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestLocalClient(t *testing.T) *LocalStorageClient {
	t.Helper()
	client, err := NewLocalStorageClient(filepath.Join(t.TempDir(), "reports"))
	if err != nil {
		t.Fatalf("Failed to create LocalStorageClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewLocalStorageClient(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	client, err := NewLocalStorageClient(dir)
	if err != nil {
		t.Fatalf("Failed to create LocalStorageClient: %v", err)
	}
	defer client.Close()

	if client.BaseDir() != dir {
		t.Errorf("Expected base dir %s, got %s", dir, client.BaseDir())
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("base directory was not created")
	}
}

func TestLocalStorageClient_StoreAndGetFile(t *testing.T) {
	client := newTestLocalClient(t)
	ctx := context.Background()

	path := "2025/09/17/EchoReport-trappist-1-2025-09-17-14-30-45/prediction.json"
	data := []byte(`{"prediction":"CONFIRMED"}`)

	if err := client.StoreFile(ctx, path, data); err != nil {
		t.Fatalf("StoreFile failed: %v", err)
	}

	onDisk := filepath.Join(client.BaseDir(), filepath.FromSlash(path))
	if _, err := os.Stat(onDisk); err != nil {
		t.Errorf("Expected file at %s: %v", onDisk, err)
	}

	got, err := client.GetFile(ctx, path)
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Expected %s, got %s", data, got)
	}
}

func TestLocalStorageClient_GetFileMissing(t *testing.T) {
	client := newTestLocalClient(t)

	_, err := client.GetFile(context.Background(), "missing/index.html")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLocalStorageClient_RejectsTraversal(t *testing.T) {
	client := newTestLocalClient(t)
	ctx := context.Background()

	if err := client.StoreFile(ctx, "../escape.txt", []byte("x")); err == nil {
		t.Error("Expected StoreFile to reject a path outside the base directory")
	}
	if _, err := client.GetFile(ctx, "../../etc/passwd"); err == nil {
		t.Error("Expected GetFile to reject a path outside the base directory")
	}
	if _, err := client.FileExists(ctx, "/etc/passwd"); err == nil {
		t.Error("Expected FileExists to reject an absolute path")
	}
}

func TestLocalStorageClient_FileExists(t *testing.T) {
	client := newTestLocalClient(t)
	ctx := context.Background()

	if err := client.StoreFile(ctx, "a/b/file.txt", []byte("hello")); err != nil {
		t.Fatalf("StoreFile failed: %v", err)
	}

	tests := []struct {
		path     string
		expected bool
	}{
		{"a/b/file.txt", true},
		{"a/b/other.txt", false},
		{"a/b", false}, // directories are not files
	}
	for _, tt := range tests {
		exists, err := client.FileExists(ctx, tt.path)
		if err != nil {
			t.Errorf("FileExists(%s) returned error: %v", tt.path, err)
			continue
		}
		if exists != tt.expected {
			t.Errorf("FileExists(%s): expected %v, got %v", tt.path, tt.expected, exists)
		}
	}
}

func TestLocalStorageClient_StoreFileCancelled(t *testing.T) {
	client := newTestLocalClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := client.StoreFile(ctx, "a.txt", []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestLocalStorageClient_ListReports(t *testing.T) {
	client := newTestLocalClient(t)
	ctx := context.Background()

	stamps := []struct {
		system string
		ts     time.Time
	}{
		{"trappist-1", time.Date(2025, 9, 17, 10, 0, 0, 0, time.UTC)},
		{"kepler-62", time.Date(2025, 9, 18, 10, 0, 0, 0, time.UTC)},
		{"tess-14", time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)},
	}
	for _, s := range stamps {
		folder := GenerateReportFolderPath(s.system, s.ts)
		if err := client.StoreFile(ctx, folder+"/index.html", []byte("<html></html>")); err != nil {
			t.Fatalf("StoreFile failed: %v", err)
		}
		if err := client.StoreFile(ctx, folder+"/prediction.json", []byte("{}")); err != nil {
			t.Fatalf("StoreFile failed: %v", err)
		}
	}
	// stray index files outside a report folder are ignored
	if err := client.StoreFile(ctx, "index.html", []byte("root")); err != nil {
		t.Fatalf("StoreFile failed: %v", err)
	}

	reports, err := client.ListReports(ctx, 0)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("Expected 3 reports, got %d", len(reports))
	}

	expected := []string{"kepler-62", "trappist-1", "tess-14"}
	for i, system := range expected {
		if reports[i].System != system {
			t.Errorf("Report %d: expected system %s, got %s", i, system, reports[i].System)
		}
	}
	if reports[0].Index != reports[0].Folder+"/index.html" {
		t.Errorf("Expected index path inside folder, got %s", reports[0].Index)
	}
	if reports[0].Size != int64(len("<html></html>")) {
		t.Errorf("Expected size %d, got %d", len("<html></html>"), reports[0].Size)
	}

	limited, err := client.ListReports(ctx, 1)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(limited) != 1 || limited[0].System != "kepler-62" {
		t.Errorf("Expected only the newest report, got %+v", limited)
	}
}

func TestLocalStorageClient_ListReportsEmpty(t *testing.T) {
	client := newTestLocalClient(t)

	reports, err := client.ListReports(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("Expected no reports, got %d", len(reports))
	}
}
