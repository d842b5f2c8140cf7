package faillog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendLineFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failures.log")
	log, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer log.Close()

	stamp := time.Date(2025, 9, 23, 18, 0, 0, 0, time.UTC)
	log.now = func() time.Time { return stamp }

	if err := log.Append("alice", "write report", "fcm down"); err != nil {
		t.Fatalf("append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "[2025-09-23T18:00:00Z] Failed to send notification to alice for task write report: fcm down\n"
	if string(data) != want {
		t.Fatalf("line = %q, want %q", data, want)
	}
}

func TestAppendAccumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failures.log")
	log, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := log.Append("alice", "a", "x"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := log.Append("bob", "b", "y"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening appends, it never truncates.
	log, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := log.Append("carol", "c", "z"); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	log.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
}

func TestAppendAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failures.log")
	log, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	log.Close()

	if err := log.Append("alice", "a", "x"); err == nil {
		t.Fatal("append after close must fail")
	}
}
