package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v, want nil", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`time=2026-10-19T10:00:00.000Z level=WARN msg="snippet fetch failed" error="boom"`, "WARN"},
		{`time=2026-10-19T10:00:00.000Z level=info msg=polled`, "INFO"},
		{`snipday 2026/10/19 10:00:00 plain log line`, ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Level(tt.line); got != tt.want {
			t.Errorf("Level(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
