package tools

import (
	"path/filepath"
	"testing"
)

func TestNormalizeAndValidatePath(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		input   string
		want    string
		outside bool
	}{
		{"relative inside", "src/main.go", filepath.Join(root, "src", "main.go"), false},
		{"absolute inside", filepath.Join(root, "a.txt"), filepath.Join(root, "a.txt"), false},
		{"dot segments resolved", "src/../a.txt", filepath.Join(root, "a.txt"), false},
		{"escapes workspace", "../elsewhere.txt", filepath.Join(filepath.Dir(root), "elsewhere.txt"), true},
		{"absolute outside", "/tmp/other.txt", "/tmp/other.txt", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outside, err := NormalizeAndValidatePath(root, tt.input)
			if err != nil {
				t.Fatalf("NormalizeAndValidatePath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
			if outside != tt.outside {
				t.Errorf("outside = %v, want %v", outside, tt.outside)
			}
		})
	}
}

func TestFileReadTracker(t *testing.T) {
	tracker := &FileReadTracker{maxEntries: 10}

	msg := tracker.NextMessage()
	tracker.RecordRead("/ws/a.txt", msg)

	if !tracker.WasReadRecently("/ws/a.txt", msg, 1) {
		t.Error("fresh read not found")
	}
	if tracker.WasReadRecently("/ws/b.txt", msg, 1) {
		t.Error("unread file reported as read")
	}

	// Age the entry past the window.
	for i := 0; i < 3; i++ {
		tracker.NextMessage()
	}
	if tracker.WasReadRecently("/ws/a.txt", tracker.CurrentMessageID(), 2) {
		t.Error("stale read still reported as recent")
	}
}
