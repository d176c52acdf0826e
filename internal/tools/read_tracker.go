package tools

import (
	"path/filepath"
	"sync"
)

// FileReadTracker tracks which files were viewed recently, for
// view-before-edit enforcement: an edit batch is only accepted if the agent
// holds fresh tags, and fresh tags come from a recent view of the file.
type FileReadTracker struct {
	mu           sync.Mutex
	readFiles    []fileReadEntry
	maxEntries   int
	currentMsgID int // incremented once per agent turn
}

type fileReadEntry struct {
	path      string
	messageID int
}

// Global tracker shared between the view and edit tools
var globalReadTracker = &FileReadTracker{maxEntries: 10}

// GetReadTracker returns the global file read tracker
func GetReadTracker() *FileReadTracker {
	return globalReadTracker
}

// RecordRead records that a file was viewed
func (t *FileReadTracker) RecordRead(path string, messageID int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	t.readFiles = append(t.readFiles, fileReadEntry{path: absPath, messageID: messageID})

	if len(t.readFiles) > t.maxEntries*5 {
		t.readFiles = t.readFiles[len(t.readFiles)-t.maxEntries*5:]
	}
}

// WasReadRecently checks if a file was viewed within the last N messages
func (t *FileReadTracker) WasReadRecently(path string, currentMessageID, withinMessages int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	minMessageID := currentMessageID - withinMessages
	for _, entry := range t.readFiles {
		if entry.path == absPath && entry.messageID >= minMessageID {
			return true
		}
	}
	return false
}

// CurrentMessageID returns the current message ID
func (t *FileReadTracker) CurrentMessageID() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentMsgID
}

// NextMessage increments and returns the new message ID (call once per agent turn)
func (t *FileReadTracker) NextMessage() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentMsgID++
	return t.currentMsgID
}
