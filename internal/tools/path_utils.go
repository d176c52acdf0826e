package tools

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizeAndValidatePath normalizes a path and checks if it's outside workspace
// Returns: (normalizedPath, isOutside, error)
func NormalizeAndValidatePath(workspaceRoot, inputPath string) (string, bool, error) {
	path := inputPath
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}
		path = filepath.Join(home, path[2:])
	}

	var absPath string
	if filepath.IsAbs(path) {
		absPath = path
	} else {
		absPath = filepath.Join(workspaceRoot, path)
	}

	// Resolve .. and . before the containment check
	absPath = filepath.Clean(absPath)
	workspaceAbs := filepath.Clean(workspaceRoot)

	relPath, err := filepath.Rel(workspaceAbs, absPath)
	if err != nil {
		return "", false, err
	}

	outside := strings.HasPrefix(relPath, "..")
	return absPath, outside, nil
}
