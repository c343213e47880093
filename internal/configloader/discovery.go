package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// configFileNames are the config file names searched for, in order of
// preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var configFileNames = []string{
	".postlint.yml",
	".postlint.yaml",
	"postlint.yml",
	"postlint.yaml",
}

// FindConfigFile searches upward from startDir for a config file. The search
// stops at the repository boundary: a directory containing .git is the last
// one examined. Returns the empty string when no config file exists.
func FindConfigFile(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	currentDir := absDir
	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		for _, name := range configFileNames {
			path := filepath.Join(currentDir, name)
			if fileExists(path) {
				return path, nil
			}
		}

		// The repository root bounds the search: a config file above it
		// would belong to a different project.
		if isRepoRoot(currentDir) {
			return "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// isRepoRoot returns true if the directory contains a .git entry.
func isRepoRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
