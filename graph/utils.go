package graph

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var verboseFlag bool

// EnableVerboseLogging enables verbose logging mode.
func EnableVerboseLogging() {
	verboseFlag = true
}

// Log logs a message if verbose logging is enabled.
func Log(message string, args ...interface{}) {
	if verboseFlag {
		log.Println(message, args)
	}
}

// Fmt prints formatted output if verbose logging is enabled.
func Fmt(format string, args ...interface{}) {
	if verboseFlag {
		fmt.Printf(format, args...)
	}
}

// IsGitHubActions checks if running in GitHub Actions environment.
func IsGitHubActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// extractVisibilityModifier returns the first PHP visibility keyword found
// in a whitespace-separated modifier string, or "" if none is present.
func extractVisibilityModifier(modifiers string) string {
	for _, word := range strings.Fields(modifiers) {
		switch word {
		case "public", "private", "protected":
			return word
		}
	}
	return ""
}

// matchGlob reports whether relPath matches pattern, treating pattern
// segments the way filepath.Match does but also allowing a bare directory
// name (no slash) to match that directory anywhere in relPath.
func matchGlob(pattern, relPath string) (bool, error) {
	if !strings.Contains(pattern, "/") {
		for _, part := range strings.Split(filepath.ToSlash(relPath), "/") {
			if ok, err := filepath.Match(pattern, part); err != nil {
				return false, err
			} else if ok {
				return true, nil
			}
		}
		return false, nil
	}
	return filepath.Match(pattern, filepath.ToSlash(relPath))
}

// readFile reads the contents of a file.
func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// collectPHPFiles walks root and returns every ".php" file path, filtered by
// cfg.Excludes, in sorted absolute-path order. Sorting up front is what
// gives the whole pipeline its determinism guarantee.
func collectPHPFiles(root string, cfg ScanConfig) ([]string, error) {
	roots := cfg.Paths
	if len(roots) == 0 {
		roots = []string{"."}
	}

	seen := make(map[string]bool)
	var files []string

	for _, sub := range roots {
		base := filepath.Join(root, sub)
		err := filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable entries are skipped, not fatal
			}
			if info.IsDir() {
				return nil
			}
			if filepath.Ext(path) != ".php" {
				return nil
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return nil
			}
			rel, err := filepath.Rel(root, abs)
			if err != nil {
				rel = abs
			}
			if cfg.excluded(filepath.ToSlash(rel)) {
				return nil
			}
			if !seen[abs] {
				seen[abs] = true
				files = append(files, abs)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
