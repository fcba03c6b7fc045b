package ruleset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// candidateFiles is the default lookup order inside a working directory:
// YAML first, then the two legacy PHP-named files, matching spec.md §6's
// "guardrail.config.php then guardrail.php" generalized to a YAML-first
// convention.
var candidateFiles = []string{"guardrail.yaml", "guardrail.yml", "guardrail.config.php", "guardrail.php"}

// LoadConfig resolves and parses a guardrail configuration. If path names a
// file directly, that file is loaded regardless of extension; if path names
// a directory (or is ""), the default lookup order is tried inside it and
// the first existing file wins.
func LoadConfig(path string) (*RuleSetConfig, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", resolved, err)
	}

	var cfg *RuleSetConfig
	switch filepath.Ext(resolved) {
	case ".yaml", ".yml":
		cfg = &RuleSetConfig{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", resolved, err)
		}
	case ".php":
		cfg, err = parseLegacyPHPConfig(data)
		if err != nil {
			return nil, fmt.Errorf("parse legacy config %s: %w", resolved, err)
		}
	default:
		return nil, fmt.Errorf("unrecognized config extension: %s", resolved)
	}

	cfg.Source = resolved
	return cfg, nil
}

// resolvePath implements the default lookup order when path is empty or a
// directory; a path naming a file directly is returned unchanged.
func resolvePath(path string) (string, error) {
	if path == "" {
		path = "."
	}

	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		return path, nil
	}

	dir := path
	if err == nil && info.IsDir() {
		dir = path
	}
	for _, candidate := range candidateFiles {
		full := filepath.Join(dir, candidate)
		if _, err := os.Stat(full); err == nil {
			return full, nil
		}
	}
	return "", fmt.Errorf("no guardrail config found in %s (looked for %v)", dir, candidateFiles)
}

// IsLegacy reports whether a resolved config path is one of the deprecated
// PHP-literal formats, so callers can log a deprecation warning.
func IsLegacy(resolvedPath string) bool {
	return filepath.Ext(resolvedPath) == ".php"
}
