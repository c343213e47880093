// Package configloader provides configuration loading and resolution:
// upward config file discovery, legacy value normalization, include file
// merging, and fail-fast validation.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/postlint/pkg/config"
)

// ErrNoConfigFile indicates that no config file was given and none was found
// in the repository.
var ErrNoConfigFile = errors.New("no config file found")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for the config file.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from the -c flag).
	// If set, upward discovery is skipped.
	ExplicitPath string
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final validated configuration.
	Config *config.Config

	// Path is the config file that was loaded.
	Path string

	// ModTime is the config file's modification time, used by the runner's
	// age filter.
	ModTime time.Time
}

// Load resolves, parses, and validates the configuration.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	path := opts.ExplicitPath
	if path == "" {
		found, err := FindConfigFile(ctx, opts.WorkingDir)
		if err != nil {
			return nil, err
		}
		if found == "" {
			return nil, ErrNoConfigFile
		}
		path = found
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if err := resolveIncludes(cfg, path); err != nil {
		return nil, err
	}

	dedupeLists(cfg)

	if result := Validate(cfg); !result.Valid() {
		return nil, &result.Errors[0]
	}

	return &LoadResult{
		Config:  cfg,
		Path:    path,
		ModTime: info.ModTime(),
	}, nil
}

// loadConfigFile parses one YAML config file. Check toggles written in the
// legacy scalar forms ("1", "y", "yes", "0", "n", "no") are normalized to
// booleans before the typed unmarshal.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	normalized, err := normalizeToggles(content)
	if err != nil {
		return nil, err
	}

	cfg := config.NewConfig()
	if err := yaml.Unmarshal(normalized, cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return cfg, nil
}

// normalizeToggles rewrites legacy toggle values in the raw YAML document.
// Only keys starting with "check_" or "do_" are touched; everything else
// passes through untouched.
func normalizeToggles(content []byte) ([]byte, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if raw == nil {
		return content, nil
	}

	changed := false
	for key, value := range raw {
		if !strings.HasPrefix(key, "check_") && !strings.HasPrefix(key, "do_") {
			continue
		}
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch s {
		case "1", "y", "yes":
			raw[key] = true
			changed = true
		case "0", "n", "no":
			raw[key] = false
			changed = true
		}
	}

	if !changed {
		return content, nil
	}

	normalized, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize toggles: %w", err)
	}
	return normalized, nil
}

// resolveIncludes merges the include files referenced by the config into the
// corresponding lists. Include paths are relative to the config file.
func resolveIncludes(cfg *config.Config, configPath string) error {
	baseDir := filepath.Dir(configPath)

	if cfg.MissingTagsInclude != "" {
		var entries []config.WordTag
		if err := loadIncludeFile(baseDir, cfg.MissingTagsInclude, &entries); err != nil {
			return fmt.Errorf("missing_tags_include: %w", err)
		}
		for _, entry := range entries {
			if entry.Word != "" && entry.Tag != "" {
				cfg.MissingTags = append(cfg.MissingTags, entry)
			}
		}
	}

	if cfg.MissingWordsInclude != "" {
		var words []string
		if err := loadIncludeFile(baseDir, cfg.MissingWordsInclude, &words); err != nil {
			return fmt.Errorf("missing_words_include: %w", err)
		}
		cfg.MissingWords = append(cfg.MissingWords, words...)
	}

	if cfg.MissCursiveInclude != "" {
		var words []string
		if err := loadIncludeFile(baseDir, cfg.MissCursiveInclude, &words); err != nil {
			return fmt.Errorf("missing_cursive_include: %w", err)
		}
		cfg.MissingCursive = append(cfg.MissingCursive, words...)
	}

	return nil
}

// loadIncludeFile reads one YAML include file into out.
func loadIncludeFile(baseDir, include string, out any) error {
	path := include
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// dedupeLists removes duplicates from the word lists, keeping them sorted
// for deterministic rule output.
func dedupeLists(cfg *config.Config) {
	cfg.MissingWords = dedupe(cfg.MissingWords)
	cfg.MissingCursive = dedupe(cfg.MissingCursive)
	cfg.ForbiddenWords = dedupe(cfg.ForbiddenWords)
	cfg.ForbiddenWebsites = dedupe(cfg.ForbiddenWebsites)
	cfg.ForbiddenExifTags = dedupe(cfg.ForbiddenExifTags)
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
