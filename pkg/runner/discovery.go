package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotMarkdown indicates an explicit argument that is neither a Markdown
// file nor a directory holding an index.md.
var ErrNotMarkdown = errors.New("not a Markdown file")

// Discover resolves the postings to process. Explicit paths are validated
// one by one; without paths the content directories are scanned and filtered
// by age. The returned list is deterministically sorted.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	if len(opts.Paths) > 0 {
		return resolveExplicitPaths(opts.Paths, workDir)
	}

	var files []string
	for _, dir := range opts.effectiveContentDirs() {
		root := dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(workDir, root)
		}

		discovered, err := scanContentDir(ctx, root, opts)
		if err != nil {
			return nil, err
		}
		files = append(files, discovered...)
	}

	sort.Strings(files)
	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// resolveExplicitPaths validates user-given arguments. A directory stands
// for its index.md, the page bundle convention. Explicit arguments bypass
// the age filter: the user asked for exactly these files.
func resolveExplicitPaths(paths []string, workDir string) ([]string, error) {
	files := make([]string, 0, len(paths))

	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		if info.IsDir() {
			index := filepath.Join(abs, "index.md")
			if indexInfo, err := os.Stat(index); err == nil && indexInfo.Mode().IsRegular() {
				files = append(files, index)
				continue
			}
			return nil, fmt.Errorf("%w: %s has no index.md", ErrNotMarkdown, p)
		}

		if !strings.HasSuffix(abs, ".md") {
			return nil, fmt.Errorf("%w: %s", ErrNotMarkdown, p)
		}
		files = append(files, abs)
	}

	return files, nil
}

// scanContentDir walks one content directory for Markdown files passing the
// age filter. A missing directory is not an error; Hugo sites rarely have
// every section.
func scanContentDir(ctx context.Context, root string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsNotExist(walkErr) || os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(entry.Name(), ".md") {
			return nil
		}

		include, err := wantFile(path, entry, opts)
		if err != nil {
			return err
		}
		if include {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	return files, nil
}

// wantFile applies the age filter during a scan. Files at least as new as
// the config file are always processed; older files only when they are
// drafts, which the author is clearly still working on.
func wantFile(path string, entry fs.DirEntry, opts Options) (bool, error) {
	if opts.Config != nil && opts.Config.All {
		return true, nil
	}
	if opts.ConfigModTime.IsZero() {
		return true, nil
	}

	info, err := entry.Info()
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.ModTime().Before(opts.ConfigModTime) {
		return true, nil
	}

	// Cheap substring probe instead of a full frontmatter parse.
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return strings.Contains(string(content), "draft: true"), nil
}
