// Package runner provides multi-file orchestration: posting discovery and
// concurrent pipeline execution.
package runner

import (
	"time"

	"github.com/yaklabco/postlint/pkg/config"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified files or directories to process. A
	// directory means its index.md. If empty, the content directories under
	// WorkingDir are scanned instead.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// the content directories. If empty, the current process working
	// directory is used.
	WorkingDir string

	// ContentDirs are the directories scanned when no Paths are given,
	// relative to WorkingDir. Defaults to DefaultContentDirs().
	ContentDirs []string

	// ConfigModTime is the modification time of the loaded config file.
	// During a scan, postings older than the config file are skipped unless
	// they are drafts. The zero value disables the age filter.
	ConfigModTime time.Time

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultContentDirs returns the directories where blog postings are
// expected. The content directory itself can hold entries which are not
// postings, so it is never scanned as a whole.
func DefaultContentDirs() []string {
	return []string{
		"content/post",
		"content/posts",
		"content/blog",
		"content/blogs",
		"content/businesses",
		"content/places",
		"content/restaurants",
		"content/trips",
		"content/events",
	}
}

// effectiveContentDirs returns the content directories, defaulting if empty.
func (o Options) effectiveContentDirs() []string {
	if len(o.ContentDirs) == 0 {
		return DefaultContentDirs()
	}
	return o.ContentDirs
}
