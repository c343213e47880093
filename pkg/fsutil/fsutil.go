// Package fsutil provides file system safety primitives for postlint:
// fingerprinted reads, concurrent-modification detection, and atomic writes.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for categorization via errors.Is.
var (
	// ErrNilFingerprint is returned when a nil Fingerprint is passed.
	ErrNilFingerprint = errors.New("nil fingerprint")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// Fingerprint captures the state of a file at read time. It is used to
// detect external modification before a rewrite.
type Fingerprint struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission bits, preserved on rewrite.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the content.
	Hash [32]byte
}

// ReadFile reads a file and returns its content plus a Fingerprint for
// modification detection.
func ReadFile(ctx context.Context, path string) ([]byte, *Fingerprint, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	fp := &Fingerprint{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}

	return content, fp, nil
}

// Modified reports whether the file changed since the Fingerprint was taken.
// A deleted file counts as modified. Mod time and size are checked first;
// on a match the content is re-read and re-hashed.
func Modified(ctx context.Context, fp *Fingerprint) (bool, error) {
	if fp == nil {
		return false, ErrNilFingerprint
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check modified: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(fp.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", fp.Path, err)
	}

	if !stat.ModTime().Equal(fp.ModTime) || stat.Size() != fp.Size {
		return true, nil
	}

	content, err := os.ReadFile(fp.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", fp.Path, err)
	}

	return sha256.Sum256(content) != fp.Hash, nil
}
