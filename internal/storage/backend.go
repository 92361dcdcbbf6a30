// Package storage saves painting images and their thumbnails to a blob
// backend and turns stored paths into public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// UploadsRoute is the URL prefix local files are served under.
const UploadsRoute = "/uploads"

// Backend stores blobs under slash-separated relative paths such as
// "paintings/thumbnails/thumb_x.jpg".
type Backend interface {
	Put(ctx context.Context, p string, data []byte, contentType string) error
	// Delete removes the blob. A missing blob is not an error.
	Delete(ctx context.Context, p string) error
	URL(p string) string
	// PathFromURL reverses URL. ok is false for URLs this backend did not issue.
	PathFromURL(rawURL string) (p string, ok bool)
}

// cleanRelative rejects absolute paths and anything escaping the root.
func cleanRelative(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	cleaned := path.Clean("/" + p)[1:]
	if cleaned == "" || cleaned != p {
		return "", false
	}
	return cleaned, true
}

type LocalBackend struct {
	root    string
	baseURL string
}

func NewLocalBackend(root, baseURL string) (*LocalBackend, error) {
	if err := os.MkdirAll(filepath.Join(root, thumbnailDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalBackend{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root is the directory served at UploadsRoute.
func (b *LocalBackend) Root() string {
	return b.root
}

func (b *LocalBackend) filePath(p string) (string, error) {
	cleaned, ok := cleanRelative(p)
	if !ok {
		return "", fmt.Errorf("invalid storage path %q", p)
	}
	return filepath.Join(b.root, filepath.FromSlash(cleaned)), nil
}

func (b *LocalBackend) Put(ctx context.Context, p string, data []byte, contentType string) error {
	target, err := b.filePath(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (b *LocalBackend) Delete(ctx context.Context, p string) error {
	target, err := b.filePath(p)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (b *LocalBackend) URL(p string) string {
	return b.baseURL + UploadsRoute + "/" + p
}

func (b *LocalBackend) PathFromURL(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	rel, found := strings.CutPrefix(u.Path, UploadsRoute+"/")
	if !found {
		return "", false
	}
	return cleanRelative(rel)
}
