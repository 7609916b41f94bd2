// Package storage mirrors island images onto the local filesystem so they can
// be served as static files.
package storage

import (
	"errors"        // Error comparison
	"fmt"           // Error wrapping
	"io/fs"         // File mode and not-exist errors
	"os"            // File operations
	"path/filepath" // Path manipulation
	"strings"       // Extension cleanup

	"islands/internal/domain" // Importing domain models

	"github.com/gabriel-vasile/mimetype" // Content sniffing
)

// ImagesDir is the directory under the public root that holds island images
const ImagesDir = "images"

// Images stores image blobs under Root/{islandUUID}/{imageUUID}.{ext}
type Images struct {
	Root string // Filesystem directory, normally public/images
}

// NewImages returns an image store rooted at publicDir/images
func NewImages(publicDir string) *Images {
	return &Images{Root: filepath.Join(publicDir, ImagesDir)}
}

// Detect fills img.ContentType from the blob and img.Ext with the file extension
// to use, preferring the uploaded file name's extension.
func Detect(img *domain.Image) {
	m := mimetype.Detect(img.Data)
	img.ContentType = m.String()
	if ext := strings.ToLower(filepath.Ext(img.Name)); ext != "" {
		img.Ext = strings.TrimPrefix(ext, ".")
		return
	}
	img.Ext = strings.TrimPrefix(m.Extension(), ".")
}

// FileName is the on-disk name of img
func FileName(img *domain.Image) string {
	if img.Ext == "" && img.ContentType == "" {
		Detect(img)
	}
	if img.Ext == "" {
		return img.UUID
	}
	return img.UUID + "." + img.Ext
}

// IslandDir returns the directory holding the images of one island
func (s *Images) IslandDir(islandUUID string) (string, error) {
	// UUIDs never contain separators; reject anything that could escape Root
	if islandUUID == "" || strings.ContainsAny(islandUUID, `/\`) || islandUUID == "." || islandUUID == ".." {
		return "", fmt.Errorf("invalid island uuid %q", islandUUID)
	}
	return filepath.Join(s.Root, islandUUID), nil
}

// Save writes img to disk under the island directory and returns the file path
func (s *Images) Save(islandUUID string, img *domain.Image) (string, error) {
	dir, err := s.IslandDir(islandUUID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName(img))
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Exists reports whether img is already mirrored for the island
func (s *Images) Exists(islandUUID string, img *domain.Image) (bool, error) {
	dir, err := s.IslandDir(islandUUID)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(filepath.Join(dir, FileName(img)))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// RemoveIsland deletes every file of the island. A missing directory is not an error.
func (s *Images) RemoveIsland(islandUUID string) error {
	dir, err := s.IslandDir(islandUUID)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove %s: %w", dir, err)
	}
	return nil
}
