package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// otherDir holds entries whose key is not an [ArtifactKey].
const otherDir = "_"

// FileCache keeps artifacts as plain files under a directory, one
// subdirectory per format:
//
//	<dir>/svg/<hash>.svg
//
// The file holds the rendered bytes unchanged, so a cached diagram can be
// opened directly. Entries written with a ttl get a <file>.expires sidecar
// holding the RFC 3339 expiry time.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get returns the artifact stored under key. Expired entries are removed and
// reported as a miss.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	if c.expired(path) {
		c.remove(path)
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set writes data under key. The file is replaced atomically so concurrent
// readers never see a partial artifact.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := writeAtomic(path, data); err != nil {
		return err
	}

	if ttl <= 0 {
		if err := os.Remove(path + ".expires"); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	stamp := time.Now().Add(ttl).UTC().Format(time.RFC3339Nano)
	return writeAtomic(path+".expires", []byte(stamp))
}

// Delete removes the artifact and its expiry sidecar.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	path := c.path(key)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(path + ".expires"); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string {
	return c.dir
}

// path maps an artifact key to <format>/<hash>.<format>. Any other key is
// hashed into otherDir.
func (c *FileCache) path(key string) string {
	if format, hash, ok := splitArtifactKey(key); ok {
		return filepath.Join(c.dir, format, hash+"."+format)
	}
	return filepath.Join(c.dir, otherDir, Hash([]byte(key)))
}

// expired reports whether path has a sidecar naming a past time. An
// unreadable sidecar counts as expired.
func (c *FileCache) expired(path string) bool {
	stamp, err := os.ReadFile(path + ".expires")
	if os.IsNotExist(err) {
		return false
	}
	if err != nil {
		return true
	}
	at, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(string(stamp)))
	return err != nil || time.Now().After(at)
}

func (c *FileCache) remove(path string) {
	_ = os.Remove(path)
	_ = os.Remove(path + ".expires")
}

// splitArtifactKey parses a key built by ArtifactKey. The format must be a
// plain word and the hash a full SHA-256 hex digest, so neither can escape
// the cache directory.
func splitArtifactKey(key string) (format, hash string, ok bool) {
	rest, ok := strings.CutPrefix(key, "artifact:")
	if !ok {
		return "", "", false
	}
	format, hash, ok = strings.Cut(rest, ":")
	if !ok || format == "" || len(hash) != 64 {
		return "", "", false
	}
	for _, r := range format {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "", "", false
		}
	}
	for _, r := range hash {
		if (r < 'a' || r > 'f') && (r < '0' || r > '9') {
			return "", "", false
		}
	}
	return format, hash, true
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

var _ Cache = (*FileCache)(nil)
