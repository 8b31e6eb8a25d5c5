package source

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hlop3z/sdelite/internal/sderr"
)

// markerFile must exist in a complete build directory.
const markerFile = "types.jsonl"

// Cache is a directory of extracted builds, one numbered subdirectory each.
type Cache struct {
	Dir string
}

// DefaultCacheDir returns the per-user cache location.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", sderr.Wrap(sderr.ErrCache, err, "could not determine cache directory").
			WithHelp("pass --cache-dir or set SDELITE_CACHE_DIR")
	}
	return filepath.Join(base, "sdelite"), nil
}

// NewCache creates dir if needed. An empty dir selects DefaultCacheDir.
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultCacheDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, sderr.Wrap(sderr.ErrCache, err, "failed to create cache directory").WithFile(dir, 0)
	}
	return &Cache{Dir: dir}, nil
}

// BuildDir is where build n is extracted.
func (c *Cache) BuildDir(n uint64) string {
	return filepath.Join(c.Dir, strconv.FormatUint(n, 10))
}

// ZipPath is where the archive for build n is downloaded.
func (c *Cache) ZipPath(n uint64) string {
	return filepath.Join(c.Dir, strconv.FormatUint(n, 10)+".zip")
}

// IsCached reports whether build n is extracted and its files still match
// the manifest written after extraction.
func (c *Cache) IsCached(n uint64) bool {
	dir := c.BuildDir(n)
	if _, err := os.Stat(filepath.Join(dir, markerFile)); err != nil {
		return false
	}

	want, err := ReadManifest(dir)
	if err != nil {
		slog.Debug("cache manifest unreadable", "build", n, "error", err)
		return false
	}
	got, err := ComputeManifest(dir)
	if err != nil {
		slog.Debug("cache manifest not computable", "build", n, "error", err)
		return false
	}
	if want.Root != got.Root {
		slog.Info("cached build modified, refetching", "build", n, "changed", want.Diff(got))
		return false
	}
	return true
}

// WriteManifest records the current contents of build n.
func (c *Cache) WriteManifest(n uint64) error {
	dir := c.BuildDir(n)
	m, err := ComputeManifest(dir)
	if err != nil {
		return err
	}
	m.Build = n
	return m.Write(dir)
}

// CleanupOldBuilds removes every numbered build directory and archive except keep.
func (c *Cache) CleanupOldBuilds(keep uint64) error {
	entries, err := os.ReadDir(c.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return sderr.Wrap(sderr.ErrCache, err, "failed to list cache directory").WithFile(c.Dir, 0)
	}

	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() {
			var ok bool
			if name, ok = strings.CutSuffix(name, ".zip"); !ok {
				continue
			}
		}
		build, err := strconv.ParseUint(name, 10, 64)
		if err != nil || build == keep {
			continue
		}
		path := filepath.Join(c.Dir, e.Name())
		if err := os.RemoveAll(path); err != nil {
			slog.Warn("failed to remove old build", "path", path, "error", err)
			continue
		}
		slog.Debug("removed old build", "path", path)
	}
	return nil
}
