package source

import (
	"context"
	"fmt"
	"os"

	"github.com/hlop3z/sdelite/internal/progress"
	"github.com/hlop3z/sdelite/internal/sderr"
)

// Fetch makes the latest build available under cacheDir and returns its
// directory. A cached build is reused unless force is set; otherwise the
// archive is downloaded, extracted, fingerprinted, and older builds are
// removed.
func (c *Client) Fetch(ctx context.Context, cacheDir string, force bool) (string, uint64, error) {
	cache, err := NewCache(cacheDir)
	if err != nil {
		return "", 0, err
	}

	c.observer.SetPhase(progress.Checking)
	c.observer.SetStatus("Checking latest build")
	info, err := c.LatestInfo(ctx)
	if err != nil {
		return "", 0, err
	}
	build := info.BuildNumber
	dir := cache.BuildDir(build)
	c.logger.Info("latest build", "build", build, "released", info.ReleaseDate)
	progress.Logf(c.observer, "Latest build: %d (%s)", build, info.ReleaseDate)

	if !force && cache.IsCached(build) {
		progress.Logf(c.observer, "Using cached build %d", build)
		return dir, build, nil
	}

	c.observer.SetPhase(progress.Downloading)
	c.observer.SetStatus(fmt.Sprintf("Downloading build %d", build))
	zipPath := cache.ZipPath(build)
	if err := c.Download(ctx, zipPath); err != nil {
		return "", 0, err
	}

	c.observer.SetPhase(progress.Extracting)
	c.observer.SetStatus(fmt.Sprintf("Extracting build %d", build))
	if err := os.RemoveAll(dir); err != nil {
		return "", 0, sderr.Wrap(sderr.ErrCache, err, "failed to clear build directory").WithFile(dir, 0)
	}
	if _, err := Extract(zipPath, dir, c.observer); err != nil {
		return "", 0, err
	}
	if err := cache.WriteManifest(build); err != nil {
		return "", 0, err
	}
	if err := os.Remove(zipPath); err != nil {
		c.logger.Warn("failed to remove archive", "path", zipPath, "error", err)
	}
	if err := cache.CleanupOldBuilds(build); err != nil {
		c.logger.Warn("failed to clean old builds", "error", err)
	}

	return dir, build, nil
}
