// Package source fetches the JSONL static data export and keeps an on-disk
// cache of extracted builds.
package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hlop3z/sdelite/internal/progress"
	"github.com/hlop3z/sdelite/internal/sderr"
)

const (
	// DefaultBaseURL hosts latest.jsonl and the archive.
	DefaultBaseURL = "https://developers.eveonline.com/static-data"
	// DefaultTimeout bounds the whole download, not just the connection.
	DefaultTimeout = 30 * time.Minute

	latestPath  = "/tranquility/latest.jsonl"
	archivePath = "/eve-online-static-data-latest-jsonl.zip"
	userAgent   = "sdelite"
)

// Info describes the latest published build.
type Info struct {
	Key         string `json:"_key"`
	BuildNumber uint64 `json:"buildNumber"`
	ReleaseDate string `json:"releaseDate"`
}

// Fetcher returns a directory of JSONL files and the build it holds.
type Fetcher interface {
	Fetch(ctx context.Context, cacheDir string, force bool) (dir string, build uint64, err error)
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient replaces the HTTP client. The client itself is never
// modified.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout overrides the HTTP timeout, whatever client is in use.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithObserver sets the progress observer.
func WithObserver(o progress.Observer) Option {
	return func(c *Client) {
		c.observer = progress.OrSilent(o)
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client talks to the static data server.
type Client struct {
	baseURL  string
	http     *http.Client
	timeout  time.Duration
	observer progress.Observer
	logger   *slog.Logger
}

// NewClient returns a Client with the given options applied.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		http:     &http.Client{Timeout: DefaultTimeout},
		observer: progress.Silent,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// LatestInfo fetches the description of the newest build.
func (c *Client) LatestInfo(ctx context.Context) (*Info, error) {
	body, err := c.get(ctx, c.baseURL+latestPath)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var info Info
		if err := json.Unmarshal(line, &info); err != nil {
			return nil, sderr.Wrap(sderr.ErrFetch, err, "failed to parse build info")
		}
		if info.BuildNumber == 0 {
			return nil, sderr.New(sderr.ErrFetch, "build info has no build number")
		}
		return &info, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, sderr.Wrap(sderr.ErrFetch, err, "failed to read build info")
	}
	return nil, sderr.New(sderr.ErrFetch, "build info is empty")
}

// Download streams the archive to dest, reporting byte progress. The file is
// written under a temporary name and renamed once complete.
func (c *Client) Download(ctx context.Context, dest string) error {
	body, size, err := c.open(ctx, c.baseURL+archivePath)
	if err != nil {
		return err
	}
	defer body.Close()

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return sderr.Wrap(sderr.ErrCache, err, "failed to create download file").WithFile(tmp, 0)
	}

	pw := &progressWriter{observer: c.observer, total: size}
	_, copyErr := io.Copy(io.MultiWriter(f, pw), body)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		os.Remove(tmp)
		return sderr.Wrap(sderr.ErrFetch, err, "download interrupted").With("received", humanize.Bytes(pw.written))
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return sderr.Wrap(sderr.ErrCache, err, "failed to move download into place").WithFile(dest, 0)
	}

	c.logger.Info("download complete", "bytes", pw.written, "file", dest)
	progress.Logf(c.observer, "Downloaded %s", humanize.Bytes(pw.written))
	return nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	body, _, err := c.open(ctx, url)
	return body, err
}

func (c *Client) open(ctx context.Context, url string) (io.ReadCloser, uint64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, sderr.Wrap(sderr.ErrFetch, err, "failed to build request").With("url", url)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("GET", "url", url)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, sderr.Wrap(sderr.ErrFetch, err, "request failed").With("url", url)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, sderr.Newf(sderr.ErrFetch, "unexpected status %s", resp.Status).With("url", url)
	}

	var size uint64
	if resp.ContentLength > 0 {
		size = uint64(resp.ContentLength)
	}
	return resp.Body, size, nil
}

// progressWriter reports bytes written through it.
type progressWriter struct {
	observer progress.Observer
	total    uint64
	written  uint64
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += uint64(len(b))
	p.observer.SetProgress(p.written, p.total, formatBytes(p.written, p.total))
	return len(b), nil
}

// formatBytes renders "12 MB / 80 MB", or just the count when total is unknown.
func formatBytes(current, total uint64) string {
	if total == 0 {
		return humanize.Bytes(current)
	}
	return fmt.Sprintf("%s / %s", humanize.Bytes(current), humanize.Bytes(total))
}
