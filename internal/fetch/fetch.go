// Package fetch is the launcher's HTTP surface: small document GETs and
// file downloads. Downloads land in a temp file and only reach their final
// name via rename, so an interrupted transfer can never be mistaken for a
// complete artifact.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/nova-client/launcher/internal/errs"
)

// Client wraps an http.Client with the launcher's error conventions.
type Client struct {
	http   *http.Client
	logger hclog.Logger
}

// NewClient creates a fetch client. A nil httpClient gets a sensible default.
func NewClient(httpClient *http.Client, logger hclog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}
	return &Client{http: httpClient, logger: logger}
}

// Get fetches a small document and returns its body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, errs.ErrNetwork)
	}
	return data, nil
}

// DownloadFile streams a URL to dest, creating parent directories as needed.
// The bytes are written to a temp file in the destination directory and
// renamed into place once the body has been fully consumed.
func (c *Client) DownloadFile(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}

	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", dest, err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("downloading %s: %w", url, errs.ErrNetwork)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file for %s: %w", dest, err)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("moving %s into place: %w", dest, err)
	}

	c.logger.Debug("⬇️ Downloaded file", "url", url, "dest", dest)
	return nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, errs.ErrNetwork)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: status %d: %w", url, resp.StatusCode, errs.ErrNetwork)
	}
	return resp, nil
}
