// Package fetch downloads vendor artifacts over HTTP with bounded
// retry, and probes URL existence without following redirects.
package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"
)

// ErrDownload reports a download that failed every attempt.
var ErrDownload = errors.New("download failed")

// DefaultRetries bounds download attempts.
const DefaultRetries = 5

// client carries no overall timeout: installer archives weigh
// multiple gigabytes and legitimately take a long time.
var client = &http.Client{}

// headClient suppresses redirects. The vendor CDN answers a missing
// artifact with a redirect to an error page rather than a 404, so
// following it would read as success.
var headClient = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// Exists probes a URL with a HEAD request and reports whether the
// artifact is there, treating any status below 400 as present.
func Exists(rawurl string) bool {
	resp, err := headClient.Head(rawurl)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 400
}

// Download fetches a URL into out. When out is an existing directory
// the filename is derived from the URL's path component. Failed
// attempts are retried with exponential backoff up to retries times
// (DefaultRetries when retries is not positive) before ErrDownload is
// returned wrapping the last failure. Returns the final file path.
func Download(rawurl, out string, retries int) (string, error) {
	req, err := http.NewRequest(http.MethodGet, rawurl, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	return download(req, out, retries)
}

func download(req *http.Request, out string, retries int) (string, error) {
	if retries <= 0 {
		retries = DefaultRetries
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		out = filepath.Join(out, path.Base(req.URL.Path))
	}

	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}
		if err := downloadOnce(req, out); err != nil {
			lastErr = err
			continue
		}
		return out, nil
	}
	return "", fmt.Errorf("%w after %d attempts: %v", ErrDownload, retries, lastErr)
}

// downloadOnce streams the body into a .partial file renamed into
// place only once fully written, so an interrupted attempt never
// leaves a plausible-looking artifact behind.
func downloadOnce(req *http.Request, out string) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to start download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with HTTP status: %s", resp.Status)
	}

	tmp := out + ".partial"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, out)
}
