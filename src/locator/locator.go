// Package locator turns a version or alias plus an architecture into
// a concrete installer URL, combining the static catalog with live
// probing of the vendor CDN.
package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"matrun/src"
	"matrun/src/catalog"
	"matrun/src/fetch"
	"matrun/src/mlver"
)

// ErrVersionNotFound reports that no installer exists for a version
// and architecture after the probe range was exhausted.
var ErrVersionNotFound = errors.New("version not found")

// maxUpdate bounds the update counters probed for releases missing
// from the static tables. Counters descend because the newest update
// is the preferred build, and recent releases sit at high counters,
// which keeps the common case to a couple of probes.
const maxUpdate = 10

// Locator resolves versions against a catalog. Exists and Now are
// swappable so tests can script CDN answers and freeze the calendar.
type Locator struct {
	Catalog *catalog.Catalog
	Exists  func(url string) bool
	Now     func() time.Time
}

// New builds a locator around a freshly seeded catalog, probing the
// real CDN.
func New() *Locator {
	return &Locator{
		Catalog: catalog.New(),
		Exists:  fetch.Exists,
		Now:     time.Now,
	}
}

// Locate returns the installer URL for a version on an architecture.
// The catalog answers first; on a miss the modern template is probed
// with update counters from maxUpdate down to 0, and the first hit is
// cached so later calls skip the network.
func (l *Locator) Locate(version string, arch src.Arch) (string, error) {
	release, err := mlver.ToRelease(version)
	if err != nil {
		return "", err
	}
	if url, ok := l.Catalog.Lookup(arch, release); ok {
		return url, nil
	}
	for update := maxUpdate; update >= 0; update-- {
		url := catalog.ModernURL(release, update, arch, "zip")
		if l.Exists(url) {
			l.Catalog.Store(arch, release, url)
			return url, nil
		}
	}
	return "", fmt.Errorf("%w: no %s installer for %s", ErrVersionNotFound, release, arch)
}

// ResolveAlias turns any accepted version form into a concrete
// release. "latest_installed" takes the newest release installed
// under prefix and falls back to "latest" when nothing is installed.
// "latest" tries the current year's two releases against the CDN,
// second half first, and falls back to the newest release the catalog
// already knows. Anything else goes through the version algebra.
func (l *Locator) ResolveAlias(version string, arch src.Arch, prefix string) (string, error) {
	v, err := mlver.Parse(version)
	if err != nil {
		return "", err
	}
	if v.Kind != mlver.KindAlias {
		return v.Release, nil
	}

	if v.Alias == mlver.LatestInstalled {
		if installed := InstalledReleases(prefix); len(installed) > 0 {
			return installed[0], nil
		}
	}

	year := l.Now().Year()
	for _, letter := range []string{"b", "a"} {
		candidate := "R" + strconv.Itoa(year) + letter
		if _, err := l.Locate(candidate, arch); err == nil {
			return candidate, nil
		}
	}
	if newest, ok := l.Catalog.Newest(arch); ok {
		return newest, nil
	}
	return "", fmt.Errorf("%w: no release known for %s", ErrVersionNotFound, arch)
}

// InstalledReleases lists the releases validly installed under
// prefix, newest first. A release counts as installed iff its
// directory carries the license-acceptance file; anything else under
// the prefix is ignored.
func InstalledReleases(prefix string) []string {
	entries, err := os.ReadDir(prefix)
	if err != nil {
		return nil
	}
	var releases []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(prefix, e.Name(), src.LicenseFile)); err != nil {
			continue
		}
		release, err := mlver.ToRelease(e.Name())
		if err != nil {
			continue
		}
		releases = append(releases, release)
	}
	sort.Slice(releases, func(i, j int) bool {
		return mlver.Compare(releases[i], releases[j]) > 0
	})
	return releases
}
