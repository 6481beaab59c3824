// Package catalog maps (architecture, release) pairs to installer
// URLs. The static seed covers roughly a decade of releases; the
// locator extends it at runtime with probed URLs.
package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"matrun/src"
	"matrun/src/mlver"
)

// Releases R2019a and newer ship through the modern template with an
// update counter. Older ones use the legacy template.
//
// The macOS links on the vendor page nominally point at .dmg files;
// requesting the .zip variant instead yields an archive carrying a
// command-line installer, which is the only form that accepts flags.
const (
	modernTemplate = "https://ssd.mathworks.com/supportfiles/downloads/%[1]s/Release/%[2]d/deployment_files/installer/complete/%[3]s/MATLAB_Runtime_%[1]s_Update_%[2]d_%[3]s.%[4]s"
	legacyTemplate = "https://ssd.mathworks.com/supportfiles/downloads/%[1]s/deployment_files/%[1]s/installers/%[2]s/MCR_%[1]s_%[2]s_installer.%[3]s"
)

// ModernURL builds the installer URL for releases at or above the
// R2019a cutoff.
func ModernURL(release string, update int, arch src.Arch, ext string) string {
	return fmt.Sprintf(modernTemplate, release, update, arch, ext)
}

// LegacyURL builds the installer URL for releases below the R2019a
// cutoff. These have no update counter.
func LegacyURL(release string, arch src.Arch, ext string) string {
	return fmt.Sprintf(legacyTemplate, release, arch, ext)
}

// updateLevels records the last update counter published per release,
// newest first. A release missing here is assumed unavailable through
// the modern template without probing.
var updateLevels = []struct {
	Release string
	Update  int
}{
	{"R2024b", 5},
	{"R2024a", 7},
	{"R2023b", 10},
	{"R2023a", 7},
	{"R2022b", 10},
	{"R2022a", 8},
	{"R2021b", 7},
	{"R2021a", 8},
	{"R2020b", 8},
	{"R2020a", 8},
	{"R2019b", 9},
	{"R2019a", 9},
}

// UpdateLevel returns the recorded update counter for a release.
func UpdateLevel(release string) (int, bool) {
	for _, e := range updateLevels {
		if e.Release == release {
			return e.Update, true
		}
	}
	return 0, false
}

// Catalog holds the per-architecture release to URL mapping. It is
// append-only: a URL, once seeded or cached from a successful probe,
// stays for the life of the process. The lock keeps cache writes safe
// if callers ever resolve concurrently.
type Catalog struct {
	mu      sync.Mutex
	entries map[src.Arch]map[string]string
}

// New builds a catalog seeded from the two URL templates. Coverage
// differs per architecture: 64-bit platforms carry both template
// generations, 32-bit ones died before the modern template, and Apple
// silicon only exists from R2023b on.
func New() *Catalog {
	c := &Catalog{entries: make(map[src.Arch]map[string]string)}
	for _, a := range src.Arches() {
		c.entries[a] = make(map[string]string)
	}

	for _, e := range updateLevels {
		c.entries[src.Win64][e.Release] = ModernURL(e.Release, e.Update, src.Win64, "zip")
		c.entries[src.Glnxa64][e.Release] = ModernURL(e.Release, e.Update, src.Glnxa64, "zip")
		c.entries[src.Maci64][e.Release] = ModernURL(e.Release, e.Update, src.Maci64, "zip")
	}

	for _, rel := range yearRange(2012, 2018) {
		c.entries[src.Win64][rel] = LegacyURL(rel, src.Win64, "exe")
		c.entries[src.Glnxa64][rel] = LegacyURL(rel, src.Glnxa64, "zip")
		c.entries[src.Maci64][rel] = LegacyURL(rel, src.Maci64, "zip")
	}
	for _, rel := range yearRange(2012, 2015) {
		c.entries[src.Win32][rel] = LegacyURL(rel, src.Win32, "exe")
	}
	c.entries[src.Glnx86]["R2012a"] = LegacyURL("R2012a", src.Glnx86, "zip")

	for _, rel := range []string{"R2023b", "R2024a", "R2024b"} {
		update, _ := UpdateLevel(rel)
		c.entries[src.Maca64][rel] = ModernURL(rel, update, src.Maca64, "zip")
	}

	return c
}

// yearRange lists both half-year releases for every year in the
// inclusive range.
func yearRange(from, to int) []string {
	var rels []string
	for y := from; y <= to; y++ {
		rels = append(rels, "R"+strconv.Itoa(y)+"a", "R"+strconv.Itoa(y)+"b")
	}
	return rels
}

// Lookup returns the URL for a release on an architecture.
func (c *Catalog) Lookup(arch src.Arch, release string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	url, ok := c.entries[arch][release]
	return url, ok
}

// Store caches a probed URL for later lookups.
func (c *Catalog) Store(arch src.Arch, release, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.entries[arch]
	if m == nil {
		m = make(map[string]string)
		c.entries[arch] = m
	}
	m[release] = url
}

// Newest returns the newest release known for an architecture.
func (c *Catalog) Newest(arch src.Arch) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	best := ""
	for rel := range c.entries[arch] {
		if mlver.Compare(rel, best) > 0 {
			best = rel
		}
	}
	return best, best != ""
}

// Releases lists every release known for an architecture, newest
// first.
func (c *Catalog) Releases(arch src.Arch) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	rels := make([]string, 0, len(c.entries[arch]))
	for rel := range c.entries[arch] {
		rels = append(rels, rel)
	}
	sort.Slice(rels, func(i, j int) bool {
		return mlver.Compare(rels[i], rels[j]) > 0
	})
	return rels
}
