package catalog

import (
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"matrun/src/mlver"
)

// DownloadPageURL is the vendor page advertising the currently
// supported runtime installers.
const DownloadPageURL = "https://www.mathworks.com/products/compiler/matlab-runtime.html"

// PageEntry is one release row scraped from the download page, with
// every installer link the page advertises for it.
type PageEntry struct {
	Release string
	URLs    []string
}

var releasePattern = regexp.MustCompile(`R20\d{2}[ab]`)

// ScrapeDownloadPage fetches the vendor download page and extracts
// the installer links it advertises, grouped by release and sorted
// newest first. The page only lists the handful of releases still in
// support, so this complements the static seed rather than replacing
// it.
func ScrapeDownloadPage(pageURL string) ([]PageEntry, error) {
	resp, err := http.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch download page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get download page, status: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse download page HTML: %w", err)
	}

	byRelease := make(map[string][]string)
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || !strings.Contains(href, "ssd.mathworks.com") {
			return
		}
		release := releasePattern.FindString(href)
		if release == "" {
			return
		}
		byRelease[release] = append(byRelease[release], href)
	})

	if len(byRelease) == 0 {
		return nil, fmt.Errorf("no installer links found on %s", pageURL)
	}

	entries := make([]PageEntry, 0, len(byRelease))
	for rel, urls := range byRelease {
		entries = append(entries, PageEntry{Release: rel, URLs: urls})
	}
	sort.Slice(entries, func(i, j int) bool {
		return mlver.Compare(entries[i].Release, entries[j].Release) > 0
	})
	return entries, nil
}
