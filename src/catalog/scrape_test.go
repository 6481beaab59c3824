package catalog_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"matrun/src/catalog"
)

func TestScrapeDownloadPage(t *testing.T) {
	page := `<html><body><table>
<tr><td>R2024b</td>
<td><a href="https://ssd.mathworks.com/supportfiles/downloads/R2024b/Release/5/deployment_files/installer/complete/win64/MATLAB_Runtime_R2024b_Update_5_win64.zip">Windows</a></td>
<td><a href="https://ssd.mathworks.com/supportfiles/downloads/R2024b/Release/5/deployment_files/installer/complete/glnxa64/MATLAB_Runtime_R2024b_Update_5_glnxa64.zip">Linux</a></td></tr>
<tr><td>R2024a</td>
<td><a href="https://ssd.mathworks.com/supportfiles/downloads/R2024a/Release/7/deployment_files/installer/complete/win64/MATLAB_Runtime_R2024a_Update_7_win64.zip">Windows</a></td></tr>
<tr><td><a href="https://example.com/unrelated">docs</a></td></tr>
</table></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	entries, err := catalog.ScrapeDownloadPage(srv.URL)
	if err != nil {
		t.Fatalf("ScrapeDownloadPage() error = %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d releases, want 2: %+v", len(entries), entries)
	}
	if entries[0].Release != "R2024b" || entries[1].Release != "R2024a" {
		t.Errorf("releases = %q, %q, want R2024b, R2024a", entries[0].Release, entries[1].Release)
	}
	if len(entries[0].URLs) != 2 {
		t.Errorf("R2024b link count = %d, want 2", len(entries[0].URLs))
	}
}

func TestScrapeDownloadPageEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>nothing here</p></body></html>")
	}))
	defer srv.Close()

	if _, err := catalog.ScrapeDownloadPage(srv.URL); err == nil {
		t.Fatal("ScrapeDownloadPage() on a linkless page did not fail")
	}
}
