package fetch_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"matrun/src"
	"matrun/src/fetch"
)

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("installer bytes"))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "installer.zip")
	got, err := fetch.Download(srv.URL+"/files/installer.zip", out, 1)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if got != out {
		t.Errorf("Download() path = %q, want %q", got, out)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != "installer bytes" {
		t.Errorf("downloaded content = %q", data)
	}
	if _, err := os.Stat(out + ".partial"); !os.IsNotExist(err) {
		t.Error("partial file left behind after success")
	}
}

func TestDownloadToDirectory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	got, err := fetch.Download(srv.URL+"/downloads/MCR_R2018b_glnxa64_installer.zip", dir, 1)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	want := filepath.Join(dir, "MCR_R2018b_glnxa64_installer.zip")
	if got != want {
		t.Errorf("Download() path = %q, want %q", got, want)
	}
}

func TestDownloadRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("eventually"))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "artifact")
	if _, err := fetch.Download(srv.URL, out, 3); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("server hit %d times, want 2", n)
	}
	data, _ := os.ReadFile(out)
	if string(data) != "eventually" {
		t.Errorf("downloaded content = %q", data)
	}
}

func TestDownloadExhaustsRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "artifact")
	_, err := fetch.Download(srv.URL, out, 2)
	if !errors.Is(err, fetch.ErrDownload) {
		t.Fatalf("Download() error = %v, want ErrDownload", err)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("server hit %d times, want 2", n)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("failed download left a file behind")
	}
}

func TestExists(t *testing.T) {
	var redirectTargetHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/present", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/redirected", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/error-page", http.StatusFound)
	})
	mux.HandleFunc("/error-page", func(w http.ResponseWriter, r *http.Request) {
		redirectTargetHits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	testCases := []struct {
		name string
		path string
		want bool
	}{
		{"OK is present", "/present", true},
		{"404 is missing", "/missing", false},
		// The CDN redirects missing artifacts instead of 404ing, so a
		// redirect status itself must be judged, never followed.
		{"redirect status is below 400", "/redirected", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := fetch.Exists(srv.URL + tc.path); got != tc.want {
				t.Errorf("Exists(%s) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}

	if n := redirectTargetHits.Load(); n != 0 {
		t.Errorf("redirect was followed %d times", n)
	}
}

func TestPickDigest(t *testing.T) {
	testCases := []struct {
		name     string
		arch     src.Arch
		macMajor int
		want     string
		wantErr  bool
	}{
		{
			name:     "Exact major",
			arch:     src.Maca64,
			macMajor: 14,
			want:     "cdc22c278167801e3876a4560eac469cfa7f86c6958537d84d21bda3caf6972c",
		},
		{
			name:     "Newer host falls back to nearest below",
			arch:     src.Maca64,
			macMajor: 16,
			want:     "b20c7d9b63e7b320cba173c11710dee9888c77175a841031d7a245bb37355b98",
		},
		{
			name:     "Older host falls back to nearest above",
			arch:     src.Maci64,
			macMajor: 12,
			want:     "523d64d10d1d44d6e39df3ced3539e2526357eab8573d2de41d4e116d7c629c8",
		},
		{
			name:     "No digests for the platform",
			arch:     src.Win64,
			macMajor: 14,
			wantErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fetch.PickDigest("openssl", "3.4.1", tc.arch, tc.macMajor)

			if (err != nil) != tc.wantErr {
				t.Fatalf("PickDigest() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("PickDigest() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDownloadBottle(t *testing.T) {
	const digest = "e8a8957f282b27371283b8c7a17e743c1c4e4e242ea7ee68bbe23f883da4948f"

	var gotPath, gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("bottle bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	out, err := fetch.DownloadBottle(fetch.Bottle{
		Package:  "openssl",
		Variant:  "3",
		Registry: srv.URL,
	}, src.Maci64, 15, dir, 1)
	if err != nil {
		t.Fatalf("DownloadBottle() error = %v", err)
	}

	if want := filepath.Join(dir, "openssl-3.4.1.bottle.tar.gz"); out != want {
		t.Errorf("DownloadBottle() path = %q, want %q", out, want)
	}
	if want := "/openssl/3/blobs/sha256:" + digest; gotPath != want {
		t.Errorf("request path = %q, want %q", gotPath, want)
	}
	if gotAuth != "Bearer QQ==" {
		t.Errorf("Authorization = %q, want Bearer QQ==", gotAuth)
	}
	if gotAccept != "application/vnd.oci.image.layer.v1.tar+gzip" {
		t.Errorf("Accept = %q", gotAccept)
	}
}
