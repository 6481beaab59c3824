package catalog_test

import (
	"strings"
	"testing"

	"matrun/src"
	"matrun/src/catalog"
)

func TestSeededURLs(t *testing.T) {
	testCases := []struct {
		name    string
		arch    src.Arch
		release string
		want    string
	}{
		{
			name:    "Modern win64 zip",
			arch:    src.Win64,
			release: "R2024b",
			want:    "https://ssd.mathworks.com/supportfiles/downloads/R2024b/Release/5/deployment_files/installer/complete/win64/MATLAB_Runtime_R2024b_Update_5_win64.zip",
		},
		{
			name:    "Modern glnxa64 zip",
			arch:    src.Glnxa64,
			release: "R2022b",
			want:    "https://ssd.mathworks.com/supportfiles/downloads/R2022b/Release/10/deployment_files/installer/complete/glnxa64/MATLAB_Runtime_R2022b_Update_10_glnxa64.zip",
		},
		{
			name:    "Legacy win64 exe",
			arch:    src.Win64,
			release: "R2018b",
			want:    "https://ssd.mathworks.com/supportfiles/downloads/R2018b/deployment_files/R2018b/installers/win64/MCR_R2018b_win64_installer.exe",
		},
		{
			name:    "Legacy maci64 zip",
			arch:    src.Maci64,
			release: "R2012a",
			want:    "https://ssd.mathworks.com/supportfiles/downloads/R2012a/deployment_files/R2012a/installers/maci64/MCR_R2012a_maci64_installer.zip",
		},
		{
			name:    "Legacy win32 exe",
			arch:    src.Win32,
			release: "R2015b",
			want:    "https://ssd.mathworks.com/supportfiles/downloads/R2015b/deployment_files/R2015b/installers/win32/MCR_R2015b_win32_installer.exe",
		},
		{
			name:    "Only glnx86 release",
			arch:    src.Glnx86,
			release: "R2012a",
			want:    "https://ssd.mathworks.com/supportfiles/downloads/R2012a/deployment_files/R2012a/installers/glnx86/MCR_R2012a_glnx86_installer.zip",
		},
		{
			name:    "Apple silicon starts at R2023b",
			arch:    src.Maca64,
			release: "R2023b",
			want:    "https://ssd.mathworks.com/supportfiles/downloads/R2023b/Release/10/deployment_files/installer/complete/maca64/MATLAB_Runtime_R2023b_Update_10_maca64.zip",
		},
	}

	c := catalog.New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := c.Lookup(tc.arch, tc.release)
			if !ok {
				t.Fatalf("Lookup(%s, %s) missing, want %q", tc.arch, tc.release, tc.want)
			}
			if got != tc.want {
				t.Errorf("Lookup(%s, %s) = %q, want %q", tc.arch, tc.release, got, tc.want)
			}
		})
	}
}

func TestSeedCoverage(t *testing.T) {
	testCases := []struct {
		name    string
		arch    src.Arch
		release string
		seeded  bool
	}{
		{"win32 died with R2015b", src.Win32, "R2016a", false},
		{"win32 last release", src.Win32, "R2015b", true},
		{"glnx86 only ever had R2012a", src.Glnx86, "R2012b", false},
		{"no Apple silicon before R2023b", src.Maca64, "R2023a", false},
		{"no seed without an update counter", src.Win64, "R2025a", false},
		{"legacy glnxa64", src.Glnxa64, "R2014b", true},
	}

	c := catalog.New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := c.Lookup(tc.arch, tc.release); ok != tc.seeded {
				t.Errorf("Lookup(%s, %s) seeded = %v, want %v", tc.arch, tc.release, ok, tc.seeded)
			}
		})
	}
}

func TestStoreAndLookup(t *testing.T) {
	c := catalog.New()
	url := catalog.ModernURL("R2025a", 2, src.Win64, "zip")

	if _, ok := c.Lookup(src.Win64, "R2025a"); ok {
		t.Fatal("R2025a unexpectedly seeded")
	}
	c.Store(src.Win64, "R2025a", url)
	got, ok := c.Lookup(src.Win64, "R2025a")
	if !ok || got != url {
		t.Errorf("Lookup after Store = %q, %v, want %q", got, ok, url)
	}
}

func TestNewest(t *testing.T) {
	c := catalog.New()

	for _, tc := range []struct {
		arch src.Arch
		want string
	}{
		{src.Win64, "R2024b"},
		{src.Maca64, "R2024b"},
		{src.Win32, "R2015b"},
		{src.Glnx86, "R2012a"},
	} {
		got, ok := c.Newest(tc.arch)
		if !ok || got != tc.want {
			t.Errorf("Newest(%s) = %q, %v, want %q", tc.arch, got, ok, tc.want)
		}
	}

	c.Store(src.Win64, "R2026b", catalog.ModernURL("R2026b", 1, src.Win64, "zip"))
	if got, _ := c.Newest(src.Win64); got != "R2026b" {
		t.Errorf("Newest after Store = %q, want R2026b", got)
	}
}

func TestReleasesSortedNewestFirst(t *testing.T) {
	c := catalog.New()
	rels := c.Releases(src.Glnxa64)
	if len(rels) == 0 {
		t.Fatal("no releases for glnxa64")
	}
	if rels[0] != "R2024b" {
		t.Errorf("first release = %q, want R2024b", rels[0])
	}
	for i := 1; i < len(rels); i++ {
		if strings.Compare(rels[i-1], rels[i]) <= 0 {
			t.Errorf("releases out of order: %q before %q", rels[i-1], rels[i])
		}
	}
	// 12 modern plus 14 legacy releases
	if len(rels) != 26 {
		t.Errorf("glnxa64 release count = %d, want 26", len(rels))
	}
}

func TestUpdateLevel(t *testing.T) {
	if up, ok := catalog.UpdateLevel("R2023b"); !ok || up != 10 {
		t.Errorf("UpdateLevel(R2023b) = %d, %v, want 10, true", up, ok)
	}
	if _, ok := catalog.UpdateLevel("R2018b"); ok {
		t.Error("UpdateLevel(R2018b) unexpectedly known")
	}
}

func TestSupportedPythonVersions(t *testing.T) {
	pythons, ok := catalog.SupportedPythonVersions("R2024b")
	if !ok || len(pythons) != 4 || pythons[0] != "3.9" {
		t.Errorf("SupportedPythonVersions(R2024b) = %v, %v", pythons, ok)
	}
	pythons, ok = catalog.SupportedPythonVersions("R2015b")
	if !ok || len(pythons) != 0 {
		t.Errorf("SupportedPythonVersions(R2015b) = %v, %v, want empty, true", pythons, ok)
	}
	if _, ok := catalog.SupportedPythonVersions("R2011a"); ok {
		t.Error("SupportedPythonVersions(R2011a) unexpectedly known")
	}
}
