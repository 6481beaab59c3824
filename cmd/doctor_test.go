package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"matrun/src"
)

func markInstalled(t *testing.T, prefix, dir string) {
	t.Helper()
	path := filepath.Join(prefix, dir)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, src.LicenseFile), []byte("pdf"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCheckBrokenInstalls(t *testing.T) {
	prefix := t.TempDir()

	// healthy installs, release-named and dot-named
	markInstalled(t, prefix, "R2024b")
	markInstalled(t, prefix, "9.13")

	// residue of an interrupted install: release-named, no sentinel
	if err := os.MkdirAll(filepath.Join(prefix, "R2023a"), 0755); err != nil {
		t.Fatal(err)
	}

	// unrelated entries the check must leave alone
	if err := os.MkdirAll(filepath.Join(prefix, "downloads"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(prefix, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	broken, err := checkBrokenInstalls(prefix)
	if err != nil {
		t.Fatalf("checkBrokenInstalls() error = %v", err)
	}
	want := []string{filepath.Join(prefix, "R2023a")}
	if fmt.Sprint(broken) != fmt.Sprint(want) {
		t.Errorf("checkBrokenInstalls() = %v, want %v", broken, want)
	}
}

func TestCheckBrokenInstallsMissingPrefix(t *testing.T) {
	broken, err := checkBrokenInstalls(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("checkBrokenInstalls() error = %v", err)
	}
	if broken != nil {
		t.Errorf("checkBrokenInstalls() = %v, want nothing flagged", broken)
	}
}
