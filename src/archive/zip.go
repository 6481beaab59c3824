// Package archive unpacks vendor archives faithfully. Plain zip
// extraction drops executable bits and turns symlink members into
// regular files holding the link text, which breaks dynamic-library
// resolution inside the unpacked installer tree; the routines here
// put both back.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ExtractZip unpacks archivePath under destDir, walking members in
// their stored order and preserving Unix permission bits and
// symbolic links.
func ExtractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := extractMember(f, destDir); err != nil {
			return fmt.Errorf("failed to extract %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractMember(f *zip.File, destDir string) error {
	target := filepath.Join(destDir, f.Name)
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal member path %q", f.Name)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0755); err != nil {
			return err
		}
		return applyAttrs(f, target)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		rc.Close()
		return err
	}
	_, err = io.Copy(out, rc)
	rc.Close()
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	// A symlink member's content is the link target text.
	if f.Mode()&os.ModeSymlink != 0 && runtime.GOOS != "windows" {
		replaced, err := replaceWithSymlink(target)
		if err != nil || replaced {
			return err
		}
	}
	return applyAttrs(f, target)
}

// replaceWithSymlink swaps the just-written regular file for a
// symlink pointing at the file's content. When the link cannot be
// created the plain file is restored and extraction carries on; a
// missing link degrades better than an aborted install tree.
func replaceWithSymlink(target string) (bool, error) {
	content, err := os.ReadFile(target)
	if err != nil {
		return false, err
	}
	backup := target + ".__backup__"
	if err := os.Rename(target, backup); err != nil {
		return false, err
	}
	if err := os.Symlink(string(content), target); err != nil {
		if rerr := os.Rename(backup, target); rerr != nil {
			return false, rerr
		}
		return false, nil
	}
	return true, os.Remove(backup)
}

// applyAttrs re-applies the member's Unix permission bits, setuid,
// setgid and sticky included. A zero attribute word means the archive
// carried no Unix modes (typically built on Windows); the written
// default is kept then.
func applyAttrs(f *zip.File, target string) error {
	if f.ExternalAttrs>>16 == 0 {
		return nil
	}
	mode := f.Mode()
	return os.Chmod(target, mode.Perm()|mode&(os.ModeSetuid|os.ModeSetgid|os.ModeSticky))
}
