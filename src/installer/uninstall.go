package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"matrun/src"
	"matrun/src/locator"
	"matrun/src/mlver"
)

// Uninstall removes one installed release, or every installation under
// the prefix when ver is "all" (the default for an empty string). On
// Windows each release's bundled uninstaller is invoked; elsewhere the
// directory tree is removed.
func (ins *Installer) Uninstall(ver string) error {
	if ver == "" {
		ver = "all"
	}
	all := strings.EqualFold(ver, "all")

	rmdir := ins.Prefix
	if !all {
		release, err := mlver.ToRelease(ver)
		if err != nil {
			return err
		}
		rmdir = filepath.Join(ins.Prefix, release)
	}

	if _, err := os.Stat(rmdir); err != nil {
		return fmt.Errorf("%w: nothing to remove at %s", locator.ErrNotInstalled, rmdir)
	}

	if err := ins.Ask(fmt.Sprintf("Remove directory %s and its content", rmdir), true); err != nil {
		return err
	}

	if ins.Arch.IsWindows() {
		if err := ins.runUninstallers(rmdir, all); err != nil {
			return err
		}
	} else {
		if err := os.RemoveAll(rmdir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", rmdir, err)
		}
	}

	src.PrintSuccess("Runtime(s) uninstalled from %s", rmdir)
	return nil
}

// runUninstallers calls the uninstaller each release ships under
// bin/<arch>. A failing uninstaller is reported and the rest still
// run.
func (ins *Installer) runUninstallers(rmdir string, all bool) error {
	dirs := []string{rmdir}
	if all {
		entries, err := os.ReadDir(ins.Prefix)
		if err != nil {
			return err
		}
		dirs = dirs[:0]
		for _, e := range entries {
			if e.IsDir() {
				dirs = append(dirs, filepath.Join(ins.Prefix, e.Name()))
			}
		}
	}
	for _, dir := range dirs {
		uninstaller := filepath.Join(dir, "bin", string(ins.Arch), "Uninstall_MATLAB_Runtime.exe")
		if err := ins.Runner(uninstaller); err != nil {
			src.PrintError("Uninstaller for %s failed: %v", dir, err)
		}
	}
	return nil
}
