package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"matrun/src"
	"matrun/src/archive"
	"matrun/src/fetch"
)

// Patcher swaps the runtime's bundled libcrypto for the matching
// Homebrew build. Recent macOS refuses to load the vendor's copy from
// the runtime's install location, so a freshly installed runtime
// cannot start without this. The fields exist so tests can pin the
// host facts and point the fetch at a local registry; zero values read
// the host and use the real one.
type Patcher struct {
	Bottle   fetch.Bottle
	MacMajor int
	Retries  int
}

// Patch applies the post-install fixes a platform needs. Only macOS
// needs any today.
func (p Patcher) Patch(root string, arch src.Arch) error {
	if !arch.IsMac() {
		return nil
	}
	return p.patchLibcrypto(root, arch)
}

// patchLibcrypto moves bin/<arch>/libcrypto.3.dylib aside, downloads
// the Homebrew openssl bottle and installs its build in place. On any
// failure the original library is restored. A runtime that does not
// bundle libcrypto has nothing to patch.
func (p Patcher) patchLibcrypto(root string, arch src.Arch) error {
	libPath := filepath.Join(root, "bin", string(arch), "libcrypto.3.dylib")
	if _, err := os.Stat(libPath); err != nil {
		return nil
	}

	bottle := p.Bottle
	if bottle.Package == "" {
		bottle = fetch.Bottle{Package: "openssl", Variant: "3", Registry: p.Bottle.Registry}
	}
	bottleVersion := bottle.Version
	if bottleVersion == "" {
		bottleVersion = fetch.BottleVersion(bottle.Package)
	}

	macMajor := p.MacMajor
	if macMajor == 0 {
		macVer, err := src.MacOSVersion()
		if err != nil {
			return err
		}
		macMajor = macVer.Segments()[0]
	}

	backup := libPath + ".tmp"
	if err := os.Rename(libPath, backup); err != nil {
		return fmt.Errorf("failed to set aside %s: %w", libPath, err)
	}

	err := p.installFreshLibcrypto(bottle, bottleVersion, arch, macMajor, libPath)
	if err != nil {
		if rerr := os.Rename(backup, libPath); rerr != nil {
			return fmt.Errorf("failed to restore %s after %v: %w", libPath, err, rerr)
		}
		return err
	}
	return os.Remove(backup)
}

func (p Patcher) installFreshLibcrypto(bottle fetch.Bottle, bottleVersion string, arch src.Arch, macMajor int, libPath string) error {
	scratch, err := os.MkdirTemp("", "matrun-bottle-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	src.PrintInfo("Patching %s ...", filepath.Base(libPath))
	gzipFile, err := fetch.DownloadBottle(bottle, arch, macMajor, scratch, p.Retries)
	if err != nil {
		return err
	}
	if err := archive.ExtractTarGz(gzipFile, scratch); err != nil {
		return err
	}

	pkgDir := bottle.Package
	if bottle.Variant != "" {
		pkgDir += "@" + bottle.Variant
	}
	fresh := filepath.Join(scratch, pkgDir, bottleVersion, "lib", filepath.Base(libPath))
	if err := moveFile(fresh, libPath); err != nil {
		return err
	}
	src.PrintSuccess("Patched %s", libPath)
	return nil
}

// moveFile renames when it can and falls back to copy-and-remove when
// the rename crosses filesystems, as a move out of the scratch
// directory usually does.
func moveFile(from, to string) error {
	if err := os.Rename(from, to); err == nil {
		return nil
	}

	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(to)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(from)
}
