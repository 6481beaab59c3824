package locator

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"matrun/src"
	"matrun/src/mlver"
)

// ErrNotInstalled reports that no installed runtime matches the
// requested version.
var ErrNotInstalled = errors.New("runtime not installed")

const versionInfoFile = "VersionInfo.xml"

// versionInfo mirrors the fields of VersionInfo.xml that matter here;
// the file sits at the root of every runtime and full MATLAB install.
type versionInfo struct {
	Version string `xml:"version"`
	Release string `xml:"release"`
}

// candidateLocations lists where runtimes and full products have
// historically been installed, per OS family.
func candidateLocations(arch src.Arch, release string) []string {
	switch {
	case arch.IsWindows():
		return []string{
			`C:\Program Files (x86)\MATLAB\MATLAB Runtime\` + release,
			`C:\Program Files\MATLAB\MATLAB Runtime\` + release,
			`C:\Program Files\MATLAB\` + release,
			`C:\Program Files (x86)\MATLAB\` + release,
		}
	case arch.IsMac():
		return []string{
			"/Applications/MATLAB/MATLAB_Runtime/" + release,
			"/Applications/MATLAB_" + release + ".app",
			"/Applications/MATLAB/" + release,
		}
	default:
		return []string{
			"/usr/local/MATLAB/MATLAB_Runtime/" + release,
			"/usr/local/MATLAB/" + release,
		}
	}
}

// FindRuntime returns the root directory of an installed runtime (or
// full MATLAB product) matching version. The prefix is checked first,
// then the configured matlabPath override, then the historical
// install locations, then whatever matlab binary is on PATH. Language
// bridges use this to pick the installation they will load.
func FindRuntime(version, prefix string, arch src.Arch) (string, error) {
	release, err := mlver.ToRelease(version)
	if err != nil {
		return "", err
	}

	if prefix != "" {
		root := filepath.Join(prefix, release)
		if _, err := os.Stat(filepath.Join(root, versionInfoFile)); err == nil {
			return root, nil
		}
	}

	if path := viper.GetString("matlabPath"); path != "" {
		path = strings.TrimRight(path, string(os.PathSeparator))
		if rel, err := InstalledRelease(path); err == nil && rel == release {
			return path, nil
		}
	}

	for _, dir := range candidateLocations(arch, release) {
		if _, err := os.Stat(filepath.Join(dir, versionInfoFile)); err == nil {
			return dir, nil
		}
	}

	if path, err := exec.LookPath("matlab"); err == nil {
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			root := filepath.Dir(filepath.Dir(resolved))
			if rel, err := InstalledRelease(root); err == nil && rel == release {
				return root, nil
			}
		}
	}

	return "", fmt.Errorf("%w: no %s found", ErrNotInstalled, release)
}

// InstalledRelease reads the release name of the installation
// containing path, walking up parent directories until a
// VersionInfo.xml turns up.
func InstalledRelease(path string) (string, error) {
	vi, err := readVersionInfo(path)
	if err != nil {
		return "", err
	}
	if vi.Release == "" {
		return "", fmt.Errorf("no release recorded in %s for %s", versionInfoFile, path)
	}
	return vi.Release, nil
}

// InstalledVersion reads the dot version of the installation
// containing path.
func InstalledVersion(path string) (string, error) {
	vi, err := readVersionInfo(path)
	if err != nil {
		return "", err
	}
	if vi.Version == "" {
		return "", fmt.Errorf("no version recorded in %s for %s", versionInfoFile, path)
	}
	return vi.Version, nil
}

func readVersionInfo(path string) (versionInfo, error) {
	for {
		xmlPath := filepath.Join(path, versionInfoFile)
		if data, err := os.ReadFile(xmlPath); err == nil {
			var vi versionInfo
			if err := xml.Unmarshal(data, &vi); err != nil {
				return versionInfo{}, fmt.Errorf("failed to parse %s: %w", xmlPath, err)
			}
			return vi, nil
		}
		parent := filepath.Dir(path)
		if parent == path {
			return versionInfo{}, fmt.Errorf("%w: no %s at or above %s", ErrNotInstalled, versionInfoFile, path)
		}
		path = parent
	}
}
