package src

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/hashicorp/go-version"
)

// Arch identifies a runtime platform the way MathWorks names them in
// installer URLs and install trees.
type Arch string

const (
	Win64   Arch = "win64"
	Win32   Arch = "win32"
	Glnxa64 Arch = "glnxa64"
	Glnx86  Arch = "glnx86"
	Maci64  Arch = "maci64"
	Maca64  Arch = "maca64"
)

// ErrUnsupportedArch reports a platform no runtime installer exists for.
var ErrUnsupportedArch = errors.New("unsupported platform")

// Arches lists every platform an installer can exist for, newest
// naming first per OS family.
func Arches() []Arch {
	return []Arch{Win64, Win32, Glnxa64, Glnx86, Maci64, Maca64}
}

// GuessArch maps the running OS and CPU to a runtime platform name.
func GuessArch() (Arch, error) {
	switch runtime.GOOS {
	case "windows":
		if runtime.GOARCH == "386" {
			return Win32, nil
		}
		return Win64, nil
	case "linux":
		if runtime.GOARCH == "386" {
			return Glnx86, nil
		}
		return Glnxa64, nil
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return Maca64, nil
		}
		return Maci64, nil
	}
	return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedArch, runtime.GOOS, runtime.GOARCH)
}

// ParseArch validates a user-supplied platform name.
func ParseArch(s string) (Arch, error) {
	for _, a := range Arches() {
		if s == string(a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedArch, s)
}

// IsWindows reports whether the platform uses the Windows install layout.
func (a Arch) IsWindows() bool {
	return a == Win64 || a == Win32
}

// IsMac reports whether the platform is a macOS one.
func (a Arch) IsMac() bool {
	return a == Maci64 || a == Maca64
}

// MacOSVersion reads the host macOS version from sw_vers.
func MacOSVersion() (*version.Version, error) {
	if runtime.GOOS != "darwin" {
		return nil, fmt.Errorf("not running on macOS")
	}
	out, err := exec.Command("sw_vers", "-productVersion").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to read macOS version: %w", err)
	}
	raw := strings.TrimSpace(string(out))
	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse macOS version %q: %w", raw, err)
	}
	return v, nil
}
