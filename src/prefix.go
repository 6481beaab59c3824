package src

import (
	"github.com/spf13/viper"
)

// LicenseFile is the file every installed runtime leaves at the root
// of its release directory. Its presence is how an install is
// recognized, both by the installer and by the locator.
const LicenseFile = "matlabruntime_license_agreement.pdf"

// DefaultPrefix returns the conventional install root for a platform.
func DefaultPrefix(arch Arch) string {
	switch {
	case arch.IsWindows():
		return `C:\Program Files\MATLAB\MATLAB Runtime`
	case arch.IsMac():
		return "/Applications/MATLAB/MATLAB_Runtime"
	default:
		return "/usr/local/MATLAB/MATLAB_Runtime"
	}
}

// GuessPrefix resolves the install root. An explicit value wins, then
// the configured prefix (which the MATLAB_RUNTIME_PATH environment
// variable is bound to), then the platform default.
func GuessPrefix(explicit string, arch Arch) string {
	if explicit != "" {
		return explicit
	}
	if p := viper.GetString("prefix"); p != "" {
		return p
	}
	return DefaultPrefix(arch)
}
