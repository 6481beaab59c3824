// Package installer drives the MATLAB Runtime install and uninstall
// workflows around the locator, with a confirmation gate before every
// irreversible step.
package installer

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/spf13/viper"

	"matrun/src"
	"matrun/src/archive"
	"matrun/src/fetch"
	"matrun/src/locator"
)

// quarantineFloor is the last macOS release whose Gatekeeper does not
// block the vendor installer binaries.
var quarantineFloor = version.Must(version.NewVersion("10.14"))

// Installer holds everything one install or uninstall run needs. The
// function fields exist so tests can script answers and intercept
// subprocess calls; New fills them with the real implementations.
type Installer struct {
	Locator *locator.Locator
	Arch    src.Arch
	Prefix  string
	Retries int
	Ask     src.AskFunc
	Runner  func(name string, args ...string) error
	Patcher Patcher
}

// New returns an Installer wired for the host: live HTTP probing,
// interactive prompts and real subprocess execution.
func New(arch src.Arch, prefix string) *Installer {
	retries := viper.GetInt("retries")
	if retries <= 0 {
		retries = fetch.DefaultRetries
	}
	return &Installer{
		Locator: locator.New(),
		Arch:    arch,
		Prefix:  prefix,
		Retries: retries,
		Ask:     src.Confirm,
		Runner:  runCommand,
		Patcher: Patcher{Retries: retries},
	}
}

// Install provisions one runtime version under the prefix. version may
// be a release name, a dot version or an alias. Declining the
// reinstall gate is a peaceful no-op; declining any later gate aborts
// with src.ErrDeclined. The version check after the vendor installer
// exits is the only trusted success signal.
func (ins *Installer) Install(ver string) error {
	release, err := ins.Locator.ResolveAlias(ver, ins.Arch, ins.Prefix)
	if err != nil {
		return err
	}

	installed := filepath.Join(ins.Prefix, release)
	sentinel := filepath.Join(installed, src.LicenseFile)
	if _, err := os.Stat(sentinel); err == nil {
		if err := ins.Ask("Runtime already exists. Reinstall", false); err != nil {
			if errors.Is(err, src.ErrDeclined) {
				src.PrintInfo("Do not reinstall: %s", installed)
				return nil
			}
			return err
		}
		src.PrintInfo("Runtime already exists. Reinstalling...")
	}

	url, err := ins.Locator.Locate(release, ins.Arch)
	if err != nil {
		return err
	}

	if err := ins.Ask(fmt.Sprintf("Download installer from %s", url), true); err != nil {
		return err
	}

	scratch, err := os.MkdirTemp("", "matrun-")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	src.PrintInfo("Downloading from %s ...", url)
	installerPath, err := fetch.Download(url, scratch, ins.Retries)
	if err != nil {
		return err
	}
	src.PrintSuccess("Downloaded %s", installerPath)

	if strings.HasSuffix(installerPath, ".zip") {
		if err := ins.Ask(fmt.Sprintf("Unzip %s", installerPath), true); err != nil {
			return err
		}
		src.PrintInfo("Unzipping %s ...", installerPath)
		if err := archive.ExtractZip(installerPath, scratch); err != nil {
			return err
		}
		if ins.Arch.IsWindows() {
			installerPath = filepath.Join(scratch, "setup.exe")
		} else {
			installerPath = filepath.Join(scratch, "install")
		}
	}

	if _, err := os.Stat(installerPath); err != nil {
		return fmt.Errorf("no installer found in archive, got: %s", dirListing(scratch))
	}

	if err := ins.Ask(licenseQuestion(scratch), true); err != nil {
		return err
	}
	src.PrintSuccess("License agreed.")

	if err := ins.clearQuarantine(scratch); err != nil {
		src.PrintError("Could not clear the quarantine attribute: %v", err)
	}

	src.PrintInfo("Installing %s ...", installerPath)
	err = ins.Runner(installerPath,
		"-agreeToLicense", "yes",
		"-mode", "silent",
		"-destinationFolder", ins.Prefix,
		"-tmpdir", scratch,
	)
	if err != nil {
		// The vendor installer's exit code is unreliable either way;
		// the sentinel check below decides.
		src.PrintError("Installation failed? Installer exited with: %v", err)
	}

	if _, err := os.Stat(sentinel); err != nil {
		if listing := dirListing(installed); listing != "" {
			src.PrintError("Runtime not found where it is expected, %s holds: %s", installed, listing)
		} else if listing := dirListing(ins.Prefix); listing != "" {
			src.PrintError("Runtime not found where it is expected, %s holds: %s", ins.Prefix, listing)
		}
		return fmt.Errorf("runtime not found where it is expected: %s", installed)
	}

	src.PrintSuccess("Runtime successfully installed at %s", installed)
	src.PrintInfo("License agreement available at %s", sentinel)

	if err := ins.Patcher.Patch(installed, ins.Arch); err != nil {
		return fmt.Errorf("runtime installed but could not be patched: %w", err)
	}
	return nil
}

func licenseQuestion(scratch string) string {
	return "BY ENTERING 'y', YOU ACCEPT THE TERMS OF THE MATLAB RUNTIME " +
		"LICENSE, LINKED BELOW. THE MATLAB RUNTIME INSTALLER WILL BE " +
		"RUN WITH THE ARGUMENT `-agreeToLicense yes`. " +
		"IF YOU ARE NOT WILLING TO DO SO, ENTER 'n' AND THE " +
		"INSTALLATION WILL BE ABORTED.\n\t" +
		filepath.Join(scratch, src.LicenseFile) + "\nProceed"
}

// clearQuarantine lifts the quarantine attribute Gatekeeper stamps on
// downloaded binaries; past Mojave the vendor installer cannot run
// with it in place. xattr needs sudo for files it did not create.
func (ins *Installer) clearQuarantine(dir string) error {
	if !ins.Arch.IsMac() {
		return nil
	}
	macVer, err := src.MacOSVersion()
	if err != nil {
		return err
	}
	if !macVer.GreaterThan(quarantineFloor) {
		return nil
	}
	src.PrintInfo("Running the MATLAB installer requires signing off its binaries, which requires sudo:")
	return ins.Runner("sudo", "xattr", "-r", "-d", "com.apple.quarantine", dir)
}

func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func dirListing(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return strings.Join(names, ", ")
}
