package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"matrun/src"
	"matrun/src/catalog"
	"matrun/src/fetch"
	"matrun/src/locator"
	"matrun/src/mlver"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Short:   "Check for issues with the MATLAB Runtime installation",
	Aliases: []string{"doc"},
	Run: func(cmd *cobra.Command, args []string) {
		arch, err := src.GuessArch()
		if err != nil {
			src.PrintError("This platform cannot run the MATLAB Runtime: %v", err)
			return
		}
		prefix := src.GuessPrefix("", arch)

		src.PrintHighlight("--- MATLAB Runtime Doctor ---")

		src.PrintInfo("\n1. Platform")
		src.PrintSuccess("   Detected %s, installing under %s", arch, prefix)
		if config := viper.ConfigFileUsed(); config != "" {
			src.PrintInfo("   Config file: %s", config)
		}

		installed := checkInstalledRuntimes(prefix)

		brokenDirs, err := checkBrokenInstalls(prefix)
		if err != nil {
			src.PrintError("Error checking the prefix: %v", err)
		}

		staleBackups, err := checkStalePatchBackups(prefix, arch, installed)
		if err != nil {
			src.PrintError("Error checking for patch leftovers: %v", err)
		}

		checkDownloadServer(arch)

		if len(brokenDirs) == 0 && len(staleBackups) == 0 {
			src.PrintSuccess("\n✅ No issues found. Your runtime installation looks healthy!")
			return
		}

		promptAndFixRuntimeIssues(brokenDirs, staleBackups)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func checkInstalledRuntimes(prefix string) []string {
	src.PrintInfo("\n2. Installed runtimes in %s", prefix)
	releases := locator.InstalledReleases(prefix)
	if len(releases) == 0 {
		src.PrintInfo("   No runtimes installed. Nothing to check.")
		return nil
	}
	for _, release := range releases {
		src.PrintSuccess("   %s", release)
	}
	return releases
}

// checkBrokenInstalls flags release-named directories that lack the
// license sentinel, the usual residue of an interrupted install.
// Directories not named like a release are left alone, whatever they
// hold.
func checkBrokenInstalls(prefix string) ([]string, error) {
	src.PrintInfo("\n3. Checking for interrupted installs...")

	entries, err := os.ReadDir(prefix)
	if os.IsNotExist(err) {
		src.PrintInfo("   Prefix does not exist. Nothing to check.")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var broken []string
	for _, e := range entries {
		if !e.IsDir() || !mlver.IsRelease(e.Name()) {
			continue
		}
		sentinel := filepath.Join(prefix, e.Name(), src.LicenseFile)
		if _, err := os.Stat(sentinel); err == nil {
			continue
		}
		broken = append(broken, filepath.Join(prefix, e.Name()))
	}

	if len(broken) > 0 {
		src.PrintError("   Found %d directories without a license sentinel.", len(broken))
	} else {
		src.PrintSuccess("   No interrupted installs found.")
	}
	return broken, nil
}

// checkStalePatchBackups looks for libcrypto backups a crashed patch
// run left next to the library.
func checkStalePatchBackups(prefix string, arch src.Arch, installed []string) ([]string, error) {
	src.PrintInfo("\n4. Checking for leftover patch backups...")
	if !arch.IsMac() {
		src.PrintInfo("   Only macOS runtimes get patched. Nothing to check.")
		return nil, nil
	}

	var stale []string
	for _, release := range installed {
		backup := filepath.Join(prefix, release, "bin", string(arch), "libcrypto.3.dylib.tmp")
		if _, err := os.Stat(backup); err == nil {
			stale = append(stale, backup)
		}
	}

	if len(stale) > 0 {
		src.PrintError("   Found %d leftover backups.", len(stale))
	} else {
		src.PrintSuccess("   No leftover backups found.")
	}
	return stale, nil
}

func checkDownloadServer(arch src.Arch) {
	src.PrintInfo("\n5. Checking the download server...")
	cat := catalog.New()
	release, ok := cat.Newest(arch)
	if !ok {
		src.PrintInfo("   No known installers for %s. Nothing to probe.", arch)
		return
	}
	url, _ := cat.Lookup(arch, release)
	if fetch.Exists(url) {
		src.PrintSuccess("   %s installer reachable.", release)
	} else {
		src.PrintError("   Could not reach %s", url)
	}
}

func promptAndFixRuntimeIssues(brokenDirs, staleBackups []string) {
	if len(brokenDirs) > 0 {
		prompt := promptui.Prompt{
			Label:     "Do you want to remove the interrupted install directories",
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err == nil {
			for _, dir := range brokenDirs {
				if err := os.RemoveAll(dir); err == nil {
					src.PrintInfo("   Removed: %s", dir)
				}
			}
			src.PrintSuccess("Interrupted installs removed.")
		} else if errors.Is(err, promptui.ErrAbort) {
			src.PrintInfo("Skipping.")
		}
	}

	if len(staleBackups) > 0 {
		prompt := promptui.Prompt{
			Label:     "Do you want to delete the leftover patch backups",
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err == nil {
			for _, backup := range staleBackups {
				if err := os.Remove(backup); err == nil {
					src.PrintInfo("   Deleted: %s", backup)
				}
			}
			src.PrintSuccess("Patch backups deleted.")
		} else if errors.Is(err, promptui.ErrAbort) {
			src.PrintInfo("Skipping.")
		}
	}

	src.PrintHighlight("\nDoctor check complete.")
}
