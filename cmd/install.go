package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"matrun/src"
	"matrun/src/installer"
	"matrun/src/mlver"
)

var installArch string

var installCmd = &cobra.Command{
	Use:   "install [version...]",
	Short: "Download and install one or more MATLAB Runtime versions",
	Long: `Download and install the MATLAB Runtime.

Versions may be release names (R2023b), version numbers (9.14) or the
aliases 'latest' and 'latest_installed'. Without an argument the latest
available release is installed.`,
	Aliases: []string{"i"},
	Run: func(cmd *cobra.Command, args []string) {
		versions := args
		if len(versions) == 0 {
			versions = []string{mlver.Latest}
		}

		arch, err := pickArch(installArch)
		if err != nil {
			src.PrintError("%v", err)
			return
		}
		prefix := src.GuessPrefix("", arch)

		ins := installer.New(arch, prefix)
		for _, version := range versions {
			if err := ins.Install(version); err != nil {
				if errors.Is(err, src.ErrDeclined) {
					src.PrintInfo("Installation of '%s' aborted.", version)
					continue
				}
				src.PrintError("Failed to install runtime '%s': %v", version, err)
			}
		}
	},
}

// pickArch resolves the --arch flag, defaulting to the host platform.
func pickArch(flag string) (src.Arch, error) {
	if flag == "" {
		return src.GuessArch()
	}
	return src.ParseArch(flag)
}

func init() {
	installCmd.Flags().StringVar(&installArch, "arch", "", "Target platform (e.g. glnxa64, win64, maca64)")
	installCmd.Flags().Int("retries", 0, "Download attempts before giving up")
	viper.BindPFlag("retries", installCmd.Flags().Lookup("retries"))

	rootCmd.AddCommand(installCmd)
}
