package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"matrun/src"
	"matrun/src/installer"
)

var uninstallArch string

var uninstallCmd = &cobra.Command{
	Use:   "uninstall [version...]",
	Short: "Uninstall one or more MATLAB Runtime versions",
	Long: `Uninstall MATLAB Runtime versions from the install prefix.

Without an argument every installed version is removed. A failing
version does not stop the remaining ones.`,
	Aliases: []string{"u"},
	Run: func(cmd *cobra.Command, args []string) {
		versions := args
		if len(versions) == 0 {
			versions = []string{"all"}
		}

		arch, err := pickArch(uninstallArch)
		if err != nil {
			src.PrintError("%v", err)
			return
		}
		prefix := src.GuessPrefix("", arch)

		ins := installer.New(arch, prefix)
		for _, version := range versions {
			if err := ins.Uninstall(version); err != nil {
				if errors.Is(err, src.ErrDeclined) {
					src.PrintInfo("Uninstall of '%s' aborted.", version)
					continue
				}
				src.PrintError("Failed to uninstall runtime '%s': %v", version, err)
			}
		}
	},
}

func init() {
	uninstallCmd.Flags().StringVar(&uninstallArch, "arch", "", "Target platform (e.g. glnxa64, win64, maca64)")
	rootCmd.AddCommand(uninstallCmd)
}
