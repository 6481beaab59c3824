package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"matrun/src"
	"matrun/src/locator"
	"matrun/src/mlver"
)

var (
	resolveArch   string
	resolveOutput string
)

type resolved struct {
	Release   string `yaml:"release"`
	Version   string `yaml:"version"`
	Arch      string `yaml:"arch"`
	Installer string `yaml:"installer"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [version]",
	Short: "Resolve a version, release name or alias to a concrete installer",
	Long: `Resolve 'latest', 'latest_installed', a release name (R2023b) or a
version number (9.14) to the release it denotes and the installer URL
for this platform. Aliases and unlisted releases probe the vendor's
download server.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		arch, err := pickArch(resolveArch)
		if err != nil {
			src.PrintError("%v", err)
			return
		}
		prefix := src.GuessPrefix("", arch)

		loc := locator.New()
		release, err := loc.ResolveAlias(args[0], arch, prefix)
		if err != nil {
			src.PrintError("Failed to resolve '%s': %v", args[0], err)
			return
		}
		version, err := mlver.ToDotVersion(release)
		if err != nil {
			src.PrintError("%v", err)
			return
		}
		url, err := loc.Locate(release, arch)
		if err != nil {
			src.PrintError("%v", err)
			return
		}

		if resolveOutput == "yaml" {
			data, err := yaml.Marshal(resolved{
				Release:   release,
				Version:   version,
				Arch:      string(arch),
				Installer: url,
			})
			if err != nil {
				src.PrintError("Failed to render resolution: %v", err)
				return
			}
			fmt.Print(string(data))
			return
		}

		yellow := src.Yellow()
		fmt.Printf("%s %s\n%s\n", release, yellow.Sprint(version), url)
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveArch, "arch", "", "Target platform (e.g. glnxa64, win64, maca64)")
	resolveCmd.Flags().StringVarP(&resolveOutput, "output", "o", "", "Output format: yaml")
	rootCmd.AddCommand(resolveCmd)
}
