package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"matrun/src"
	"matrun/src/catalog"
	"matrun/src/mlver"
)

var infoOutput string

// releaseDetails is the `info --output yaml` document.
type releaseDetails struct {
	Release     string            `yaml:"release"`
	Version     string            `yaml:"version"`
	UpdateLevel int               `yaml:"updateLevel,omitempty"`
	Installers  map[string]string `yaml:"installers,omitempty"`
	Python      []string          `yaml:"python,omitempty"`
}

var infoCmd = &cobra.Command{
	Use:   "info [version]",
	Short: "Display details about a MATLAB Runtime release",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		release, err := mlver.ToRelease(args[0])
		if err != nil {
			src.PrintError("%v", err)
			return
		}
		version, err := mlver.ToDotVersion(release)
		if err != nil {
			src.PrintError("%v", err)
			return
		}

		details := releaseDetails{
			Release:    release,
			Version:    version,
			Installers: map[string]string{},
		}
		if level, ok := catalog.UpdateLevel(release); ok {
			details.UpdateLevel = level
		}
		known := catalog.New()
		for _, arch := range src.Arches() {
			if url, ok := known.Lookup(arch, release); ok {
				details.Installers[string(arch)] = url
			}
		}
		if pythons, ok := catalog.SupportedPythonVersions(release); ok {
			details.Python = pythons
		}

		if infoOutput == "yaml" {
			data, err := yaml.Marshal(details)
			if err != nil {
				src.PrintError("Failed to render release details: %v", err)
				return
			}
			fmt.Print(string(data))
			return
		}

		yellow := src.Yellow()
		src.PrintHighlight("--- MATLAB Runtime %s ---", release)
		fmt.Printf("  %-14s %s\n", "Release:", yellow.Sprint(details.Release))
		fmt.Printf("  %-14s %s\n", "Version:", yellow.Sprint(details.Version))
		if details.UpdateLevel > 0 {
			fmt.Printf("  %-14s %s\n", "Update level:", yellow.Sprint(details.UpdateLevel))
		}
		if len(details.Python) > 0 {
			fmt.Printf("  %-14s %s\n", "Python:", yellow.Sprint(strings.Join(details.Python, ", ")))
		}
		for _, arch := range src.Arches() {
			if url, ok := details.Installers[string(arch)]; ok {
				fmt.Printf("  %-14s %s\n", arch+":", yellow.Sprint(url))
			}
		}
	},
}

func init() {
	infoCmd.Flags().StringVarP(&infoOutput, "output", "o", "", "Output format: yaml")
	rootCmd.AddCommand(infoCmd)
}
