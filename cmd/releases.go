package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"matrun/src"
	"matrun/src/catalog"
	"matrun/src/mlver"
)

var (
	releasesArch string
	releasesLive bool
)

var releasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "List the MATLAB Runtime releases available for a platform",
	Long: `List the releases an installer is known for, newest first.

With --live the vendor's download page is scraped instead, which also
surfaces releases newer than this tool.`,
	Run: func(cmd *cobra.Command, args []string) {
		arch, err := pickArch(releasesArch)
		if err != nil {
			src.PrintError("%v", err)
			return
		}

		if releasesLive {
			printLiveReleases()
			return
		}

		yellow := src.Yellow()
		src.PrintHighlight("--- Known releases for %s ---", arch)
		for _, release := range catalog.New().Releases(arch) {
			version, err := mlver.ToDotVersion(release)
			if err != nil {
				version = "?"
			}
			fmt.Printf("  %-12s %s\n", release, yellow.Sprint(version))
		}
	},
}

func printLiveReleases() {
	src.PrintInfo("Fetching %s ...", catalog.DownloadPageURL)
	entries, err := catalog.ScrapeDownloadPage(catalog.DownloadPageURL)
	if err != nil {
		src.PrintError("Failed to scrape the download page: %v", err)
		return
	}

	yellow := src.Yellow()
	src.PrintHighlight("--- Releases on the download page ---")
	for _, entry := range entries {
		fmt.Printf("  %-12s %s\n", entry.Release, yellow.Sprintf("%d installers", len(entry.URLs)))
	}
}

func init() {
	releasesCmd.Flags().StringVar(&releasesArch, "arch", "", "Target platform (e.g. glnxa64, win64, maca64)")
	releasesCmd.Flags().BoolVar(&releasesLive, "live", false, "Scrape the vendor's download page")
	rootCmd.AddCommand(releasesCmd)
}
