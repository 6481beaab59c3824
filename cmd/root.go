package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type VersionInfo struct {
	Branch string
	Status string
	Number string
	Commit string
}

var rootCmd = &cobra.Command{
	Use:          "matrun",
	Short:        "Matrun - MATLAB Runtime installer and version manager.",
	SilenceUsage: true,
}

var currentVersionInfo VersionInfo

func Execute(versionInfo VersionInfo) {
	currentVersionInfo = versionInfo

	fullVersion := fmt.Sprintf("%s %s %s %s",
		versionInfo.Branch, versionInfo.Status, versionInfo.Number, versionInfo.Commit)
	rootCmd.Version = fullVersion

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Answer every question with its default")
	rootCmd.PersistentFlags().StringP("prefix", "p", "", "Install location of the MATLAB Runtime")
	viper.BindPFlag("autoAnswer", rootCmd.PersistentFlags().Lookup("yes"))
	viper.BindPFlag("prefix", rootCmd.PersistentFlags().Lookup("prefix"))
}

func initConfig() {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	configPath := home + "/.matrun"
	os.MkdirAll(configPath, 0755)
	viper.AddConfigPath(configPath)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("retries", 5)

	// MATLAB_RUNTIME_PATH overrides the install prefix, MATLAB_PATH
	// points at a regular MATLAB install to search as well.
	viper.BindEnv("prefix", "MATLAB_RUNTIME_PATH")
	viper.BindEnv("matlabPath", "MATLAB_PATH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			cobra.CheckErr(err)
		}
	}
}
