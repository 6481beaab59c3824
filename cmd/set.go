package cmd

import (
	"errors"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"matrun/src"
)

var setCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value, interactively or directly",
	Long: `Set a configuration value in your ~/.matrun/config.yaml file.
- Call with a key and value to set it directly.
- Call without arguments to launch an interactive prompt.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || len(args) == 2 {
			return nil
		}
		return errors.New("this command requires either 0 or 2 arguments")
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 2 {
			setKeyValue(args[0], args[1])
			return
		}

		configurableKeys := []string{"prefix", "matlabPath", "retries", "autoAnswer"}

		templates := &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   `{{ "›" | green | bold }} {{ . | green | bold }}`,
			Inactive: "  {{ . | faint }}",
			Selected: `{{ "✔" | green | bold }} {{ "Selected key:" | bold }} {{ . | yellow }}`,
		}

		selectPrompt := promptui.Select{
			Label:     "Select a configuration key to change",
			Items:     configurableKeys,
			Templates: templates,
		}

		_, selectedKey, err := selectPrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				src.PrintInfo("Configuration cancelled.")
			}
			return
		}

		currentValue := viper.GetString(selectedKey)

		inputPrompt := promptui.Prompt{
			Label:   "Enter the new value for '" + selectedKey + "'",
			Default: currentValue,
		}

		newValue, err := inputPrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				src.PrintInfo("Configuration cancelled.")
			}
			return
		}

		setKeyValue(selectedKey, newValue)
	},
}

func setKeyValue(key, value string) {
	if key == "prefix" && value == "default" {
		arch, err := src.GuessArch()
		if err != nil {
			src.PrintError("%v", err)
			return
		}
		value = src.DefaultPrefix(arch)
	}

	viper.Set(key, value)
	if err := viper.WriteConfig(); err != nil {
		if err = viper.SafeWriteConfig(); err != nil {
			src.PrintError("Error writing configuration: %v", err)
			return
		}
	}

	yellow := src.Yellow()
	src.PrintSuccess("Set %s to %s", key, yellow.Sprint(value))
}

func init() {
	rootCmd.AddCommand(setCmd)
}
