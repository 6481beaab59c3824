package src

import (
	"errors"

	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"
)

// ErrDeclined reports that the user answered no at a confirmation
// prompt. Callers treat it as a normal abort, not a failure.
var ErrDeclined = errors.New("declined by user")

// AskFunc asks a yes/no question and returns nil for yes and
// ErrDeclined for no. Installer and uninstaller gates take one so
// tests can script answers.
type AskFunc func(label string, defaultYes bool) error

// Confirm prompts on the terminal. An empty answer takes the default.
// With autoAnswer set in the config the prompt is skipped and the
// default is returned.
func Confirm(label string, defaultYes bool) error {
	if viper.GetBool("autoAnswer") {
		if defaultYes {
			return nil
		}
		return ErrDeclined
	}
	def := "n"
	if defaultYes {
		def = "y"
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Default:   def,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return ErrDeclined
		}
		return err
	}
	return nil
}
