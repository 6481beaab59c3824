package src

import (
	"fmt"

	"github.com/fatih/color"
)

func Yellow() *color.Color {
	return color.New(color.FgYellow)
}

func PrintBlue(format string, a ...interface{}) {
	blue := color.New(color.FgBlue).SprintFunc()
	fmt.Println(blue(fmt.Sprintf(format, a...)))
}

func PrintSuccess(format string, a ...interface{}) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Println(green(fmt.Sprintf(format, a...)))
}

func PrintError(format string, a ...interface{}) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Println(red(fmt.Sprintf(format, a...)))
}

func PrintInfo(format string, a ...interface{}) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Println(cyan(fmt.Sprintf(format, a...)))
}

func PrintHighlight(format string, a ...interface{}) {
	magenta := color.New(color.FgMagenta).SprintFunc()
	fmt.Println(magenta(fmt.Sprintf(format, a...)))
}
