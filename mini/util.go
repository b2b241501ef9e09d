// Package mini implements a lightweight, minimalist interface for media search and playback.
package mini

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/jevah-cli/jevah/icon"
	"github.com/jevah-cli/jevah/style"
	"github.com/jevah-cli/jevah/util"
)

// title prints a section header above the upcoming prompt.
func title(s string) {
	fmt.Println(style.Title(s))
}

// menu prompts for a single choice. A quit entry is always appended so every
// screen has an exit path.
func menu(options []string) (string, error) {
	options = append(options, quitOption)

	var choice string
	prompt := &survey.Select{
		Message:  "Choose",
		Options:  options,
		PageSize: 10,
	}

	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}

	return choice, nil
}

// getInput prompts for a line of text until valid() accepts it.
func getInput(message string, valid func(string) bool) (string, error) {
	var response string
	input := &survey.Input{
		Message: message,
	}

	err := survey.AskOne(input, &response, survey.WithValidator(func(ans interface{}) error {
		s, _ := ans.(string)
		if !valid(s) {
			return errors.New("invalid input")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return response, nil
}

// progress prints a transient status line and returns a closure that erases it.
func progress(message string) func() {
	return util.PrintErasable(style.Faint(icon.Get(icon.Progress) + " " + message))
}

func fail(message string) {
	fmt.Println(style.Fg(style.Red)(icon.Get(icon.Fail) + " " + message))
}
