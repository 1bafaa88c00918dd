package cli

import (
	"fmt"
	"io"

	"github.com/thiagodp/apache-php/internal/prompt"
)

// terminalUI implements integrate.UI on the terminal.
type terminalUI struct {
	chooser *prompt.Chooser
	out     io.Writer

	// assumeYes answers every question with its default.
	assumeYes bool
}

func newTerminalUI(in io.Reader, out io.Writer, assumeYes bool) *terminalUI {
	return &terminalUI{
		chooser:   prompt.NewChooser(in, out),
		out:       out,
		assumeYes: assumeYes,
	}
}

func (u *terminalUI) Info(msg string)    { PrintInfo(msg) }
func (u *terminalUI) Success(msg string) { PrintSuccess(msg) }
func (u *terminalUI) Warning(msg string) { PrintWarning(msg) }
func (u *terminalUI) Error(msg string)   { PrintError(msg) }

func (u *terminalUI) Choose(options []string, def string, showOptions bool) (string, error) {
	if u.assumeYes {
		if def == "" {
			return "", fmt.Errorf("--yes given but the question has no default answer")
		}
		_, _ = fmt.Fprintf(u.out, "> %s\n", def)
		return def, nil
	}
	return u.chooser.Choose(options, def, showOptions)
}

func (u *terminalUI) Confirm(def bool) (bool, error) {
	if u.assumeYes {
		answer := "n"
		if def {
			answer = "y"
		}
		_, _ = fmt.Fprintf(u.out, "> %s\n", answer)
		return def, nil
	}
	return u.chooser.Confirm(def)
}
