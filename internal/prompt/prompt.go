// Package prompt asks the operator questions on a line-oriented terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
)

var (
	optionsColor = color.New(color.FgHiBlack)
	markerColor  = color.New(color.FgCyan, color.Bold)
)

// Chooser reads answers from in and writes prompts to out.
type Chooser struct {
	in  *bufio.Reader
	out io.Writer
}

// NewChooser creates a Chooser.
func NewChooser(in io.Reader, out io.Writer) *Chooser {
	return &Chooser{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Choose keeps asking until the answer is one of options. Membership is
// exact and case-sensitive. An empty answer selects def when def is not
// empty. When showOptions is set the options are printed before each
// prompt.
//
// There is no retry limit. Choose only gives up when input ends, returning
// io.ErrUnexpectedEOF.
func (c *Chooser) Choose(options []string, def string, showOptions bool) (string, error) {
	for {
		if showOptions {
			_, _ = optionsColor.Fprintf(c.out, "(%s) ", strings.Join(options, ", "))
		}
		_, _ = markerColor.Fprint(c.out, "> ")
		if def != "" {
			_, _ = fmt.Fprintf(c.out, "(Empty for %s): ", def)
		}

		input, err := c.readLine()
		if err != nil {
			return "", err
		}
		if input == "" && def != "" {
			input = def
		}
		if slices.Contains(options, input) {
			return input, nil
		}
	}
}

// Confirm asks a y/n question. def is the answer for empty input.
func (c *Chooser) Confirm(def bool) (bool, error) {
	defAnswer := "n"
	if def {
		defAnswer = "y"
	}
	answer, err := c.Choose([]string{"y", "Y", "n", "N"}, defAnswer, true)
	if err != nil {
		return false, err
	}
	return strings.ToLower(answer) == "y", nil
}

func (c *Chooser) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if err == io.EOF {
			return "", io.ErrUnexpectedEOF
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// NumberedOptions returns "1".."n".
func NumberedOptions(n int) []string {
	options := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		options = append(options, fmt.Sprint(i))
	}
	return options
}
