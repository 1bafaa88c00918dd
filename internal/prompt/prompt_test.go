package prompt

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestChooser_Choose(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		options     []string
		def         string
		showOptions bool
		want        string
		wantPrompts int
	}{
		{
			name:        "valid first answer",
			input:       "2\n",
			options:     []string{"1", "2"},
			def:         "1",
			want:        "2",
			wantPrompts: 1,
		},
		{
			name:        "empty answer takes default",
			input:       "\n",
			options:     []string{"1", "2"},
			def:         "1",
			want:        "1",
			wantPrompts: 1,
		},
		{
			name:        "re-prompts until valid",
			input:       "7\nabc\n2\n",
			options:     []string{"1", "2"},
			def:         "1",
			want:        "2",
			wantPrompts: 3,
		},
		{
			name:        "empty answer without default re-prompts",
			input:       "\nb\n",
			options:     []string{"a", "b"},
			want:        "b",
			wantPrompts: 2,
		},
		{
			name:        "membership is case-sensitive",
			input:       "Y\ny\n",
			options:     []string{"y", "n"},
			want:        "y",
			wantPrompts: 2,
		},
		{
			name:        "windows line endings stripped",
			input:       "n\r\n",
			options:     []string{"y", "n"},
			want:        "n",
			wantPrompts: 1,
		},
		{
			name:        "last line without newline accepted",
			input:       "y",
			options:     []string{"y", "n"},
			want:        "y",
			wantPrompts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewChooser(strings.NewReader(tt.input), &out)

			got, err := c.Choose(tt.options, tt.def, tt.showOptions)
			if err != nil {
				t.Fatalf("Choose() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Choose() = %q, want %q", got, tt.want)
			}
			if n := strings.Count(out.String(), "> "); n != tt.wantPrompts {
				t.Errorf("prompted %d times, want %d (output %q)", n, tt.wantPrompts, out.String())
			}
		})
	}
}

func TestChooser_PromptText(t *testing.T) {
	var out bytes.Buffer
	c := NewChooser(strings.NewReader("y\n"), &out)

	if _, err := c.Choose([]string{"y", "Y", "n", "N"}, "y", true); err != nil {
		t.Fatalf("Choose() error = %v", err)
	}

	want := "(y, Y, n, N) > (Empty for y): "
	if out.String() != want {
		t.Errorf("prompt = %q, want %q", out.String(), want)
	}
}

func TestChooser_EndOfInput(t *testing.T) {
	c := NewChooser(strings.NewReader("x\n"), io.Discard)

	_, err := c.Choose([]string{"1", "2"}, "", false)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Choose() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestChooser_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{name: "lowercase yes", input: "y\n", want: true},
		{name: "uppercase yes", input: "Y\n", want: true},
		{name: "uppercase no", input: "N\n", def: true, want: false},
		{name: "empty takes default yes", input: "\n", def: true, want: true},
		{name: "empty takes default no", input: "\n", def: false, want: false},
		{name: "invalid then no", input: "yes\nn\n", def: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChooser(strings.NewReader(tt.input), io.Discard)
			got, err := c.Confirm(tt.def)
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumberedOptions(t *testing.T) {
	if got := NumberedOptions(3); !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Errorf("NumberedOptions(3) = %v", got)
	}
	if got := NumberedOptions(0); len(got) != 0 {
		t.Errorf("NumberedOptions(0) = %v, want empty", got)
	}
}
