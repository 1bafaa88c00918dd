// Package patch edits line-oriented configuration files in place.
//
// A patch is an ordered list of exact-substring replacement rules followed
// by lines to append. Rules are applied in order, each one against the
// output of the previous ones, and replace every occurrence. Appended lines
// end with the line terminator detected in the original content. The file
// is rewritten atomically: on any error the original stays on disk as it
// was.
package patch

import (
	"fmt"
	"os"
	"strings"

	"github.com/thiagodp/apache-php/internal/fsops"
)

const (
	// EOLWindows is the CRLF terminator.
	EOLWindows = "\r\n"

	// EOLUnix is the LF terminator.
	EOLUnix = "\n"
)

// Rule replaces every occurrence of From with To.
type Rule struct {
	From string
	To   string
}

// Result describes what a patch did.
type Result struct {
	// Content is the patched content.
	Content string

	// EOL is the terminator detected in the original content.
	EOL string

	// Replacements counts occurrences replaced across all rules.
	Replacements int

	// Unmatched lists the rules whose From was not present when the rule ran.
	Unmatched []Rule

	// Changed reports whether Content differs from the original.
	Changed bool
}

// DetectEOL returns EOLWindows if content contains CRLF anywhere, and
// EOLUnix otherwise.
func DetectEOL(content string) string {
	if strings.Contains(content, EOLWindows) {
		return EOLWindows
	}
	return EOLUnix
}

// Apply runs rules over content, then appends additions. A rule whose From
// is absent leaves the content unchanged and is reported in Unmatched.
func Apply(content string, rules []Rule, additions []string) Result {
	res := Result{EOL: DetectEOL(content)}

	out := content
	for _, r := range rules {
		n := 0
		if r.From != "" {
			n = strings.Count(out, r.From)
		}
		if n == 0 {
			res.Unmatched = append(res.Unmatched, r)
			continue
		}
		out = strings.ReplaceAll(out, r.From, r.To)
		res.Replacements += n
	}

	if len(additions) > 0 {
		var b strings.Builder
		b.WriteString(out)
		for _, line := range additions {
			b.WriteString(line)
			b.WriteString(res.EOL)
		}
		out = b.String()
	}

	res.Content = out
	res.Changed = out != content
	return res
}

// Patcher applies patches to files.
type Patcher struct {
	fs fsops.FS
}

// New creates a Patcher.
func New(fs fsops.FS) *Patcher {
	return &Patcher{fs: fs}
}

// Patch reads path, applies rules and additions, and writes the result back
// atomically, keeping the file's permission bits. Read failures wrap
// ErrRead and write failures wrap ErrWrite.
//
// Rules that toggle a disabled line to an enabled one are naturally
// idempotent. Additions are not: patching twice appends them twice.
func (p *Patcher) Patch(path string, rules []Rule, additions []string) (*Result, error) {
	info, err := p.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	data, err := p.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}

	res := Apply(string(data), rules, additions)
	if !res.Changed {
		return &res, nil
	}

	if err := p.fs.AtomicWrite(path, []byte(res.Content), filePerm(info)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return &res, nil
}

func filePerm(info os.FileInfo) os.FileMode {
	if perm := info.Mode().Perm(); perm != 0 {
		return perm
	}
	return 0644
}
