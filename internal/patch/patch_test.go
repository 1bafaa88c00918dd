package patch

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/thiagodp/apache-php/internal/fsops"
)

// failingWriteFS is a RealFS whose writes always fail.
type failingWriteFS struct {
	*fsops.RealFS
}

func (fs failingWriteFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	return errors.New("disk full")
}

func TestDetectEOL(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "empty", content: "", want: EOLUnix},
		{name: "unix only", content: "a\nb\n", want: EOLUnix},
		{name: "windows only", content: "a\r\nb\r\n", want: EOLWindows},
		{name: "single crlf among lf", content: "a\nb\r\nc\n", want: EOLWindows},
		{name: "lone cr", content: "a\rb", want: EOLUnix},
		{name: "no terminator", content: "abc", want: EOLUnix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectEOL(tt.content); got != tt.want {
				t.Errorf("DetectEOL(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	t.Run("absent from is a no-op", func(t *testing.T) {
		content := "ServerRoot \"/srv\"\n"
		rule := Rule{From: "#LoadModule ssl_module modules/mod_ssl.so", To: "LoadModule ssl_module modules/mod_ssl.so"}

		res := Apply(content, []Rule{rule}, nil)
		if res.Content != content {
			t.Errorf("content changed: %q", res.Content)
		}
		if res.Changed {
			t.Error("Changed = true, want false")
		}
		if len(res.Unmatched) != 1 || res.Unmatched[0] != rule {
			t.Errorf("Unmatched = %v, want [%v]", res.Unmatched, rule)
		}
	})

	t.Run("replaces every occurrence", func(t *testing.T) {
		content := "x foo y foo z foo\n"
		res := Apply(content, []Rule{{From: "foo", To: "bar"}}, nil)

		if strings.Count(res.Content, "foo") != 0 {
			t.Errorf("from still present: %q", res.Content)
		}
		if strings.Count(res.Content, "bar") != 3 {
			t.Errorf("to count = %d, want 3", strings.Count(res.Content, "bar"))
		}
		if res.Replacements != 3 {
			t.Errorf("Replacements = %d, want 3", res.Replacements)
		}
	})

	t.Run("rules see earlier output", func(t *testing.T) {
		res := Apply("a", []Rule{{From: "a", To: "b"}, {From: "b", To: "c"}}, nil)
		if res.Content != "c" {
			t.Errorf("Content = %q, want %q", res.Content, "c")
		}
	})

	t.Run("to containing from", func(t *testing.T) {
		res := Apply("ext", []Rule{{From: "ext", To: "next"}}, nil)
		if res.Content != "next" {
			t.Errorf("Content = %q, want %q", res.Content, "next")
		}
	})

	t.Run("empty from is unmatched", func(t *testing.T) {
		res := Apply("abc", []Rule{{From: "", To: "x"}}, nil)
		if res.Content != "abc" || len(res.Unmatched) != 1 {
			t.Errorf("Content = %q, Unmatched = %v", res.Content, res.Unmatched)
		}
	})

	t.Run("additions use the original terminator", func(t *testing.T) {
		content := "line1\r\nline2\r\n"
		// The rule removes the only CRLF; additions still use CRLF.
		rules := []Rule{{From: "line1\r\nline2\r\n", To: "joined\n"}}

		res := Apply(content, rules, []string{"", "# added"})
		want := "joined\n\r\n# added\r\n"
		if res.Content != want {
			t.Errorf("Content = %q, want %q", res.Content, want)
		}
		if res.EOL != EOLWindows {
			t.Errorf("EOL = %q, want CRLF", res.EOL)
		}
	})

	t.Run("additions on unix content", func(t *testing.T) {
		res := Apply("a\n", nil, []string{"b", "c"})
		if res.Content != "a\nb\nc\n" {
			t.Errorf("Content = %q", res.Content)
		}
	})

	t.Run("reapplying toggle rules is a no-op", func(t *testing.T) {
		rules := []Rule{{
			From: "#LoadModule rewrite_module modules/mod_rewrite.so",
			To:   "LoadModule rewrite_module modules/mod_rewrite.so",
		}}
		first := Apply("#LoadModule rewrite_module modules/mod_rewrite.so\n", rules, nil)
		second := Apply(first.Content, rules, nil)

		if second.Changed {
			t.Errorf("second application changed content: %q", second.Content)
		}
	})
}

func TestPatcher_Patch(t *testing.T) {
	t.Run("srvroot scenario", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "httpd.conf")
		original := "Define SRVROOT \"c:/Apache24\"\r\nServerRoot \"${SRVROOT}\"\r\n"
		if err := os.WriteFile(path, []byte(original), 0644); err != nil {
			t.Fatal(err)
		}

		rules := []Rule{{From: `Define SRVROOT "c:/Apache24"`, To: `Define SRVROOT "C:/Apache24/Apache24"`}}
		additions := []string{"", "<IfModule php8_module>", "</IfModule>"}

		res, err := New(fsops.NewRealFS()).Patch(path, rules, additions)
		if err != nil {
			t.Fatalf("Patch failed: %v", err)
		}

		data, _ := os.ReadFile(path)
		got := string(data)
		if got != res.Content {
			t.Error("file content differs from Result.Content")
		}
		if strings.Count(got, `Define SRVROOT "C:/Apache24/Apache24"`) != 1 {
			t.Errorf("replacement count wrong: %q", got)
		}
		if strings.Contains(got, `Define SRVROOT "c:/Apache24"`) {
			t.Errorf("original still present: %q", got)
		}
		if !strings.HasSuffix(got, "\r\n<IfModule php8_module>\r\n</IfModule>\r\n") {
			t.Errorf("additions not appended with CRLF: %q", got)
		}
	})

	t.Run("keeps file mode", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("permission bits")
		}
		dir := t.TempDir()
		path := filepath.Join(dir, "php.ini")
		if err := os.WriteFile(path, []byte(";extension_dir = \"ext\"\n"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := New(fsops.NewRealFS()).Patch(path, []Rule{{From: ";extension_dir", To: "extension_dir"}}, nil); err != nil {
			t.Fatalf("Patch failed: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("mode = %v, want 0600", info.Mode().Perm())
		}
	})

	t.Run("missing file is a read error", func(t *testing.T) {
		dir := t.TempDir()
		_, err := New(fsops.NewRealFS()).Patch(filepath.Join(dir, "httpd.conf"), nil, []string{"x"})
		if !errors.Is(err, ErrRead) {
			t.Errorf("error = %v, want ErrRead", err)
		}
	})

	t.Run("write failure leaves original untouched", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "httpd.conf")
		if err := os.WriteFile(path, []byte("original\n"), 0644); err != nil {
			t.Fatal(err)
		}

		fs := failingWriteFS{RealFS: fsops.NewRealFS()}
		_, err := New(fs).Patch(path, nil, []string{"added"})
		if !errors.Is(err, ErrWrite) {
			t.Errorf("error = %v, want ErrWrite", err)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "original\n" {
			t.Errorf("original modified: %q", data)
		}
	})

	t.Run("additions duplicate on rerun", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "httpd.conf")
		if err := os.WriteFile(path, []byte("x\n"), 0644); err != nil {
			t.Fatal(err)
		}
		p := New(fsops.NewRealFS())

		for i := 0; i < 2; i++ {
			if _, err := p.Patch(path, nil, []string{"LoadModule php8_module"}); err != nil {
				t.Fatal(err)
			}
		}

		data, _ := os.ReadFile(path)
		if n := strings.Count(string(data), "LoadModule php8_module"); n != 2 {
			t.Errorf("addition count = %d, want 2", n)
		}
	})
}
