// Package integrate wires a local Apache and PHP installation together.
//
// An Integrator runs the stages in order:
//
//	locate Apache, locate PHP, derive install paths,
//	back up httpd.conf, ask about optional modules, patch httpd.conf,
//	ask to replace php.ini (if it exists), back it up,
//	install the development template (local copy, else download),
//	set extension_dir.
//
// Stages never exit the process. A failed httpd.conf patch is recorded and
// the php.ini stages still run; every other failure stops the run. Run
// returns the error and the caller decides the exit status.
package integrate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/thiagodp/apache-php/internal/backup"
	"github.com/thiagodp/apache-php/internal/clock"
	"github.com/thiagodp/apache-php/internal/config"
	"github.com/thiagodp/apache-php/internal/fetch"
	"github.com/thiagodp/apache-php/internal/fsops"
	"github.com/thiagodp/apache-php/internal/locate"
	"github.com/thiagodp/apache-php/internal/patch"
	"github.com/thiagodp/apache-php/internal/prompt"
)

// Locator finds executables.
type Locator interface {
	Locate(ctx context.Context, exe string) locate.Result
}

// UI reports progress and asks the operator questions.
type UI interface {
	Info(msg string)
	Success(msg string)
	Warning(msg string)
	Error(msg string)

	// Choose returns one of options; see prompt.Chooser.Choose.
	Choose(options []string, def string, showOptions bool) (string, error)

	// Confirm asks a y/n question.
	Confirm(def bool) (bool, error)
}

// Program is an executable to locate.
type Program struct {
	Name string
	Exe  string
}

var (
	Apache = Program{Name: "Apache", Exe: "httpd"}
	PHP    = Program{Name: "PHP", Exe: "php"}
)

// Result records what a run did.
type Result struct {
	Layout config.Layout

	// HttpdBackup is the backup path; empty if the backup failed.
	HttpdBackup string
	HttpdPatch  *patch.Result

	// HttpdErr is the soft httpd.conf failure, if any.
	HttpdErr error

	PhpIniExisted bool
	IniDeclined   bool
	PhpIniBackup  string

	// IniSource is the template path or URL php.ini was installed from.
	IniSource string
	IniPatch  *patch.Result
}

// Integrator runs the integration.
type Integrator struct {
	locator  Locator
	fs       fsops.FS
	backups  *backup.Service
	patcher  *patch.Patcher
	fetcher  fetch.Fetcher
	ui       UI
	settings config.Settings
}

// New creates an Integrator with the given dependencies.
func New(
	locator Locator,
	fs fsops.FS,
	clk clock.Clock,
	fetcher fetch.Fetcher,
	ui UI,
	settings config.Settings,
) *Integrator {
	return &Integrator{
		locator:  locator,
		fs:       fs,
		backups:  backup.New(fs, clk),
		patcher:  patch.New(fs),
		fetcher:  fetcher,
		ui:       ui,
		settings: settings,
	}
}

// Run performs the integration. The returned Result is never nil and
// reflects the stages completed before any error.
func (in *Integrator) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	apacheExe, err := in.Find(ctx, Apache)
	if err != nil {
		return res, err
	}
	phpExe, err := in.Find(ctx, PHP)
	if err != nil {
		return res, err
	}
	res.Layout = config.NewLayout(apacheExe, phpExe)

	if err := in.httpdConf(res); err != nil {
		return res, err
	}
	if err := in.phpIni(ctx, res); err != nil {
		return res, err
	}
	return res, softError(res)
}

// Find locates one program, asking the operator to pick when several
// candidates exist.
func (in *Integrator) Find(ctx context.Context, p Program) (string, error) {
	found := in.locator.Locate(ctx, p.Exe)
	paths := found.Paths

	switch len(paths) {
	case 0:
		return "", fmt.Errorf("%s is %w", p.Name, ErrNotInstalled)
	case 1:
		in.ui.Success("found: " + paths[0])
		return paths[0], nil
	}

	in.ui.Info(fmt.Sprintf("Select the correct %s path by its number:", p.Name))
	for i, path := range paths {
		in.ui.Info(fmt.Sprintf("\t%d) %s", i+1, path))
	}
	answer, err := in.ui.Choose(prompt.NumberedOptions(len(paths)), "1", false)
	if err != nil {
		return "", err
	}
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(paths) {
		return "", fmt.Errorf("invalid selection %q", answer)
	}
	in.ui.Success("ok: " + paths[idx-1])
	return paths[idx-1], nil
}

func (in *Integrator) httpdConf(res *Result) error {
	conf := res.Layout.HttpdConf
	res.HttpdBackup = in.backup(conf)

	rules := HttpdRules(res.Layout)
	if modules := in.settings.OptionalModules; len(modules) > 0 {
		in.ui.Info(fmt.Sprintf("Do you want to enable some modules (%s) in your httpd.conf (recommended)?", moduleList(modules)))
		enable, err := in.ui.Confirm(true)
		if err != nil {
			return err
		}
		if enable {
			rules = append(rules, ModuleRules(modules)...)
		}
	}

	result, err := in.patcher.Patch(conf, rules, HttpdAdditions(res.Layout))
	if err != nil {
		res.HttpdErr = err
		in.ui.Error(err.Error())
		return nil
	}
	res.HttpdPatch = result
	in.warnUnmatched(result)
	in.ui.Success("httpd.conf updated successfully.")
	return nil
}

func (in *Integrator) phpIni(ctx context.Context, res *Result) error {
	ini := res.Layout.PhpIni

	exists, err := in.fs.Exists(ini)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", ini, err)
	}
	res.PhpIniExisted = exists

	if exists {
		in.ui.Info("Do you want to change your php.ini with the development configuration (recommended)?")
		change, err := in.ui.Confirm(true)
		if err != nil {
			return err
		}
		if !change {
			res.IniDeclined = true
			in.ui.Info("Ok, no changes.")
			return nil
		}
		res.PhpIniBackup = in.backup(ini)
	}

	if err := in.installIni(ctx, res); err != nil {
		return err
	}

	verb := "created"
	if exists {
		verb = "updated"
	}
	result, err := in.patcher.Patch(ini, PhpIniRules(res.Layout), nil)
	if err != nil {
		return fmt.Errorf("php.ini %s, but %w: %s: %w", verb, ErrExtensionDir, ini, err)
	}
	res.IniPatch = result
	in.warnUnmatched(result)
	in.ui.Success(fmt.Sprintf("php.ini %s successfully: %s", verb, ini))
	return nil
}

// installIni puts the development template in place of php.ini: the local
// template if it can be copied, the remote one otherwise.
func (in *Integrator) installIni(ctx context.Context, res *Result) error {
	ini := res.Layout.PhpIni
	tmpl := in.settings.IniTemplate

	if err := in.fs.CopyFile(tmpl, ini); err == nil {
		res.IniSource = tmpl
		return nil
	}

	url := in.settings.IniURL
	in.ui.Warning(fmt.Sprintf("Template %s not available, downloading %s...", tmpl, url))
	content, err := in.fetcher.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIniFetch, err)
	}
	if err := in.fs.AtomicWrite(ini, content, 0644); err != nil {
		return fmt.Errorf("%w at %s: %w", ErrIniWrite, ini, err)
	}
	res.IniSource = url
	return nil
}

// backup copies path aside and returns the backup path, or "" when the
// copy failed. A failed backup is reported but never stops the run.
func (in *Integrator) backup(path string) string {
	dst, err := in.backups.Backup(path)
	if err != nil {
		in.ui.Warning(fmt.Sprintf("Creating a backup of %q... error: %v", path, err))
		return ""
	}
	in.ui.Success(fmt.Sprintf("Backup of %q created at %q", path, dst))
	return dst
}

func (in *Integrator) warnUnmatched(result *patch.Result) {
	for _, r := range result.Unmatched {
		in.ui.Warning(fmt.Sprintf("Not found, left unchanged: %s", r.From))
	}
}

func softError(res *Result) error {
	if res.HttpdErr != nil {
		return fmt.Errorf("%w: %w", ErrHttpdConf, res.HttpdErr)
	}
	return nil
}
