package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/thiagodp/apache-php/internal/clock"
	"github.com/thiagodp/apache-php/internal/config"
	"github.com/thiagodp/apache-php/internal/fetch"
	"github.com/thiagodp/apache-php/internal/fsops"
	"github.com/thiagodp/apache-php/internal/integrate"
	"github.com/thiagodp/apache-php/internal/locate"
)

// loadSettings resolves settings from defaults, the settings file, the
// environment and finally the flags the user set explicitly.
func loadSettings(flags *pflag.FlagSet) (*config.Settings, error) {
	settings, err := config.Load(configPath, config.ExecutableDir(), os.Getenv)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(flags, settings)
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// applyFlagOverrides copies explicitly set flags onto settings.
func applyFlagOverrides(flags *pflag.FlagSet, s *config.Settings) {
	if flags.Changed("search-root") {
		s.SearchRoot = searchRoot
	}
	if flags.Changed("ini-template") {
		s.IniTemplate = iniTemplate
	}
	if flags.Changed("ini-url") {
		s.IniURL = iniURL
	}
	if flags.Changed("no-optional-modules") && noOptionalModules {
		s.OptionalModules = nil
	}
}

// newLocator creates a Locator that reports its search phases.
func newLocator(fs fsops.FS, searchRoot string) *locate.Locator {
	loc := locate.New(locate.NewExecRunner(), fs, searchRoot)
	loc.OnPhase = func(phase locate.Phase, exe string) {
		switch phase {
		case locate.PhaseFast:
			PrintInfo(fmt.Sprintf("Searching for %s (fast search)...", exe))
		case locate.PhaseLong:
			PrintWarning(fmt.Sprintf("%s not found, searching under %s (long search), please wait...", exe, searchRoot))
		}
	}
	return loc
}

// newIntegrator creates an Integrator with real implementations of all dependencies.
func newIntegrator(s *config.Settings, ui integrate.UI) *integrate.Integrator {
	fs := fsops.NewRealFS()
	return integrate.New(
		newLocator(fs, s.SearchRoot),
		fs,
		&clock.RealClock{},
		fetch.NewHTTPFetcher(s.FetchTimeout),
		ui,
		*s,
	)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
