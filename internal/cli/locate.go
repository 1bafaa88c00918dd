package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thiagodp/apache-php/internal/fsops"
	"github.com/thiagodp/apache-php/internal/integrate"
	"github.com/thiagodp/apache-php/internal/locate"
)

var locateFastOnly bool

// locateOutput is the JSON shape of `locate --json`.
type locateOutput struct {
	Executable string       `json:"executable"`
	Phase      locate.Phase `json:"phase"`
	Paths      []string     `json:"paths"`
}

var locateCmd = &cobra.Command{
	Use:   "locate <executable>",
	Short: "List where an executable is installed",
	Long: `Search for an executable the same way the integration does: the OS
command index first, then a recursive search from --search-root.

Examples:
  apache-php locate httpd
  apache-php locate php --fast`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd.Flags())
		if err != nil {
			return err
		}
		exe := args[0]
		ctx := context.Background()

		loc := newLocator(fsops.NewRealFS(), settings.SearchRoot)
		if jsonOutput {
			loc.OnPhase = nil
		}

		var result locate.Result
		if locateFastOnly {
			result = locate.Result{Paths: loc.FastSearch(ctx, exe), Phase: locate.PhaseFast}
		} else {
			result = loc.Locate(ctx, exe)
		}

		if jsonOutput {
			paths := result.Paths
			if paths == nil {
				paths = []string{}
			}
			return outputJSON(locateOutput{Executable: exe, Phase: result.Phase, Paths: paths})
		}

		if len(result.Paths) == 0 {
			return fmt.Errorf("%s is %w", exe, integrate.ErrNotInstalled)
		}
		PrintSuccess(fmt.Sprintf("Found %s (%s search)", PrintCount(len(result.Paths), "path", "paths"), result.Phase))
		PrintNumberedList(result.Paths, 1)
		return nil
	},
}

func init() {
	locateCmd.Flags().BoolVar(&locateFastOnly, "fast", false, "Only query the OS command index")
}
