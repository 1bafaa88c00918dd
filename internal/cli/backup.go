package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thiagodp/apache-php/internal/backup"
	"github.com/thiagodp/apache-php/internal/clock"
	"github.com/thiagodp/apache-php/internal/fsops"
)

var backupCmd = &cobra.Command{
	Use:   "backup <file>...",
	Short: "Copy files to timestamped siblings",
	Long: `Back up configuration files the way the integration does before
changing them: httpd.conf is copied to httpd-YYYY-MM-DD_HH-MM-SS.conf in the
same directory, keeping permissions and modification time.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := backup.New(fsops.NewRealFS(), &clock.RealClock{})

		created := make(map[string]string, len(args))
		var failed int
		for _, src := range args {
			dst, err := svc.Backup(src)
			if err != nil {
				failed++
				if !jsonOutput {
					PrintError(err.Error())
				}
				continue
			}
			created[src] = dst
			if !jsonOutput {
				PrintSuccess(fmt.Sprintf("%s -> %s", src, dst))
			}
		}

		if jsonOutput {
			if err := outputJSON(created); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%s failed", PrintCount(failed, "backup", "backups"))
		}
		return nil
	},
}
