package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	configPath string

	// Integration flags
	searchRoot        string
	iniTemplate       string
	iniURL            string
	assumeYes         bool
	noOptionalModules bool

	// Colors for help output sections
	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// rootCmd runs the integration when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:     "apache-php",
	Version: "dev",
	Short:   "Configure a local Apache HTTP Server to run PHP as a module",
	Long: `apache-php locates your Apache HTTP Server and PHP installations and
patches httpd.conf and php.ini so that PHP runs as an Apache module.

Both files are backed up next to the originals before they are changed.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: runIntegrate,
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd.Flags())
	if err != nil {
		return err
	}

	ui := newTerminalUI(cmd.InOrStdin(), cmd.OutOrStdout(), assumeYes)
	result, err := newIntegrator(settings, ui).Run(context.Background())
	if err != nil {
		return err
	}

	if result.IniDeclined {
		return nil
	}
	PrintSection("Done")
	PrintLabelValue("httpd.conf", result.Layout.HttpdConf)
	if result.HttpdBackup != "" {
		PrintLabelValue("httpd.conf backup", result.HttpdBackup)
	}
	PrintLabelValue("php.ini", result.Layout.PhpIni)
	if result.PhpIniBackup != "" {
		PrintLabelValue("php.ini backup", result.PhpIniBackup)
	}
	PrintLabelValue("php.ini source", result.IniSource)
	PrintInfo("")
	PrintInfo("Restart Apache to load PHP.")
	return nil
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// customHelpFunc returns a custom help function that colors group titles
func customHelpFunc(cmd *cobra.Command, args []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	for _, group := range cmd.Groups() {
		help.WriteString(groupTitleColor.Sprint(group.Title))
		help.WriteString("\n")

		for _, c := range cmd.Commands() {
			if c.GroupID == group.ID && !c.Hidden {
				fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
			}
		}
		help.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailablePersistentFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
		help.WriteString("\n")
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&help, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}

	fmt.Fprint(cmd.OutOrStdout(), help.String())
}

func init() {
	rootCmd.SetHelpFunc(customHelpFunc)

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (locate, backup)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Settings file (YAML); defaults to $APACHE_PHP_CONFIG")
	rootCmd.PersistentFlags().StringVar(&searchRoot, "search-root", "", "Directory where the long search starts")

	rootCmd.Flags().StringVar(&iniTemplate, "ini-template", "", "Local php.ini template to install")
	rootCmd.Flags().StringVar(&iniURL, "ini-url", "", "URL of the php.ini template used when the local one is missing")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Answer every question with its default")
	rootCmd.Flags().BoolVar(&noOptionalModules, "no-optional-modules", false, "Do not offer to enable mod_headers, mod_rewrite and mod_ssl")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "integration",
		Title: "Integration Steps:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "cli-tooling",
		Title: "CLI & Tooling:",
	})

	locateCmd.GroupID = "integration"
	backupCmd.GroupID = "integration"
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(backupCmd)

	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the apache-php version",
		Args:    cobra.NoArgs,
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	helpCmd := &cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			target, _, err := cmd.Root().Find(args)
			if err != nil || target == nil {
				target = cmd.Root()
			}
			_ = target.Help()
		},
	}
	rootCmd.SetHelpCommand(helpCmd)

	completionCmd := &cobra.Command{
		Use:     "completion",
		Short:   "Generate the autocompletion script for the specified shell",
		GroupID: "cli-tooling",
		Long: `Generate the autocompletion script for apache-php for the specified shell.
See each sub-command's help for details on how to use the generated script.`,
	}
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "bash",
		Short:                 "Generate the autocompletion script for bash",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenBashCompletion(os.Stdout)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "zsh",
		Short:                 "Generate the autocompletion script for zsh",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenZshCompletion(os.Stdout)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "fish",
		Short:                 "Generate the autocompletion script for fish",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenFishCompletion(os.Stdout, true)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "powershell",
		Short:                 "Generate the autocompletion script for powershell",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		},
	})
	rootCmd.AddCommand(completionCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
