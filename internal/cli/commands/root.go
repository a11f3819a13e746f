package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand creates the root command. Run without a subcommand it
// prints the relationship diagram block followed by the model dump.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	var skipModel, watchMode bool

	rootCmd := &cobra.Command{
		Use:   "zplc",
		Short: "Extract the class model of a plugin package",
		Long: color.CyanString(`zplc - plugin package model extractor

zplc reads the class definition modules and UI scripts of a plugin package
and prints:
  • a yUML relationship block ready to paste into the package definition
  • a YAML dump of every class with its properties and UI metadata`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := printReport(cmd, opts, skipModel)
			if err != nil || !watchMode {
				return err
			}
			return watchReport(cmd.Context(), cmd, opts, cfg, skipModel)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.root, "root", "r", ".", "package source directory")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVar(&skipModel, "relations-only", false, "print only the relationship block")
	rootCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "print a new report whenever sources change")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if opts.noColor {
			color.NoColor = true
		}
	}

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewClassesCommand(opts))
	rootCmd.AddCommand(NewClassCommand(opts))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the zplc version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)
			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "zplc version: ")
			valueColor.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			valueColor.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			valueColor.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			valueColor.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
