package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ngc-lite/packages/compiler/core"
)

// version overrides the compiler version when set at build time with
// -ldflags "-X main.version=...".
var version string

func currentVersion() string {
	if version != "" {
		return version
	}
	return core.VERSION.Full
}

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	Root    string
	Config  string
	Verbose bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ngc-go",
		Short: "Compile decorated TypeScript classes ahead of time",
		Long: `ngc-go rewrites @Component, @Directive, @Pipe and @Injectable classes into
classes carrying the static definitions the framework runtime reads.

Settings are read from ngc.yaml (or .yml, .json, .toml) in the project root,
NGC_* environment variables and command line flags, in increasing priority.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Root, "root", ".", "project root directory")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "config file (default <root>/ngc.*)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newCompileCommand(opts))
	cmd.AddCommand(newWatchCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ngc-go %s\n", currentVersion())
		},
	}
}

// newLogger builds a development logger for --verbose and a production
// logger that only reports warnings otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}
