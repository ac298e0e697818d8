package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ngc-lite/packages/compiler/config"
)

// compileOptions holds the flags of the compile command. Flags that override
// project settings are read back through the project configuration.
type compileOptions struct {
	*rootOptions
	Manifest string
}

func newCompileCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &compileOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [paths...]",
		Short: "Compile the project sources",
		Long: `Compile every selected TypeScript file under the given paths, or under the
project root when none is given. Each output keeps its path relative to the
project root inside the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, opts, args)
		},
	}
	addProjectFlags(cmd)
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "write a YAML manifest of the compiled classes to this file")

	return cmd
}

func newWatchCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Compile the project, then recompile files as they change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, rootOpts)
		},
	}
	addProjectFlags(cmd)

	return cmd
}

// addProjectFlags declares the flags config.LoadProject binds.
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "output directory (default dist/ngc)")
	cmd.Flags().IntP("jobs", "j", 0, "files compiled in parallel (default GOMAXPROCS)")
	cmd.Flags().StringP("project", "p", "", "tsconfig.json listing the files to compile")
	cmd.Flags().Bool("preserve-whitespaces", false, "keep whitespace-only template text")
}

// loadProject reads the configuration and builds the project.
func loadProject(cmd *cobra.Command, opts *rootOptions) (*Project, error) {
	logger, err := newLogger(opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	cfg, err := config.LoadProject(opts.Root, opts.Config, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger.Debug("project loaded",
		zap.String("root", cfg.Root),
		zap.String("out", cfg.OutDir),
		zap.Int("jobs", cfg.Jobs),
	)
	return NewProject(cfg, logger, cmd.OutOrStdout()), nil
}

func runCompile(cmd *cobra.Command, opts *compileOptions, paths []string) error {
	project, err := loadProject(cmd, opts.rootOptions)
	if err != nil {
		return err
	}
	defer project.Logger.Sync() //nolint:errcheck

	files, err := project.Discover(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		warnColor.Fprintln(project.Out, "No source files found")
		return nil
	}

	results, err := project.CompileFiles(cmdContext(cmd), files)
	if err != nil {
		return err
	}
	if opts.Manifest != "" {
		if err := NewManifest(project.Config.OutDir, results).WriteFile(opts.Manifest); err != nil {
			return err
		}
	}
	return project.Summary(results)
}

func runWatch(cmd *cobra.Command, opts *rootOptions) error {
	project, err := loadProject(cmd, opts)
	if err != nil {
		return err
	}
	defer project.Logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	files, err := project.Discover(nil)
	if err != nil {
		return err
	}
	results, err := project.CompileFiles(ctx, files)
	if err != nil {
		return err
	}
	// Failures are reported and the watch goes on.
	_ = project.Summary(results)

	watcher, err := NewWatcher(project, func(changed []string) {
		if _, err := project.CompileFiles(ctx, changed); err != nil {
			project.Logger.Error("recompile failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(project.Out, "Watching %s for changes\n", project.abs("."))
	return watcher.Run(ctx)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
