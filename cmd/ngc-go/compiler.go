package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ngc-lite/packages/compiler"
	"ngc-lite/packages/compiler/config"
	"ngc-lite/packages/compiler/util"
)

// Project is a loaded project ready to be compiled.
type Project struct {
	Config   *config.ProjectConfig
	Compiler *compiler.Compiler
	Logger   *zap.Logger
	Out      io.Writer
}

// FileResult is the outcome of compiling one source file.
type FileResult struct {
	// Path is relative to the project root.
	Path    string
	Output  string
	Result  *compiler.Result
	Err     error
	Skipped bool
}

// Failed reports whether the file produced no output.
func (r *FileResult) Failed() bool {
	return r.Err != nil || (r.Result != nil && r.Result.HasErrors())
}

// NewProject creates the compiler for a loaded configuration.
func NewProject(cfg *config.ProjectConfig, logger *zap.Logger, out io.Writer) *Project {
	opts := append(cfg.Options(), compiler.WithLogger(logger))
	return &Project{
		Config:   cfg,
		Compiler: compiler.New(opts...),
		Logger:   logger,
		Out:      out,
	}
}

// Discover lists the files to compile, as absolute paths in lexical order.
// The files of a tsconfig `files` list are taken as they are; otherwise the
// given paths are scanned and filtered by the include and exclude patterns.
func (p *Project) Discover(paths []string) ([]string, error) {
	if p.Config.Project != "" {
		tsconfigPath := p.abs(p.Config.Project)
		tsconfig, err := config.ParseTsConfig(tsconfigPath)
		if err != nil {
			return nil, err
		}
		tsconfig.Apply(p.Config)
		if files := tsconfig.SourceFiles(); files != nil {
			return files, nil
		}
	}
	if len(paths) == 0 {
		paths = []string{p.Config.Root}
	}

	seen := map[string]bool{}
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}
	outDir := p.abs(p.Config.OutDir)
	for _, root := range paths {
		root = p.abs(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// Skip node_modules and the output directory
				if path != root && (d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".") || path == outDir) {
					return filepath.SkipDir
				}
				return nil
			}
			if p.selects(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error finding sources: %w", err)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (p *Project) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	root, err := filepath.Abs(p.Config.Root)
	if err != nil {
		root = p.Config.Root
	}
	return filepath.Join(root, path)
}

func (p *Project) rel(path string) string {
	rel, err := filepath.Rel(p.abs("."), path)
	if err != nil {
		return path
	}
	return rel
}

func (p *Project) selects(path string) bool {
	rel := p.rel(path)
	if strings.HasPrefix(rel, "..") {
		return false
	}
	return p.Config.Selects(rel)
}

// CompileFiles compiles every file with at most Config.Jobs files in flight.
// Files are independent: one failing does not stop the others. The returned
// error reports cancellation or a failure to write outputs.
func (p *Project) CompileFiles(ctx context.Context, files []string) ([]*FileResult, error) {
	results := make([]*FileResult, len(files))
	if len(files) == 0 {
		return results, nil
	}
	outDir := p.abs(p.Config.OutDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(p.Config.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			result, err := p.compileFile(gctx, path, outDir)
			// Results are written by index, the lock only keeps status lines whole.
			results[i] = result
			mu.Lock()
			p.status(result)
			mu.Unlock()
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// compileFile returns an error only for failures that should stop the run.
func (p *Project) compileFile(ctx context.Context, path, outDir string) (*FileResult, error) {
	rel := p.rel(path)
	fr := &FileResult{Path: rel}

	source, err := os.ReadFile(path)
	if err != nil {
		fr.Err = fmt.Errorf("error reading %s: %w", rel, err)
		return fr, nil
	}
	result, err := p.Compiler.CompileFile(ctx, source, rel)
	if err != nil {
		fr.Err = err
		return fr, nil
	}
	fr.Result = result
	if result.HasErrors() {
		return fr, nil
	}
	if len(result.Classes) == 0 {
		fr.Skipped = true
	}

	target := rel
	if strings.HasPrefix(target, "..") {
		target = filepath.Base(path)
	}
	fr.Output = filepath.Join(outDir, target)
	if err := os.MkdirAll(filepath.Dir(fr.Output), 0o755); err != nil {
		return fr, fmt.Errorf("error creating output directory: %w", err)
	}
	if err := os.WriteFile(fr.Output, []byte(result.Code), 0o644); err != nil {
		return fr, fmt.Errorf("error writing output file %s: %w", fr.Output, err)
	}
	return fr, nil
}

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	skipColor = color.New(color.FgHiBlack)
	warnColor = color.New(color.FgYellow)
)

func (p *Project) status(fr *FileResult) {
	switch {
	case fr == nil:
		return
	case fr.Err != nil:
		failColor.Fprintf(p.Out, "✗ %s: %v\n", fr.Path, fr.Err)
	case fr.Failed():
		failColor.Fprintf(p.Out, "✗ %s: %d template error(s)\n", fr.Path, countErrors(fr.Result))
	case fr.Skipped:
		skipColor.Fprintf(p.Out, "- %s\n", fr.Path)
	default:
		okColor.Fprintf(p.Out, "✓ %s (%d class(es))\n", fr.Path, len(fr.Result.Classes))
		if warnings := len(fr.Result.Errors); warnings > 0 {
			warnColor.Fprintf(p.Out, "  %d warning(s)\n", warnings)
		}
	}
}

func countErrors(result *compiler.Result) int {
	n := 0
	for _, err := range result.Errors {
		if err.Level == util.ParseErrorLevelError {
			n++
		}
	}
	return n
}

// Summary prints the totals of a run and returns an error when a file
// failed.
func (p *Project) Summary(results []*FileResult) error {
	failed := 0
	for _, fr := range results {
		if fr != nil && fr.Failed() {
			failed++
		}
	}
	if failed > 0 {
		failColor.Fprintf(p.Out, "Compilation failed: %d/%d file(s) failed\n", failed, len(results))
		return fmt.Errorf("%d file(s) failed to compile", failed)
	}
	okColor.Fprintf(p.Out, "Compilation complete: %d file(s) compiled to %s\n", len(results), p.Config.OutDir)
	return nil
}
