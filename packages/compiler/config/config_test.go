package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngc-lite/packages/compiler/config"
	"ngc-lite/packages/compiler/core"
	"ngc-lite/packages/compiler/render3"
)

func TestNewCompilerConfig(t *testing.T) {
	t.Run("should use defaults", func(t *testing.T) {
		cfg := config.NewCompilerConfig()
		assert.Equal(t, "@angular/core", cfg.CoreModule)
		assert.Equal(t, "i0", cfg.CoreAlias)
		assert.Equal(t, "?raw", cfg.RawSuffix)
		assert.Equal(t, core.ViewEncapsulationEmulated, cfg.DefaultEncapsulation)
		assert.False(t, cfg.PreserveWhitespaces)
		assert.NotNil(t, cfg.Logger)
		assert.IsType(t, render3.DefaultCompiler{}, cfg.MetadataCompiler)
	})

	t.Run("should apply options in order", func(t *testing.T) {
		cfg := config.NewCompilerConfig(
			config.WithCoreModule("@ng/rt", "rt"),
			config.WithRawSuffix("?text"),
			config.WithRawSuffix("?inline"),
			config.WithPreserveWhitespaces(true),
			config.WithDefaultEncapsulation(core.ViewEncapsulationNone),
			config.WithLogger(nil),
			config.WithMetadataCompiler(nil),
		)
		assert.Equal(t, "@ng/rt", cfg.CoreModule)
		assert.Equal(t, "rt", cfg.CoreAlias)
		assert.Equal(t, "?inline", cfg.RawSuffix)
		assert.True(t, cfg.PreserveWhitespaces)
		assert.Equal(t, core.ViewEncapsulationNone, cfg.DefaultEncapsulation)
		assert.NotNil(t, cfg.Logger)
		assert.NotNil(t, cfg.MetadataCompiler)
	})
}

func TestLoadProject(t *testing.T) {
	t.Run("should use defaults without a config file", func(t *testing.T) {
		root := t.TempDir()
		cfg, err := config.LoadProject(root, "", nil)
		require.NoError(t, err)
		assert.Equal(t, root, cfg.Root)
		assert.Equal(t, "dist/ngc", cfg.OutDir)
		assert.Equal(t, filepath.Join(root, "dist/ngc"), cfg.OutPath())
		assert.Equal(t, []string{"**/*.ts"}, cfg.Include)
		assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Jobs)
		assert.Equal(t, "i0", cfg.CoreAlias)
	})

	t.Run("should read ngc.yaml from the root", func(t *testing.T) {
		root := t.TempDir()
		content := "out_dir: build\njobs: 2\ninclude:\n  - src/**/*.ts\npreserve_whitespaces: true\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, "ngc.yaml"), []byte(content), 0o644))

		cfg, err := config.LoadProject(root, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "build", cfg.OutDir)
		assert.Equal(t, 2, cfg.Jobs)
		assert.Equal(t, []string{"src/**/*.ts"}, cfg.Include)
		assert.True(t, cfg.PreserveWhitespaces)
	})

	t.Run("should let the environment override the file", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "ngc.yaml"), []byte("out_dir: build\n"), 0o644))
		t.Setenv("NGC_OUT_DIR", "from-env")

		cfg, err := config.LoadProject(root, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.OutDir)
	})

	t.Run("should let changed flags override everything", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv("NGC_OUT_DIR", "from-env")
		flags := pflag.NewFlagSet("compile", pflag.ContinueOnError)
		flags.String("out", "unused-default", "")
		flags.Int("jobs", 0, "")
		require.NoError(t, flags.Parse([]string{"--out", "from-flag"}))

		cfg, err := config.LoadProject(root, "", flags)
		require.NoError(t, err)
		assert.Equal(t, "from-flag", cfg.OutDir)
	})

	t.Run("should read an explicit config file", func(t *testing.T) {
		root := t.TempDir()
		file := filepath.Join(root, "custom.json")
		require.NoError(t, os.WriteFile(file, []byte(`{"out_dir": "json-out"}`), 0o644))

		cfg, err := config.LoadProject(root, file, nil)
		require.NoError(t, err)
		assert.Equal(t, "json-out", cfg.OutDir)
	})

	t.Run("should reject negative jobs", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "ngc.yaml"), []byte("jobs: -1\n"), 0o644))

		_, err := config.LoadProject(root, "", nil)
		assert.ErrorIs(t, err, config.ErrInvalidProject)
	})

	t.Run("should fail on a missing explicit config file", func(t *testing.T) {
		_, err := config.LoadProject(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"), nil)
		assert.Error(t, err)
	})
}

func TestSelects(t *testing.T) {
	cfg := &config.ProjectConfig{
		Include: []string{"**/*.ts"},
		Exclude: []string{"**/*.spec.ts", "**/node_modules/**"},
	}
	cases := map[string]bool{
		"app.ts":                      true,
		"src/app/counter.ts":          true,
		"src/app/counter.spec.ts":     false,
		"node_modules/lib/index.ts":   false,
		"src/node_modules/x/index.ts": false,
		"src/app/counter.html":        false,
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, cfg.Selects(name))
		})
	}
}

func TestMatchPath(t *testing.T) {
	assert.True(t, config.MatchPath("src/**/*.ts", "src/a.ts"))
	assert.True(t, config.MatchPath("src/**/*.ts", "src/a/b/c.ts"))
	assert.False(t, config.MatchPath("src/**/*.ts", "lib/a.ts"))
	assert.True(t, config.MatchPath("**", "anything/at/all"))
	assert.False(t, config.MatchPath("*.ts", "src/a.ts"))
}

func TestParseTsConfig(t *testing.T) {
	t.Run("should resolve files against the tsconfig directory", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "tsconfig.json")
		content := `{"compilerOptions": {"target": "ES2022"}, "files": ["src/main.ts", "src/app.ts"], "exclude": ["**/*.stories.ts"]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		tsconfig, err := config.ParseTsConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "ES2022", tsconfig.CompilerOptions.Target)
		assert.Equal(t, root, tsconfig.GetProjectRoot())
		assert.Equal(t, []string{filepath.Join(root, "src/main.ts"), filepath.Join(root, "src/app.ts")}, tsconfig.SourceFiles())

		project := &config.ProjectConfig{Include: []string{"**/*.ts"}}
		tsconfig.Apply(project)
		assert.Equal(t, []string{"**/*.stories.ts"}, project.Exclude)
	})

	t.Run("should report malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tsconfig.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
		_, err := config.ParseTsConfig(path)
		assert.Error(t, err)
	})
}
