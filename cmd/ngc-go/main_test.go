package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	buf := &bytes.Buffer{}
	cmd := newRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

const storeSource = "@Injectable({providedIn: 'root'})\nexport class Store {}\n"

func TestCompileCommand(t *testing.T) {
	t.Run("should compile the selected files into the output directory", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "src/store.ts", storeSource)
		writeFile(t, root, "src/store.spec.ts", storeSource)
		writeFile(t, root, "src/util.ts", "export const answer = 42;\n")
		writeFile(t, root, "node_modules/lib/index.ts", storeSource)

		output, err := execute(t, "compile", "--root", root, "--jobs", "2")
		require.NoError(t, err)
		assert.Contains(t, output, "✓ src/store.ts (1 class(es))")
		assert.Contains(t, output, "- src/util.ts")
		assert.Contains(t, output, "Compilation complete: 2 file(s) compiled to dist/ngc")

		compiled, err := os.ReadFile(filepath.Join(root, "dist/ngc/src/store.ts"))
		require.NoError(t, err)
		assert.Contains(t, string(compiled), "static ɵprov = i0.ɵɵdefineInjectable({")
		assert.NoFileExists(t, filepath.Join(root, "dist/ngc/src/store.spec.ts"))
		assert.NoFileExists(t, filepath.Join(root, "dist/ngc/node_modules/lib/index.ts"))
	})

	t.Run("should honor the output flag and the project file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "ngc.yaml", "out_dir: build\ncore_module: '@ng/rt'\ncore_alias: rt\n")
		writeFile(t, root, "store.ts", storeSource)

		_, err := execute(t, "compile", "--root", root)
		require.NoError(t, err)
		compiled, err := os.ReadFile(filepath.Join(root, "build/store.ts"))
		require.NoError(t, err)
		assert.Contains(t, string(compiled), `import * as rt from "@ng/rt";`)

		_, err = execute(t, "compile", "--root", root, "--out", "other")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(root, "other/store.ts"))
	})

	t.Run("should take the file list from a tsconfig", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "tsconfig.json", `{"files": ["a.ts"]}`)
		writeFile(t, root, "a.ts", storeSource)
		writeFile(t, root, "b.ts", storeSource)

		_, err := execute(t, "compile", "--root", root, "--project", "tsconfig.json")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(root, "dist/ngc/a.ts"))
		assert.NoFileExists(t, filepath.Join(root, "dist/ngc/b.ts"))
	})

	t.Run("should report files with template errors", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "form.ts", "@Component({selector: 'app-f', template: '<input [(ngModel)]=\"name\">'})\nexport class Form {}\n")
		writeFile(t, root, "store.ts", storeSource)

		output, err := execute(t, "compile", "--root", root)
		require.Error(t, err)
		assert.Equal(t, "1 file(s) failed to compile", err.Error())
		assert.Contains(t, output, "✗ form.ts: ")
		assert.Contains(t, output, "template error(s)")
		assert.Contains(t, output, "✓ store.ts (1 class(es))")
		assert.NoFileExists(t, filepath.Join(root, "dist/ngc/form.ts"))
	})

	t.Run("should write a manifest", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "store.ts", storeSource)
		writeFile(t, root, "util.ts", "export const answer = 42;\n")
		manifestPath := filepath.Join(t.TempDir(), "manifest.yaml")

		_, err := execute(t, "compile", "--root", root, "--manifest", manifestPath)
		require.NoError(t, err)

		manifest, err := ReadManifest(manifestPath)
		require.NoError(t, err)
		assert.Equal(t, "0.3.0", manifest.Version)
		assert.Equal(t, "dist/ngc", manifest.OutDir)
		require.Len(t, manifest.Files, 1)
		assert.Equal(t, "store.ts", manifest.Files[0].Source)
		require.Len(t, manifest.Files[0].Classes, 1)
		assert.Equal(t, "Store", manifest.Files[0].Classes[0].Name)
		assert.Equal(t, []string{"Injectable"}, manifest.Files[0].Classes[0].Kinds)
	})

	t.Run("should reject an invalid project", func(t *testing.T) {
		root := t.TempDir()
		_, err := execute(t, "compile", "--root", root, "--jobs=-1")
		assert.Error(t, err)
	})
}

func TestVersionCommand(t *testing.T) {
	output, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ngc-go 0.3.0\n", output)
}

func TestDebouncer(t *testing.T) {
	t.Run("should deliver a burst once, sorted and deduplicated", func(t *testing.T) {
		calls := make(chan []string, 2)
		d := NewDebouncer(20*time.Millisecond, func(files []string) { calls <- files })
		defer d.Stop()

		d.Add("b.ts")
		d.Add("a.ts")
		d.Add("b.ts")

		select {
		case files := <-calls:
			assert.Equal(t, []string{"a.ts", "b.ts"}, files)
		case <-time.After(2 * time.Second):
			t.Fatal("debouncer never fired")
		}
		select {
		case files := <-calls:
			t.Fatalf("unexpected second delivery: %v", files)
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("should drop pending files when stopped", func(t *testing.T) {
		calls := make(chan []string, 1)
		d := NewDebouncer(20*time.Millisecond, func(files []string) { calls <- files })
		d.Add("a.ts")
		d.Stop()
		d.Add("b.ts")

		select {
		case files := <-calls:
			t.Fatalf("unexpected delivery: %v", files)
		case <-time.After(100 * time.Millisecond):
		}
	})
}
