package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ngc-lite/packages/compiler"
)

// Manifest lists what a compile run produced.
type Manifest struct {
	Version string          `yaml:"version"`
	OutDir  string          `yaml:"outDir"`
	Files   []ManifestEntry `yaml:"files"`
}

// ManifestEntry describes one compiled source file.
type ManifestEntry struct {
	Source  string                  `yaml:"source"`
	Output  string                  `yaml:"output,omitempty"`
	Failed  bool                    `yaml:"failed,omitempty"`
	Errors  []string                `yaml:"errors,omitempty"`
	Classes []compiler.ClassSummary `yaml:"classes,omitempty"`
}

// NewManifest summarizes the results of a run. Files without decorated
// classes are left out.
func NewManifest(outDir string, results []*FileResult) *Manifest {
	m := &Manifest{Version: currentVersion(), OutDir: outDir, Files: []ManifestEntry{}}
	for _, fr := range results {
		if fr == nil || (fr.Skipped && !fr.Failed()) {
			continue
		}
		entry := ManifestEntry{Source: fr.Path, Output: fr.Output, Failed: fr.Failed()}
		if fr.Err != nil {
			entry.Errors = append(entry.Errors, fr.Err.Error())
		}
		if fr.Result != nil {
			entry.Classes = fr.Result.Classes
			for _, err := range fr.Result.Errors {
				entry.Errors = append(entry.Errors, err.Msg)
			}
		}
		m.Files = append(m.Files, entry)
	}
	return m
}

// WriteFile writes the manifest as YAML.
func (m *Manifest) WriteFile(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads a manifest written by WriteFile.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, nil
}
