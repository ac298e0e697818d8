package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TsConfig is the part of a tsconfig.json the driver reads.
type TsConfig struct {
	CompilerOptions CompilerOptions `json:"compilerOptions"`
	Files           []string        `json:"files"`
	Include         []string        `json:"include"`
	Exclude         []string        `json:"exclude"`

	path string
}

type CompilerOptions struct {
	Target  string `json:"target"`
	Module  string `json:"module"`
	RootDir string `json:"rootDir"`
	OutDir  string `json:"outDir"`
}

// ParseTsConfig reads and parses a tsconfig.json file
func ParseTsConfig(path string) (*TsConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tsconfig: %w", err)
	}

	var config TsConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tsconfig %s: %w", path, err)
	}
	config.path = absPath

	return &config, nil
}

// GetProjectRoot returns the directory containing the tsconfig
func (c *TsConfig) GetProjectRoot() string {
	return filepath.Dir(c.path)
}

// SourceFiles returns the absolute paths listed in `files`. It returns nil
// when the tsconfig has no `files` entry and the sources must be discovered.
func (c *TsConfig) SourceFiles() []string {
	if len(c.Files) == 0 {
		return nil
	}
	root := c.GetProjectRoot()
	files := make([]string, len(c.Files))
	for i, file := range c.Files {
		if filepath.IsAbs(file) {
			files[i] = filepath.Clean(file)
		} else {
			files[i] = filepath.Join(root, file)
		}
	}
	return files
}

// Apply narrows the project patterns to the tsconfig ones, when it has any.
func (c *TsConfig) Apply(project *ProjectConfig) {
	if len(c.Include) > 0 {
		project.Include = append([]string(nil), c.Include...)
	}
	project.Exclude = append(project.Exclude, c.Exclude...)
}
