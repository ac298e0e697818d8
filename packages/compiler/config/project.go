package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ngc-lite/packages/compiler/translator"
)

// ProjectFileName is the base name of the project configuration file. Any
// extension viper understands is accepted.
const ProjectFileName = "ngc"

// EnvPrefix prefixes the environment variables overriding project settings,
// e.g. NGC_OUT_DIR.
const EnvPrefix = "NGC"

// ProjectConfig is the configuration of a project compiled by the command
// line driver.
type ProjectConfig struct {
	// Root is the directory relative paths are resolved against.
	Root                string   `mapstructure:"-"`
	OutDir              string   `mapstructure:"out_dir"`
	Include             []string `mapstructure:"include"`
	Exclude             []string `mapstructure:"exclude"`
	Jobs                int      `mapstructure:"jobs"`
	CoreModule          string   `mapstructure:"core_module"`
	CoreAlias           string   `mapstructure:"core_alias"`
	PreserveWhitespaces bool     `mapstructure:"preserve_whitespaces"`
	RawSuffix           string   `mapstructure:"raw_suffix"`
	// Project is an optional tsconfig.json listing the files to compile.
	Project string `mapstructure:"project"`
}

// ErrInvalidProject is returned for a configuration that cannot be used.
var ErrInvalidProject = errors.New("invalid project configuration")

// LoadProject loads the project configuration of root. configFile, when not
// empty, names the file to read instead of looking for ngc.* in root.
// Settings come from, in increasing priority: defaults, the file, NGC_*
// environment variables and the flags that were set on the command line.
func LoadProject(root, configFile string, flags *pflag.FlagSet) (*ProjectConfig, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("out_dir", "dist/ngc")
	v.SetDefault("include", []string{"**/*.ts"})
	v.SetDefault("exclude", []string{"**/*.spec.ts", "**/*.d.ts", "**/node_modules/**", "**/dist/**"})
	v.SetDefault("jobs", 0)
	v.SetDefault("core_module", translator.CoreModule)
	v.SetDefault("core_alias", translator.CoreAlias)
	v.SetDefault("preserve_whitespaces", false)
	v.SetDefault("raw_suffix", "?raw")
	v.SetDefault("project", "")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ProjectFileName)
		v.AddConfigPath(root)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config ProjectConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Root = root

	if err := validateProject(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// projectFlags maps configuration keys to the command line flags that can
// override them.
var projectFlags = map[string]string{
	"out_dir":              "out",
	"jobs":                 "jobs",
	"project":              "project",
	"preserve_whitespaces": "preserve-whitespaces",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range projectFlags {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// validateProject validates the configuration and fills in derived values.
func validateProject(cfg *ProjectConfig) error {
	if cfg.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalidProject, cfg.Jobs)
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = runtime.GOMAXPROCS(0)
	}
	if cfg.OutDir == "" {
		return fmt.Errorf("%w: out_dir must not be empty", ErrInvalidProject)
	}
	if (cfg.CoreModule == "") != (cfg.CoreAlias == "") {
		return fmt.Errorf("%w: core_module and core_alias must be set together", ErrInvalidProject)
	}
	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if err := validatePattern(pattern); err != nil {
			return fmt.Errorf("%w: bad pattern %q: %v", ErrInvalidProject, pattern, err)
		}
	}
	return nil
}

// OutPath returns the absolute output directory.
func (c *ProjectConfig) OutPath() string {
	if filepath.IsAbs(c.OutDir) {
		return c.OutDir
	}
	return filepath.Join(c.Root, c.OutDir)
}

// Options converts the project settings into compiler options.
func (c *ProjectConfig) Options() []CompilerConfigOption {
	opts := []CompilerConfigOption{
		WithPreserveWhitespaces(c.PreserveWhitespaces),
		WithRawSuffix(c.RawSuffix),
	}
	if c.CoreModule != "" {
		opts = append(opts, WithCoreModule(c.CoreModule, c.CoreAlias))
	}
	return opts
}
