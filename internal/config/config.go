// Package config extracts the options that configure a stage itself from a configuration record. Everything that is
// not reserved is passed through to the test runner as flags.
package config

import (
	"fmt"
	"io"
	"sort"

	"github.com/rwx-research/spawn-mocha/internal/argv"
	"github.com/rwx-research/spawn-mocha/internal/errors"
	"github.com/rwx-research/spawn-mocha/internal/options"
)

// Reserved option names
const (
	KeyBin      = "bin"
	KeyEnv      = "env"
	KeyCwd      = "cwd"
	KeyExecPath = "execPath"
	KeyOutput   = "output"
	KeyNYC      = "nyc"
	KeyIstanbul = "istanbul"
)

// CoverageTool identifies the instrumentation binary wrapping the test runner.
type CoverageTool string

const (
	CoverageToolNYC      CoverageTool = "nyc"
	CoverageToolIstanbul CoverageTool = "istanbul"
)

// Coverage configures the coverage wrapper.
type Coverage struct {
	Tool  CoverageTool
	Bin   string
	Flags options.Options
}

// Config is the configuration of a single stage.
type Config struct {
	Bin      string
	Env      map[string]string
	Cwd      string
	ExecPath string

	// Output is the path of a file that receives the output of the test runner. Sink takes precedence if both are set.
	Output string
	Sink   io.Writer

	// Coverage is nil unless the test runner should be wrapped by a coverage tool.
	Coverage *Coverage

	// Flags are passed through to the test runner.
	Flags options.Options
}

// CapturesOutput reports whether the child's output is redirected instead of inherited.
func (c Config) CapturesOutput() bool {
	return c.Sink != nil || c.Output != ""
}

// EnvOverrides returns the environment overrides as sorted `KEY=VALUE` pairs.
func (c Config) EnvOverrides() []string {
	keys := make([]string, 0, len(c.Env))
	for key := range c.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	environ := make([]string, len(keys))
	for i, key := range keys {
		environ[i] = fmt.Sprintf("%s=%s", key, c.Env[key])
	}

	return environ
}

// New extracts the reserved options from a record.
func New(opts options.Options) (Config, error) {
	var (
		cfg Config
		err error
	)

	if cfg.Bin, err = stringOption(opts, KeyBin); err != nil {
		return cfg, err
	}

	if cfg.Cwd, err = stringOption(opts, KeyCwd); err != nil {
		return cfg, err
	}

	if cfg.ExecPath, err = stringOption(opts, KeyExecPath); err != nil {
		return cfg, err
	}

	if cfg.Output, err = stringOption(opts, KeyOutput); err != nil {
		return cfg, err
	}

	if cfg.Env, err = envOption(opts); err != nil {
		return cfg, err
	}

	nyc, err := coverageOption(opts, KeyNYC, CoverageToolNYC)
	if err != nil {
		return cfg, err
	}

	istanbul, err := coverageOption(opts, KeyIstanbul, CoverageToolIstanbul)
	if err != nil {
		return cfg, err
	}

	if nyc != nil && istanbul != nil {
		return cfg, errors.NewConfigurationError("%q and %q cannot be used at the same time", KeyNYC, KeyIstanbul)
	}

	cfg.Coverage = nyc
	if istanbul != nil {
		cfg.Coverage = istanbul
	}

	cfg.Flags = opts.Without(KeyBin, KeyEnv, KeyCwd, KeyExecPath, KeyOutput, KeyNYC, KeyIstanbul)
	if err := validateFlags(cfg.Flags); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func stringOption(opts options.Options, key string) (string, error) {
	value, ok := opts.Get(key)
	if !ok || value == nil {
		return "", nil
	}

	s, ok := value.(string)
	if !ok {
		return "", errors.NewConfigurationError("%q needs to be a string, found %T", key, value)
	}

	return s, nil
}

func envOption(opts options.Options) (map[string]string, error) {
	value, ok := opts.Get(KeyEnv)
	if !ok || value == nil {
		return nil, nil
	}

	record, ok := value.(options.Options)
	if !ok {
		return nil, errors.NewConfigurationError("%q needs to be a mapping, found %T", KeyEnv, value)
	}

	env := make(map[string]string, len(record))
	for _, opt := range record {
		switch v := opt.Value.(type) {
		case nil:
			env[opt.Key] = ""
		case options.Options, []any:
			return nil, errors.NewConfigurationError("environment variable %q needs to be a scalar", opt.Key)
		default:
			env[opt.Key] = fmt.Sprintf("%v", v)
		}
	}

	return env, nil
}

func coverageOption(opts options.Options, key string, tool CoverageTool) (*Coverage, error) {
	value, ok := opts.Get(key)
	if !ok {
		return nil, nil
	}

	switch v := value.(type) {
	case nil:
		return nil, nil
	case bool:
		if !v {
			return nil, nil
		}
		return &Coverage{Tool: tool}, nil
	case options.Options:
		bin, err := stringOption(v, KeyBin)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %q configuration", key)
		}

		flags := v.Without(KeyBin)
		if err := validateFlags(flags); err != nil {
			return nil, errors.Wrapf(err, "invalid %q configuration", key)
		}

		return &Coverage{Tool: tool, Bin: bin, Flags: flags}, nil
	default:
		return nil, errors.NewConfigurationError("%q needs to be either a boolean or a mapping, found %T", key, value)
	}
}

func validateFlags(flags options.Options) error {
	for _, opt := range flags {
		if _, ok := opt.Value.(options.Options); ok {
			return errors.NewConfigurationError("%q cannot be a mapping", opt.Key)
		}

		if !argv.Supported(opt.Value) {
			return errors.NewConfigurationError("%q has a value of unsupported type %T", opt.Key, opt.Value)
		}
	}

	return nil
}
