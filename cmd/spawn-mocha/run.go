package main

import (
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rwx-research/spawn-mocha/internal/cli"
	"github.com/rwx-research/spawn-mocha/internal/config"
	"github.com/rwx-research/spawn-mocha/internal/errors"
	"github.com/rwx-research/spawn-mocha/internal/fs"
	"github.com/rwx-research/spawn-mocha/internal/options"
)

// RunFlags are the command line overrides of the configuration record.
type RunFlags struct {
	Bin      string
	Cwd      string
	ExecPath string
	Output   string
	Env      []string
	EnvFile  string
	NYC      bool
}

// Apply returns a copy of record with the flags applied on top of it. Environment variables from EnvFile are merged
// over the record's env, and Env over both.
func (f RunFlags) Apply(record options.Options) (options.Options, error) {
	overrides := []struct {
		key   string
		value string
	}{
		{config.KeyBin, f.Bin},
		{config.KeyCwd, f.Cwd},
		{config.KeyExecPath, f.ExecPath},
		{config.KeyOutput, f.Output},
	}

	for _, override := range overrides {
		if override.value != "" {
			record = record.Set(override.key, override.value)
		}
	}

	if len(f.Env) > 0 || f.EnvFile != "" {
		env := options.Options{}
		if value, ok := record.Get(config.KeyEnv); ok && value != nil {
			existing, ok := value.(options.Options)
			if !ok {
				return nil, errors.NewConfigurationError("%q needs to be a mapping, found %T", config.KeyEnv, value)
			}
			env = existing
		}

		if f.EnvFile != "" {
			fromFile, err := godotenv.Read(f.EnvFile)
			if err != nil {
				return nil, errors.NewConfigurationError("unable to read env file %q: %s", f.EnvFile, err)
			}

			keys := make([]string, 0, len(fromFile))
			for key := range fromFile {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			for _, key := range keys {
				env = env.Set(key, fromFile[key])
			}
		}

		for _, pair := range f.Env {
			key, value, found := strings.Cut(pair, "=")
			if !found || key == "" {
				return nil, errors.NewInputError("environment variables need to be of the form KEY=VALUE, found %q", pair)
			}
			env = env.Set(key, value)
		}

		record = record.Set(config.KeyEnv, env)
	}

	if f.NYC && !record.Has(config.KeyNYC) && !record.Has(config.KeyIstanbul) {
		record = record.Set(config.KeyNYC, true)
	}

	return record, nil
}

var (
	runFlags  RunFlags
	readStdin bool

	runCmd = &cobra.Command{
		Use:   "run [flags] [paths...]",
		Short: "Execute mocha for a set of test files",
		Long:  descriptionRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := LoadRecord(fs.Local{}, viper.GetString("config-file"))
			if err != nil {
				return errors.WithStack(err)
			}

			record, err = runFlags.Apply(record)
			if err != nil {
				return errors.WithStack(err)
			}

			return errors.WithStack(spawnMocha.Run(cmd.Context(), cli.RunConfig{
				Options:     record,
				Paths:       args,
				ReadStdin:   readStdin,
				MetricsFile: viper.GetString("metrics-file"),
			}))
		},
	}
)

func init() {
	flags := runCmd.Flags()

	flags.StringVar(&runFlags.Bin, "bin", "", "the test runner script (default: mocha from the nearest node_modules)")
	flags.StringVar(&runFlags.Cwd, "cwd", "", "the working directory of the test runner")
	flags.StringVar(&runFlags.ExecPath, "exec-path", "", `the interpreter running the test runner (default: "node")`)
	flags.StringVar(&runFlags.Output, "output", "", "write the output of the test runner to this file")
	flags.StringArrayVar(&runFlags.Env, "env", nil, "an additional environment variable as KEY=VALUE (repeatable)")
	flags.StringVar(&runFlags.EnvFile, "env-file", "", "a dotenv file with additional environment variables")
	flags.BoolVar(&runFlags.NYC, "nyc", false, "collect coverage with nyc unless the config file configures coverage")
	flags.BoolVar(&readStdin, "stdin", false, "also read newline-separated file paths from stdin")
	flags.String("metrics-file", "", "write a Prometheus text-file report of the run to this file")

	if err := viper.BindPFlag("metrics-file", flags.Lookup("metrics-file")); err != nil {
		initializationErrors = append(initializationErrors, err)
	}

	rootCmd.AddCommand(runCmd)
}
