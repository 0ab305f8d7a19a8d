package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rwx-research/spawn-mocha/internal/cli"
	"github.com/rwx-research/spawn-mocha/internal/errors"
	"github.com/rwx-research/spawn-mocha/internal/exec"
	"github.com/rwx-research/spawn-mocha/internal/fs"
	"github.com/rwx-research/spawn-mocha/internal/logging"
	"github.com/rwx-research/spawn-mocha/internal/resolver"
)

const envPrefix = "SPAWN_MOCHA"

var (
	spawnMocha           cli.Service
	initializationErrors []error

	rootCmd = &cobra.Command{
		Use:               "spawn-mocha",
		Short:             "spawn-mocha runs mocha test files in a child process",
		Long:              descriptionSpawnMocha,
		PersistentPreRunE: initCLIService,
		SilenceErrors:     true, // Errors are manually printed in 'main'
		SilenceUsage:      true, // Disables usage text on error
	}
)

func init() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String("config-file", "", "the config file for spawn-mocha")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")

	for _, name := range []string{"config-file", "debug"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			initializationErrors = append(initializationErrors, err)
		}
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func initCLIService(cmd *cobra.Command, args []string) error {
	logger := logging.NewProductionLogger()
	if viper.GetBool("debug") {
		logger = logging.NewDebugLogger()
	}

	wd, err := os.Getwd()
	if err != nil {
		return errors.NewSystemError("unable to determine the current working directory: %s", err)
	}

	fileSystem := fs.Local{}

	spawnMocha = cli.Service{
		Log:        logger,
		FileSystem: fileSystem,
		TaskRunner: exec.Local{},
		Resolver:   resolver.Resolver{FileSystem: fileSystem, WorkingDirectory: wd},
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}

	return nil
}
