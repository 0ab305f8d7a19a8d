package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rwx-research/spawn-mocha/internal/errors"
	"github.com/rwx-research/spawn-mocha/internal/fs"
	"github.com/rwx-research/spawn-mocha/internal/options"
)

const configFileName = ".spawn-mocha"

var configFileExtensions = []string{"yaml", "yml"}

// LoadRecord reads the configuration record. An empty configFilePath searches the current directory and its parents
// for a config file; finding none results in an empty record.
func LoadRecord(fileSystem fs.FileSystem, configFilePath string) (options.Options, error) {
	if configFilePath == "" {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.NewSystemError("unable to determine the current working directory: %s", err)
		}

		possibleConfigFilePaths := make([]string, 0, len(configFileExtensions))

		for _, extension := range configFileExtensions {
			path, err := fs.FindInParentDir(fileSystem, pwd, fmt.Sprintf("%s.%s", configFileName, extension))
			if err == nil {
				possibleConfigFilePaths = append(possibleConfigFilePaths, path)
				continue
			}

			if !errors.Is(err, os.ErrNotExist) {
				return nil, errors.NewDetailedConfigurationError(
					"Unable to read configuration file",
					fmt.Sprintf("The following system error occurred while looking for a config file: %s", err),
					"Please make sure that spawn-mocha has the correct permissions to access the config file.",
				)
			}
		}

		if len(possibleConfigFilePaths) > 1 {
			return nil, errors.NewDetailedConfigurationError(
				"Unable to identify configuration file",
				fmt.Sprintf(
					"spawn-mocha found multiple configuration files in your environment: %s\n",
					strings.Join(possibleConfigFilePaths, ", "),
				),
				"Please make sure only one config file is present in your environment or explicitly specify "+
					"one using the '--config-file' flag.",
			)
		}

		if len(possibleConfigFilePaths) == 0 {
			return options.Options{}, nil
		}

		configFilePath = possibleConfigFilePaths[0]
	}

	fd, err := fileSystem.Open(configFilePath)
	if err != nil {
		return nil, errors.NewConfigurationError("unable to open config file %q: %s", configFilePath, err)
	}
	defer fd.Close()

	content, err := io.ReadAll(fd)
	if err != nil {
		return nil, errors.NewConfigurationError("unable to read config file %q: %s", configFilePath, err)
	}

	record, err := options.Decode(content)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse config file %q", configFilePath)
	}

	return record, nil
}
