// Package cli holds the main business logic of the command-line interface.
package cli

import (
	"bufio"
	"context"
	"io"
	"strings"

	"code.cloudfoundry.org/clock"
	"go.uber.org/zap"

	"github.com/rwx-research/spawn-mocha/internal/config"
	"github.com/rwx-research/spawn-mocha/internal/errors"
	"github.com/rwx-research/spawn-mocha/internal/fs"
	"github.com/rwx-research/spawn-mocha/internal/metrics"
	"github.com/rwx-research/spawn-mocha/internal/stage"
)

// Service is the main CLI service.
type Service struct {
	Clock      clock.Clock
	Log        *zap.SugaredLogger
	FileSystem fs.FileSystem
	TaskRunner stage.TaskRunner
	Resolver   stage.BinaryResolver
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// Run collects every configured test file into a single stage and runs it to completion. The returned error is the
// outcome of the stage, so a failing test run surfaces as an `errors.ExecutionError` carrying the exit code.
func (s Service) Run(ctx context.Context, cfg RunConfig) error {
	if err := cfg.Validate(); err != nil {
		return errors.WithStack(err)
	}

	stageConfig, err := config.New(cfg.Options)
	if err != nil {
		return errors.WithStack(err)
	}

	st := stage.New(stageConfig, stage.Runtime{
		Log:        s.Log,
		FileSystem: s.FileSystem,
		TaskRunner: s.TaskRunner,
		Resolver:   s.Resolver,
		Stdin:      s.Stdin,
		Stdout:     s.Stdout,
		Stderr:     s.Stderr,
	})

	files, err := s.collect(cfg)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := ctx.Err(); err != nil {
		return errors.NewSystemError("test run was cancelled before it started: %s", err)
	}

	for _, file := range files {
		if err := st.Write(file); err != nil {
			return errors.WithStack(err)
		}
	}

	s.Log.Debugf("Queued %d test files", len(files))

	clk := s.Clock
	if clk == nil {
		clk = clock.NewClock()
	}

	started := clk.Now()
	if err := st.End(); err != nil {
		return errors.WithStack(err)
	}

	runErr := st.Wait()

	if cfg.MetricsFile != "" {
		run := metrics.Run{
			Files:    len(st.Files()),
			Duration: clk.Since(started),
			Err:      runErr,
			Finished: clk.Now(),
		}

		if err := run.WriteTextfile(cfg.MetricsFile); err != nil {
			s.Log.Warnf("Unable to write the run report: %s", err)
		}
	}

	return runErr
}

// collect expands the configured paths and appends the ones read from stdin. A path only ever appears once, at the
// position it was first seen, no matter whether it came from an argument, a glob or stdin.
func (s Service) collect(cfg RunConfig) ([]string, error) {
	files := make([]string, 0, len(cfg.Paths))
	seen := make(map[string]struct{})

	if len(cfg.Paths) > 0 {
		expanded, err := s.FileSystem.GlobMany(cfg.Paths)
		if err != nil {
			return nil, errors.NewSystemError("unable to expand file paths: %s", err)
		}
		for _, path := range expanded {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	if !cfg.ReadStdin {
		return files, nil
	}

	if s.Stdin == nil {
		return nil, errors.NewInputError("no standard input available to read file paths from")
	}

	scanner := bufio.NewScanner(s.Stdin)
	for scanner.Scan() {
		path := strings.TrimSpace(scanner.Text())
		if path == "" {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.NewSystemError("unable to read file paths from stdin: %s", err)
	}

	return files, nil
}
