// Package metrics writes a summary of a test run in the Prometheus text exposition format, suitable for the textfile
// collector of a node exporter.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rwx-research/spawn-mocha/internal/errors"
)

const namespace = "spawn_mocha"

// Run summarizes a finished stage.
type Run struct {
	Files    int
	Duration time.Duration
	Err      error
	Finished time.Time
}

// ExitCode returns the exit code of the test runner, 0 on success and -1 if the run failed for any other reason.
func (r Run) ExitCode() int {
	if r.Err == nil {
		return 0
	}

	if executionErr, ok := errors.AsExecutionError(r.Err); ok {
		return executionErr.Code
	}

	return -1
}

// Registry returns a registry holding the gauges for a run.
func (r Run) Registry() *prometheus.Registry {
	registry := prometheus.NewRegistry()

	gauge := func(name, help string, value float64) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
		g.Set(value)
		registry.MustRegister(g)
	}

	success := 0.0
	if r.Err == nil {
		success = 1
	}

	gauge("files", "Number of files passed to the test runner.", float64(r.Files))
	gauge("exit_code", "Exit code of the test runner, -1 if it could not be run.", float64(r.ExitCode()))
	gauge("duration_seconds", "Wall-clock duration of the test run.", r.Duration.Seconds())
	gauge("success", "Whether the test run succeeded.", success)
	gauge("last_run_timestamp_seconds", "Time the test run finished.", float64(r.Finished.UnixNano())/1e9)

	return registry
}

// WriteTextfile writes the run to path. The file is replaced atomically.
func (r Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.Registry()); err != nil {
		return errors.NewSystemError("unable to write metrics to %q: %s", path, err)
	}

	return nil
}
