// Package stage runs a test runner over a set of files. A stage collects file paths until it is finalized, then spawns
// a single child process for all of them and reports the outcome exactly once.
package stage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/rwx-research/spawn-mocha/internal/config"
	"github.com/rwx-research/spawn-mocha/internal/errors"
	"github.com/rwx-research/spawn-mocha/internal/exec"
	"github.com/rwx-research/spawn-mocha/internal/fs"
	"github.com/rwx-research/spawn-mocha/internal/resolver"
)

// DefaultExecPath is the interpreter used to run the resolved binary unless `execPath` is configured.
const DefaultExecPath = "node"

// Runtime holds the collaborators of a stage. Missing collaborators default to the local file-system, local processes
// and a resolver searching from the current working directory.
type Runtime struct {
	Log        *zap.SugaredLogger
	FileSystem fs.FileSystem
	TaskRunner TaskRunner
	Resolver   BinaryResolver

	// Standard streams inherited by the child when no output sink is configured. They default to the streams of the
	// current process.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Stage is a single file-queue-to-process cycle. It must not be reused.
type Stage struct {
	ID  string
	Log *zap.SugaredLogger

	cfg     config.Config
	runtime Runtime

	mu    sync.Mutex
	state State
	files []string

	finishOnce sync.Once
	events     chan Event
	done       chan struct{}
	err        error
}

// New returns an idle stage. Zero-value fields of runtime are replaced by their defaults.
func New(cfg config.Config, runtime Runtime) *Stage {
	id := uuid.NewString()

	log := runtime.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	if runtime.FileSystem == nil {
		runtime.FileSystem = fs.Local{}
	}
	if runtime.TaskRunner == nil {
		runtime.TaskRunner = exec.Local{}
	}
	if runtime.Resolver == nil {
		// An unknown working directory leaves the search relative to wherever the process runs
		wd, _ := os.Getwd()
		runtime.Resolver = resolver.Resolver{FileSystem: runtime.FileSystem, WorkingDirectory: wd}
	}

	if runtime.Stdin == nil {
		runtime.Stdin = os.Stdin
	}
	if runtime.Stdout == nil {
		runtime.Stdout = os.Stdout
	}
	if runtime.Stderr == nil {
		runtime.Stderr = os.Stderr
	}

	return &Stage{
		ID:      id,
		Log:     log.With("stage", id),
		cfg:     cfg,
		runtime: runtime,
		state:   StateIdle,
		// Large enough for both notifications so the stage never blocks on a caller that isn't listening
		events: make(chan Event, 2),
		done:   make(chan struct{}),
	}
}

// Write appends a file path to the queue.
func (s *Stage) Write(path string) error {
	if path == "" {
		return errors.NewInputError("expected a file path, received an empty string")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return errors.NewInputError("unable to add %q: the stage was already finalized", path)
	}

	s.files = append(s.files, path)
	return nil
}

// Files returns a copy of the queued file paths.
func (s *Stage) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	files := make([]string, len(s.files))
	copy(files, s.files)
	return files
}

// State returns the current lifecycle state.
func (s *Stage) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Events returns the notification channel. An optional EventError is followed by exactly one EventEnd, after which
// the channel is closed.
func (s *Stage) Events() <-chan Event {
	return s.events
}

// Done is closed once the stage reached its terminal state.
func (s *Stage) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the stage is done and returns the reason it failed, if any.
func (s *Stage) Wait() error {
	<-s.done
	return s.err
}

// End finalizes the queue. An empty queue completes the stage right away. Otherwise the test runner is spawned and
// End returns without waiting for it - the outcome is reported through Events and Wait.
func (s *Stage) End() error {
	s.mu.Lock()

	if s.state != StateIdle {
		s.mu.Unlock()
		return errors.NewInputError("the stage was already finalized")
	}

	files := make([]string, len(s.files))
	copy(files, s.files)

	if len(files) == 0 {
		s.mu.Unlock()
		s.Log.Debug("No files to test, skipping the test run")
		s.finish(nil)
		return nil
	}

	s.state = StateRunning
	s.mu.Unlock()

	s.launch(files)
	return nil
}

// finish records the terminal outcome. Only the first call has any effect.
func (s *Stage) finish(err error) {
	s.finishOnce.Do(func() {
		s.mu.Lock()
		s.state = StateDone
		s.mu.Unlock()

		s.err = err
		if err != nil {
			s.Log.Debugf("Stage failed: %s", err)
			s.events <- Event{Type: EventError, Err: err}
		}

		s.events <- Event{Type: EventEnd}
		close(s.events)
		close(s.done)
	})
}

func (s *Stage) launch(files []string) {
	invocation, err := s.runtime.Resolver.Resolve(s.cfg, files)
	if err != nil {
		s.finish(errors.Wrap(err, "unable to resolve the test runner"))
		return
	}

	execPath := s.cfg.ExecPath
	if execPath == "" {
		execPath = DefaultExecPath
	}

	name := filepath.Base(invocation.Bin)
	args := append([]string{invocation.Bin}, invocation.Args...)

	sink, closeSink, err := s.openSink()
	if err != nil {
		s.finish(errors.NewSystemError("%s failed to start: %s", name, err))
		return
	}

	cmdConfig := exec.CommandConfig{
		Name: execPath,
		Args: args,
		Env:  s.cfg.EnvOverrides(),
		Dir:  s.cfg.Cwd,
	}

	if sink == nil {
		cmdConfig.Stdin = s.runtime.Stdin
		cmdConfig.Stdout = s.runtime.Stdout
		cmdConfig.Stderr = s.runtime.Stderr
	}

	cmd, err := s.runtime.TaskRunner.NewCommand(cmdConfig)
	if err != nil {
		s.abort(closeSink, errors.NewSystemError("%s failed to start: %s", name, err))
		return
	}

	var stdout, stderr io.ReadCloser
	if sink != nil {
		if stdout, err = cmd.StdoutPipe(); err != nil {
			s.abort(closeSink, errors.NewSystemError("unable to attach to stdout of %s: %s", name, err))
			return
		}

		if stderr, err = cmd.StderrPipe(); err != nil {
			s.abort(closeSink, errors.NewSystemError("unable to attach to stderr of %s: %s", name, err))
			return
		}
	}

	s.Log.Debugf("Executing %q", strings.Join(append([]string{execPath}, args...), " "))
	if err := cmd.Start(); err != nil {
		s.abort(closeSink, errors.NewSystemError("%s failed to start: %s", name, err))
		return
	}

	go s.supervise(cmd, name, sink, stdout, stderr, closeSink)
}

// abort finishes a stage whose child never started.
func (s *Stage) abort(closeSink func() error, err error) {
	if closeErr := closeSink(); closeErr != nil {
		s.Log.Warnf("Unable to close output: %s", closeErr)
	}

	s.finish(err)
}

// supervise waits for the child to exit and translates its exit into the outcome of the stage.
func (s *Stage) supervise(
	cmd exec.Command,
	name string,
	sink io.Writer,
	stdout, stderr io.Reader,
	closeSink func() error,
) {
	var copyErr error
	if sink != nil {
		// stdout & stderr are copied concurrently, so writes to the shared sink need to be serialized
		locked := zapcore.Lock(zapcore.AddSync(sink))

		var eg errgroup.Group
		eg.Go(func() error { return drain(locked, stdout) })
		eg.Go(func() error { return drain(locked, stderr) })
		copyErr = eg.Wait()
	}

	waitErr := cmd.Wait()
	closeErr := closeSink()
	s.Log.Debugf("Finished executing %s", name)

	if waitErr != nil {
		if code, err := s.runtime.TaskRunner.GetExitStatusFromError(waitErr); err == nil {
			// os/exec reports -1 for children that were killed by a signal
			if code < 0 {
				s.finish(errors.NewSystemError("%s was terminated: %s", name, waitErr))
				return
			}

			s.finish(errors.NewExecutionError(code, "%s exited with code %d", name, code))
			return
		}

		s.finish(errors.NewSystemError("error during execution of %s: %s", name, waitErr))
		return
	}

	if copyErr != nil {
		s.finish(errors.NewSystemError("unable to write the output of %s: %s", name, copyErr))
		return
	}

	if closeErr != nil {
		s.finish(errors.NewSystemError("unable to close the output of %s: %s", name, closeErr))
		return
	}

	s.finish(nil)
}

// openSink returns the destination for the child's output, or nil if the child should inherit our streams.
func (s *Stage) openSink() (io.Writer, func() error, error) {
	noop := func() error { return nil }

	if s.cfg.Sink != nil {
		return s.cfg.Sink, noop, nil
	}

	if s.cfg.Output == "" {
		return nil, noop, nil
	}

	file, err := s.runtime.FileSystem.Create(s.cfg.Output)
	if err != nil {
		return nil, noop, errors.Wrapf(err, "unable to open %q", s.cfg.Output)
	}

	return file, file.Close, nil
}

// drain copies r into w. If w fails, r is still read to the end so the child never blocks on a full pipe.
func drain(w io.Writer, r io.Reader) error {
	if _, err := io.Copy(w, r); err != nil {
		_, _ = io.Copy(io.Discard, r)
		return errors.WithStack(err)
	}

	return nil
}
