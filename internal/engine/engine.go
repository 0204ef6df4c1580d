// Package engine spawns the converter process, multiplexes its diagnostic
// stream into progress callbacks, and supervises cancellation.
package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/parth181195/ffmpeg-forge/internal/command"
	"github.com/parth181195/ffmpeg-forge/internal/domain"
	"github.com/parth181195/ffmpeg-forge/internal/hwaccel"
	"github.com/parth181195/ffmpeg-forge/internal/input"
	"github.com/parth181195/ffmpeg-forge/internal/progress"
)

// killGrace is how long a cancelled process gets to honor the graceful quit
// keystroke before it is killed outright.
const killGrace = 2 * time.Second

type executionState int

const (
	stateRunning executionState = iota
	stateDone
	stateFailed
	stateCancelled
)

// Engine runs conversions against one converter binary.
type Engine struct {
	ffmpegPath string
	logger     *slog.Logger
}

func New(ffmpegPath string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		ffmpegPath: ffmpegPath,
		logger:     logger.With("component", "engine"),
	}
}

// Execution is the handle for one running conversion. Cancel may be called
// from any goroutine; Wait blocks until the process settles and returns the
// terminal error, nil on success.
type Execution struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	display string

	mu    sync.Mutex
	state executionState
	err   error

	done chan struct{}
}

// Wait blocks until the conversion settles.
func (x *Execution) Wait() error {
	<-x.done
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.err
}

// Running reports whether the process has not yet settled.
func (x *Execution) Running() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.state == stateRunning
}

// Cancel stops the conversion: first the converter's graceful quit
// keystroke on stdin, then a hard kill if the process is still alive after
// the grace period. Safe to call more than once; calls after settlement are
// no-ops.
func (x *Execution) Cancel() {
	x.mu.Lock()
	if x.state != stateRunning {
		x.mu.Unlock()
		return
	}
	x.state = stateCancelled
	x.mu.Unlock()

	if x.stdin != nil {
		io.WriteString(x.stdin, "q")
	}

	go func() {
		select {
		case <-x.done:
		case <-time.After(killGrace):
			if x.cmd.Process != nil {
				x.cmd.Process.Kill()
			}
		}
	}()
}

func (x *Execution) cancelled() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.state == stateCancelled
}

func (x *Execution) settle(state executionState, err error) {
	x.mu.Lock()
	// Cancellation wins over whatever exit status the kill produced.
	if x.state != stateCancelled {
		x.state = state
	}
	x.err = err
	x.mu.Unlock()
	close(x.done)
}

// Start validates, stages, compiles and spawns a conversion, returning a
// handle. OnStart fires before the process is spawned; OnProgress follows
// stream arrival order; exactly one of OnEnd or OnError fires, immediately
// before Wait returns.
func (e *Engine) Start(ctx context.Context, cfg *domain.ConversionConfig, callbacks *domain.ConversionCallbacks) (*Execution, error) {
	if callbacks == nil {
		callbacks = &domain.ConversionCallbacks{}
	}

	if problems := command.Validate(cfg); len(problems) > 0 {
		return nil, e.fail(callbacks, domain.NewInvalidConfiguration(problems))
	}

	stagedIn, err := input.StageInput(cfg.Input)
	if err != nil {
		return nil, e.fail(callbacks, err)
	}

	stagedOut, err := input.StageOutput(cfg.Output, extHint(cfg))
	if err != nil {
		stagedIn.Cleanup()
		return nil, e.fail(callbacks, err)
	}

	hw := e.resolveHardware(ctx, cfg)
	args, err := command.Generate(cfg, stagedIn.Path, stagedOut.Path, hw)
	if err != nil {
		stagedIn.Cleanup()
		stagedOut.Cleanup()
		return nil, e.fail(callbacks, err)
	}

	display := command.GenerateString(e.ffmpegPath, args)
	if callbacks.OnStart != nil {
		callbacks.OnStart(display)
	}
	e.logger.Debug("starting conversion", "command", display)

	x := &Execution{display: display, done: make(chan struct{})}
	x.cmd = exec.CommandContext(ctx, e.ffmpegPath, args...)

	stdin, err := x.cmd.StdinPipe()
	if err == nil {
		x.stdin = stdin
	}
	stderr, err := x.cmd.StderrPipe()
	if err != nil {
		stagedIn.Cleanup()
		stagedOut.Cleanup()
		return nil, e.fail(callbacks, domain.NewExecutionFailed("failed to open diagnostic pipe", display, "", err))
	}

	if err := x.cmd.Start(); err != nil {
		stagedIn.Cleanup()
		stagedOut.Cleanup()
		return nil, e.fail(callbacks, domain.NewExecutionFailed("failed to start converter", display, "", err))
	}

	go e.supervise(x, stderr, stagedIn, stagedOut, cfg, callbacks)

	return x, nil
}

// supervise owns the process from spawn to settlement: it scans the
// diagnostic stream in arrival order, fires progress callbacks, waits for
// exit, collects writer-sink output and cleans up staged files on every
// terminal path.
func (e *Engine) supervise(x *Execution, stderr io.Reader, stagedIn, stagedOut *input.Staged, cfg *domain.ConversionConfig, callbacks *domain.ConversionCallbacks) {
	defer stagedIn.Cleanup()
	defer stagedOut.Cleanup()

	var diag strings.Builder
	parser := &progress.Parser{}

	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanLines)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		diag.WriteString(line)
		diag.WriteByte('\n')

		parser.ParseDuration(line)
		if prog, ok := parser.ParseProgress(line); ok {
			if callbacks.OnProgress != nil {
				callbacks.OnProgress(prog)
			}
		}
		// Advisory only: these phrases show up in harmless warnings too, so
		// the real verdict waits for the exit code.
		if progress.LooksLikeError(line) {
			e.logger.Debug("converter diagnostic", "line", line)
		}
	}
	if err := scanner.Err(); err != nil {
		// The capture is truncated from here on; keep a trace of why so the
		// diagnostics do not silently end mid-stream.
		e.logger.Warn("diagnostic stream read failed", "error", err)
		fmt.Fprintf(&diag, "[diagnostic stream read failed: %v]\n", err)
	}

	waitErr := x.cmd.Wait()

	if x.cancelled() {
		err := domain.NewCancelled(x.display)
		if callbacks.OnError != nil {
			callbacks.OnError(err)
		}
		x.settle(stateCancelled, err)
		return
	}

	if waitErr != nil {
		err := domain.NewExecutionFailed(
			fmt.Sprintf("converter exited: %v", waitErr),
			x.display, diag.String(), waitErr,
		)
		if callbacks.OnError != nil {
			callbacks.OnError(err)
		}
		x.settle(stateFailed, err)
		return
	}

	if err := input.Collect(stagedOut, cfg.Output); err != nil {
		if callbacks.OnError != nil {
			callbacks.OnError(err)
		}
		x.settle(stateFailed, err)
		return
	}

	if callbacks.OnEnd != nil {
		callbacks.OnEnd()
	}
	x.settle(stateDone, nil)
}

// Execute runs a conversion to completion.
func (e *Engine) Execute(ctx context.Context, cfg *domain.ConversionConfig, callbacks *domain.ConversionCallbacks) error {
	x, err := e.Start(ctx, cfg, callbacks)
	if err != nil {
		return err
	}
	return x.Wait()
}

// ExecuteToBuffer runs a conversion whose output is captured in memory. The
// configured output sink is ignored; the result is staged through a temp
// file and read back after a clean exit.
func (e *Engine) ExecuteToBuffer(ctx context.Context, cfg *domain.ConversionConfig, callbacks *domain.ConversionCallbacks) ([]byte, error) {
	buffered := *cfg
	buffered.Output = domain.Output{Writer: io.Discard}

	stagedOut, err := input.StageOutput(buffered.Output, extHint(&buffered))
	if err != nil {
		return nil, e.fail(callbacks, err)
	}
	buffered.Output = domain.Output{Path: stagedOut.Path}
	defer stagedOut.Cleanup()

	if err := e.Execute(ctx, &buffered, callbacks); err != nil {
		return nil, err
	}
	return input.ReadStaged(stagedOut)
}

func (e *Engine) fail(callbacks *domain.ConversionCallbacks, err error) error {
	if callbacks != nil && callbacks.OnError != nil {
		callbacks.OnError(err)
	}
	return err
}

func (e *Engine) resolveHardware(ctx context.Context, cfg *domain.ConversionConfig) hwaccel.Resolution {
	if cfg.Video == nil || cfg.Video.Disabled || cfg.Video.Codec == "" {
		return hwaccel.Resolution{}
	}
	if !cfg.HardwareAcceleration.WantsHardwareCodec() {
		return hwaccel.Resolution{}
	}
	return hwaccel.Resolve(ctx, e.ffmpegPath, cfg.Video.Codec, cfg.HardwareAcceleration.Type)
}

// extHint derives a file extension for writer-sink staging so container
// inference still works without an explicit format.
func extHint(cfg *domain.ConversionConfig) string {
	if cfg.Format != "" {
		return "." + cfg.Format
	}
	return ""
}

// scanLines splits on both newline and carriage return: the converter
// redraws its progress line with bare \r, so a newline-only split would sit
// on one growing line until exit.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i, b := range data {
		if b == '\n' || b == '\r' {
			return i + 1, data[:i], nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
