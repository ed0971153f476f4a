// internal/runner/runner.go
// Package runner executes an invocation plan and waits for the child to
// finish, tearing down the whole child process group on interrupt.
package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/mwiater/zoolaunch/internal/invocation"
)

// ErrInterrupted reports that the user cancelled the run and the child
// process group was killed.
var ErrInterrupted = errors.New("run interrupted")

// Run executes the plan's argument vector and blocks until the child
// exits. The child is started as its own process-group leader so an
// interrupt can take down everything the entrypoint spawned, not just the
// direct child. The child's exit code is returned as-is; a non-zero code
// is not an error here.
func Run(plan invocation.Plan) (int, error) {
	argv := plan.Argv()
	binary, err := exec.LookPath(argv[0])
	if err != nil {
		return 1, fmt.Errorf("%s not found on PATH: %w", argv[0], err)
	}

	cmd := exec.Command(binary, argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if plan.Kind == invocation.KindBareMetal {
		// The plan's environment is handed to the child explicitly; the
		// launcher's own process environment is never mutated.
		env := os.Environ()
		for _, pair := range plan.Env {
			env = append(env, pair.Key+"="+pair.Value)
		}
		cmd.Env = env
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := cmd.Start(); err != nil {
		return 1, fmt.Errorf("start %s: %w", argv[0], err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-sigCh:
		// The child leads its own group, so the negative pid covers every
		// grandchild the entrypoint spawned.
		_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		<-done
		return 130, ErrInterrupted
	case err := <-done:
		if err == nil {
			return 0, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("wait for %s: %w", argv[0], err)
	}
}
