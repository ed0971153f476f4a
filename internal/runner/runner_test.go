// internal/runner/runner_test.go
package runner

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/mwiater/zoolaunch/internal/environ"
	"github.com/mwiater/zoolaunch/internal/invocation"
)

// writeScript writes an executable shell script and returns its path.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "start.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunPropagatesExitCode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "success", body: "exit 0", want: 0},
		{name: "failure", body: "exit 7", want: 7},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			plan := invocation.Plan{Kind: invocation.KindBareMetal, Script: writeScript(t, tt.body)}
			code, err := Run(plan)
			if err != nil {
				t.Fatalf("Run returned error: %v", err)
			}
			if code != tt.want {
				t.Fatalf("exit code: got %d want %d", code, tt.want)
			}
		})
	}
}

func TestRunDeliversPlanEnvironment(t *testing.T) {
	plan := invocation.Plan{
		Kind:   invocation.KindBareMetal,
		Script: writeScript(t, `[ "$GREETING" = "hello" ] || exit 1`),
		Env:    []environ.Pair{{Key: "GREETING", Value: "hello"}},
	}
	code, err := Run(plan)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected environment to reach the child, exit code %d", code)
	}
}

func TestRunInterruptKillsProcessGroup(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "grandchild.pid")
	script := writeScript(t, "sleep 60 &\necho $! > \""+pidFile+"\"\nwait")
	plan := invocation.Plan{Kind: invocation.KindBareMetal, Script: script}

	type result struct {
		code int
		err  error
	}
	done := make(chan result, 1)
	go func() {
		code, err := Run(plan)
		done <- result{code: code, err: err}
	}()

	// The pid file appearing means the child is running, so Run has
	// already installed its signal handler.
	grandchild := waitForPidFile(t, pidFile)

	if err := syscall.Kill(os.Getpid(), syscall.SIGINT); err != nil {
		t.Fatalf("send SIGINT: %v", err)
	}

	select {
	case res := <-done:
		if !errors.Is(res.err, ErrInterrupted) {
			t.Fatalf("expected ErrInterrupted, got %v", res.err)
		}
		if res.code != 130 {
			t.Fatalf("exit code: got %d want 130", res.code)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after interrupt")
	}

	// The group kill must reach the grandchild, not just the script.
	waitForProcessGone(t, grandchild)
}

// waitForPidFile polls until the script has written its background
// child's pid.
func waitForPidFile(t *testing.T, path string) int {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil {
			if pid, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil && pid > 0 {
				return pid
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("grandchild pid file never appeared")
	return 0
}

// waitForProcessGone polls until signalling the pid fails, i.e. the
// process no longer exists.
func waitForProcessGone(t *testing.T, pid int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if err := syscall.Kill(pid, 0); err != nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("grandchild %d still running after interrupt", pid)
}

func TestRunMissingBinary(t *testing.T) {
	plan := invocation.Plan{Kind: invocation.KindContainer, Image: "img"}
	// Force an empty PATH so even an installed docker is not found.
	t.Setenv("PATH", t.TempDir())
	if _, err := Run(plan); err == nil {
		t.Fatal("expected an error for a missing binary")
	}
}
