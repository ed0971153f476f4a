// internal/cli/run_entry.go
package zoolaunch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/mwiater/zoolaunch/internal/appconfig"
	"github.com/mwiater/zoolaunch/internal/benchmark"
	"github.com/mwiater/zoolaunch/internal/environ"
	"github.com/mwiater/zoolaunch/internal/invocation"
	"github.com/mwiater/zoolaunch/internal/logging"
	"github.com/mwiater/zoolaunch/internal/runner"
	"github.com/mwiater/zoolaunch/internal/zoo"
	"gopkg.in/yaml.v3"
)

var successfulResult = color.New(color.FgGreen).SprintFunc()
var failedResult = color.New(color.FgRed).SprintFunc()

// runLaunch performs one resolution-and-launch attempt: validate the
// options, locate the implementation, assemble the environment, build the
// invocation plan, and either render it (dry run) or execute it. The
// process exits with the child's status when the child fails.
func runLaunch(cfg *appconfig.Config, opts *benchmark.Options, dryRun bool, format string) error {
	if cfg == nil {
		cfg = &appconfig.Config{}
	}
	root := cfg.BenchmarksRootPath()

	if err := opts.Validate(root); err != nil {
		return err
	}

	loc, err := zoo.Locate(root, opts.Framework, opts.ModelName, opts.Mode, opts.Precision)
	if err != nil {
		return err
	}
	modelsDir := zoo.ModelsDir(root, cfg.ModelsRootPath(), loc.UseCase, opts.Framework, opts.ModelName)

	env, err := environ.Assemble(*opts, loc, modelsDir, root)
	if err != nil {
		return err
	}

	var plan invocation.Plan
	if opts.DockerImage != "" {
		plan = invocation.Container(*opts, env, root, modelsDir, os.Getenv)
	} else {
		plan = invocation.BareMetal(*opts, env, root, modelsDir)
	}

	if opts.Verbose {
		logging.LogEvent("resolved use case %q at %s", loc.UseCase, loc.Dir)
		if plan.Kind == invocation.KindContainer {
			logging.LogEvent("docker run command: %s", strings.Join(plan.Argv(), " "))
		}
	}
	if opts.Debug {
		pp.Println(plan)
	}

	if dryRun {
		return renderPlan(os.Stdout, plan, format)
	}

	logging.LogLaunch(string(plan.Kind), opts.ModelName, plan.Argv())

	code, err := runner.Run(plan)
	if errors.Is(err, runner.ErrInterrupted) {
		fmt.Fprintln(os.Stderr, failedResult("run interrupted; child process group killed"))
		_ = logging.Close()
		os.Exit(130)
	}
	if err != nil {
		return err
	}
	if code != 0 {
		fmt.Fprintln(os.Stderr, failedResult(fmt.Sprintf("benchmark exited with status %d", code)))
		_ = logging.Close()
		os.Exit(code)
	}

	fmt.Println(successfulResult("benchmark run complete"))
	return nil
}

// renderPlan writes the plan in the requested dry-run format.
func renderPlan(w io.Writer, plan invocation.Plan, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	case "yaml":
		data, err := yaml.Marshal(plan)
		if err != nil {
			return fmt.Errorf("marshal plan: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "", "text":
		fmt.Fprintf(w, "kind: %s\n", plan.Kind)
		if plan.Kind == invocation.KindContainer {
			fmt.Fprintf(w, "image: %s\n", plan.Image)
		} else {
			fmt.Fprintf(w, "script: %s\n", plan.Script)
			for _, pair := range plan.Env {
				fmt.Fprintf(w, "  %s=%s\n", pair.Key, pair.Value)
			}
		}
		fmt.Fprintf(w, "command: %s\n", strings.Join(plan.Argv(), " "))
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected text, json, or yaml)", format)
	}
}
