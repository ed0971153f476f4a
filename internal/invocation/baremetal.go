// internal/invocation/baremetal.go
package invocation

import (
	"path/filepath"

	"github.com/mwiater/zoolaunch/internal/benchmark"
	"github.com/mwiater/zoolaunch/internal/environ"
)

// entrypointScript is the fixed entrypoint name inside every workspace.
const entrypointScript = "start.sh"

// BareMetal builds the host-side invocation of the entrypoint script. The
// mount keys carry literal host paths since there is no container
// boundary, and a default output directory is rewritten relative to the
// resolved workspace. The passed environment is not modified.
func BareMetal(opts benchmark.Options, env *environ.Map, benchmarksRoot, modelsDir string) Plan {
	workspace := filepath.Join(benchmarksRoot, "common", opts.Framework)

	outputDir := opts.OutputDir
	if outputDir == benchmark.DefaultOutputDir {
		outputDir = filepath.Join(workspace, "logs")
	}

	env = env.Clone()
	env.Set("WORKSPACE", workspace)
	env.Set("MOUNT_BENCHMARK", benchmarksRoot)
	env.Set("MOUNT_EXTERNAL_MODELS_SOURCE", opts.ModelSourceDir)
	env.Set("MOUNT_OPTIMIZED_MODELS_SOURCE", modelsDir)
	env.Set("OUTPUT_DIR", outputDir)

	if opts.InputGraph != "" {
		env.Set("IN_GRAPH", opts.InputGraph)
	}
	if opts.Checkpoint != "" {
		env.Set("CHECKPOINT_DIRECTORY", opts.Checkpoint)
	}
	if opts.DataLocation != "" {
		env.Set("DATASET_LOCATION", opts.DataLocation)
	}

	return Plan{
		Kind:   KindBareMetal,
		Script: filepath.Join(workspace, entrypointScript),
		Env:    env.Pairs(),
	}
}
