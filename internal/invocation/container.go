// internal/invocation/container.go
package invocation

import (
	"path"
	"path/filepath"

	"github.com/mwiater/zoolaunch/internal/benchmark"
	"github.com/mwiater/zoolaunch/internal/environ"
)

// Canonical in-container mount points. Host directories are always bound
// to these fixed paths regardless of their host location.
const (
	mountBenchmarkDir   = "/workspace/benchmarks"
	mountModelSourceDir = "/workspace/models"
	mountOptimizedDir   = "/workspace/optimized_models"
	mountDatasetDir     = "/dataset"
	mountCheckpointsDir = "/checkpoints"
	mountGraphDir       = "/in_graph"
)

// proxyVars are inherited from the invoking host when set; an unset proxy
// variable is omitted entirely rather than forwarded empty.
var proxyVars = []string{"http_proxy", "ftp_proxy", "https_proxy", "no_proxy"}

// Container builds the docker run invocation for the given options and
// assembled environment. hostEnv supplies host environment lookups for
// proxy passthrough (normally os.Getenv). The passed environment is not
// modified.
func Container(opts benchmark.Options, env *environ.Map, benchmarksRoot, modelsDir string, hostEnv func(string) string) Plan {
	workspace := path.Join(mountBenchmarkDir, "common", opts.Framework)

	// The default output directory lives inside the already-mounted
	// workspace; only an override needs its own mount.
	outputDir := path.Join(workspace, "logs")
	mountOutputDir := false
	if opts.OutputDir != benchmark.DefaultOutputDir {
		mountOutputDir = true
		outputDir = opts.OutputDir
	}

	envArgs := []string{
		"--env", "WORKSPACE=" + workspace,
		"--env", "MOUNT_BENCHMARK=" + mountBenchmarkDir,
		"--env", "MOUNT_EXTERNAL_MODELS_SOURCE=" + mountModelSourceDir,
		"--env", "MOUNT_OPTIMIZED_MODELS_SOURCE=" + mountOptimizedDir,
		"--env", "OUTPUT_DIR=" + outputDir,
	}
	if opts.InputGraph != "" {
		envArgs = append(envArgs, "--env", "IN_GRAPH="+path.Join(mountGraphDir, filepath.Base(opts.InputGraph)))
	}
	if opts.DataLocation != "" {
		envArgs = append(envArgs, "--env", "DATASET_LOCATION="+mountDatasetDir)
	}
	if opts.Checkpoint != "" {
		envArgs = append(envArgs, "--env", "CHECKPOINT_DIRECTORY="+mountCheckpointsDir)
	}
	for _, pair := range env.Pairs() {
		envArgs = append(envArgs, "--env", pair.Key+"="+pair.Value)
	}
	for _, name := range proxyVars {
		if value := hostEnv(name); value != "" {
			envArgs = append(envArgs, "--env", name+"="+value)
		}
	}

	volumeArgs := []string{
		"--volume", benchmarksRoot + ":" + mountBenchmarkDir,
		"--volume", opts.ModelSourceDir + ":" + mountModelSourceDir,
		"--volume", modelsDir + ":" + mountOptimizedDir,
	}
	if mountOutputDir {
		volumeArgs = append(volumeArgs, "--volume", outputDir+":"+outputDir)
	}
	if opts.DataLocation != "" {
		volumeArgs = append(volumeArgs, "--volume", opts.DataLocation+":"+mountDatasetDir)
	}
	if opts.Checkpoint != "" {
		volumeArgs = append(volumeArgs, "--volume", opts.Checkpoint+":"+mountCheckpointsDir)
	}
	if opts.InputGraph != "" {
		// A bare filename has no directory to mount; the IN_GRAPH env
		// entry above still points at the canonical in-container path.
		if graphDir := filepath.Dir(opts.InputGraph); graphDir != "." {
			volumeArgs = append(volumeArgs, "--volume", graphDir+":"+mountGraphDir)
		}
	}

	// In debug mode the container gets a tty and the entrypoint is not
	// run; the caller lands in a shell inside the workspace instead.
	entrypointArgs := []string{"/bin/bash"}
	if !opts.Debug {
		entrypointArgs = append(entrypointArgs, entrypointScript)
	}

	return Plan{
		Kind:           KindContainer,
		Image:          opts.DockerImage,
		Interactive:    opts.Debug,
		EnvArgs:        envArgs,
		VolumeArgs:     volumeArgs,
		RunFlags:       []string{"--privileged", "-u", "root:root", "-w", workspace},
		EntrypointArgs: entrypointArgs,
	}
}
