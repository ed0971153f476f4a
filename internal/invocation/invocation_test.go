// internal/invocation/invocation_test.go
package invocation

import (
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/mwiater/zoolaunch/internal/benchmark"
	"github.com/mwiater/zoolaunch/internal/environ"
	"github.com/mwiater/zoolaunch/internal/zoo"
)

func testOptions() benchmark.Options {
	return benchmark.Options{
		Framework:           "tensorflow",
		ModelName:           "inceptionv3",
		Mode:                "inference",
		Precision:           "fp32",
		BatchSize:           -1,
		OutputDir:           benchmark.DefaultOutputDir,
		NumCores:            -1,
		NumInterThreads:     -1,
		NumIntraThreads:     -1,
		DataNumInterThreads: -1,
		DataNumIntraThreads: -1,
		BenchmarkOnly:       true,
		PythonExe:           "python",
	}
}

func testEnv(t *testing.T, opts benchmark.Options) *environ.Map {
	t.Helper()
	loc := zoo.Location{UseCase: "image_recognition"}
	env, err := environ.Assemble(opts, loc, "models", "benchmarks")
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	return env
}

func envValue(pairs []environ.Pair, key string) (string, bool) {
	for _, pair := range pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return "", false
}

func noHostEnv(string) string { return "" }

func TestBareMetalPlan(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	plan := BareMetal(opts, testEnv(t, opts), "benchmarks", "models")

	if plan.Kind != KindBareMetal {
		t.Fatalf("unexpected kind: %s", plan.Kind)
	}
	wantScript := filepath.Join("benchmarks", "common", "tensorflow", "start.sh")
	if plan.Script != wantScript {
		t.Fatalf("unexpected script: got %q want %q", plan.Script, wantScript)
	}
	if got := plan.Argv(); !reflect.DeepEqual(got, []string{"bash", wantScript}) {
		t.Fatalf("unexpected argv: %v", got)
	}

	// Default output directory is rewritten under the resolved workspace.
	outputDir, ok := envValue(plan.Env, "OUTPUT_DIR")
	if !ok || outputDir != filepath.Join("benchmarks", "common", "tensorflow", "logs") {
		t.Fatalf("unexpected OUTPUT_DIR: %q", outputDir)
	}

	// Unset optional paths produce no entries at all.
	for _, key := range []string{"IN_GRAPH", "CHECKPOINT_DIRECTORY", "DATASET_LOCATION"} {
		if _, ok := envValue(plan.Env, key); ok {
			t.Fatalf("expected %s to be absent", key)
		}
	}
}

func TestBareMetalConditionalPaths(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts.InputGraph = "/graphs/inceptionv3.pb"
	opts.Checkpoint = "/ckpt"
	opts.DataLocation = "/data/x"
	opts.OutputDir = "/out"

	plan := BareMetal(opts, testEnv(t, opts), "benchmarks", "models")

	checks := map[string]string{
		"IN_GRAPH":             "/graphs/inceptionv3.pb",
		"CHECKPOINT_DIRECTORY": "/ckpt",
		"DATASET_LOCATION":     "/data/x",
		"OUTPUT_DIR":           "/out",
		"MOUNT_BENCHMARK":      "benchmarks",
	}
	for key, want := range checks {
		got, ok := envValue(plan.Env, key)
		if !ok || got != want {
			t.Fatalf("%s: got %q want %q", key, got, want)
		}
	}
}

func TestContainerPlan(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts.DockerImage = "my/image:tag"
	opts.DataLocation = "/data/x"
	opts.InputGraph = "/graphs/inceptionv3.pb"

	plan := Container(opts, testEnv(t, opts), "benchmarks", "models", noHostEnv)

	if plan.Kind != KindContainer {
		t.Fatalf("unexpected kind: %s", plan.Kind)
	}
	if plan.Image != "my/image:tag" {
		t.Fatalf("unexpected image: %q", plan.Image)
	}
	if plan.Interactive {
		t.Fatal("expected non-interactive plan without --debug")
	}

	for _, want := range []string{
		"WORKSPACE=/workspace/benchmarks/common/tensorflow",
		"DATASET_LOCATION=/dataset",
		"IN_GRAPH=/in_graph/inceptionv3.pb",
	} {
		if !slices.Contains(plan.EnvArgs, want) {
			t.Fatalf("expected env arg %q in %v", want, plan.EnvArgs)
		}
	}
	for _, want := range []string{
		"benchmarks:/workspace/benchmarks",
		"models:/workspace/optimized_models",
		"/data/x:/dataset",
		"/graphs:/in_graph",
	} {
		if !slices.Contains(plan.VolumeArgs, want) {
			t.Fatalf("expected volume %q in %v", want, plan.VolumeArgs)
		}
	}

	// Default output dir lives inside the mounted workspace; no extra mount.
	for _, volume := range plan.VolumeArgs {
		if strings.Contains(volume, "logs") {
			t.Fatalf("unexpected output volume: %q", volume)
		}
	}

	argv := plan.Argv()
	if argv[0] != "docker" || argv[1] != "run" {
		t.Fatalf("unexpected argv head: %v", argv[:2])
	}
	if slices.Contains(argv, "-it") {
		t.Fatalf("unexpected -it in argv: %v", argv)
	}
	if argv[len(argv)-2] != "/bin/bash" || argv[len(argv)-1] != "start.sh" {
		t.Fatalf("unexpected entrypoint tail: %v", argv[len(argv)-2:])
	}
	if !slices.Contains(argv, "--privileged") {
		t.Fatalf("expected --privileged in argv: %v", argv)
	}
}

func TestContainerNoGraphMeansNoGraphEntries(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts.DockerImage = "my/image:tag"

	plan := Container(opts, testEnv(t, opts), "benchmarks", "models", noHostEnv)

	for _, arg := range plan.EnvArgs {
		if strings.HasPrefix(arg, "IN_GRAPH=") {
			t.Fatalf("unexpected IN_GRAPH env arg: %q", arg)
		}
	}
	for _, volume := range plan.VolumeArgs {
		if strings.HasSuffix(volume, ":/in_graph") {
			t.Fatalf("unexpected graph volume: %q", volume)
		}
	}
}

func TestContainerBareGraphFilenameMountsNothing(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts.DockerImage = "my/image:tag"
	opts.InputGraph = "graph.pb"

	plan := Container(opts, testEnv(t, opts), "benchmarks", "models", noHostEnv)

	// The env entry still points at the canonical in-container path.
	if !slices.Contains(plan.EnvArgs, "IN_GRAPH=/in_graph/graph.pb") {
		t.Fatalf("expected IN_GRAPH env arg in %v", plan.EnvArgs)
	}
	// But a filename with no directory yields no graph mount.
	for _, volume := range plan.VolumeArgs {
		if strings.HasSuffix(volume, ":/in_graph") {
			t.Fatalf("unexpected graph volume for bare filename: %q", volume)
		}
	}
}

func TestContainerOutputDirOverride(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts.DockerImage = "my/image:tag"
	opts.OutputDir = "/results"

	plan := Container(opts, testEnv(t, opts), "benchmarks", "models", noHostEnv)

	if !slices.Contains(plan.EnvArgs, "OUTPUT_DIR=/results") {
		t.Fatalf("expected OUTPUT_DIR override in %v", plan.EnvArgs)
	}
	if !slices.Contains(plan.VolumeArgs, "/results:/results") {
		t.Fatalf("expected output volume in %v", plan.VolumeArgs)
	}
}

func TestContainerDebug(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts.DockerImage = "my/image:tag"
	opts.Debug = true

	plan := Container(opts, testEnv(t, opts), "benchmarks", "models", noHostEnv)

	if !plan.Interactive {
		t.Fatal("expected interactive plan in debug mode")
	}
	if !reflect.DeepEqual(plan.EntrypointArgs, []string{"/bin/bash"}) {
		t.Fatalf("expected bare shell entrypoint, got %v", plan.EntrypointArgs)
	}
	argv := plan.Argv()
	if argv[2] != "-it" {
		t.Fatalf("expected -it after docker run, got %v", argv[:3])
	}
	if slices.Contains(argv, "start.sh") {
		t.Fatalf("entrypoint must be suppressed in debug mode: %v", argv)
	}
}

func TestContainerProxyPassthrough(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts.DockerImage = "my/image:tag"

	hostEnv := func(name string) string {
		switch name {
		case "http_proxy":
			return "http://proxy:8080"
		case "no_proxy":
			return "localhost"
		}
		return ""
	}
	plan := Container(opts, testEnv(t, opts), "benchmarks", "models", hostEnv)

	if !slices.Contains(plan.EnvArgs, "http_proxy=http://proxy:8080") {
		t.Fatalf("expected http_proxy passthrough in %v", plan.EnvArgs)
	}
	if !slices.Contains(plan.EnvArgs, "no_proxy=localhost") {
		t.Fatalf("expected no_proxy passthrough in %v", plan.EnvArgs)
	}
	for _, arg := range plan.EnvArgs {
		if strings.HasPrefix(arg, "https_proxy=") || strings.HasPrefix(arg, "ftp_proxy=") {
			t.Fatalf("unset proxy must be omitted, got %q", arg)
		}
	}
}

func TestPlansAreIdempotent(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts.DockerImage = "my/image:tag"
	opts.DataLocation = "/data/x"

	first := Container(opts, testEnv(t, opts), "benchmarks", "models", noHostEnv)
	second := Container(opts, testEnv(t, opts), "benchmarks", "models", noHostEnv)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("container plans differ:\n%+v\n%+v", first, second)
	}

	opts.DockerImage = ""
	bareFirst := BareMetal(opts, testEnv(t, opts), "benchmarks", "models")
	bareSecond := BareMetal(opts, testEnv(t, opts), "benchmarks", "models")
	if !reflect.DeepEqual(bareFirst, bareSecond) {
		t.Fatalf("bare-metal plans differ:\n%+v\n%+v", bareFirst, bareSecond)
	}
}

func TestBareMetalDoesNotMutateAssembledEnv(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	env := testEnv(t, opts)
	before := env.Len()

	_ = BareMetal(opts, env, "benchmarks", "models")
	if env.Len() != before {
		t.Fatalf("builder mutated the assembled environment: %d -> %d", before, env.Len())
	}
}
