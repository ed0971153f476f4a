// internal/environ/environ.go
// Package environ assembles the flat string environment consumed by the
// benchmark entrypoint script.
package environ

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mwiater/zoolaunch/internal/benchmark"
	"github.com/mwiater/zoolaunch/internal/util"
	"github.com/mwiater/zoolaunch/internal/zoo"
)

// Pair is a single environment entry.
type Pair struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Map is an insertion-ordered set of environment variables. Setting an
// existing key updates its value in place without changing its position,
// so repeated assemblies yield identical pair sequences.
type Map struct {
	keys   []string
	values map[string]string
}

// NewMap returns an empty environment map.
func NewMap() *Map {
	return &Map{values: make(map[string]string)}
}

// Set stores value under key, preserving the key's original position when
// it already exists.
func (m *Map) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key, or the empty string when absent.
func (m *Map) Get(key string) string {
	return m.values[key]
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Pairs returns the entries in insertion order.
func (m *Map) Pairs() []Pair {
	pairs := make([]Pair, 0, len(m.keys))
	for _, key := range m.keys {
		pairs = append(pairs, Pair{Key: key, Value: m.values[key]})
	}
	return pairs
}

// Clone returns an independent copy of the map.
func (m *Map) Clone() *Map {
	out := NewMap()
	for _, key := range m.keys {
		out.Set(key, m.values[key])
	}
	return out
}

// MalformedArgError reports a custom model arg that is not in name=value
// form.
type MalformedArgError struct {
	Arg string
}

// Error returns the expected-format message with the offending argument.
func (e *MalformedArgError) Error() string {
	return fmt.Sprintf("expected model args in the format `name=value` but received: %s", e.Arg)
}

// Assemble builds the complete environment for a run: the well-known keys
// in a fixed order, then the user's model args folded on top, then the
// NOINSTALL default when the user did not choose one. A malformed model
// arg fails the whole assembly; none of the args are applied.
func Assemble(opts benchmark.Options, loc zoo.Location, modelsDir, benchmarksRoot string) (*Map, error) {
	m := NewMap()
	m.Set("DATASET_LOCATION_VOL", opts.DataLocation)
	m.Set("CHECKPOINT_DIRECTORY_VOL", opts.Checkpoint)
	m.Set("EXTERNAL_MODELS_SOURCE_DIRECTORY", opts.ModelSourceDir)
	m.Set("OPTIMIZED_MODELS", modelsDir)
	m.Set("BENCHMARK_SCRIPTS", benchmarksRoot)
	m.Set("SOCKET_ID", strconv.Itoa(opts.SocketID))
	m.Set("MODEL_NAME", opts.ModelName)
	m.Set("MODE", opts.Mode)
	m.Set("PRECISION", opts.Precision)
	m.Set("VERBOSE", util.TitleBool(opts.Verbose))
	m.Set("BATCH_SIZE", strconv.Itoa(opts.BatchSize))
	m.Set("USE_CASE", loc.UseCase)
	m.Set("FRAMEWORK", opts.Framework)
	m.Set("NUM_CORES", strconv.Itoa(opts.NumCores))
	m.Set("NUM_INTER_THREADS", strconv.Itoa(opts.NumInterThreads))
	m.Set("NUM_INTRA_THREADS", strconv.Itoa(opts.NumIntraThreads))
	m.Set("DATA_NUM_INTER_THREADS", strconv.Itoa(opts.DataNumInterThreads))
	m.Set("DATA_NUM_INTRA_THREADS", strconv.Itoa(opts.DataNumIntraThreads))
	m.Set("BENCHMARK_ONLY", util.TitleBool(opts.BenchmarkOnly))
	m.Set("ACCURACY_ONLY", util.TitleBool(opts.AccuracyOnly))
	m.Set("OUTPUT_RESULTS", util.TitleBool(opts.OutputResults))
	m.Set("DOCKER", util.TitleBool(opts.DockerImage != ""))
	m.Set("PYTHON_EXE", pythonExe(opts))

	if err := applyModelArgs(m, opts.ModelArgs); err != nil {
		return nil, err
	}

	// Containers start clean and install their own dependencies; bare-metal
	// hosts are assumed pre-provisioned.
	if !m.Has("NOINSTALL") {
		if opts.DockerImage != "" {
			m.Set("NOINSTALL", "False")
		} else {
			m.Set("NOINSTALL", "True")
		}
	}

	return m, nil
}

// pythonExe picks the interpreter the entrypoint should use. Container
// runs always use the image's python regardless of the host setting.
func pythonExe(opts benchmark.Options) string {
	if opts.DockerImage != "" || opts.PythonExe == "" {
		return "python"
	}
	return opts.PythonExe
}

// applyModelArgs folds user overrides into the map, last write wins.
// Every arg is validated before any is applied.
func applyModelArgs(m *Map, args []string) error {
	for _, arg := range args {
		if key, _, ok := splitModelArg(arg); !ok || key == "" {
			return &MalformedArgError{Arg: arg}
		}
	}
	for _, arg := range args {
		key, value, _ := splitModelArg(arg)
		m.Set(key, value)
	}
	return nil
}

// splitModelArg splits name=value at the first separator so values may
// themselves contain '='. Leading dashes are stripped and remaining
// dashes become underscores, so --my-flag=1 yields my_flag.
func splitModelArg(arg string) (key, value string, ok bool) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok {
		return "", "", false
	}
	key = strings.ReplaceAll(strings.TrimLeft(name, "-"), "-", "_")
	return key, value, true
}
