// internal/benchmark/options.go
// Package benchmark defines the validated option model for a single launch.
package benchmark

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultOutputDir is the sentinel output directory baked into the run
// command's flag default. The invocation builders rewrite it to a logs
// directory under the resolved workspace, so user output never lands at
// this literal path.
const DefaultOutputDir = "/models/benchmarks/common/tensorflow/logs"

// Options is a snapshot of all resolved run inputs. It is populated from
// flags and configuration, passed through Validate once, and read-only
// afterwards.
type Options struct {
	Framework string
	ModelName string
	Mode      string
	Precision string
	BatchSize int

	DataLocation   string
	Checkpoint     string
	InputGraph     string
	ModelSourceDir string
	OutputDir      string

	NumCores            int
	NumInterThreads     int
	NumIntraThreads     int
	DataNumInterThreads int
	DataNumIntraThreads int

	SocketID      int
	Verbose       bool
	BenchmarkOnly bool
	AccuracyOnly  bool
	OutputResults bool

	DockerImage string
	Debug       bool

	// ModelArgs holds user-supplied name=value overrides, applied in order
	// on top of the well-known environment keys.
	ModelArgs []string

	// PythonExe runs the bare-metal entrypoint; container runs always use
	// the image's own python.
	PythonExe string
}

// ValidationError reports an unusable option value.
type ValidationError struct {
	Flag   string
	Reason string
}

// Error returns the flag name and the reason it was rejected.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid --%s: %s", e.Flag, e.Reason)
}

// Validate checks required fields, rejects malformed values, and resolves
// defaults that depend on other options. benchmarksRoot is the zoo tree
// used to probe framework support. After Validate returns nil the options
// are final.
func (o *Options) Validate(benchmarksRoot string) error {
	if strings.TrimSpace(o.Framework) == "" {
		return &ValidationError{Flag: "framework", Reason: "a framework is required"}
	}
	if strings.TrimSpace(o.ModelName) == "" {
		return &ValidationError{Flag: "model-name", Reason: "a model name is required"}
	}
	if strings.TrimSpace(o.Precision) == "" {
		return &ValidationError{Flag: "precision", Reason: "a precision is required"}
	}
	if strings.TrimSpace(o.Mode) == "" {
		o.Mode = "inference"
	}
	if strings.ContainsAny(o.DockerImage, " \t") {
		return &ValidationError{Flag: "docker-image", Reason: "image name must not contain spaces"}
	}

	// Framework support is defined by the zoo layout itself: at least one
	// use case must carry a directory named after the framework.
	matches, err := filepath.Glob(filepath.Join(benchmarksRoot, "*", o.Framework))
	if err != nil {
		return fmt.Errorf("probe framework support: %w", err)
	}
	if len(matches) == 0 {
		return &ValidationError{
			Flag:   "framework",
			Reason: fmt.Sprintf("the specified framework is not supported: %s", o.Framework),
		}
	}

	// Neither mode requested means benchmark mode. Both set explicitly is
	// allowed and left as-is.
	if !o.BenchmarkOnly && !o.AccuracyOnly {
		o.BenchmarkOnly = true
	}

	return nil
}
