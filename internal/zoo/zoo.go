// internal/zoo/zoo.go
// Package zoo resolves benchmark implementations from the on-disk model
// zoo, which follows the layout
// <root>/<use-case>/<framework>/<model>/<mode>/<precision>/.
package zoo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Location identifies the single implementation matched for a run.
type Location struct {
	UseCase string
	Dir     string
}

// NotFoundError reports that no implementation matched the requested
// framework, model, and precision.
type NotFoundError struct {
	Framework string
	Model     string
	Precision string
}

// Error returns the not-found message with the identifying fields.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no model was found for %s %s %s", e.Framework, e.Model, e.Precision)
}

// AmbiguousError reports that more than one implementation matched. The
// launcher never guesses among candidates.
type AmbiguousError struct {
	Framework string
	Model     string
	Precision string
	Matches   []string
}

// Error returns the ambiguity message with every candidate path.
func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("found multiple model locations for %s %s %s: %s",
		e.Framework, e.Model, e.Precision, strings.Join(e.Matches, ", "))
}

// Locate finds the one implementation directory under root matching the
// given framework, model, mode, and precision. Zero matches returns a
// NotFoundError, more than one an AmbiguousError. The use case is the
// path segment immediately before the last occurrence of the framework
// name; scanning from the leaf end keeps a framework name appearing
// earlier in the root path from being mistaken for the zoo segment.
func Locate(root, framework, model, mode, precision string) (Location, error) {
	pattern := filepath.Join(root, "*", framework, model, mode, precision)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return Location{}, fmt.Errorf("search %q: %w", pattern, err)
	}

	switch {
	case len(matches) == 0:
		return Location{}, &NotFoundError{Framework: framework, Model: model, Precision: precision}
	case len(matches) > 1:
		return Location{}, &AmbiguousError{Framework: framework, Model: model, Precision: precision, Matches: matches}
	}

	dir := matches[0]
	segments := strings.Split(filepath.ToSlash(dir), "/")
	for i := len(segments) - 1; i > 0; i-- {
		if segments[i] == framework {
			return Location{UseCase: segments[i-1], Dir: dir}, nil
		}
	}
	return Location{}, fmt.Errorf("framework %q does not appear in matched path %q", framework, dir)
}

// ModelsDir returns the directory holding model code for the run: the
// optimized per-model directory when it exists, otherwise the shared
// models root. An empty modelsRoot means the sibling models directory
// next to the benchmarks root.
func ModelsDir(benchmarksRoot, modelsRoot, useCase, framework, model string) string {
	if modelsRoot == "" {
		modelsRoot = filepath.Join(benchmarksRoot, "..", "models")
	}
	optimized := filepath.Join(modelsRoot, useCase, framework, model)
	if info, err := os.Stat(optimized); err == nil && info.IsDir() {
		return optimized
	}
	return modelsRoot
}
