// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting launcher configuration.
package appconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// DefaultConfigPath is the default path to the launcher's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultBenchmarksRoot is the zoo tree searched when the config omits one.
	defaultBenchmarksRoot = "benchmarks"
	// defaultPythonExe runs bare-metal entrypoints when no interpreter is configured.
	defaultPythonExe = "python"
	// defaultLogFile receives launcher logs when the config omits a path.
	defaultLogFile = "zoolaunch.log"
)

// Config represents the top-level launcher configuration.
type Config struct {
	BenchmarksRoot string `json:"benchmarksRoot,omitempty"`
	ModelsRoot     string `json:"modelsRoot,omitempty"`
	PythonExe      string `json:"pythonExe,omitempty"`
	DockerImage    string `json:"dockerImage,omitempty"`
	LogFile        string `json:"logFile,omitempty"`
	Verbose        bool   `json:"verbose"`
	ConfigPath     string `json:"-"`
}

// BenchmarksRootPath returns the benchmark zoo root, applying a default if not set.
func (c Config) BenchmarksRootPath() string {
	if root := strings.TrimSpace(c.BenchmarksRoot); root != "" {
		return root
	}
	return defaultBenchmarksRoot
}

// ModelsRootPath returns the configured optimized-models root. Empty means
// the sibling models directory next to the benchmarks root.
func (c Config) ModelsRootPath() string {
	return strings.TrimSpace(c.ModelsRoot)
}

// PythonExePath returns the interpreter for bare-metal runs, applying a default if not set.
func (c Config) PythonExePath() string {
	if exe := strings.TrimSpace(c.PythonExe); exe != "" {
		return exe
	}
	return defaultPythonExe
}

// DockerImageName returns the configured default container image, or empty
// when runs are bare-metal unless an image is given on the command line.
func (c Config) DockerImageName() string {
	return strings.TrimSpace(c.DockerImage)
}

// LogFilePath returns the path to the launcher log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := strings.TrimSpace(c.LogFile); path != "" {
		return path
	}
	return defaultLogFile
}

// configSchema constrains config files to known keys and types.
var configSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"benchmarksRoot": map[string]any{"type": "string"},
		"modelsRoot":     map[string]any{"type": "string"},
		"pythonExe":      map[string]any{"type": "string"},
		"dockerImage":    map[string]any{"type": "string"},
		"logFile":        map[string]any{"type": "string"},
		"verbose":        map[string]any{"type": "boolean"},
	},
}

// ValidateFile checks a configuration file against the embedded schema so
// a typo fails up front instead of silently configuring nothing.
func ValidateFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := validateSchema(raw); err != nil {
		return fmt.Errorf("config file %q: %w", path, err)
	}
	return nil
}

// validateSchema checks a raw JSON document against configSchema.
func validateSchema(doc []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(configSchema)
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("configuration failed validation: %s", strings.Join(details, "; "))
}
