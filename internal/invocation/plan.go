// internal/invocation/plan.go
// Package invocation turns assembled run options into the concrete
// process or container invocation handed to the runner.
package invocation

import (
	"github.com/mwiater/zoolaunch/internal/environ"
)

// Kind distinguishes the two invocation shapes.
type Kind string

const (
	// KindBareMetal runs the entrypoint script directly on the host.
	KindBareMetal Kind = "bare-metal"
	// KindContainer runs the entrypoint inside a docker container.
	KindContainer Kind = "container"
)

// Plan is a fully assembled invocation. It is built once per run, never
// mutated, and consumed exactly once by the runner.
type Plan struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// Bare-metal fields.
	Script string         `json:"script,omitempty" yaml:"script,omitempty"`
	Env    []environ.Pair `json:"env,omitempty" yaml:"env,omitempty"`

	// Container fields.
	Image          string   `json:"image,omitempty" yaml:"image,omitempty"`
	Interactive    bool     `json:"interactive,omitempty" yaml:"interactive,omitempty"`
	EnvArgs        []string `json:"envArgs,omitempty" yaml:"envArgs,omitempty"`
	VolumeArgs     []string `json:"volumeArgs,omitempty" yaml:"volumeArgs,omitempty"`
	RunFlags       []string `json:"runFlags,omitempty" yaml:"runFlags,omitempty"`
	EntrypointArgs []string `json:"entrypointArgs,omitempty" yaml:"entrypointArgs,omitempty"`
}

// Argv returns the complete argument vector for the plan.
func (p Plan) Argv() []string {
	if p.Kind == KindContainer {
		argv := []string{"docker", "run"}
		if p.Interactive {
			argv = append(argv, "-it")
		}
		argv = append(argv, p.EnvArgs...)
		argv = append(argv, p.VolumeArgs...)
		argv = append(argv, p.RunFlags...)
		argv = append(argv, p.Image)
		argv = append(argv, p.EntrypointArgs...)
		return argv
	}
	return []string{"bash", p.Script}
}
