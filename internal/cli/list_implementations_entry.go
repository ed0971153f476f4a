// internal/cli/list_implementations_entry.go
package zoolaunch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/zoolaunch/internal/util"
	"github.com/mwiater/zoolaunch/internal/zoo"
	"gopkg.in/yaml.v3"
)

func runListImplementations(framework, useCase, format string) error {
	cfg := GetConfig()
	root := "benchmarks"
	if cfg != nil {
		root = cfg.BenchmarksRootPath()
	}

	impls, err := zoo.List(root)
	if err != nil {
		return err
	}
	impls = filterImplementations(impls, framework, useCase)

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(impls)
	case "yaml":
		data, err := yaml.Marshal(impls)
		if err != nil {
			return fmt.Errorf("marshal implementations: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	case "", "text":
		renderImplementationsText(os.Stdout, impls)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected text, json, or yaml)", format)
	}
}

// filterImplementations keeps the entries matching the non-empty filters.
func filterImplementations(impls []zoo.Implementation, framework, useCase string) []zoo.Implementation {
	if framework == "" && useCase == "" {
		return impls
	}
	var out []zoo.Implementation
	for _, impl := range impls {
		if framework != "" && impl.Framework != framework {
			continue
		}
		if useCase != "" && impl.UseCase != useCase {
			continue
		}
		out = append(out, impl)
	}
	return out
}

// renderImplementationsText prints the implementations grouped by use case.
func renderImplementationsText(w io.Writer, impls []zoo.Implementation) {
	if len(impls) == 0 {
		fmt.Fprintln(w, "No implementations found.")
		return
	}

	useCaseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	implStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	current := ""
	for _, impl := range impls {
		if impl.UseCase != current {
			if current != "" {
				fmt.Fprintln(w)
			}
			current = impl.UseCase
			fmt.Fprintln(w, useCaseStyle.Render(current+":"))
		}
		line := fmt.Sprintf("%s/%s %s/%s", impl.Framework, impl.Model, impl.Mode, impl.Precision)
		fmt.Fprintln(w, "  >>> "+implStyle.Render(line)+"  "+util.TruncateRunes(impl.Dir, 72))
	}
}
