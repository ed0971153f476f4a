// internal/zoo/list.go
package zoo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Implementation identifies one runnable benchmark configuration in the zoo.
type Implementation struct {
	UseCase   string `json:"useCase" yaml:"useCase"`
	Framework string `json:"framework" yaml:"framework"`
	Model     string `json:"model" yaml:"model"`
	Mode      string `json:"mode" yaml:"mode"`
	Precision string `json:"precision" yaml:"precision"`
	Dir       string `json:"dir" yaml:"dir"`
}

// List enumerates every implementation directory under root, sorted by
// path. The common/ subtree holds shared entrypoint scripts, not
// implementations, and is skipped.
func List(root string) ([]Implementation, error) {
	pattern := filepath.Join(root, "*", "*", "*", "*", "*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("list implementations under %q: %w", root, err)
	}

	var impls []Implementation
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.IsDir() {
			continue
		}
		rel, err := filepath.Rel(root, match)
		if err != nil {
			continue
		}
		segments := strings.Split(filepath.ToSlash(rel), "/")
		if len(segments) != 5 || segments[0] == "common" {
			continue
		}
		impls = append(impls, Implementation{
			UseCase:   segments[0],
			Framework: segments[1],
			Model:     segments[2],
			Mode:      segments[3],
			Precision: segments[4],
			Dir:       match,
		})
	}

	sort.Slice(impls, func(i, j int) bool { return impls[i].Dir < impls[j].Dir })
	return impls, nil
}
