package pipelines

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/epmk/stackflow/internal/log"
	"github.com/epmk/stackflow/internal/pipeline"
)

// FileDefinition is a pipeline declared in a YAML file. Step actions are
// names resolved through a Catalog; inputs follow the usual binding rules
// ($step or $step.key strings become references).
type FileDefinition struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Steps       []FileStep `yaml:"steps"`
}

type FileStep struct {
	Name    string         `yaml:"name"`
	Action  string         `yaml:"action"`
	Inputs  map[string]any `yaml:"inputs"`
	Outputs []string       `yaml:"outputs"`
}

// ParseFile decodes and structurally checks a pipeline definition.
func ParseFile(data []byte) (*FileDefinition, error) {
	var def FileDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing pipeline: %w", err)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("pipeline has no name")
	}
	if len(def.Steps) == 0 {
		return nil, fmt.Errorf("pipeline %q has no steps", def.Name)
	}
	for i, s := range def.Steps {
		if s.Name == "" {
			return nil, fmt.Errorf("pipeline %q: step %d has no name", def.Name, i+1)
		}
		if s.Action == "" {
			return nil, fmt.Errorf("pipeline %q: step %q has no action", def.Name, s.Name)
		}
	}
	return &def, nil
}

// Build turns the definition into a runnable pipeline, resolving each step's
// action through the catalog.
func (d *FileDefinition) Build(catalog *Catalog) (*pipeline.Pipeline, error) {
	p := pipeline.New(d.Name, d.Description)
	for _, s := range d.Steps {
		action, err := catalog.Lookup(s.Action)
		if err != nil {
			return nil, fmt.Errorf("pipeline %q: step %q: %w", d.Name, s.Name, err)
		}
		p.AddStep(pipeline.Step{
			Name:    s.Name,
			Action:  action,
			Inputs:  pipeline.ParseInputs(s.Inputs),
			Outputs: s.Outputs,
		})
	}
	return p, nil
}

// LoadFile reads and parses a pipeline definition from disk.
func LoadFile(path string) (*FileDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Discover scans directories for *.yaml and *.yml pipeline files and returns
// pipeline name to path. Later directories override earlier ones; files that
// fail to parse are skipped with a warning.
func Discover(dirs ...string) map[string]string {
	found := make(map[string]string)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if ext != ".yaml" && ext != ".yml" {
				continue
			}
			path := filepath.Join(dir, e.Name())
			def, err := LoadFile(path)
			if err != nil {
				log.Warn("skipping pipeline file", "path", path, "error", err)
				continue
			}
			found[def.Name] = path
		}
	}
	return found
}
