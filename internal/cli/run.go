package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/epmk/stackflow/internal/config"
	"github.com/epmk/stackflow/internal/pipeline"
	"github.com/epmk/stackflow/internal/pipelines"
)

var runVars []string

var runCmd = &cobra.Command{
	Use:   "run <pipeline>",
	Short: "Run a pipeline defined in a YAML file",
	Long: `run executes a pipeline definition: either a path to a YAML file or the
name of a pipeline discovered in ~/.stackflow/pipelines, ./.stackflow/pipelines,
or the configured pipelines_dir. --var values seed the initial context and are
reachable from step inputs as $name references.`,
	Example: `  stackflow run ./pipelines/digest.yaml
  stackflow run digest --var topic="Q3 roadmap" --var audience=leads`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		stacks, err := buildStacks(cfg)
		if err != nil {
			return err
		}

		def, err := resolvePipelineFile(cfg, args[0])
		if err != nil {
			return err
		}
		p, err := def.Build(pipelines.NewCatalog(stacks))
		if err != nil {
			return err
		}

		initial, err := parseVars(runVars)
		if err != nil {
			return err
		}
		return executePipeline(cmd.Context(), p, initial)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringArrayVar(&runVars, "var", nil, "Initial context entry as key=value (repeatable)")
}

// resolvePipelineFile accepts either a YAML path or a discovered pipeline
// name.
func resolvePipelineFile(cfg *config.Config, ref string) (*pipelines.FileDefinition, error) {
	if strings.ContainsRune(ref, os.PathSeparator) || strings.HasSuffix(ref, ".yaml") || strings.HasSuffix(ref, ".yml") {
		return pipelines.LoadFile(ref)
	}
	found := pipelines.Discover(pipelineDirs(cfg)...)
	path, ok := found[ref]
	if !ok {
		if len(found) == 0 {
			return nil, fmt.Errorf("pipeline %q not found and no pipeline files discovered", ref)
		}
		names := make([]string, 0, len(found))
		for name := range found {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("pipeline %q not found; available: %s", ref, strings.Join(names, ", "))
	}
	return pipelines.LoadFile(path)
}

// pipelineDirs returns the discovery chain, later entries overriding
// earlier ones.
func pipelineDirs(cfg *config.Config) []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".stackflow", "pipelines"))
	}
	dirs = append(dirs, filepath.Join(".stackflow", "pipelines"))
	if cfg.PipelinesDir != "" {
		dirs = append(dirs, config.ExpandHome(cfg.PipelinesDir))
	}
	return dirs
}

func parseVars(vars []string) (pipeline.Context, error) {
	if len(vars) == 0 {
		return nil, nil
	}
	initial := make(pipeline.Context, len(vars))
	for _, v := range vars {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --var %q, want key=value", v)
		}
		initial[key] = value
	}
	return initial, nil
}
