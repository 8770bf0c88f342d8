package controllers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smarlhens/riri-node-tools/internal/domain/commands"
	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
	"github.com/smarlhens/riri-node-tools/internal/output"
)

// EnginesController handles the nce root command.
type EnginesController struct {
	command commands.CheckEngines
}

var _ entities.Controller = (*EnginesController)(nil)

// NewEnginesController creates a new EnginesController.
func NewEnginesController(command commands.CheckEngines) *EnginesController {
	return &EnginesController{command: command}
}

// GetBind returns the Cobra command metadata for the engines controller.
func (it *EnginesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "nce [path]",
		Short: "Check declared engines against actual tool versions",
		Long: `Validate the engines constraints of package.json (node, npm, yarn,
pnpm) against the versions actually installed, or against versions
supplied with --engine. With --deps, the engine expectations recorded
for every locked dependency are checked too.`,
	}
}

// Execute runs the check flow and renders the report.
func (it *EnginesController) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	overrides := make(map[string]string, len(cfg.Engines))
	for name, version := range cfg.Engines {
		overrides[name] = version
	}
	flagEngines, _ := cmd.Flags().GetStringArray("engine")
	for _, pair := range flagEngines {
		name, version, found := strings.Cut(pair, "=")
		if !found || name == "" || version == "" {
			return fmt.Errorf("invalid --engine value %q, expected name=version", pair)
		}
		overrides[name] = version
	}

	opts := commands.CheckEnginesOptions{
		Dir:        dir,
		Workspaces: cfg.Workspaces,
		Overrides:  overrides,
	}
	opts.Deps, _ = cmd.Flags().GetBool("deps")
	if cmd.Flags().Changed("workspaces") {
		opts.Workspaces, _ = cmd.Flags().GetBool("workspaces")
	}

	reports, err := it.command.Execute(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		fmt.Fprint(cmd.OutOrStdout(), output.RenderEnginesReports(reports))
	}

	failed := 0
	for _, report := range reports {
		failed += len(report.Failures())
	}
	if failed > 0 {
		return fmt.Errorf("%d engine constraints are not satisfied", failed)
	}
	return nil
}

// AddFlags adds the engines-specific flags to the given Cobra command.
func (it *EnginesController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("deps", false,
		"Also check the engine expectations of locked dependencies")
	cmd.Flags().StringArray("engine", nil,
		"Engine version to assume instead of querying the local binary (name=version, repeatable)")
	cmd.Flags().Bool("workspaces", false, "Include workspace member manifests")
}
