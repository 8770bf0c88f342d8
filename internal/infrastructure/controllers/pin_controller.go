package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smarlhens/riri-node-tools/internal/domain/commands"
	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
	"github.com/smarlhens/riri-node-tools/internal/output"
)

// PinController handles the npd root command.
type PinController struct {
	command commands.Pin
}

var _ entities.Controller = (*PinController)(nil)

// NewPinController creates a new PinController.
func NewPinController(command commands.Pin) *PinController {
	return &PinController{command: command}
}

// GetBind returns the Cobra command metadata for the pin controller.
func (it *PinController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "npd [path]",
		Short: "Pin dependency ranges to the exact versions in the lockfile",
		Long: `Rewrite the declared dependency ranges of package.json to the exact
versions recorded in the project's lockfile (package-lock.json,
yarn.lock or pnpm-lock.yaml), preserving the manifest's formatting.

Without -u/--update, npd only reports what would change.`,
	}
}

// Execute runs the pin flow and renders the report.
func (it *PinController) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	opts := commands.PinOptions{
		Dir:        dir,
		Strict:     cfg.Strict,
		Sections:   cfg.Sections,
		Workspaces: cfg.Workspaces,
	}
	opts.Update, _ = cmd.Flags().GetBool("update")
	if cmd.Flags().Changed("strict") {
		opts.Strict, _ = cmd.Flags().GetBool("strict")
	}
	if cmd.Flags().Changed("sections") {
		opts.Sections, _ = cmd.Flags().GetStringSlice("sections")
	}
	if cmd.Flags().Changed("workspaces") {
		opts.Workspaces, _ = cmd.Flags().GetBool("workspaces")
	}

	reports, err := it.command.Execute(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		fmt.Fprint(cmd.OutOrStdout(), output.RenderPinReports(reports, opts.Update))
	}

	failed := 0
	for _, report := range reports {
		failed += len(report.Failures())
	}
	if failed > 0 {
		return fmt.Errorf("%d dependencies failed to resolve", failed)
	}
	return nil
}

// AddFlags adds the pin-specific flags to the given Cobra command.
func (it *PinController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("update", "u", false, "Rewrite the manifest in place")
	cmd.Flags().Bool("strict", false, "Abort on the first entry that fails to resolve")
	cmd.Flags().StringSlice("sections", nil,
		"Dependency sections to pin (default: all)")
	cmd.Flags().Bool("workspaces", false, "Include workspace member manifests")
}
