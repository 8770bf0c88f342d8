package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smarlhens/riri-node-tools/internal/infrastructure/controllers"
)

func buildRootCommand(enginesController *controllers.EnginesController) *cobra.Command {
	bind := enginesController.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           bind.Use,
		Short:         bind.Short,
		Long:          bind.Long,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          enginesController.Execute,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
	cmd.PersistentFlags().BoolP("quiet", "q", false,
		"Suppress the report, keep the exit code")
	cmd.PersistentPreRun = func(command *cobra.Command, _ []string) {
		if verbose, _ := command.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(logger.DebugLevel)
		}
	}

	enginesController.AddFlags(cmd)
	return cmd
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Inject the controller via DIG
	cobraRoot := buildRootCommand(injectEnginesController())

	if err := cobraRoot.ExecuteContext(ctx); err != nil {
		logger.Errorf("Error executing 'nce': %s", err)
		os.Exit(1)
	}
}
