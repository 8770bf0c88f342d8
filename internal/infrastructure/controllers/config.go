package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smarlhens/riri-node-tools/config"
)

// loadConfig resolves the configuration for a run: an explicit --config
// path must load, an auto-detected file is best effort, and no file at all
// falls back to the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.Load(path)
	}

	path, err := config.FindConfigFile()
	if err != nil {
		return config.Default(), nil
	}

	logger.Debugf("Using config file %s.", path)
	return config.Load(path)
}
