package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pipe-runner/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use, after the search path
and the --difficulty preset are applied. Save the output to
~/.runner/configs/runner.yaml to customise it.

Examples:
  runner config
  runner config --difficulty hard
  runner config --defaults > runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	}

	base, preset, err := loadBaseConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(withPreset(base, preset))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
