package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/highway-runner/internal/config"
)

var flagWriteConfig string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default tuning",
	Long: `Print the built-in tuning YAML, a starting point for --config files.

Lookup order when --config is not given:
  ~/.highway/configs/highway.yaml
  ./configs/highway.yaml
  built-in defaults

Examples:
  highway config > fast.yaml
  highway config --write ~/.highway/configs/highway.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagWriteConfig, "write", "", "Write the defaults to this path instead of printing")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagWriteConfig != "" {
		path := expandHome(flagWriteConfig)
		if err := writeDefaultConfig(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}
	_, err := os.Stdout.Write(config.DefaultYAML())
	return err
}

func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}
	return nil
}
