package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to the config file",
	Long: `init writes the settings in effect, defaults plus any flags and
environment overrides, to the file named by --config.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if !initForce {
		_, err := os.Stat(configPath)
		if err == nil {
			return fmt.Errorf("%s already exists, pass --force to overwrite it", configPath)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := cfg.Save(configPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
	return nil
}
