package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renaudg/netdash/internal/config"
	"github.com/renaudg/netdash/internal/errors"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfig
		if path == "" {
			path = config.DefaultPath()
		}
		if path == "" {
			return errors.New(errors.ErrConfig,
				"Cannot determine config location",
				"Pass an explicit path with --config")
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}
