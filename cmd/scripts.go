package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/xunholy/bundle-advisor/pkg/optimizer"
	"github.com/xunholy/bundle-advisor/pkg/util"
)

func newScriptsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scripts [package.json]",
		Short: "suggest faster or portable npm build scripts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest := "package.json"
			if len(args) == 1 {
				manifest = args[0]
			}
			path, err := util.ExpandPath(manifest)
			if err != nil {
				return err
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			reports, err := optimizer.New(optimizer.WithLogger(log.Logger)).PackageScripts(content)
			if err != nil {
				return err
			}

			out, err := opts.printer()
			if err != nil {
				return err
			}
			return out.Scripts(reports)
		},
	}
}
