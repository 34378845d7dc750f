package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xunholy/bundle-advisor/pkg/util"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config>",
		Short: "check that a config declares its entries and outputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := util.ExpandPath(args[0])
			if err != nil {
				return err
			}

			result, err := opts.pipeline().ValidateConfig(path)
			if err != nil {
				return err
			}

			out, err := opts.printer()
			if err != nil {
				return err
			}
			if err := out.Validation(path, result); err != nil {
				return err
			}

			if !result.IsValid {
				return fmt.Errorf("%s failed validation with %d problem(s)", path, len(result.Errors))
			}
			return nil
		},
	}
}
