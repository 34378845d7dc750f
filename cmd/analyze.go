package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/xunholy/bundle-advisor/pkg/util"
)

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <config>...",
		Short: "extract the structure of config files and suggest optimizations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := util.ExpandPaths(args)
			if err != nil {
				return err
			}

			log.Info().Msgf("Analyzing %d config file(s)", len(paths))
			results, err := opts.pipeline().AnalyzeConfigs(cmd.Context(), paths)
			if err != nil {
				return err
			}

			out, err := opts.printer()
			if err != nil {
				return err
			}
			return out.Analyses(results)
		},
	}
}
