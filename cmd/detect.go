package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/xunholy/bundle-advisor/pkg/manager"
	"github.com/xunholy/bundle-advisor/pkg/util"
)

func newDetectCmd(opts *rootOptions) *cobra.Command {
	var (
		patterns     []string
		listPatterns bool
	)

	cmd := &cobra.Command{
		Use:   "detect [dir...]",
		Short: "list webpack and rollup config files below the given folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			roots, err := util.ExpandPaths(args)
			if err != nil {
				return err
			}

			m := opts.pipeline(patterns...)
			out, err := opts.printer()
			if err != nil {
				return err
			}
			if listPatterns {
				return out.Patterns(m.Patterns())
			}

			configs, err := m.DetectConfigs(roots)
			if err != nil {
				return err
			}
			return out.Configs(configs)
		},
	}
	cmd.Flags().StringSliceVar(&patterns, "pattern", nil, "additional filename pattern, may be repeated")
	cmd.Flags().BoolVar(&listPatterns, "list-patterns", false, "print the filename patterns instead of searching")

	return cmd
}

// pipeline builds a manager on the OS filesystem with the configured patterns
func (o *rootOptions) pipeline(extraPatterns ...string) *manager.Manager {
	return manager.New(log.Logger,
		manager.WithExtraPatterns(o.settings.Detect.ExtraPatterns...),
		manager.WithExtraPatterns(extraPatterns...),
		manager.WithConcurrency(o.settings.Concurrency),
	)
}
