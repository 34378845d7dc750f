package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/xunholy/bundle-advisor/pkg/bundle"
	"github.com/xunholy/bundle-advisor/pkg/util"
)

func newBundleCmd(opts *rootOptions) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "bundle <dir>",
		Short: "measure a build output directory and recommend size reductions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := util.ExpandPath(args[0])
			if err != nil {
				return err
			}

			s := opts.settings.Bundle
			analyzer := bundle.NewAnalyzer(afero.NewOsFs(),
				bundle.WithLogger(log.Logger),
				bundle.WithProbe(s.Probe),
				bundle.WithThresholds(bundle.Thresholds{
					JS:     s.JSThreshold,
					CSS:    s.CSSThreshold,
					Image:  s.ImageThreshold,
					Vendor: s.VendorThreshold,
				}),
			)

			log.Info().Msgf("Analyzing bundle directory: %s", root)
			result, err := analyzer.AnalyzeDirectory(root)
			if err != nil {
				return err
			}

			out, err := opts.printer()
			if err != nil {
				return err
			}
			return out.Bundle(result, top)
		},
	}

	cmd.Flags().Bool("probe", false, "measure minified and gzip sizes (reads every JS and CSS file)")
	cmd.Flags().IntVar(&top, "top", 10, "number of largest files to list")
	_ = opts.v.BindPFlag("bundle.probe", cmd.Flags().Lookup("probe"))

	return cmd
}
