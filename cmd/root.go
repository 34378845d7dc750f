package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xunholy/bundle-advisor/pkg/config"
	"github.com/xunholy/bundle-advisor/pkg/output"
	"github.com/xunholy/bundle-advisor/pkg/util"
)

const rootCmdUsage = `
bundle-advisor reads webpack and rollup configuration files and build output
directories without executing them, and suggests how to make the bundles smaller
and the builds faster.
`

// rootOptions is the state shared by every subcommand
type rootOptions struct {
	out      io.Writer
	cfgFile  string
	debug    bool
	v        *viper.Viper
	settings *config.Settings
}

// NewRootCmd creates a root cmd
func NewRootCmd(out io.Writer, args []string) *cobra.Command {
	opts := &rootOptions{out: out, v: config.New()}

	cmd := &cobra.Command{
		Use:          "bundle-advisor",
		Short:        "analyze webpack and rollup configs and bundle sizes",
		Long:         rootCmdUsage,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init()
		},
	}
	cmd.SetOut(out)
	cmd.SetArgs(args)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ~/.bundle-advisor/config.yaml)")
	flags.StringP("output", "o", "table", "output format: table, json, yaml")
	flags.String("outdir", "bundle-analysis", "directory to store report files")
	flags.Bool("write", false, "write YAML reports to the output directory")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug output")

	_ = opts.v.BindPFlag("output.format", flags.Lookup("output"))
	_ = opts.v.BindPFlag("output.dir", flags.Lookup("outdir"))
	_ = opts.v.BindPFlag("output.write", flags.Lookup("write"))

	cmd.AddCommand(
		newDetectCmd(opts),
		newAnalyzeCmd(opts),
		newValidateCmd(opts),
		newBundleCmd(opts),
		newScriptsCmd(opts),
		newVersionCmd(opts),
	)

	return cmd
}

func (o *rootOptions) init() error {
	level := zerolog.InfoLevel
	if o.debug {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(level)

	settings, err := config.Load(o.v, o.cfgFile)
	if err != nil {
		return err
	}
	o.settings = settings

	log.Debug().
		Str("config", o.v.ConfigFileUsed()).
		Str("format", settings.Output.Format).
		Int("concurrency", settings.Concurrency).
		Msg("settings loaded")
	return nil
}

// printer builds the presentation manager from the loaded settings
func (o *rootOptions) printer() (*output.Manager, error) {
	format, err := output.ParseFormat(o.settings.Output.Format)
	if err != nil {
		return nil, err
	}
	dir := o.settings.Output.Dir
	if o.settings.Output.Write {
		if dir, err = util.EnsureDirectory(dir); err != nil {
			return nil, fmt.Errorf("failed to prepare output directory: %w", err)
		}
	}
	return output.NewManager(o.out, format, dir, o.settings.Output.Write), nil
}
