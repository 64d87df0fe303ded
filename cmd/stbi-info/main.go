package main

import (
	"fmt"
	"os"

	armon "github.com/armon/go-metrics"
	"github.com/pressly/stbi"
	"github.com/pressly/stbi/config"
	"github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
)

type options struct {
	confFile    string
	flip        bool
	components  int
	logLevel    string
	dumpMetrics bool
}

func main() {
	if err := newCommand().Execute(); err != nil {
		stbi.Logger.Error(err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "stbi-info [flags] FILE...",
		Short:         "Decode images and print their dimensions",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	cmd.Version = stbi.DefaultEngine.Version()

	flags := cmd.Flags()
	flags.StringVar(&opts.confFile, "config", "", "path to config file")
	flags.BoolVar(&opts.flip, "flip", false, "flip images vertically on load")
	flags.IntVarP(&opts.components, "components", "c", 0, "force the channel count (1-4, 0 keeps the source's)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level, overrides the config file")
	flags.BoolVar(&opts.dumpMetrics, "metrics", false, "dump decoder metrics to stderr on exit")
	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cf, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if err := cf.Apply(stbi.DefaultEngine); err != nil {
		return err
	}
	if err := cf.SetupStatsD(); err != nil {
		return err
	}
	if opts.dumpMetrics {
		defer metrics.WriteOnce(metrics.DefaultRegistry, cmd.ErrOrStderr())
	}

	stbi.Logger.Debugf("** %s **", stbi.DefaultEngine.Version())

	var failed int
	for _, path := range args {
		im, err := stbi.LoadFileForced(path, cf.ForceComponents)
		if err != nil {
			failed++
			armon.IncrCounter([]string{"files", "failed"}, 1)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, err)
			continue
		}
		armon.IncrCounter([]string{"files", "decoded"}, 1)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d channels=%d stride=%d\n",
			path, im.Width(), im.Height(), im.Channels(), im.Stride())
		im.Release()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to decode", failed, len(args))
	}
	return nil
}

// loadConfig reads the config file (or $CONFIG) when one is given and lets
// explicit flags override it.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cf := config.NewConfig()
	if opts.confFile != "" || os.Getenv("CONFIG") != "" {
		var err error
		cf, err = config.NewConfigFromFile(opts.confFile, os.Getenv("CONFIG"))
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("flip") {
		cf.FlipVertically = opts.flip
	}
	if flags.Changed("components") {
		cf.ForceComponents = opts.components
	}
	if flags.Changed("log-level") {
		cf.LogLevel = opts.logLevel
	}
	return cf, nil
}
