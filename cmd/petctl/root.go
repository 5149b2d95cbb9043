package main

import (
	"time"

	"github.com/spf13/cobra"

	"battlepets/petlookup"
)

type options struct {
	configPath string
	endpoint   string
	timeout    time.Duration
	jsonOut    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "petctl",
		Short:        "petctl looks up battle pets and their double counters.",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&opts.endpoint, "endpoint", "", "battle pet service base URL (overrides config)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "request timeout (overrides config)")
	flags.BoolVar(&opts.jsonOut, "json", false, "print raw JSON")

	root.AddCommand(
		newGetCmd(opts),
		newCountersCmd(opts),
		newTypesCmd(),
		newStubCmd(),
	)
	return root
}

// session opens a session with command line overrides applied. Logs go to
// the command's stderr unless the config names a log file.
func (o *options) session(cmd *cobra.Command) (*petlookup.Session, error) {
	cfg, err := petlookup.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.endpoint != "" {
		cfg.Endpoint = o.endpoint
	}
	if o.timeout > 0 {
		cfg.Timeout = o.timeout
	}
	return petlookup.NewSession(cfg, cmd.ErrOrStderr())
}
