package main

import (
	"context"

	"aoctui/internal/client"
	"aoctui/internal/config"
	"aoctui/internal/log"
	"aoctui/internal/tui"
	"aoctui/internal/tui/messages"
	"aoctui/internal/tui/styles"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// app carries the flags and the loaded config between cobra hooks.
type app struct {
	cfgFile string
	logFile string
	debug   bool

	cfg *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "aoctui",
		Short: "Browse Advent of Code events from the terminal",
		Long: `aoctui lists the Advent of Code events with your star counts.

Without a session token it asks for one first. The token can also come from
the config file or the ` + config.TokenEnv + ` environment variable.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Close()
		},
		RunE: a.runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/aoctui/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newEventsCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// configPath returns the --config value or the default location.
func (a *app) configPath() (string, error) {
	if a.cfgFile != "" {
		return a.cfgFile, nil
	}
	return config.DefaultPath()
}

// setupLogging points the package logger at the configured file, if any.
func (a *app) setupLogging(cfg *config.Config) {
	path := a.logFile
	if path == "" && cfg != nil {
		path = cfg.LogFile
	}
	if path != "" {
		log.Configure(log.WithFile(path))
	}
	log.SetDebug(a.debug)
}

// setup loads the config and configures logging before any command runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if a.cfgFile != "" {
		cfg, err = config.LoadConfigFile(a.cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	a.cfg = cfg

	a.setupLogging(cfg)
	return nil
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	fetcher, err := client.NewFromConfig(a.cfg)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus := messages.NewBus(messages.DefaultBusSize)
	m := tui.New(a.cfg.Display.Title, a.cfg.Session.Token, fetcher,
		tui.WithContext(ctx),
		tui.WithFPS(a.cfg.Display.FPS),
		tui.WithStyles(styles.FromConfig(a.cfg)),
		tui.WithBus(bus),
	)

	g.Go(func() error {
		// Leaving the TUI stops everything else.
		defer cancel()
		return tui.Run(ctx, m)
	})

	if a.cfg.Watch {
		path, err := a.configPath()
		if err != nil {
			return err
		}
		w, err := config.NewWatcher(path)
		if err != nil {
			log.LogWithError(err).Warn("config watch disabled")
		} else {
			log.Debugf("watching %s for token changes", w.Path())
			g.Go(func() error {
				return w.Run(ctx, tokenReloader(ctx, bus, a.cfg.Session.Token))
			})
		}
	}

	return g.Wait()
}

// tokenReloader returns a watcher callback that posts SetSessionToken
// whenever the reloaded token differs from the last one seen.
func tokenReloader(ctx context.Context, bus *messages.Bus, current *string) func(*config.Config) {
	var last *string
	if current != nil {
		t := *current
		last = &t
	}

	return func(cfg *config.Config) {
		next := cfg.Session.Token
		if next == nil || (last != nil && *last == *next) {
			return
		}
		t := *next
		last = &t
		if err := bus.SendContext(ctx, messages.SetSessionToken{Token: t}); err != nil {
			log.Debugf("token reload dropped: %v", err)
			return
		}
		log.Info("session token reloaded from config")
	}
}
