// Soundlist reads audio metadata from an audio-hosting site: item details,
// uploader listings with play counts, and per-uploader totals. It offers
// one-shot commands and a terminal catalog browser.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/litescript/soundlist/internal/config"
	"github.com/litescript/soundlist/internal/logger"
	"github.com/litescript/soundlist/internal/scraper"
	"github.com/litescript/soundlist/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what every command needs, built before the command runs
type app struct {
	configPath string
	debug      bool

	cfg    config.Config
	log    *zap.Logger
	client *scraper.Client
}

func newClient(cfg config.Config, log *zap.Logger) *scraper.Client {
	fetcher := scraper.NewHTTPFetcher(cfg.Site.Timeout(), cfg.Site.UserAgent)
	return scraper.NewClient(cfg.Site.BaseURL, fetcher, log)
}

// setup loads config and builds the logger. The TUI owns the terminal, so it
// only logs to the file.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", a.configPath, err)
	}
	logCfg := cfg.Log
	if a.debug {
		logCfg.Level = "debug"
	}

	var console io.Writer = os.Stderr
	if cmd.Name() == "tui" {
		console = nil
	}
	log, err := logger.New(logCfg, console)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	a.cfg = cfg
	a.log = log
	a.client = newClient(cfg, log)
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "soundlist",
		Short:             "Read item metadata and play counts from an audio-hosting site",
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}
	root.SetVersionTemplate("soundlist v{{.Version}}\n")

	root.PersistentFlags().StringVar(&a.configPath, "config", config.ConfigPath(), "config file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log at debug level")

	root.AddCommand(
		newItemCmd(a),
		newListCmd(a),
		newPlaysCmd(a),
		newStatsCmd(a),
		newTUICmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
