package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/previdlabs/ppp/internal/cli"
	"github.com/previdlabs/ppp/internal/config"
	"github.com/previdlabs/ppp/internal/ui"
	"github.com/previdlabs/ppp/pkg/log"
)

func main() {
	// Root flags (apply to every subcommand)
	dataDir := flag.String("data-dir", "", "data directory (default ~/.ppp)")
	themeName := flag.String("theme", "", "theme: classic, neon or mono")
	noColor := flag.Bool("no-color", false, "disable all colors")
	flag.Parse()

	cfg, err := config.Load(*dataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *themeName != "" {
		cfg.Theme.Name = *themeName
	}
	if *noColor {
		cfg.Theme.NoColor = true
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "data dir:", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		File:     cfg.LogPath(),
	})

	theme := ui.NewTheme(cfg.Theme.Name, cfg.Theme.NoColor)

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	os.Exit(cli.Run(args, cli.Options{
		Cfg:    cfg,
		Theme:  theme,
		Logger: logger,
	}))
}
