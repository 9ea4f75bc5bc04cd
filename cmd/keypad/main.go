package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jask/keypad/internal/config"
	"github.com/jask/keypad/internal/display"
	"github.com/jask/keypad/internal/keymap"
	"github.com/jask/keypad/internal/logging"
	"github.com/jask/keypad/internal/script"
	"github.com/jask/keypad/internal/session"
	"github.com/jask/keypad/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	flags := pflag.NewFlagSet("keypad", pflag.ExitOnError)
	flags.String("locale", "", "number locale, e.g. en or de-DE")
	flags.String("theme", "", "mocha or plain")
	flags.Bool("mouse", true, "enable mouse input")
	eval := flags.StringP("eval", "e", "", "evaluate keys, print the display and exit")
	writeConfig := flags.Bool("write-config", false, "save the resolved settings and key bindings, then exit")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.LoadWithFlags(flags)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logging.Sync(logger)

	keys := keymap.NewRegistry()
	if err := keys.ApplyOverrides(cfg.Keys); err != nil {
		log.Fatalf("keys: %v", err)
	}

	if *writeConfig {
		cfg.Keys = keys.Overrides()
		if err := config.Save(cfg); err != nil {
			log.Fatalf("save config: %v", err)
		}
		fmt.Println(config.Path())
		return
	}

	if flags.Changed("eval") {
		out, err := script.Eval(*eval, keys, display.NewForLocale(cfg.UI.Locale))
		if err != nil {
			log.Fatalf("eval: %v", err)
		}
		fmt.Println(out)
		return
	}

	formatter := display.NewForLocale(cfg.UI.Locale)
	sess := session.New(logger)

	// piped input runs headless
	if !isTerminal(os.Stdin) {
		r := script.New(sess, keys, formatter, os.Stdout)
		if err := r.Run(ctx, os.Stdin); err != nil {
			logger.Error("script failed", zap.Error(err))
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := tui.Options{
		Keys:         keys,
		Formatter:    formatter,
		Theme:        tui.ThemeByName(cfg.UI.Theme),
		DisplayWidth: cfg.UI.DisplayWidth,
		Log:          logger,
	}
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		zones := zone.New()
		defer zones.Close()
		opts.Zones = zones
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	logger.Info("starting", zap.String("locale", cfg.UI.Locale), zap.String("theme", cfg.UI.Theme))
	p := tea.NewProgram(tui.New(sess, opts), progOpts...)
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
	logger.Info("exiting", zap.Int("actions", sess.Dispatched()))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
