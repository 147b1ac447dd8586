package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iburimskiy/timer-visualization/internal/audio"
	"github.com/iburimskiy/timer-visualization/internal/config"
	"github.com/iburimskiy/timer-visualization/internal/game"
	"github.com/iburimskiy/timer-visualization/internal/logging"
	"github.com/iburimskiy/timer-visualization/internal/term"
	"github.com/iburimskiy/timer-visualization/internal/timer"
)

func run(args []string) error {
	fs := pflag.NewFlagSet("timer", pflag.ContinueOnError)
	configPath := fs.String("config", "", "config file (json, yaml or toml)")
	printConfig := fs.Bool("print-config", false, "print the effective configuration and exit")

	v := viper.New()
	if err := config.BindFlags(v, fs); err != nil {
		return err
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(v, *configPath)
	if err != nil {
		return err
	}
	if *printConfig {
		return cfg.WriteYAML(os.Stdout)
	}

	// stderr keeps log lines off the terminal renderer's screen buffer
	log := logging.Setup(os.Stderr, cfg.LogLevel, false)
	log.Info().Str("renderer", cfg.Renderer).Str("config", *configPath).Msg("Starting 60 seconds timer")

	observers := []timer.Observer{logging.NewMinuteLogger(log)}
	if cfg.Audio.Enabled {
		tk, err := audio.NewTicker(cfg.Audio.Volume, log)
		if err != nil {
			log.Warn().Err(err).Msg("Audio disabled")
		} else {
			observers = append(observers, tk)
		}
	}

	switch cfg.Renderer {
	case config.RendererTerminal:
		err = term.Run(cfg, log, observers...)
	default:
		err = game.Run(cfg, log, observers...)
	}
	if err != nil {
		log.Error().Err(err).Msg("Renderer stopped")
		return err
	}
	log.Info().Msg("Bye")
	return nil
}

func main() {
	err := run(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
