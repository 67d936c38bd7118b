package main

import (
	"log/slog"
	"os"

	"github.com/oliverbestmann/shaderplay/playground"
)

func main() {
	opts, err := playground.OptionsFromEnv()
	if err != nil {
		slog.Error("Invalid configuration", slog.Any("err", err))
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: opts.LogLevel,
	})))

	if err := playground.Run(opts); err != nil {
		slog.Error("Playground failed", slog.Any("err", err))
		os.Exit(1)
	}
}
