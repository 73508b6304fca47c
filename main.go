package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Brannigan123/blessed-icon-template/config"
	"github.com/Brannigan123/blessed-icon-template/generate"
	"github.com/Brannigan123/blessed-icon-template/parallel"
	"github.com/Brannigan123/blessed-icon-template/swatch"
)

var CLI struct {
	Workers  int    `help:"Number of parallel workers, 0 uses the config value" default:"0"`
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info"`

	Generate generate.CLICmd `cmd:"" help:"Generate a placeholder icon theme template from the configured icon folders"`
	Swatch   swatch.CLICmd   `cmd:"" help:"Inspect and convert palettes"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("blessed-icon-template"),
		kong.Description("Turns existing icon sets into color-templated icon themes."),
		kong.UsageOnError(),
		kong.Vars{"config_path": config.DefaultPath()},
	)

	var level slog.Level
	if err := level.UnmarshalText([]byte(CLI.LogLevel)); err != nil {
		kctx.FatalIfErrorf(err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	workers := CLI.Workers
	if workers == 0 {
		workers = CLI.Generate.Workers()
	}
	pool := parallel.Start(workers)

	err := kctx.Run(pool.Do, pool.Wait, kctx.Selected().Name)
	pool.Wait(true)
	if n := pool.Panics(); n > 0 {
		slog.Error("jobs panicked", "count", n)
	}
	kctx.FatalIfErrorf(err)
}
