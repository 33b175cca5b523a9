package main

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	"pixelart/convert"
	"pixelart/extract"
	"pixelart/parallel"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

type CLI struct {
	LogLevel  string          `help:"Minimum level of log records" enum:"debug,info,warn,error" default:"info"`
	LogFormat string          `help:"Log record format" enum:"text,json" default:"text"`
	Workers   int             `help:"Images processed concurrently (0 means one per CPU)" default:"0"`
	Config    kong.ConfigFlag `help:"JSON file providing flag values"`

	Convert convert.CLICmd `cmd:"" help:"Turn every image in a folder into pixel art"`
	Palette extract.CLICmd `cmd:"" help:"Build a palette from an image"`
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("pixelart"),
		kong.Description("Pixel-art conversion of images."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "~/.pixelart.json", "./pixelart.json"),
		kong.BindTo(io.Writer(os.Stdout), (*io.Writer)(nil)),
	)

	slog.SetDefault(newLogger(cli.LogLevel, cli.LogFormat))

	pool := parallel.Start(cli.Workers)
	err := kctx.Run(pool.Do, pool.Wait)
	pool.Wait(true)
	if err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
