package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"arena/internal/config"
	"arena/internal/game"
)

var CLI struct {
	Debug   bool     `help:"Whether to enable debug logging."`
	Configs []string `name:"config" short:"c" help:"YAML files layered over the default configuration, in order." type:"path"`
	Seed    string   `help:"Override the layout seed." env:"ARENA_SEED"`

	Play struct {
	} `cmd:"" default:"1" help:"Open the arena window and drive."`

	Layout struct {
		Format string `help:"Output format." enum:"yaml,json" default:"yaml"`
	} `cmd:"" help:"Print the generated letter-cube walls and the layout digest."`

	Simulate struct {
		Script string  `help:"Drive script of keys:seconds pairs (w/s/a/d steer, j jumps, - idles)." default:"w:2,wd:1.5,j:0.05,-:3"`
		DT     float64 `name:"dt" help:"Fixed tick length in seconds." default:"0.016666666666666666"`
		Every  int     `help:"Record every n-th tick." default:"10"`
		Format string  `help:"Output format." enum:"yaml,json" default:"yaml"`
	} `cmd:"" help:"Run a headless scripted drive and print the vehicle trace."`

	Config struct {
	} `cmd:"" help:"Write the effective configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

// loadConfig layers the --config files and applies the seed override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(CLI.Configs...)
	if err != nil {
		return cfg, err
	}
	if CLI.Seed != "" {
		seed, err := strconv.ParseUint(CLI.Seed, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("seed %q: %w", CLI.Seed, err)
		}
		cfg.Seed = seed
	}
	return cfg, nil
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("arena"),
		kong.Description("a procedural brick arena with a drivable vehicle"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	cfg, err := loadConfig()
	if err != nil {
		writeError(err)
	}

	switch ctx.Command() {
	case "play":
		err = game.Run(cfg, log.Logger)
	case "layout":
		err = layoutCommand(os.Stdout, cfg, CLI.Layout.Format)
	case "simulate":
		err = simulateCommand(os.Stdout, cfg, CLI.Simulate.Script, CLI.Simulate.DT, CLI.Simulate.Every, CLI.Simulate.Format)
	case "config":
		err = configCommand(os.Stdout, cfg)
	}
	if err != nil {
		writeError(err)
	}
}
