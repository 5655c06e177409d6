// Teolife is a terminal rendition of Teo's life: eighteen years of choices,
// minigames, and photos, driven by Lua-authored content.
// Usage: teolife [--version] [--plain] [--script <file>] [--seed <n>] [--config <file>] <game_directory>
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/marell/teolife/cli"
	"github.com/marell/teolife/config"
	"github.com/marell/teolife/engine"
	"github.com/marell/teolife/loader"
	"github.com/marell/teolife/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	var gameDir string
	var scriptFile string
	var configFile string
	var seedArg string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("teolife %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			i++
			seedArg = args[i]
		case "--config":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--config requires a file path\n")
				os.Exit(1)
			}
			i++
			configFile = args[i]
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}

	if gameDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: teolife [--version] [--plain] [--script <file>] [--seed <n>] [--config <file>] <game_directory>\n")
		os.Exit(1)
	}

	cfg, err := config.Load(configPath(configFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := cfg.Seed
	if seedArg != "" {
		n, err := strconv.ParseInt(seedArg, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "--seed must be a number\n")
			os.Exit(1)
		}
		seed = n
	}
	if seed == 0 {
		seed = 1
	}

	pacing := engine.DefaultPacing()
	if cfg.DaysPerVisit > 0 {
		pacing.DaysPerVisit = cfg.DaysPerVisit
	}
	if cfg.DaysPerYear > 0 {
		pacing.DaysPerYear = cfg.DaysPerYear
	}
	pacing.AutoAdvance = cfg.AutoAdvance

	// Load and compile Lua game content.
	defs, err := loader.Load(gameDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	sess := engine.NewSession(defs, seed, pacing)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		fmt.Printf("%s v%s by %s\n\n", defs.Game.Title, defs.Game.Version, defs.Game.Author)
		c := cli.New(sess)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		fmt.Printf("%s v%s by %s\n\n", defs.Game.Title, defs.Game.Version, defs.Game.Author)
		c := cli.New(sess)
		c.Run()
		return
	}

	if err := tui.Run(sess); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath returns the explicit --config path or the default next to the
// user's home config.
func configPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "teolife.yaml"
	}
	return filepath.Join(home, ".teolife", "config.yaml")
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
