// Command wordgrid-tui plays a game in the terminal using the same
// configuration and word sources as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/keyboard"
	"github.com/robalobadob/wordgrid/internal/tui"
	"github.com/robalobadob/wordgrid/internal/words"
)

func main() {
	dailyMode := flag.Bool("daily", false, "play today's word")
	debug := flag.Bool("debug", false, "log to stderr")
	flag.Parse()

	// Logging would draw over the alternate screen.
	if *debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(io.Discard)
	}

	if err := run(*dailyMode); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(dailyMode bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dict, err := words.Load(context.Background(), words.LoadOptions{
		Cols:        cfg.Cols,
		AnswersFile: cfg.AnswersFile,
		AllowedFile: cfg.AllowedFile,
	})
	if err != nil {
		return err
	}
	first := dict
	if dailyMode {
		key, err := cfg.DailyKey()
		if err != nil {
			return err
		}
		first = dict.WithSource(daily.Source{Key: key})
	}

	grid := game.New(first, game.WithSize(cfg.Rows, cfg.Cols))
	app := tui.NewApp(grid, keyboard.New(cfg.HelpfulKeyboard, cfg.Cols))
	if dailyMode {
		app = app.WithResetDictionary(dict)
	}
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
