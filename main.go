package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pstuifzand/block-engine/internal/config"
	"github.com/pstuifzand/block-engine/internal/importer"
	"github.com/pstuifzand/block-engine/internal/theme"
	"github.com/pstuifzand/block-engine/internal/tui"
)

const sampleDocument = `Welcome to block-engine
Getting started:
  Press Tab to indent the selected block
  Press Shift+Tab to outdent it
  Press o to create a block, d to delete one
  Press u to undo, Ctrl+R to redo
Everything here is a block
  Indent rules follow outliner conventions
`

func main() {
	logFile, err := os.Create("block-engine.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	strict := flag.Bool("strict", false, "Panic on sequence invariant violations instead of logging")
	configPath := flag.String("config", "", "Path to a config file (defaults to the standard location)")
	flag.Parse()

	var cfg *config.Config
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *strict {
		cfg.StrictInvariants = true
	}

	seed := sampleDocument
	if args := flag.Args(); len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		seed = string(data)
	}

	screen, err := tui.NewScreen(theme.ByName(cfg.Theme))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer screen.Close()

	app := tui.NewApp(screen, cfg, importer.ParseIndented(seed))
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}
