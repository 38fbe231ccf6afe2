package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
)

// Globals are flags shared by every command
type Globals struct {
	Config string `short:"c" type:"path" default:"blackjack.hcl" help:"HCL config file (missing file uses defaults)"`
	Debug  bool   `help:"Enable debug logging"`
}

// load reads the config file and builds the root logger. out is where logs
// go; the terminal UI passes a file or io.Discard.
func (g *Globals) load(out io.Writer) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}

	if out == nil {
		out = os.Stderr
	}
	logger, err := shared.SetupLogger(out, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
