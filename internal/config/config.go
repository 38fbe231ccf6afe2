// Package config loads blackjack.hcl. Every block and attribute is optional;
// anything left out keeps its default.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/leaderboard"
	"github.com/lox/blackjack/internal/store"
)

// DefaultFilename is looked up in the working directory when no --config is given.
const DefaultFilename = "blackjack.hcl"

// Config is the complete configuration
type Config struct {
	Game        GameSettings
	Dealer      DealerSettings
	Leaderboard LeaderboardSettings
	Server      ServerSettings
	Log         LogSettings
}

// GameSettings controls the table
type GameSettings struct {
	Players []string `hcl:"players,optional"`
	Seed    *int64   `hcl:"seed,optional"`
	Deck    string   `hcl:"deck,optional"` // stacked deal order for replays, e.g. "As Kh 9c"
	Bots    []string `hcl:"bots,optional"` // strategy per seat for simulations
}

// DealerSettings controls dealer pacing for interactive front-ends
type DealerSettings struct {
	PaceMS int `hcl:"pace_ms,optional"`
}

// LeaderboardSettings selects where results persist
type LeaderboardSettings struct {
	Backend string `hcl:"backend,optional"`
	Path    string `hcl:"path,optional"`
	DSN     string `hcl:"dsn,optional"`
	Addr    string `hcl:"addr,optional"`
	Prefix  string `hcl:"prefix,optional"`
	Key     string `hcl:"key,optional"`
	Limit   int    `hcl:"limit,optional"`
}

// ServerSettings controls the HTTP front-end
type ServerSettings struct {
	Address string `hcl:"address,optional"`
}

// LogSettings controls the root logger
type LogSettings struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// dealerBlock keeps pace_ms as a pointer so an explicit 0 survives decoding.
type dealerBlock struct {
	PaceMS *int `hcl:"pace_ms,optional"`
}

type file struct {
	Game        *GameSettings        `hcl:"game,block"`
	Dealer      *dealerBlock         `hcl:"dealer,block"`
	Leaderboard *LeaderboardSettings `hcl:"leaderboard,block"`
	Server      *ServerSettings      `hcl:"server,block"`
	Log         *LogSettings         `hcl:"log,block"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			Bots: []string{"basic", "dealer", "cautious", "random"},
		},
		Dealer: DealerSettings{PaceMS: 600},
		Leaderboard: LeaderboardSettings{
			Backend: store.BackendFile,
			Path:    ".blackjack",
			Prefix:  "blackjack:",
			Key:     leaderboard.DefaultKey,
			Limit:   leaderboard.DefaultLimit,
		},
		Server: ServerSettings{Address: "localhost:8080"},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults to anything unset
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if g := raw.Game; g != nil {
		if len(g.Players) > 0 {
			cfg.Game.Players = g.Players
		}
		if g.Seed != nil {
			cfg.Game.Seed = g.Seed
		}
		if g.Deck != "" {
			cfg.Game.Deck = g.Deck
		}
		if len(g.Bots) > 0 {
			cfg.Game.Bots = g.Bots
		}
	}
	if d := raw.Dealer; d != nil && d.PaceMS != nil {
		cfg.Dealer.PaceMS = *d.PaceMS
	}
	if l := raw.Leaderboard; l != nil {
		setString(&cfg.Leaderboard.Backend, l.Backend)
		setString(&cfg.Leaderboard.Path, l.Path)
		setString(&cfg.Leaderboard.DSN, l.DSN)
		setString(&cfg.Leaderboard.Addr, l.Addr)
		setString(&cfg.Leaderboard.Prefix, l.Prefix)
		setString(&cfg.Leaderboard.Key, l.Key)
		if l.Limit != 0 {
			cfg.Leaderboard.Limit = l.Limit
		}
	}
	if s := raw.Server; s != nil {
		setString(&cfg.Server.Address, s.Address)
	}
	if l := raw.Log; l != nil {
		setString(&cfg.Log.Level, l.Level)
		setString(&cfg.Log.Format, l.Format)
	}
	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Game.Players) > 0 {
		if _, err := game.ValidateNames(c.Game.Players); err != nil {
			return fmt.Errorf("game.players: %w", err)
		}
	}
	if c.Game.Deck != "" {
		if _, err := deck.ParseCards(c.Game.Deck); err != nil {
			return fmt.Errorf("game.deck: %w", err)
		}
	}
	for _, name := range c.Game.Bots {
		if _, err := bot.Lookup(name, nil); err != nil {
			return fmt.Errorf("game.bots: %w", err)
		}
	}
	if c.Dealer.PaceMS < 0 {
		return fmt.Errorf("dealer.pace_ms must not be negative: %d", c.Dealer.PaceMS)
	}
	if !slices.Contains(store.Backends, c.Leaderboard.Backend) {
		return fmt.Errorf("leaderboard.backend: unknown backend %q", c.Leaderboard.Backend)
	}
	if c.Leaderboard.Limit < 1 || c.Leaderboard.Limit > leaderboard.DefaultLimit {
		return fmt.Errorf("leaderboard.limit must be between 1 and %d: %d", leaderboard.DefaultLimit, c.Leaderboard.Limit)
	}
	if c.Leaderboard.Key == "" {
		return errors.New("leaderboard.key must not be empty")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}

// DealerPace returns the delay between dealer steps
func (c *Config) DealerPace() time.Duration {
	return time.Duration(c.Dealer.PaceMS) * time.Millisecond
}

// StoreConfig returns the store settings for the leaderboard backend
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Backend: c.Leaderboard.Backend,
		Path:    c.Leaderboard.Path,
		DSN:     c.Leaderboard.DSN,
		Addr:    c.Leaderboard.Addr,
		Prefix:  c.Leaderboard.Prefix,
	}
}

// StackedDeck returns the configured replay deck, if any
func (c *Config) StackedDeck() (deck.Deck, bool) {
	if c.Game.Deck == "" {
		return deck.Deck{}, false
	}
	return deck.Stack(deck.MustParseCards(c.Game.Deck)...), true
}
