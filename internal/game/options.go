package game

import (
	"context"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/gameid"
	"github.com/lox/blackjack/internal/randutil"
)

// Recorder receives the results of every finished round. The leaderboard
// implements it; failures are the recorder's to handle.
type Recorder interface {
	Record(ctx context.Context, results []Result)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, results []Result)

// Record calls f
func (f RecorderFunc) Record(ctx context.Context, results []Result) { f(ctx, results) }

// Listener is called with every committed snapshot, including intermediate
// ones such as the dealing phase.
type Listener func(State)

// Option configures a Game during creation.
type Option func(*config)

type config struct {
	rng       *rand.Rand
	ids       deck.IDGenerator
	deckFn    func() deck.Deck
	logger    *log.Logger
	recorder  Recorder
	listeners []Listener
}

// WithRNG sets the random source used to shuffle and to derive ids.
func WithRNG(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

// WithIDs sets the id generator for rounds, players and cards.
func WithIDs(ids deck.IDGenerator) Option {
	return func(c *config) { c.ids = ids }
}

// WithDeckFactory replaces deck construction, called once per round.
func WithDeckFactory(fn func() deck.Deck) Option {
	return func(c *config) { c.deckFn = fn }
}

// WithDeck uses the same stacked deck for every round. Intended for tests
// and replays.
func WithDeck(d deck.Deck) Option {
	return WithDeckFactory(func() deck.Deck { return d })
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRecorder forwards the results of each round to r.
func WithRecorder(r Recorder) Option {
	return func(c *config) { c.recorder = r }
}

// WithListener registers a snapshot listener.
func WithListener(l Listener) Option {
	return func(c *config) { c.listeners = append(c.listeners, l) }
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = randutil.New(time.Now().UnixNano())
	}
	if cfg.ids == nil {
		cfg.ids = gameid.NewGenerator(nil)
	}
	if cfg.deckFn == nil {
		rng, ids := cfg.rng, cfg.ids
		cfg.deckFn = func() deck.Deck { return deck.New(rng, ids) }
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	return cfg
}
