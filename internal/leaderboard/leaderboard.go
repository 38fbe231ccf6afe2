// Package leaderboard keeps cumulative per-player results across sessions.
//
// The whole ranking is stored as one JSON blob in a store.Store and is
// rewritten on every update. Storage problems never reach the caller: a
// missing or unreadable blob is an empty leaderboard and a failed write is
// logged and dropped.
package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/store"
)

const (
	DefaultKey   = "blackjack-leaderboard"
	DefaultLimit = 10
)

// Entry is one player's cumulative record. Players are matched by exact name.
type Entry struct {
	Name       string    `json:"name"`
	Wins       int       `json:"wins"`
	Losses     int       `json:"losses"`
	Ties       int       `json:"ties"`
	WinRate    float64   `json:"winRate"`
	LastPlayed time.Time `json:"lastPlayed"`
}

// Games returns the number of recorded rounds
func (e Entry) Games() int {
	return e.Wins + e.Losses + e.Ties
}

func (e *Entry) apply(outcome game.Outcome, at time.Time) {
	switch outcome {
	case game.Win:
		e.Wins++
	case game.Loss:
		e.Losses++
	default:
		e.Ties++
	}
	e.WinRate = float64(e.Wins) / float64(e.Games())
	e.LastPlayed = at
}

// Board reads and updates the persisted ranking. It implements game.Recorder.
type Board struct {
	store  store.Store
	clock  quartz.Clock
	logger *log.Logger
	key    string
	limit  int

	mu sync.Mutex
}

var _ game.Recorder = (*Board)(nil)

// Option configures a Board.
type Option func(*Board)

// WithClock sets the clock used to stamp lastPlayed.
func WithClock(clock quartz.Clock) Option {
	return func(b *Board) { b.clock = clock }
}

// WithLogger sets the logger for storage failures.
func WithLogger(logger *log.Logger) Option {
	return func(b *Board) { b.logger = logger }
}

// WithKey overrides the blob key.
func WithKey(key string) Option {
	return func(b *Board) {
		if key != "" {
			b.key = key
		}
	}
}

// WithLimit overrides how many entries are kept.
func WithLimit(limit int) Option {
	return func(b *Board) {
		if limit > 0 {
			b.limit = limit
		}
	}
}

// New creates a board over s.
func New(s store.Store, opts ...Option) *Board {
	b := &Board{
		store:  s,
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
		key:    DefaultKey,
		limit:  DefaultLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.WithPrefix("leaderboard")
	return b
}

// List returns the persisted ranking, best first.
func (b *Board) List(ctx context.Context) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load(ctx)
}

// Record merges a round's results into the ranking. The snapshot is re-read
// before every write.
func (b *Board) Record(ctx context.Context, results []game.Result) {
	if len(results) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entries := Merge(b.load(ctx), results, b.clock.Now().UTC())
	entries = Rank(entries, b.limit)

	data, err := json.Marshal(entries)
	if err != nil {
		b.logger.Error("Failed to encode leaderboard", "error", err)
		return
	}
	if err := b.store.Put(ctx, b.key, data); err != nil {
		b.logger.Error("Failed to update leaderboard", "error", err)
		return
	}
	b.logger.Debug("Recorded results", "results", len(results), "entries", len(entries))
}

// Clear removes every entry.
func (b *Board) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.store.Delete(ctx, b.key); err != nil {
		b.logger.Error("Failed to clear leaderboard", "error", err)
		return err
	}
	b.logger.Info("Cleared leaderboard")
	return nil
}

func (b *Board) load(ctx context.Context) []Entry {
	data, err := b.store.Get(ctx, b.key)
	if errors.Is(err, store.ErrNotFound) {
		return []Entry{}
	}
	if err != nil {
		b.logger.Warn("Failed to read leaderboard", "error", err)
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		b.logger.Warn("Ignoring corrupt leaderboard", "error", err)
		return []Entry{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries
}

// Merge applies results to entries, creating entries for new names. The
// input slice is not modified.
func Merge(entries []Entry, results []game.Result, at time.Time) []Entry {
	merged := make([]Entry, len(entries), len(entries)+len(results))
	copy(merged, entries)

	index := make(map[string]int, len(merged))
	for i, e := range merged {
		index[e.Name] = i
	}

	for _, r := range results {
		i, ok := index[r.PlayerName]
		if !ok {
			merged = append(merged, Entry{Name: r.PlayerName})
			i = len(merged) - 1
			index[r.PlayerName] = i
		}
		merged[i].apply(r.Outcome, at)
	}
	return merged
}

// Rank sorts by win rate, then games played, both descending, and keeps the
// first limit entries. Equal entries keep their relative order.
func Rank(entries []Entry, limit int) []Entry {
	ranked := append([]Entry(nil), entries...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].WinRate != ranked[j].WinRate {
			return ranked[i].WinRate > ranked[j].WinRate
		}
		return ranked[i].Games() > ranked[j].Games()
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
