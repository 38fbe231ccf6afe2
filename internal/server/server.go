// Package server exposes one blackjack table over HTTP and WebSocket.
//
// All game access goes through a single mutex. Every change is pushed to
// connected WebSocket clients, and the dealer's turn is played out on the
// server's clock so clients see each draw arrive.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/leaderboard"
	"golang.org/x/sync/errgroup"
)

// Server hosts a single table
type Server struct {
	game   *game.Game
	board  *leaderboard.Board
	clock  quartz.Clock
	pace   time.Duration
	logger *log.Logger
	hub    *Hub

	mu          sync.Mutex
	dealerTimer *quartz.Timer
}

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock that paces the dealer
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithPace sets the delay between dealer steps. Zero plays the dealer's
// whole turn inside the request that ended the players' turns.
func WithPace(pace time.Duration) Option {
	return func(s *Server) { s.pace = pace }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates a server for g. board may be nil when no leaderboard is kept.
func New(g *game.Game, board *leaderboard.Board, opts ...Option) *Server {
	s := &Server{
		game:   g,
		board:  board,
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithPrefix("server")
	s.hub = newHub(s, s.logger)
	return s
}

// Action names accepted over HTTP and WebSocket
const (
	ActionStart  = "start"
	ActionHit    = "hit"
	ActionStand  = "stand"
	ActionDealer = "dealer"
	ActionNew    = "new"
	ActionReset  = "reset"
)

// ErrUnknownAction is returned by Do for an unrecognised action
var ErrUnknownAction = errors.New("unknown action")

// Do applies one action to the table and broadcasts the result. The bool
// reports whether the game changed; err is only set for a rejected roster
// or an unknown action.
func (s *Server) Do(action string, names []string) (game.State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		state   game.State
		applied bool
		err     error
	)
	switch action {
	case ActionStart:
		state, err = s.game.Start(names)
		applied = err == nil
	case ActionHit:
		state, applied = s.game.Hit()
	case ActionStand:
		state, applied = s.game.Stand()
	case ActionDealer:
		state, applied = s.game.AdvanceDealer()
	case ActionNew:
		state, applied = s.game.NewGame()
	case ActionReset:
		state, applied = s.game.Reset(), true
	default:
		return s.game.State(), false, ErrUnknownAction
	}

	s.logger.Debug("Action", "action", action, "applied", applied, "phase", state.Phase)
	if applied {
		state = s.settle(state)
	}
	return state, applied, err
}

// State returns the current snapshot
func (s *Server) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State()
}

// settle broadcasts state and, once the players are done, starts the
// dealer. Called with s.mu held.
func (s *Server) settle(state game.State) game.State {
	if state.Phase == game.PhaseDealerTurn && s.pace <= 0 {
		state = s.game.PlayDealer()
	}
	s.hub.broadcastState(state)

	if state.Phase == game.PhaseDealerTurn && s.dealerTimer == nil {
		s.dealerTimer = s.clock.AfterFunc(s.pace, s.dealerTick, "server", "dealer")
	}
	return state
}

func (s *Server) dealerTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dealerTimer = nil
	state, ok := s.game.AdvanceDealer()
	if !ok {
		return
	}
	s.settle(state)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down")

		s.mu.Lock()
		if s.dealerTimer != nil {
			s.dealerTimer.Stop()
			s.dealerTimer = nil
		}
		s.mu.Unlock()
		s.hub.closeAll()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
