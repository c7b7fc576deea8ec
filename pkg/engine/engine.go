// Package engine ties together position state, search and persistence behind the façade the
// UCI driver talks to.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/arborchess/arbor/pkg/board"
	"github.com/arborchess/arbor/pkg/board/fen"
	"github.com/arborchess/arbor/pkg/engine/storage"
	"github.com/arborchess/arbor/pkg/eval"
	"github.com/arborchess/arbor/pkg/search"
	"github.com/arborchess/arbor/pkg/search/searchctl"
)

var version = build.NewVersion(0, 1, 0)

// Options are search creation options.
type Options struct {
	// Depth is the search depth limit. If zero, there is no limit. Overridden by search
	// options if provided.
	Depth uint
	// Hash is the transposition table size in MB. If zero, the engine will not use a
	// transposition table.
	Hash uint
	// Noise adds some centipawn randomness to the leaf evaluations.
	Noise uint
	// OwnBook enables the opening book, if one was configured via WithBook.
	OwnBook bool
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v, ownbook=%v}", o.Depth, o.Hash, o.Noise, o.OwnBook)
}

// Engine encapsulates game-playing logic, search, opening book and persisted preferences.
type Engine struct {
	name, author string

	launcher searchctl.Launcher
	factory  search.TranspositionTableFactory
	seed     int64
	opts     Options
	book     Book
	store    *storage.Storage

	game   *Game
	tt     search.TranspositionTable
	active searchctl.Handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithTable configures the engine to use the given transposition table factory.
func WithTable(factory search.TranspositionTableFactory) Option {
	return func(e *Engine) { e.factory = factory }
}

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithZobrist configures the engine to use the given random seed for evaluation noise
// instead of the default seed of zero. Book lookups do not use it.
func WithZobrist(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithBook configures the opening book to consult before searching.
func WithBook(b Book) Option {
	return func(e *Engine) { e.book = b }
}

// WithStorage configures persistent storage for options and telemetry. If set, the options
// loaded from storage replace any given with WithOptions (storage.DefaultOptions when nothing
// has been saved yet).
func WithStorage(s *storage.Storage) Option {
	return func(e *Engine) { e.store = s }
}

func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:    name,
		author:  author,
		factory: search.NewTranspositionTable,
		book:    NoBook,
	}
	for _, fn := range opts {
		fn(e)
	}
	e.launcher = &searchctl.Iterative{Inner: search.NewIterative(eval.Default{})}

	if e.store != nil {
		if loaded, err := e.store.LoadOptions(); err == nil {
			e.opts = storageToOptions(loaded)
		}
	}

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

func storageToOptions(s *storage.Options) Options {
	return Options{Depth: uint(s.Depth), Hash: uint(s.HashMB), Noise: uint(s.Noise), OwnBook: s.OwnBook}
}

func optionsToStorage(o Options) *storage.Options {
	return &storage.Options{Depth: int(o.Depth), HashMB: int(o.Hash), Noise: int(o.Noise), OwnBook: o.OwnBook}
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Depth = depth
	e.persistOptionsLocked()
}

func (e *Engine) SetHash(size uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Hash = size
	e.persistOptionsLocked()
}

func (e *Engine) SetNoise(millipawns uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Noise = millipawns
	e.persistOptionsLocked()
}

func (e *Engine) SetOwnBook(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.OwnBook = on
	e.persistOptionsLocked()
}

func (e *Engine) persistOptionsLocked() {
	if e.store != nil {
		_ = e.store.SaveOptions(optionsToStorage(e.opts))
	}
}

// Position returns the current position in FEN format. Convenience function.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fen.Encode(e.game.Position())
}

// Reset resets the engine to a new starting position in FEN format.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, TT=%vMB, noise=%vcp", position, e.opts.Depth, e.opts.Hash, e.opts.Noise)

	_, _ = e.haltSearchIfActive(ctx)

	pos, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.game = NewGame(pos)

	e.tt = search.NoTranspositionTable{}
	if e.opts.Hash > 0 {
		e.tt = e.factory(uint64(e.opts.Hash) << 20)
	}

	logw.Infof(ctx, "New position: %v", fen.Encode(e.game.Position()))
	return nil
}

// Move selects the given move, usually an opponent move.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %v", err)
	}

	_, _ = e.haltSearchIfActive(ctx)

	for _, m := range board.GenerateLegal(e.game.Position()) {
		if !candidate.Equals(m.Move) {
			continue
		}
		e.game.Make(m.Move)
		logw.Infof(ctx, "Move %v: %v", m.Move, fen.Encode(e.game.Position()))
		return nil
	}
	return fmt.Errorf("illegal move: %v", candidate)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	if !e.game.CanUnmake() {
		return fmt.Errorf("no move to take back")
	}
	e.game.Unmake()

	logw.Infof(ctx, "Takeback: %v", fen.Encode(e.game.Position()))
	return nil
}

// Analyze analyzes the current position, consulting the opening book first if enabled.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(int(e.opts.Depth))
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", fen.Encode(e.game.Position()), opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	if e.opts.OwnBook {
		if moves, err := e.book.Find(ctx, fen.Encode(e.game.Position())); err == nil && len(moves) > 0 {
			out := make(chan search.PV, 1)
			pv := search.PV{Depth: 0, Moves: []board.Move{moves[0]}}
			out <- pv
			close(out)
			return out, nil
		}
	}

	noise := eval.NewRandom(int(e.opts.Noise), e.seed)
	it := &searchctl.Iterative{Inner: search.NewIterative(eval.WithNoise(eval.Default{}, noise))}

	opt.History = e.game.History()
	handle, out := it.Launch(ctx, e.game.Position().Clone(), e.tt, opt)
	e.active = handle
	return withTelemetry(out, e.store), nil
}

// withTelemetry wraps out so the final PV on the channel is recorded to storage without the
// caller needing to know storage exists.
func withTelemetry(out <-chan search.PV, store *storage.Storage) <-chan search.PV {
	if store == nil {
		return out
	}
	relay := make(chan search.PV, 1)
	go func() {
		defer close(relay)
		var last search.PV
		for pv := range out {
			last = pv
			relay <- pv
		}
		_ = store.RecordSearch(last.Depth, last.Nodes)
	}()
	return relay
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search halted: %v", pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}

// Close releases engine resources, including persistent storage if configured.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store != nil {
		return e.store.Close()
	}
	return nil
}
