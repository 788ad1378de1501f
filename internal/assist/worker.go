package assist

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/engine"
)

// Worker implements engine.Assistant. Each Begin starts a search in its own
// goroutine; a newer Begin makes the result of an older search stale, and
// stale results are dropped.
type Worker struct {
	weights Weights
	inline  bool
	log     *log.Logger

	mu     sync.Mutex
	gen    uint64
	result engine.Suggestion

	done    atomic.Bool
	running atomic.Int32
	wg      sync.WaitGroup
}

// Option configures a Worker.
type Option func(*Worker)

// WithWeights replaces DefaultWeights.
func WithWeights(w Weights) Option {
	return func(wk *Worker) { wk.weights = w }
}

// Inline makes Begin search on the caller's goroutine. Completion then no
// longer depends on scheduling, which keeps bot-driven runs reproducible.
func Inline() Option {
	return func(wk *Worker) { wk.inline = true }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(wk *Worker) { wk.log = l }
}

// NewWorker creates an idle worker.
func NewWorker(opts ...Option) *Worker {
	w := &Worker{
		weights: DefaultWeights,
		log:     log.New(io.Discard),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Begin starts a search for req. It never blocks on a running search.
func (w *Worker) Begin(req engine.Request) {
	w.mu.Lock()
	w.gen++
	gen := w.gen
	w.mu.Unlock()
	w.done.Store(false)

	if w.inline {
		w.finish(gen, Search(req, w.weights))
		return
	}

	w.wg.Add(1)
	w.running.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.running.Add(-1)
		w.finish(gen, Search(req, w.weights))
	}()
}

func (w *Worker) finish(gen uint64, s engine.Suggestion) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		w.log.Debug("stale search dropped", "piece", s.PieceNo)
		return
	}
	w.result = s
	w.done.Store(true)
	w.log.Debug("search done", "piece", s.PieceNo, "x", s.X, "dir", s.Dir, "hold", s.Hold, "score", s.Score)
}

// Done reports whether the latest search has finished.
func (w *Worker) Done() bool { return w.done.Load() }

// Suggestion returns the latest finished result.
func (w *Worker) Suggestion() engine.Suggestion {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// Running returns the number of searches still in flight.
func (w *Worker) Running() int { return int(w.running.Load()) }

// Wait blocks until every started search has returned.
func (w *Worker) Wait() { w.wg.Wait() }

var _ engine.Assistant = (*Worker)(nil)
