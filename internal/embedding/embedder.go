// Package embedding provides text embedding backends for semantic similarity.
//
// All backends return unit-norm vectors for non-blank text and an empty
// vector for blank text, which callers treat as "no signal".
package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ErrModelUnavailable is returned when the embedding model cannot be loaded
// or does not answer.
var ErrModelUnavailable = errors.New("embedding model unavailable")

// TextEmbedder turns text into a fixed-length unit-norm vector.
// Implementations must be deterministic for a given text and model version.
type TextEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Loader constructs the underlying model. It is called at most once per
// successful load.
type Loader func(ctx context.Context) (TextEmbedder, error)

// Lazy is a process-wide embedder handle. The model is constructed on first
// use and never reloaded. Concurrent callers during cold start wait for the
// single in-flight load; a failed load is reported and retried on the next call.
type Lazy struct {
	load       Loader
	concurrent bool
	log        zerolog.Logger

	initMu sync.Mutex
	model  atomic.Pointer[TextEmbedder]
	loads  atomic.Int64

	// callMu serializes Embed when the model is not safe for concurrent use.
	callMu sync.Mutex
}

// NewLazy wraps load. If concurrent is false, Embed calls against the loaded
// model are serialized.
func NewLazy(load Loader, concurrent bool, logger zerolog.Logger) *Lazy {
	return &Lazy{load: load, concurrent: concurrent, log: logger}
}

// Embed implements TextEmbedder. Blank text returns an empty vector without
// loading the model.
func (l *Lazy) Embed(ctx context.Context, text string) ([]float32, error) {
	if IsBlank(text) {
		return []float32{}, nil
	}

	m, err := l.get(ctx)
	if err != nil {
		return nil, err
	}

	if !l.concurrent {
		l.callMu.Lock()
		defer l.callMu.Unlock()
	}
	return m.Embed(ctx, text)
}

// Loaded reports whether the model has been constructed.
func (l *Lazy) Loaded() bool {
	return l.model.Load() != nil
}

// Loads returns how many times the loader has succeeded (0 or 1).
func (l *Lazy) Loads() int64 {
	return l.loads.Load()
}

func (l *Lazy) get(ctx context.Context) (TextEmbedder, error) {
	if m := l.model.Load(); m != nil {
		return *m, nil
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	if m := l.model.Load(); m != nil {
		return *m, nil
	}

	l.log.Info().Msg("embeddings: loading model")
	start := time.Now()
	m, err := l.load(ctx)
	if err != nil {
		l.log.Error().Err(err).Msg("embeddings: model load failed")
		if errors.Is(err, ErrModelUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: loader returned no model", ErrModelUnavailable)
	}

	l.model.Store(&m)
	l.loads.Add(1)
	l.log.Info().Dur("load_ms", time.Since(start)).Msg("embeddings: model loaded")
	return m, nil
}

// IsBlank reports whether text is empty or whitespace only.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
