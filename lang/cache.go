package lang

import (
	"container/list"
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// DefaultCacheSize is the number of parsed programs kept by the program
// cache. The least recently used program is evicted first. A size of zero or
// less disables storing. Users may modify this before parsing.
var DefaultCacheSize = 1024

// programCache stores parsed programs keyed by (source_hash:max_depth).
// Programs are immutable once parsed, so a cached tree may be evaluated by
// any number of interpreters at once.
var programCache = newLRU()

type cached struct {
	key  string
	prog *StatementList
}

type lru struct {
	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List // front is most recently used
}

func newLRU() *lru {
	return &lru{items: make(map[string]*list.Element), order: list.New()}
}

func (c *lru) load(key string) (*StatementList, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}

	c.order.MoveToFront(elem)

	return elem.Value.(*cached).prog, true
}

func (c *lru) store(key string, prog *StatementList) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*cached).prog = prog
		c.order.MoveToFront(elem)
	} else {
		c.items[key] = c.order.PushFront(&cached{key: key, prog: prog})
	}

	for c.order.Len() > max(DefaultCacheSize, 0) {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cached).key)
	}
}

func (c *lru) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

func (c *lru) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.items)
	c.order.Init()
}

// ParseReader parses input from an io.Reader and returns the program.
// The parsed program is cached by content for later calls.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*StatementList, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return parseCached(ctx, string(data), cfg, opts...)
}

// parseCached parses source, consulting the program cache first when caching
// is enabled.
//
// Only programs that parsed without any lexical diagnostics are stored, so
// every parse of malformed input reports its diagnostics again.
func parseCached(
	ctx context.Context,
	source string,
	cfg config,
	opts ...Option,
) (*StatementList, error) {
	if !cfg.cache {
		return Parse(ctx, source, opts...)
	}

	sourceHash := xxh3.HashString(source)
	key := strconv.FormatUint(sourceHash, 36) + ":" + strconv.Itoa(cfg.maxDepth)

	if prog, ok := programCache.load(key); ok {
		cfg.logger.TraceContext(
			ctx,
			"cache lookup",
			slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
			slog.Bool("cache_hit", true),
		)

		return prog, nil
	}

	var diagnostics atomic.Int32

	counted := func(err error) {
		diagnostics.Add(1)

		if cfg.diagnostics != nil {
			cfg.diagnostics(err)
		}
	}

	prog, err := Parse(ctx, source, append(opts, WithDiagnostics(counted))...)
	if err != nil {
		return nil, err
	}

	if diagnostics.Load() == 0 {
		programCache.store(key, prog)
	}

	cfg.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.Bool("cache_hit", false),
		slog.Int("diagnostics", int(diagnostics.Load())),
	)

	return prog, nil
}

// ClearCache removes all cached programs.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	programCache.clear()
}
