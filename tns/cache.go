package tns

import (
	"bytes"
	"context"
	"encoding/gob"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// Cache memoizes parsed documents by source content.
//
// Documents are immutable, so one parsed document may be handed to any
// number of callers. Identical sources parsed concurrently are parsed once.
// The zero value is ready to use.
type Cache struct {
	registry sync.Map // key -> *state
}

// state tracks the parse of one source.
type state struct {
	once sync.Once
	doc  *Document
	err  error
}

// hashOptions encodes the options that change parse results using gob and
// hashes them with xxh3.
func hashOptions(o options) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(o.bareLF)

	return xxh3.Hash(buf.Bytes())
}

// Parse parses source, or returns the result of an earlier call with the
// same source and options.
func (c *Cache) Parse(ctx context.Context, source string, opts ...Option) (*Document, error) {
	o := makeOptions(opts...)

	sourceHash := xxh3.HashString(source)
	optsHash := hashOptions(o)
	key := strconv.FormatUint(sourceHash^optsHash, 36)

	value, hit := c.registry.LoadOrStore(key, new(state))

	st, ok := value.(*state)
	if !ok {
		return nil, ErrInvariant.
			With(slog.String("issue", "invalid metadata type in cache"))
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", hit),
	)

	st.once.Do(func() {
		st.doc, st.err = parseWith(ctx, source, o)
	})

	return st.doc, st.err
}

// Len returns the number of cached sources.
func (c *Cache) Len() int {
	n := 0

	c.registry.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}

// Clear removes all cached documents.
func (c *Cache) Clear() {
	c.registry.Clear()
}
