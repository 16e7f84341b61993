// Package cache stores rendered documents between requests.
//
// Entries are keyed by a digest of the document source and the render
// settings, so a changed file or a changed setting is a different key and
// stale entries simply age out. Three stores are provided: Nop, an
// in-process Memory store bounded by entry count, and a Redis store for
// previews served by more than one process.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vango-dev/markup/pkg/render"
)

// ErrMiss is returned by Get when the key is not cached.
var ErrMiss = errors.New("cache: miss")

// ErrClosed is returned after Close.
var ErrClosed = errors.New("cache: closed")

// Entry is a rendered document.
type Entry struct {
	Body     []byte    `msgpack:"b"`
	ETag     string    `msgpack:"e"`
	Source   string    `msgpack:"s"`
	Rendered time.Time `msgpack:"t"`
}

// Cache stores entries by key. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, e *Entry) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key derives the cache key for a document source rendered with cfg.
func Key(source []byte, cfg render.RendererConfig) string {
	h := sha256.New()
	fmt.Fprintf(h, "%t|%q|%t|%t|", cfg.Pretty, cfg.Indent, cfg.OmitDoctype, cfg.SkipValidation)
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}

// ETag returns a strong entity tag for body.
func ETag(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}

// NewEntry builds an entry for body rendered from source.
func NewEntry(source string, body []byte) *Entry {
	return &Entry{
		Body:     body,
		ETag:     ETag(body),
		Source:   source,
		Rendered: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Marshal encodes e for storage.
func (e *Entry) Marshal() ([]byte, error) {
	return msgpack.Marshal(e)
}

// UnmarshalEntry decodes an entry produced by Marshal.
func UnmarshalEntry(data []byte) (*Entry, error) {
	var e Entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("cache: decode entry: %w", err)
	}
	return &e, nil
}

// Options selects and configures a store.
type Options struct {
	// Driver is "none", "memory" or "redis".
	Driver string

	// URL is the redis URL for the redis driver.
	URL string

	// TTL bounds the lifetime of entries. Zero keeps entries until evicted.
	TTL time.Duration

	// MaxEntries bounds the memory store.
	MaxEntries int

	// Prefix is prepended to redis keys. Defaults to "markup:render:".
	Prefix string
}

// Open returns the store described by opts.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Driver {
	case "", "none":
		return Nop{}, nil
	case "memory":
		return NewMemory(opts.MaxEntries, opts.TTL), nil
	case "redis":
		return DialRedis(ctx, opts.URL, opts.TTL, WithPrefix(opts.Prefix))
	}
	return nil, fmt.Errorf("cache: unknown driver %q", opts.Driver)
}

// Nop caches nothing.
type Nop struct{}

func (Nop) Get(context.Context, string) (*Entry, error) { return nil, ErrMiss }
func (Nop) Set(context.Context, string, *Entry) error   { return nil }
func (Nop) Delete(context.Context, string) error        { return nil }
func (Nop) Close() error                                { return nil }
