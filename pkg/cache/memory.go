package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Memory is an in-process store with least-recently-used eviction.
type Memory struct {
	mu      sync.Mutex
	max     int
	ttl     time.Duration
	order   *list.List
	entries map[string]*list.Element
	closed  bool

	// now is replaced in tests.
	now func() time.Time
}

type memoryItem struct {
	key     string
	entry   Entry
	expires time.Time
}

// NewMemory returns a store holding at most max entries. A max of zero or
// less means 256.
func NewMemory(max int, ttl time.Duration) *Memory {
	if max <= 0 {
		max = 256
	}
	return &Memory{
		max:     max,
		ttl:     ttl,
		order:   list.New(),
		entries: make(map[string]*list.Element),
		now:     time.Now,
	}
}

// Get returns a copy of the entry stored under key.
func (m *Memory) Get(_ context.Context, key string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	el, ok := m.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	it := el.Value.(*memoryItem)
	if !it.expires.IsZero() && m.now().After(it.expires) {
		m.remove(el)
		return nil, ErrMiss
	}
	m.order.MoveToFront(el)
	e := it.entry
	return &e, nil
}

// Set stores a copy of e, evicting the least recently used entry when full.
func (m *Memory) Set(_ context.Context, key string, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	var expires time.Time
	if m.ttl > 0 {
		expires = m.now().Add(m.ttl)
	}
	if el, ok := m.entries[key]; ok {
		it := el.Value.(*memoryItem)
		it.entry, it.expires = *e, expires
		m.order.MoveToFront(el)
		return nil
	}
	m.entries[key] = m.order.PushFront(&memoryItem{key: key, entry: *e, expires: expires})
	for m.order.Len() > m.max {
		m.remove(m.order.Back())
	}
	return nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[key]; ok {
		m.remove(el)
	}
	return nil
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// Close drops all entries.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.order.Init()
	m.entries = make(map[string]*list.Element)
	return nil
}

func (m *Memory) remove(el *list.Element) {
	m.order.Remove(el)
	delete(m.entries, el.Value.(*memoryItem).key)
}
