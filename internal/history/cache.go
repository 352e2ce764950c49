package history

import (
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of generations a session keeps.
const DefaultCapacity = 10

// ErrNotFound is returned when an entry id is not in the cache.
var ErrNotFound = errors.New("history entry not found")

// Entry is one retained generation and the inputs that produced it.
// Entries handed out by the cache are copies.
type Entry struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Document  string            `json:"document"`
	Input     map[string]string `json:"input"`
}

func (e Entry) clone() Entry {
	e.Input = maps.Clone(e.Input)
	return e
}

// Cache is a fixed-capacity, insertion-ordered store of entries. When full,
// the oldest inserted entry is evicted. A Cache belongs to one session and is
// not safe for concurrent use.
type Cache struct {
	entries  []Entry
	capacity int
	now      func() time.Time
	newID    func() string
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithIDs overrides the entry id generator.
func WithIDs(newID func() string) Option {
	return func(c *Cache) { c.newID = newID }
}

// New returns an empty cache. A non-positive capacity means DefaultCapacity.
func New(capacity int, opts ...Option) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Insert stores a document with the inputs used to generate it, evicting the
// oldest entry first when the cache is full. The input is stored as given;
// completeness is the caller's concern.
func (c *Cache) Insert(document string, input map[string]string) Entry {
	e := Entry{
		ID:        c.newID(),
		Timestamp: c.now(),
		Document:  document,
		Input:     maps.Clone(input),
	}
	if len(c.entries) == c.capacity {
		copy(c.entries, c.entries[1:])
		c.entries[len(c.entries)-1] = Entry{}
		c.entries = c.entries[:len(c.entries)-1]
	}
	c.entries = append(c.entries, e)
	return e.clone()
}

// List returns all entries, newest first.
func (c *Cache) List() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for i := len(c.entries) - 1; i >= 0; i-- {
		out = append(out, c.entries[i].clone())
	}
	return out
}

// Get returns the entry with the given id.
func (c *Cache) Get(id string) (Entry, error) {
	i := c.index(id)
	if i < 0 {
		return Entry{}, ErrNotFound
	}
	return c.entries[i].clone(), nil
}

// Remove deletes exactly the entry with the given id, keeping the order of
// the rest. The cache is unchanged when the id is absent.
func (c *Cache) Remove(id string) error {
	i := c.index(id)
	if i < 0 {
		return ErrNotFound
	}
	c.entries = slices.Delete(c.entries, i, i+1)
	return nil
}

// Clear removes every entry.
func (c *Cache) Clear() {
	clear(c.entries)
	c.entries = c.entries[:0]
}

// Len returns the number of retained entries.
func (c *Cache) Len() int { return len(c.entries) }

// Cap returns the maximum number of retained entries.
func (c *Cache) Cap() int { return c.capacity }

func (c *Cache) index(id string) int {
	for i := range c.entries {
		if c.entries[i].ID == id {
			return i
		}
	}
	return -1
}
