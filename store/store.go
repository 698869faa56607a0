package store

import (
	"slices"

	"github.com/JorrenH/solid-fluent-store/debug"
	"github.com/JorrenH/solid-fluent-store/value"
)

// Setter is the positional setter of a store:
//
//	set(seg1, seg2, ..., segN, valueOrUpdater)
//
// See Store.Set.
type Setter func(args ...any) error

type Option func(*Store)

// Name sets a label used in debug output.
func Name(name string) Option {
	return func(s *Store) {
		s.name = name
	}
}

// Store holds a document and applies positional writes to it. Each write
// produces a new root which shares every untouched subtree with the
// previous one, so nodes obtained from the store are never modified.
//
// A Store is not safe for concurrent use.
type Store struct {
	name    string
	root    *value.Node
	version uint64

	depth   int
	pending bool

	nextID    int
	observers []observer
}

type observer struct {
	id int
	fn func(Snapshot)
}

// New creates a store holding initial, converted with value.FromAny.
func New(initial any, opts ...Option) (*Store, error) {
	root, err := value.FromAny(initial)
	if err != nil {
		return nil, err
	}
	s := &Store{root: root}
	for _, opt := range opts {
		opt(s)
	}
	if debug.Store() {
		debug.Logf("store %q created with %s\n", s.name, root)
	}
	return s, nil
}

// Create is New returning the snapshot and setter pair.
func Create(initial any, opts ...Option) (Snapshot, Setter, error) {
	s, err := New(initial, opts...)
	if err != nil {
		return Snapshot{}, nil, err
	}
	return s.Snapshot(), s.Set, nil
}

func (s *Store) Name() string {
	return s.name
}

// Version counts the writes which changed the document.
func (s *Store) Version() uint64 {
	return s.version
}

// Snapshot returns a live read-only handle on the document.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{s: s}
}

// Setter returns s.Set as a Setter.
func (s *Store) Setter() Setter {
	return s.Set
}

// Observe registers fn to be called after every write that changes the
// document, or once at the end of the outermost Batch in which such writes
// happened. The returned function unregisters fn.
func (s *Store) Observe(fn func(Snapshot)) func() {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		s.observers = slices.DeleteFunc(s.observers, func(o observer) bool {
			return o.id == id
		})
	}
}

// Batch runs fn, deferring observer notification until it returns. Writes
// inside fn are applied immediately. Batches nest; only the outermost one
// notifies.
func (s *Store) Batch(fn func()) {
	s.depth++
	if debug.Batch() {
		debug.Logf("store %q batch enter depth %d\n", s.name, s.depth)
	}
	defer func() {
		s.depth--
		if debug.Batch() {
			debug.Logf("store %q batch exit depth %d pending %t\n", s.name, s.depth+1, s.pending)
		}
		if s.depth == 0 && s.pending {
			s.pending = false
			s.notify()
		}
	}()
	fn()
}

func (s *Store) changed() {
	if s.depth > 0 {
		s.pending = true
		return
	}
	s.notify()
}

func (s *Store) notify() {
	snap := s.Snapshot()
	for _, o := range slices.Clone(s.observers) {
		o.fn(snap)
	}
}
