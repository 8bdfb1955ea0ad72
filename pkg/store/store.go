// Package store holds the live set of menu contributions and republishes the
// resolved menu after every change.
//
// A [Store] is an explicitly constructed value owned by the host application;
// there is no package-level registry. Contributions are added in batches with
// [Store.Add], which returns a [Handle]. Disposing the handle removes exactly
// that batch, by identity: two batches with identical content are independent.
//
//	s := store.New(store.WithLogger(logger))
//	cancel := s.Subscribe(func(r *solver.Result) { render(r.Nodes) })
//	defer cancel()
//
//	h := s.Add(saveItem, openItem)
//	defer h.Dispose()
//
// Every mutation resolves the full declaration set from scratch and delivers
// the result to subscribers before returning. Mutations are serialised, so a
// caller that observes the tree after Add or Dispose returns always sees the
// complete current set.
package store

import (
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/menusolver/pkg/menu"
	"github.com/matzehuels/menusolver/pkg/observability"
	"github.com/matzehuels/menusolver/pkg/solver"
)

// Listener receives each newly published result.
type Listener func(*solver.Result)

// Option configures a Store.
type Option func(*Store)

// WithSolver sets the solver used to resolve the declarations.
func WithSolver(s *solver.Solver) Option {
	return func(st *Store) { st.solver = s }
}

// WithLogger sets the logger used for store events.
func WithLogger(l *log.Logger) Option {
	return func(st *Store) { st.logger = l }
}

// Store owns the current menu declarations.
type Store struct {
	mu        sync.Mutex
	solver    *solver.Solver
	logger    *log.Logger
	batches   []*Handle
	byID      map[string]*Handle
	listeners map[int]Listener
	nextSub   int
	current   *solver.Result
}

// New creates an empty store. Its initial result is an empty menu.
func New(opts ...Option) *Store {
	s := &Store{
		byID:      make(map[string]*Handle),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.solver == nil {
		s.solver = solver.New(solver.WithLogger(s.logger))
	}
	s.current = s.solver.Solve(nil)
	return s
}

// Handle identifies one contribution batch.
type Handle struct {
	id    string
	store *Store
	items []*menu.Declaration
	live  bool
}

// ID returns the handle's opaque identifier.
func (h *Handle) ID() string { return h.id }

// Len returns the number of declarations in the batch.
func (h *Handle) Len() int { return len(h.items) }

// Dispose removes the batch from its store and republishes the menu.
// Disposing twice is a no-op.
func (h *Handle) Dispose() {
	h.store.dispose(h)
}

// Disposed reports whether the batch has been removed.
func (h *Handle) Disposed() bool {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return !h.live
}

// Add appends items as one batch and republishes the menu. Nil and malformed
// items are stored as given and skipped by the solver. The returned handle
// removes exactly these items.
func (s *Store) Add(items ...*menu.Declaration) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := &Handle{
		id:    uuid.NewString(),
		store: s,
		items: slices.Clone(items),
		live:  true,
	}
	s.batches = append(s.batches, h)
	s.byID[h.id] = h

	observability.Store().OnAdd(h.id, len(h.items))
	if s.logger != nil {
		s.logger.Debug("added contributions", "handle", h.id, "items", len(h.items))
	}
	s.publishLocked()
	return h
}

// Dispose removes the batch with the given id. It reports whether a live
// batch was found.
func (s *Store) Dispose(id string) bool {
	s.mu.Lock()
	h, ok := s.byID[id]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return s.dispose(h)
}

func (s *Store) dispose(h *Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !h.live {
		return false
	}
	h.live = false
	s.batches = slices.DeleteFunc(s.batches, func(b *Handle) bool { return b == h })
	delete(s.byID, h.id)

	observability.Store().OnDispose(h.id, len(h.items))
	if s.logger != nil {
		s.logger.Debug("disposed contributions", "handle", h.id, "items", len(h.items))
	}
	s.publishLocked()
	return true
}

// Handle returns the live batch with the given id.
func (s *Store) Handle(id string) (*Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.byID[id]
	return h, ok
}

// Handles returns the live batches in contribution order.
func (s *Store) Handles() []*Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.batches)
}

// Items returns the live declarations in contribution order.
func (s *Store) Items() []*menu.Declaration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

// Len returns the number of live declarations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b.items)
	}
	return n
}

// Result returns the most recently published result.
func (s *Store) Result() *solver.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Menu returns the most recently published tree.
func (s *Store) Menu() []menu.Node {
	return s.Result().Nodes
}

// Subscribe registers fn for future publications and returns a function that
// unregisters it. fn is called synchronously while the store is locked and
// must not call back into the store.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
		})
	}
}

func (s *Store) itemsLocked() []*menu.Declaration {
	var out []*menu.Declaration
	for _, b := range s.batches {
		out = append(out, b.items...)
	}
	return out
}

// publishLocked resolves the current declarations and notifies listeners in
// subscription order.
func (s *Store) publishLocked() {
	items := s.itemsLocked()
	s.current = s.solver.Solve(items)

	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	observability.Store().OnPublish(len(items), len(ids))
	for _, id := range ids {
		s.listeners[id](s.current)
	}
}
