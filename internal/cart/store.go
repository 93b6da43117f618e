package cart

import (
	"sync"

	"go.uber.org/zap"

	"github.com/jafarshop/coffeeshop/internal/domain"
)

// line is one cart entry plus its sync bookkeeping
type line struct {
	item domain.CartLineItem
	// confirmed is the last quantity the backend acknowledged
	confirmed int
	// rev is the store revision of the last local change to this line
	rev uint64
	// inflight counts local changes not yet settled with the backend
	inflight int
}

// mutation describes a local quantity change
type mutation struct {
	item    domain.CartLineItem
	rev     uint64
	changed bool
}

// Store holds the client-side cart. Only the Syncer writes to it; everything
// exported is a read-only projection.
type Store struct {
	mu     sync.RWMutex
	logger *zap.Logger

	cartID string
	lines  []*line
	index  map[int64]*line
	loaded bool

	// rev increases on every local change
	rev uint64
	// removed maps item ids to the revision they were removed at
	removed    map[int64]uint64
	clearedRev uint64
}

// NewStore creates an empty cart store
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		logger:  logger,
		index:   make(map[int64]*line),
		removed: make(map[int64]uint64),
	}
}

// CartID returns the active cart identifier, empty until known
func (s *Store) CartID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartID
}

// Loaded reports whether a fetch has ever been applied
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Items returns a copy of the line items in store order
func (s *Store) Items() []domain.CartLineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.CartLineItem, len(s.lines))
	for i, l := range s.lines {
		items[i] = l.item
	}
	return items
}

// Item returns a single line item by id
func (s *Store) Item(id int64) (domain.CartLineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.index[id]
	if !ok {
		return domain.CartLineItem{}, false
	}
	return l.item, true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Sorted returns a sorted projection of the current items
func (s *Store) Sorted(criterion domain.SortCriterion) []domain.CartLineItem {
	return SortedView(s.Items(), criterion)
}

// Subtotal of the current items
func (s *Store) Subtotal() string {
	return Subtotal(s.Items())
}

func (s *Store) setCartID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartID = id
}

func (s *Store) revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// replace applies a remote snapshot fetched when the store was at revision since.
// Lines changed locally after since, or still waiting on the backend, keep their
// local quantity. Lines removed and carts cleared after since stay gone.
// It returns false when the snapshot was discarded.
func (s *Store) replace(items []domain.CartLineItem, since uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clearedRev > since {
		s.logger.Debug("Discarding cart snapshot older than last clear",
			zap.Uint64("since", since),
			zap.Uint64("cleared_rev", s.clearedRev),
		)
		return false
	}

	lines := make([]*line, 0, len(items))
	index := make(map[int64]*line, len(items))

	for _, item := range items {
		if _, dup := index[item.ID]; dup {
			s.logger.Warn("Duplicate cart item in snapshot", zap.Int64("item_id", item.ID))
			continue
		}
		if removedAt, ok := s.removed[item.ID]; ok && removedAt > since {
			continue
		}
		if item.Quantity < 1 {
			s.logger.Warn("Cart item with quantity below one",
				zap.Int64("item_id", item.ID),
				zap.Int("quantity", item.Quantity),
			)
			item.Quantity = 1
		}

		l, ok := s.index[item.ID]
		if !ok {
			l = &line{item: item, confirmed: item.Quantity}
		} else if l.rev > since || l.inflight > 0 {
			quantity := l.item.Quantity
			l.item = item
			l.item.Quantity = quantity
		} else {
			l.item = item
			l.confirmed = item.Quantity
		}

		lines = append(lines, l)
		index[item.ID] = l
	}

	// Tombstones at or before since are reflected in this snapshot
	for id, removedAt := range s.removed {
		if removedAt <= since {
			delete(s.removed, id)
		}
	}

	s.lines = lines
	s.index = index
	s.loaded = true
	return true
}

// adjust changes a line's quantity by delta, never below one
func (s *Store) adjust(id int64, delta int) (mutation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.index[id]
	if !ok {
		return mutation{}, false
	}

	quantity := l.item.Quantity + delta
	if quantity < 1 {
		quantity = 1
	}
	if quantity == l.item.Quantity {
		return mutation{item: l.item, rev: l.rev}, true
	}

	s.rev++
	l.item.Quantity = quantity
	l.rev = s.rev
	l.inflight++

	return mutation{item: l.item, rev: l.rev, changed: true}, true
}

// pending returns the quantity and revision a queued update should send
func (s *Store) pending(id int64) (int, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.index[id]
	if !ok {
		return 0, 0, false
	}
	return l.item.Quantity, l.rev, true
}

// confirm records a quantity the backend acknowledged
func (s *Store) confirm(id int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.index[id]; ok {
		l.confirmed = quantity
	}
}

// settle marks one local change as finished with the backend
func (s *Store) settle(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.index[id]; ok && l.inflight > 0 {
		l.inflight--
	}
}

// rollback restores the confirmed quantity if no newer change happened since rev
func (s *Store) rollback(id int64, rev uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.index[id]
	if !ok || l.rev != rev || l.item.Quantity == l.confirmed {
		return false
	}

	s.rev++
	l.item.Quantity = l.confirmed
	l.rev = s.rev
	return true
}

// remove drops a line the backend already deleted
func (s *Store) remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return false
	}

	s.rev++
	delete(s.index, id)
	for i, l := range s.lines {
		if l.item.ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			break
		}
	}
	s.removed[id] = s.rev
	return true
}

// clear empties the store after the backend cleared the cart
func (s *Store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rev++
	s.lines = nil
	s.index = make(map[int64]*line)
	s.removed = make(map[int64]uint64)
	s.clearedRev = s.rev
}
