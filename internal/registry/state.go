package registry

import (
	"sync"

	"github.com/rickgao/auctionhouse/internal/auction"
)

// registryState holds the append-only auction list.
type registryState struct {
	mu sync.RWMutex

	// auctions[id-1] is the auction with that id.
	auctions []*auction.Auction
	nextID   int
	closed   bool
}

func newState() *registryState {
	return &registryState{nextID: 1}
}

// get returns the auction with id (read-locked).
func (s *registryState) get(id int) (*auction.Auction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 1 || id > len(s.auctions) {
		return nil, false
	}
	return s.auctions[id-1], true
}

// list returns a copy of the auction list (read-locked).
func (s *registryState) list() []*auction.Auction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*auction.Auction, len(s.auctions))
	copy(out, s.auctions)
	return out
}

// add assigns the next id and appends the auction built by build
// (write-locked). build runs under the lock so ids and slice positions
// match; it must not take any other lock.
func (s *registryState) add(build func(id int) (*auction.Auction, error)) (*auction.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	a, err := build(s.nextID)
	if err != nil {
		return nil, err
	}
	s.auctions = append(s.auctions, a)
	s.nextID++
	return a, nil
}

// close rejects further additions (write-locked).
func (s *registryState) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// len returns the number of auctions (read-locked).
func (s *registryState) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.auctions)
}
