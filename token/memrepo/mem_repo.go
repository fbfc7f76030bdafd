package memrepo

import (
	"sync"

	"github.com/jrsteele09/go-microblog-client/token"
)

var _ token.Repo = (*MemRepo)(nil)

// MemRepo is the session storage scope: tokens live for the current
// process only. The Go analogue of sessionStorage.
type MemRepo struct {
	pair *token.Pair
	lock sync.RWMutex
}

func New() *MemRepo {
	return &MemRepo{}
}

func (mr *MemRepo) Read() (*token.Pair, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()
	if mr.pair == nil {
		return nil, nil
	}
	pair := *mr.pair
	return &pair, nil
}

func (mr *MemRepo) Write(pair *token.Pair) error {
	mr.lock.Lock()
	defer mr.lock.Unlock()
	copied := *pair
	mr.pair = &copied
	return nil
}

func (mr *MemRepo) Clear() error {
	mr.lock.Lock()
	defer mr.lock.Unlock()
	mr.pair = nil
	return nil
}
