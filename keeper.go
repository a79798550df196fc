package atmgo

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

// keeper hands out one exclusive lock per account id so that mutations on
// the same account are fully serialized while distinct accounts proceed in
// parallel. Locks are created lazily on first reference. Entries are never
// removed: a deleted id is terminal and never reused, so the table is
// bounded by the ids seen over the process lifetime.
type keeper struct {
	mu    sync.Mutex
	locks map[snowflake.ID]*sync.Mutex
}

func newKeeper() *keeper {
	return &keeper{locks: make(map[snowflake.ID]*sync.Mutex)}
}

func (k *keeper) lockFor(id snowflake.ID) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[id]
	if !ok {
		l = &sync.Mutex{}
		k.locks[id] = l
	}
	return l
}

// withLock runs fn with exclusive access to id, releasing the lock on every
// exit path of fn. The lock layer is agnostic to whether the account exists;
// existence is checked by fn against the store.
func (k *keeper) withLock(id snowflake.ID, fn func() error) error {
	l := k.lockFor(id)
	l.Lock()
	defer l.Unlock()
	return fn()
}
