package transfer

import "sync"

// lockTable hands out one mutex per wallet id so that transfers touching a
// common wallet serialize while disjoint pairs proceed in parallel.
type lockTable struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[int64]*sync.Mutex)}
}

func (t *lockTable) get(id int64) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[id]
	if !ok {
		l = &sync.Mutex{}
		t.locks[id] = l
	}
	return l
}

// LockPair acquires exclusive access to both wallets, always locking the
// lower id first so that A→B and B→A transfers cannot deadlock. The returned
// function releases both locks.
func (t *lockTable) LockPair(a, b int64) func() {
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	fl, sl := t.get(first), t.get(second)
	fl.Lock()
	sl.Lock()
	return func() {
		sl.Unlock()
		fl.Unlock()
	}
}
