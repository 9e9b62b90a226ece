package services

import (
	"sort"
	"sync"

	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
)

// accountLocks serializes read-modify-write sequences per account so
// two transactions racing on the same account cannot lose updates.
// Locks are always taken in ascending number order.
type accountLocks struct {
	mu    sync.Mutex
	locks map[entities.AccountNumber]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[entities.AccountNumber]*sync.Mutex)}
}

func (l *accountLocks) get(number entities.AccountNumber) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[number]
	if !ok {
		m = new(sync.Mutex)
		l.locks[number] = m
	}

	return m
}

// Lock acquires the mutexes of all given accounts and returns the
// matching unlock function. Duplicate numbers are collapsed.
func (l *accountLocks) Lock(numbers ...entities.AccountNumber) func() {
	uniq := make([]entities.AccountNumber, 0, len(numbers))
	seen := make(map[entities.AccountNumber]struct{}, len(numbers))
	for _, n := range numbers {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			uniq = append(uniq, n)
		}
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })

	held := make([]*sync.Mutex, 0, len(uniq))
	for _, n := range uniq {
		m := l.get(n)
		m.Lock()
		held = append(held, m)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
