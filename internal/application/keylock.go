package application

import (
	"sync"

	"bannerbot/internal/domain/entities"
)

// keyedMutex serializes work per conversation. Entries are dropped once no
// caller holds or waits on them. The zero value is ready to use.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[entities.ConversationKey]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

// Lock blocks until key is free and returns the matching unlock.
func (k *keyedMutex) Lock(key entities.ConversationKey) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[entities.ConversationKey]*refMutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
