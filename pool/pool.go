package pool

import (
	"fmt"
	"slices"
	"sync"
)

// Simple round-robin pool, hands items out in order and wraps around

type Pool[T comparable] struct {
	Items []T

	index       int
	accessMutex sync.Mutex
}

// Intialize a new pool over items, starting at the first one
func New[T comparable](items []T) (*Pool[T], error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("pool needs at least one item")
	}

	return &Pool[T]{Items: slices.Clone(items)}, nil
}

// Current item, without moving
func (pool *Pool[T]) Current() T {
	pool.accessMutex.Lock()
	defer pool.accessMutex.Unlock()

	return pool.Items[pool.index]
}

// Move to the next item (wrapping) and return it
func (pool *Pool[T]) Next() T {
	pool.accessMutex.Lock()
	defer pool.accessMutex.Unlock()

	if pool.index == len(pool.Items)-1 {
		pool.index = 0
	} else {
		pool.index++
	}

	return pool.Items[pool.index]
}

// Move to the previous item (wrapping) and return it
func (pool *Pool[T]) Prev() T {
	pool.accessMutex.Lock()
	defer pool.accessMutex.Unlock()

	if pool.index == 0 {
		pool.index = len(pool.Items) - 1
	} else {
		pool.index--
	}

	return pool.Items[pool.index]
}

// Point the pool at item, returns false (and doesn't move) if it isn't in the pool
func (pool *Pool[T]) Select(item T) bool {
	pool.accessMutex.Lock()
	defer pool.accessMutex.Unlock()

	i := slices.Index(pool.Items, item)
	if i < 0 {
		return false
	}

	pool.index = i
	return true
}
