// Package cache adds a bounded memoization layer in front of a
// compiled evaluator.Callable. Compiling an expression is cheap
// relative to evaluating it against millions of features at many
// zooms; Memoize reuses the purity flags spec §4.5 already computes
// (isFeatureConstant / isZoomConstant) to pick a cache key, rather than
// introducing any new concept of its own.
package cache

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/tilepaint/exprlang/internal/runtime"
)

// keyer derives a cache key for one (zoom, feature) evaluation. When
// the wrapped expression is feature-constant the feature never enters
// the key; when it is also zoom-constant, Memoize skips the cache
// entirely and evaluates once, lazily, on first call.
type keyer func(zoom float64, feature runtime.Feature) (string, bool)

// Memoize wraps a Callable with a bounded LRU. Keying:
//   - isZoomConstant && isFeatureConstant: evaluated once, cached forever.
//   - isFeatureConstant only: keyed by zoom.
//   - otherwise: keyed by (zoom, feature.id) when the feature carries a
//     stable id (spec §6's feature.id); features with no id bypass the
//     cache, since there is no stable key to memoize against.
func Memoize(call func(zoom float64, feature runtime.Feature) (interface{}, error), isFeatureConstant, isZoomConstant bool, capacity int) func(zoom float64, feature runtime.Feature) (interface{}, error) {
	if isFeatureConstant && isZoomConstant {
		var once sync.Once
		var value interface{}
		var err error
		return func(zoom float64, feature runtime.Feature) (interface{}, error) {
			once.Do(func() { value, err = call(zoom, feature) })
			return value, err
		}
	}

	lru := newLRU(capacity)
	key := func(zoom float64, feature runtime.Feature) (string, bool) {
		if isFeatureConstant {
			return fmt.Sprintf("z:%g", zoom), true
		}
		if !feature.HasID {
			return "", false
		}
		return fmt.Sprintf("z:%g|id:%v", zoom, feature.ID), true
	}

	return func(zoom float64, feature runtime.Feature) (interface{}, error) {
		k, ok := key(zoom, feature)
		if !ok {
			return call(zoom, feature)
		}
		if v, found := lru.get(k); found {
			entry := v.(cacheEntry)
			return entry.value, entry.err
		}
		value, err := call(zoom, feature)
		lru.put(k, cacheEntry{value: value, err: err})
		return value, err
	}
}

type cacheEntry struct {
	value interface{}
	err   error
}

// lru is a small fixed-capacity cache, the same "doubly-linked list +
// map" shape as any textbook LRU; kept unexported since Memoize is the
// only entry point this package needs to expose.
type lru struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

type lruItem struct {
	key   string
	value interface{}
}

func newLRU(capacity int) *lru {
	if capacity <= 0 {
		capacity = 1
	}
	return &lru{capacity: capacity, ll: list.New(), items: make(map[string]*list.Element)}
}

func (c *lru) get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*lruItem).value, true
}

func (c *lru) put(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value.(*lruItem).value = value
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&lruItem{key: key, value: value})
	c.items[key] = el
	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.items, oldest.Value.(*lruItem).key)
		}
	}
}
