package cache

import (
	"errors"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"hibp/metrics"
)

// RangeLRU holds recently fetched password range responses, keyed by
// hash mode and 5-character prefix. Entries expire after a fixed TTL so
// newly ingested breaches show up eventually.
type RangeLRU struct {
	c   *lru.Cache[string, item]
	ttl time.Duration
	mu  sync.Mutex
}
type item struct {
	suffixes map[string]int
	exp      time.Time
}

func NewRangeLRU(size int, ttl time.Duration) (*RangeLRU, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be positive")
	}
	if size > 100000 {
		return nil, errors.New("cache size too large")
	}
	c, err := lru.New[string, item](size)
	if err != nil {
		return nil, err
	}
	return &RangeLRU{c: c, ttl: ttl}, nil
}

func (l *RangeLRU) Get(key string) (map[string]int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	it, ok := l.c.Get(key)
	if !ok {
		metrics.RangeCacheMisses.Inc()
		return nil, false
	}
	if time.Now().After(it.exp) {
		l.c.Remove(key)
		metrics.RangeCacheMisses.Inc()
		return nil, false
	}
	metrics.RangeCacheHits.Inc()
	return it.suffixes, true
}

func (l *RangeLRU) Set(key string, suffixes map[string]int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.Add(key, item{
		suffixes: suffixes,
		exp:      time.Now().Add(l.ttl),
	})
}
