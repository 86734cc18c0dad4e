// Package cache provides result stores for the analysis pipeline, keyed
// on the weak (filename, byte length) identity. There is no eviction and
// no TTL: the surrounding system runs as a single long-lived worker and a
// false hit from a key collision is an accepted trade-off of the design.
package cache

import (
	"sync"

	"github.com/kdimtricp/videodigest/internal/pipeline"
)

// MemoryStore is the default process-lifetime store.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[pipeline.CacheKey]pipeline.VideoAnalysisResult
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{results: make(map[pipeline.CacheKey]pipeline.VideoAnalysisResult)}
}

func (s *MemoryStore) Get(key pipeline.CacheKey) (pipeline.VideoAnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[key]
	return result, ok
}

func (s *MemoryStore) Put(key pipeline.CacheKey, result pipeline.VideoAnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[key] = result
}
