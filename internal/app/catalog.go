package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"travelguide/internal/domain"
)

// CatalogService is the only way handlers reach the collections. Reads by id
// go through the cache; every write evicts the key it touched.
type CatalogService struct {
	repo     domain.Repository
	cache    domain.Cache
	cacheTTL time.Duration

	// fillMu orders cache fills against evictions; writes counts evictions
	// per collection so a fill can tell a write happened while it loaded.
	fillMu sync.Mutex
	writes map[string]uint64
}

func NewCatalogService(r domain.Repository, c domain.Cache, ttl time.Duration) *CatalogService {
	if c == nil {
		c = NopCache{}
	}
	return &CatalogService{repo: r, cache: c, cacheTTL: ttl, writes: map[string]uint64{}}
}

func cacheKey(collection string, id int64) string {
	return fmt.Sprintf("%s:%d", collection, id)
}

// readThrough serves collection:id from the cache, falling back to load. The
// loaded value is cached only if no write to the collection was evicted
// meanwhile; otherwise it may predate that write.
func readThrough[T any](ctx context.Context, s *CatalogService, collection string, id int64, load func() (T, error)) (T, error) {
	key := cacheKey(collection, id)
	var v T
	if ok, _ := s.cache.Get(ctx, key, &v); ok {
		return v, nil
	}
	gen := s.generation(collection)
	v, err := load()
	if err != nil {
		return v, err
	}
	s.fill(ctx, collection, gen, key, v)
	return v, nil
}

func (s *CatalogService) generation(collection string) uint64 {
	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	return s.writes[collection]
}

func (s *CatalogService) fill(ctx context.Context, collection string, gen uint64, key string, v any) {
	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	if s.writes[collection] != gen {
		return
	}
	_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
}

func (s *CatalogService) evict(ctx context.Context, collection string, id int64) {
	key := cacheKey(collection, id)
	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	s.writes[collection]++
	if err := s.cache.Del(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache evict failed")
	}
}

// NopCache never stores anything; used when no cache is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, any, int) error    { return nil }
func (NopCache) Del(context.Context, string) error              { return nil }
