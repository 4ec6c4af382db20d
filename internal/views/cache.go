package views

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	go_store "github.com/eko/gocache/store/go_cache/v4"
	redis_store "github.com/eko/gocache/store/redis/v4"
	"github.com/jon4hz/crudnote/internal/config"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	cachePrefix = "view-fragment-"
	cacheTag    = "view-fragment"
)

// CachedLoader caches the fragments returned by another loader.
// Failed loads are never cached.
type CachedLoader struct {
	next  Loader
	cache *cache.Cache[string]
	ttl   time.Duration
}

// NewCachedLoader wraps next with c. Entries expire after ttl.
func NewCachedLoader(next Loader, c *cache.Cache[string], ttl time.Duration) *CachedLoader {
	return &CachedLoader{
		next:  next,
		cache: c,
		ttl:   ttl,
	}
}

func (l *CachedLoader) Load(ctx context.Context, name string) (string, error) {
	key := cachePrefix + name
	if markup, err := l.cache.Get(ctx, key); err == nil && markup != "" {
		log.Debug("Cache hit for view", "view", name)
		return markup, nil
	}

	markup, err := l.next.Load(ctx, name)
	if err != nil {
		return "", err
	}

	if err := l.cache.Set(ctx, key, markup, store.WithExpiration(l.ttl), store.WithTags([]string{cacheTag})); err != nil {
		log.Warn("Failed to cache view", "view", name, "error", err)
	} else {
		log.Debug("Cache set for view", "view", name, "size", humanize.Bytes(uint64(len(markup))), "ttl", l.ttl)
	}
	return markup, nil
}

// Purge drops every cached fragment. Other keys of a shared store are kept.
func (l *CachedLoader) Purge(ctx context.Context) error {
	return l.cache.Invalidate(ctx, store.WithInvalidateTags([]string{cacheTag}))
}

// NewCache creates the fragment cache for the configured cache engine.
func NewCache(cfg *config.CacheConfig) (*cache.Cache[string], error) {
	if cfg == nil {
		return newMemoryCache(), nil
	}
	switch cfg.Type {
	case config.CacheTypeRedis:
		return newRedisCache(cfg)
	default:
		return newMemoryCache(), nil
	}
}

func newMemoryCache() *cache.Cache[string] {
	// expiration is passed per entry
	gocacheClient := gocache.New(gocache.NoExpiration, 10*time.Minute)
	gocacheStore := go_store.NewGoCache(gocacheClient)
	return cache.New[string](gocacheStore)
}

func newRedisCache(cfg *config.CacheConfig) (*cache.Cache[string], error) {
	opts := &redis.Options{Addr: cfg.RedisURL}
	if strings.Contains(cfg.RedisURL, "://") {
		var err error
		opts, err = redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
	}
	redisStore := redis_store.NewRedis(redis.NewClient(opts))
	return cache.New[string](redisStore), nil
}
