// File: services/search/discovery.go
package search

import (
	"context"
	"sync"
	"time"

	"farewise/models"
	"farewise/utils"

	"go.uber.org/zap"
)

// CachedDirectory memoizes provider discovery per route and cabin. Provider
// coverage changes rarely, so entries stay valid for a configurable TTL.
type CachedDirectory struct {
	Inner ProviderDirectory
	TTL   time.Duration

	mu      sync.RWMutex
	entries map[string]directoryEntry
	now     func() time.Time
}

type directoryEntry struct {
	providers []models.ProviderDescriptor
	fetchedAt time.Time
}

func NewCachedDirectory(inner ProviderDirectory, ttl time.Duration) *CachedDirectory {
	return &CachedDirectory{
		Inner:   inner,
		TTL:     ttl,
		entries: make(map[string]directoryEntry),
		now:     time.Now,
	}
}

func directoryKey(intent models.TravelIntent) string {
	intent.ApplyDefaults()
	return intent.Source + "-" + intent.Destination + "-" + string(intent.FlightClass)
}

// Providers serves from cache when fresh, otherwise asks the inner directory
// and stores the answer. A failed refresh is not cached.
func (d *CachedDirectory) Providers(ctx context.Context, intent models.TravelIntent) ([]models.ProviderDescriptor, error) {
	key := directoryKey(intent)

	d.mu.RLock()
	entry, ok := d.entries[key]
	d.mu.RUnlock()
	if ok && d.now().Sub(entry.fetchedAt) < d.TTL {
		return entry.providers, nil
	}

	providers, err := d.Inner.Providers(ctx, intent)
	if err != nil {
		// A stale entry beats no answer while the partner API is down.
		if ok {
			utils.GetLogger().Warn("provider discovery failed, serving stale entry",
				zap.String("route", key), zap.Error(err))
			return entry.providers, nil
		}
		return nil, err
	}

	d.mu.Lock()
	d.entries[key] = directoryEntry{providers: providers, fetchedAt: d.now()}
	d.mu.Unlock()
	return providers, nil
}

// Prune drops expired entries. Run periodically so routes that fell out of
// use do not pin memory.
func (d *CachedDirectory) Prune() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	removed := 0
	for key, entry := range d.entries {
		if d.now().Sub(entry.fetchedAt) >= d.TTL {
			delete(d.entries, key)
			removed++
		}
	}
	return removed
}

// Clear empties the cache entirely.
func (d *CachedDirectory) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = make(map[string]directoryEntry)
}
