package cron

import (
	"context"
	"log"
	"time"

	"farewise/services/search"
)

// StartDirectoryPruneCron drops expired provider-discovery cache entries on
// an interval so routes that fell out of use do not pin memory.
func StartDirectoryPruneCron(ctx context.Context, directory *search.CachedDirectory, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Directory prune cron shutdown signal received.")
			return
		case <-ticker.C:
			if removed := directory.Prune(); removed > 0 {
				log.Printf("Pruned %d expired provider directory entries\n", removed)
			}
		}
	}
}
