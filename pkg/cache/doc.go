// Package cache provides the volatile TTL key/value store used by the
// catalog service to avoid redundant upstream calls.
//
// Values are opaque byte slices; callers marshal whatever they cache
// (the catalog service stores JSON). Entries expire after their TTL and
// are treated as absent from that point on. Expiry is the only removal
// path in normal operation; there is no background eviction.
//
// Two backends implement the Store interface:
//
//   - Memory: a process-wide map with lazy expiry checks on read. This is
//     the default and matches single-instance deployments.
//   - Redis: shares the cache between instances. Expiry is enforced by
//     Redis itself via per-key TTLs.
//
// # Basic Usage
//
//	store := cache.NewMemory()
//
//	err := store.Set(ctx, "pokemon:bulbasaur", payload, 30*time.Minute)
//	if err != nil {
//		return err
//	}
//
//	data, err := store.Get(ctx, "pokemon:bulbasaur")
//	if err == cache.ErrCacheMiss {
//		// expired or never cached - fetch live
//	}
//
// # Metrics
//
// Both backends export Prometheus metrics:
//
//   - catalog_cache_hits_total{store} - cache hits by backend
//   - catalog_cache_misses_total - cache misses
//   - catalog_cache_errors_total{operation} - backend operation errors
package cache
