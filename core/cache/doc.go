// Package cache provides a namespaced, TTL-based cache persisted on local disk.
//
// Each entry is a JSON blob stored at {dir}/{namespace}/{key}.json. Creation
// time, TTL, size and last access of every entry are kept in a single index
// file ({dir}/cache_metadata.json) which is rewritten after every mutation.
//
// # Namespaces
//
// The namespace set is fixed: games, achievements, local_achievements,
// steam_store and api_requests. Operations on any other namespace miss or
// report zero work.
//
// # Expiry
//
// An entry is valid while (now - created_time) <= ttl. Expired entries stay on
// disk until CleanupExpired runs; lookups treat them as a miss.
//
// # Failure Handling
//
// I/O failures never surface as errors. Reads degrade to a miss, writes report
// false, and a blob that is missing or not valid JSON is invalidated on read.
// A corrupted index is discarded and rebuilt empty.
//
// # Concurrency
//
// A Cache is safe for concurrent use within one process. When lock_index is
// enabled, index writes also take an advisory file lock so several processes
// can share a directory; blob writes are atomic renames either way.
//
// # Usage
//
//	c := cache.New(cfg.Cache, cache.WithLogger(log))
//	c.Set(cache.NamespaceGames, "250900", name, 0)
//
//	var name string
//	if c.Load(cache.NamespaceGames, "250900", &name) {
//	    // hit
//	}
package cache
