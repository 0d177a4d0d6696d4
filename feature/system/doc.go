// Package system exposes cache maintenance over HTTP.
//
//   - GET /api/system/cache returns cache.Stats.
//   - DELETE /api/system/cache?namespace= clears one namespace or all of them.
//   - POST /api/system/cache/cleanup drops expired entries.
package system
