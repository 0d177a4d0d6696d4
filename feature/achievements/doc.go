// Package achievements exposes the merged catalogs over HTTP.
//
// # Routes
//
//   - GET /api/games lists installed titles with local and obtainable counts.
//   - GET /api/games/:id/achievements lists one catalog joined with local
//     unlock state. Query parameters unlocked, locked, sort and limit filter
//     and order the result.
//   - GET /api/games/:id/stats returns completion and rarity breakdowns.
//
// A title with no data from any source answers 404.
//
// # Counting
//
// In the achievement list, total is the catalog size and unlocked counts the
// unlocked items actually returned, so filters and limit lower it. Stats uses
// the aggregate count from the progress file instead; locked is clamped at
// zero and completion at 100.
package achievements
