// Package export writes merged catalogs out of the cache.
//
// # Sinks
//
// FileSink writes {id}_achievements.json into paths.output_dir with an atomic
// rename. BucketSink uploads the same document to the configured object
// storage bucket, creating the bucket on first use.
//
// # Routes
//
//   - POST /api/games/:id/export exports one catalog.
//   - GET /api/exports lists previous exports.
package export
