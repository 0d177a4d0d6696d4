// Package localprogress reads per-title achievement progress files written by
// local game installs.
//
// # Formats
//
// Files ending in .json hold an object mapping ids to {earned, earned_time}.
// Any other file is read as INI: each section named by a numeric id or an
// achievement-like id (ACH_WIN, FIRST_BLOOD) is a record with Achieved and
// UnlockTime keys. The SteamAchievements section is an aggregate holding the
// unlocked Count and is never a record.
//
// Unearned JSON entries are dropped; INI sections are all kept with their
// Achieved state. Parse failures of any kind yield an empty map.
//
// # Discovery
//
// Probe checks a fixed list of candidate paths under an install directory and
// returns the first valid one. A Registry keeps the result per title and
// persists it in the local_achievements cache namespace.
//
// # Watching
//
// A Watcher reports writes, renames and removals of registered files so the
// merged catalogs built from them can be invalidated.
//
// # Usage
//
//	reg := localprogress.NewRegistry(diskCache, log)
//	reg.Register("250900", "/games/250900")
//	unlocked := reg.Count("250900")
package localprogress
