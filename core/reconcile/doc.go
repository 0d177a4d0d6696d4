// Package reconcile merges achievement data for one title from several
// sources into a single catalog.
//
// # Strategies
//
// The strategy is chosen per request from the effective API key (the request's
// key, else the configured default):
//
//   - Premium: schema metadata is the base set, in API order. Global
//     percentages are attached by id; ids only known to the percentage source
//     are dropped. Result cached under "{id}_steam" for 24h.
//   - Free: rows scraped from the public catalog page. Result cached under
//     "{id}_gratuit" for 6h.
//
// In both strategies ids recorded in the title's local progress file but
// missing from the merged set are appended with percentage 0, in natural id
// order. Catalogs are cached only after every source has been consulted, and
// never when empty.
//
// # Ordering
//
// With sort_by_percentage enabled, records are sorted by descending
// percentage with a stable sort, so ties keep insertion order. Premium results
// are sorted after caching and again on every cache hit; free results are
// sorted before caching.
//
// # Naming
//
// Beautify derives a label from a raw id ("ACH_SOME_Achievement" becomes
// "Some Achievement"). A Matcher maps local ids onto scraped display names;
// SubstringMatcher is the default and FuzzyMatcher is available through the
// "matcher" setting.
//
// # Usage
//
//	engine := reconcile.NewEngine(cfg.Achievements, diskCache, reconcile.Sources{
//	    Metadata:    steamClient,
//	    Percentages: steamClient,
//	    Catalog:     scraper,
//	    Local:       registry,
//	}, reconcile.Options{DefaultAPIKey: cfg.SteamAPI.APIKey, Logger: log})
//
//	catalog := engine.GetBestAchievements(ctx, "250900", "")
package reconcile
