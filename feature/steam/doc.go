// Package steam implements the remote achievement sources.
//
// # Sources
//
//   - Client: the authenticated schema endpoint (names, descriptions, hidden
//     flag, icons) and the public global percentages endpoint. It implements
//     reconcile.MetadataSource and reconcile.PercentageSource.
//   - Scraper: the public community statistics page, parsed with
//     golang.org/x/net/html. It implements reconcile.CatalogSource.
//   - NameResolver: the store app-details endpoint, used to label titles.
//
// All requests go through core/fetch, so raw JSON responses are cached in the
// api_requests namespace and retried on transport failures. Scraped rows are
// cached in steam_store and resolved names in games.
//
// # Percentages
//
// The percentages endpoint has returned the percent field both as a number and
// as a string; both forms are accepted.
//
// # Usage
//
//	f := fetch.New(fetch.NewHTTPGetter(), diskCache, cfg.SteamAPI.FetchConfig(false), log)
//	client := steam.NewClient(f, cfg.SteamAPI, log)
//	entries, err := client.Schema(ctx, "250900", "")
package steam
