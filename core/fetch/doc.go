// Package fetch performs GET requests against remote JSON APIs with a
// disk-backed response cache and bounded retries.
//
// # Caching
//
// FetchJSON consults the api_requests cache namespace before any network I/O.
// The key is the hex SHA-256 of the URL plus its encoded parameters; because
// url.Values encodes keys in sorted order, the same parameters always produce
// the same key regardless of insertion order.
//
// # Retries
//
// Transport failures (connect errors, timeouts, body read errors) are retried
// with exponential backoff until MaxRetries attempts have been made. A non-2xx
// status is a permanent failure and is returned after the first attempt.
//
// # Errors
//
// Returned errors are classified with core/errs: KindRemoteTransport,
// KindRemoteStatus or KindRemoteDecode.
//
// # Usage
//
//	f := fetch.New(fetch.NewHTTPGetter(), diskCache, fetch.Config{MaxRetries: 3}, log)
//	var out schemaResponse
//	err := f.Fetch(ctx, baseURL+"/ISteamUserStats/GetSchemaForGame/v2/", params, &out)
package fetch
