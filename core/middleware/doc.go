// Package middleware groups the Fiber middleware shared by every feature.
//
// # Components
//
//   - rayid: tags each request with an id (reusing an incoming X-Ray-ID
//     header), stores it in c.Locals("ray_id") and echoes it in the response.
//     logger.WithRayID reads it back.
//   - auth: rejects requests lacking the configured server API key, passed in
//     the X-API-Key header or the api_key query parameter. An empty key turns
//     the check off.
//
// The start command registers rayid first, then the request logger, then auth.
package middleware
