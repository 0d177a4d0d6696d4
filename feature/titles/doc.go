// Package titles discovers installed games and keeps a record of them.
//
// # Scanning
//
// DirScanner walks each configured Location in order. Under a location every
// team folder is listed and each purely numeric sub-folder is taken as a title
// id. The first location that yields an id wins.
//
// # Library
//
// Library ties a scan to name resolution, local progress registration and the
// optional Repository. Names come from the NameSource, then from the stored
// copy, then fall back to "Game {id}".
//
// # Persistence
//
// Repository stores scan results in the "titles" table through gorm. It works
// with mysql or sqlite and becomes a no-op without a database.
package titles
