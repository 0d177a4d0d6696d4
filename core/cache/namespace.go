package cache

import "strings"

// Namespace is a fixed cache category. Each namespace maps to one directory.
type Namespace string

const (
	// NamespaceGames holds resolved title names.
	NamespaceGames Namespace = "games"
	// NamespaceAchievements holds merged per-title catalogs.
	NamespaceAchievements Namespace = "achievements"
	// NamespaceLocalAchievements holds resolved local progress file locations.
	NamespaceLocalAchievements Namespace = "local_achievements"
	// NamespaceSteamStore holds rows scraped from the public catalog page.
	NamespaceSteamStore Namespace = "steam_store"
	// NamespaceRequests holds raw JSON bodies of remote API requests.
	NamespaceRequests Namespace = "api_requests"
)

// Namespaces lists every valid namespace in a stable order.
var Namespaces = []Namespace{
	NamespaceGames,
	NamespaceAchievements,
	NamespaceLocalAchievements,
	NamespaceSteamStore,
	NamespaceRequests,
}

// Valid reports whether ns is one of the fixed namespaces.
func (ns Namespace) Valid() bool {
	for _, known := range Namespaces {
		if ns == known {
			return true
		}
	}
	return false
}

// ParseNamespace converts user input into a namespace.
func ParseNamespace(s string) (Namespace, bool) {
	ns := Namespace(strings.TrimSpace(s))
	return ns, ns.Valid()
}

var keyReplacer = strings.NewReplacer("%", "%25", "/", "%2F", "\\", "%5C")

// SanitizeKey maps a cache key onto a safe file name stem. Path separators are
// percent-escaped, so distinct keys never share a file.
func SanitizeKey(key string) string {
	return keyReplacer.Replace(key)
}
