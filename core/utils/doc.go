// Package utils provides common utility functions for the achievement tracker.
// It includes tolerant type conversion for loosely typed JSON and INI values and
// a natural (numeric-aware) string ordering used when listing identifiers.
package utils
