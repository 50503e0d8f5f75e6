// Package util provides small shared helpers: logging wrappers, filesystem
// path resolution, and pointer utilities.
package util

import "log"

// LogError logs a non-nil error with context. Used for fire-and-forget
// persistence failures where in-memory state remains authoritative.
func LogError(context string, err error) {
	if err != nil {
		log.Printf("%s: %v", context, err)
	}
}

// MustSucceed logs and exits on error. Startup only.
func MustSucceed(context string, err error) {
	if err != nil {
		log.Fatalf("%s: %v", context, err)
	}
}
