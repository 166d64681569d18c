// Package httpapi exposes the read-only observation surface of the
// simulation over HTTP: the current environment snapshot with its derived
// lighting profile, a health check, and the prometheus metrics endpoint.
package httpapi
