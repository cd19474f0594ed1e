// Package store defines the persistence interfaces and the persistence
// error kinds consumed by the API layer. Implementations live under
// internal/platform.
package store
