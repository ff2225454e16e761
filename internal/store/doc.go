// Package store defines the persistence contracts the core study engine is
// written against, together with the sentinel errors and transaction helpers
// shared by all implementations. Concrete backends live under
// internal/platform.
package store
