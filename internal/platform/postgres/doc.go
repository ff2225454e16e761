// Package postgres provides PostgreSQL implementations of the store
// interfaces. All stores operate over store.DBTX so they work identically
// against a connection pool or a transaction, and map driver errors to the
// store package's sentinel errors.
package postgres
