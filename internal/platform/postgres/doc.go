// Package postgres provides PostgreSQL implementations of the store
// interfaces, using pgx through database/sql so the stores can run on
// either a connection pool or a transaction.
package postgres
