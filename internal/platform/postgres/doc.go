// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. Every query is scoped to a tenant, and
// driver errors are translated into the store package's sentinels.
// The schema lives in embedded goose migrations.
package postgres
