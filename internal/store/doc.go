// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Every operation is scoped to a tenant. Implementations report absence with
// an error wrapping ErrNotFound and storage-level uniqueness violations with
// an error wrapping ErrDuplicate.
package store
