// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Every service follows the same shape for its entity:
//
//   - Create checks each tenant-unique field through the store before saving
//     and fails with a Conflict naming the field.
//   - Update loads the entity (NotFound when absent), re-checks any changed
//     unique field against other entities, merges only the supplied patch
//     fields and saves the same object.
//   - Delete is existence-checked; a store-level "not found" after the check
//     counts as done.
//   - GetByID and GetAll pass through to the store.
//
// The uniqueness pre-checks are not atomic with the save. The database holds
// UNIQUE (tenant_id, field) constraints as the final authority; a duplicate
// reported by the store is mapped to the same Conflict the pre-check would
// have produced.
//
// Errors carry one of two kinds, ErrNotFound and ErrConflict, which the API
// layer maps to transport status codes.
package service
