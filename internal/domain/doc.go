// Package domain contains the business entities of the application: tenant-scoped
// clients, contracts, billable services and users. Entities are plain data records
// sharing an embedded Entity (identity + tenant); they carry validation but no
// persistence or transport concerns.
//
// Partial updates are expressed with Field values, which remember whether a value
// was supplied at all. This keeps "not mentioned" apart from "explicitly cleared"
// for nullable fields such as Contract.EndDate.
package domain
