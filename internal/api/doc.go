// Package api handles incoming HTTP requests for the contracts API: request
// decoding and validation, calls into the tenant-scoped services, and the
// mapping of service errors onto status codes and safe messages.
package api
