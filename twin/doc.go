// Package twin serves an in-memory replica of the pet-store REST API.
//
// The twin implements the pet and order endpoints the petstore client uses,
// with the same status codes and ApiResponse bodies as the public service,
// plus an /admin control plane for inspecting, loading and resetting state:
//
//	GET  /admin/health     liveness
//	POST /admin/reset      clear state and reload seed data
//	GET  /admin/state      snapshot of all pets and orders
//	POST /admin/state      replace state from a snapshot
//	GET  /admin/requests   recent /v2 requests
//
// It is used by `petstore twin` for local development and by end-to-end tests
// of the client.
package twin
