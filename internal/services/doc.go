// Package services defines shared utilities consumed by the API handlers and
// the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp request IDs, routes, and video identifiers
//     for logging and the request journal.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent HTTP statuses and journal outcomes.
//
// Use these helpers when wiring new integrations so operational behaviour
// (error handling, observability) stays uniform across the service.
package services
